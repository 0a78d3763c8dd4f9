package goquery

import "github.com/eflotty/facultysnipe"

// DefaultStrategies returns all extraction strategies in priority order:
// structural strategies first, text mining as the last resort. Every
// strategy runs against each page; the merger reconciles their outputs.
func DefaultStrategies() []facultysnipe.Strategy {
	return []facultysnipe.Strategy{
		NewContainerStrategy(),
		NewContactClusterStrategy(),
		NewTitleStrategy(),
		NewTableStrategy(),
		NewTextMineStrategy(),
	}
}
