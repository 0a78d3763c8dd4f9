package facultysnipe

import "context"

// Strategy is one heuristic algorithm proposing candidate records from a
// document. Strategies are independent: each inspects the whole document
// and returns the records it can find plus an advisory confidence score
// in [0, 100]. Confidence is used for logging and ranking only, never as
// a hard filter.
type Strategy interface {
	// Extract parses the HTML and returns candidate records. The baseURL
	// is used to resolve relative profile links. A strategy that cannot
	// engage (e.g. too few matches) returns no records with confidence 0.
	Extract(html string, baseURL string) (records []Record, confidence int, err error)

	// Name returns the strategy's identifier (e.g., "container", "table").
	Name() string
}

// Scraper produces the full record set for one target. The default
// implementation is the extraction cascade; targets may name an alternate
// registered implementation via their ScraperOverride.
type Scraper interface {
	Scrape(ctx context.Context, target *Target) ([]Record, error)
}
