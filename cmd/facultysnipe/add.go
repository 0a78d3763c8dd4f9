package main

import (
	"fmt"

	"github.com/eflotty/facultysnipe"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	target := &facultysnipe.Target{
		DisplayName:     c.Name,
		URL:             c.URL,
		Enabled:         !c.Disabled,
		ScraperOverride: c.Scraper,
	}

	if err := deps.Targets.CreateTarget(deps.Ctx, target); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", facultysnipe.ErrorMessage(err))
		return err
	}

	state := "enabled"
	if c.Disabled {
		state = "disabled"
	}
	fmt.Fprintf(deps.Stdout, "Added target %q (%s, %s)\n", target.DisplayName, target.ID, state)
	return nil
}
