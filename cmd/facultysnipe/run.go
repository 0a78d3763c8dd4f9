package main

import (
	"fmt"
	"time"

	"github.com/eflotty/facultysnipe"
)

// timeResolution rounds run durations for display.
const timeResolution = 10 * time.Millisecond

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	stats, err := deps.Monitor.RunOnce(deps.Ctx, c.Target)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", facultysnipe.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Processed %d targets in %s: %d succeeded, %d failed, %d skipped\n",
		stats.Targets, stats.Duration.Round(timeResolution), stats.Succeeded, stats.Failed, stats.Skipped)

	if stats.NewRecords+stats.ChangedRecords+stats.RemovedRecords > 0 {
		fmt.Fprintf(deps.Stdout, "Changes: %d new, %d changed, %d removed\n",
			stats.NewRecords, stats.ChangedRecords, stats.RemovedRecords)
	}

	for _, e := range stats.Errors {
		fmt.Fprintf(deps.Stderr, "  %s\n", e)
	}

	if stats.Failed > 0 {
		return facultysnipe.Errorf(facultysnipe.EINTERNAL, "%d of %d targets failed", stats.Failed, stats.Targets)
	}
	return nil
}
