package main

import (
	"fmt"

	"github.com/eflotty/facultysnipe"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	targets, err := deps.Targets.FindTargets(deps.Ctx, facultysnipe.TargetFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", facultysnipe.ErrorMessage(err))
		return err
	}

	if len(targets) == 0 {
		fmt.Fprintln(deps.Stdout, "No targets found. Use 'facultysnipe add' to create one.")
		return nil
	}

	for _, t := range targets {
		state := "enabled"
		if !t.Enabled {
			state = "disabled"
		}
		status := string(t.LastStatus)
		if status == "" {
			status = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %-8s  %-7s  %s  %s\n", t.ID, state, status, t.DisplayName, t.URL)
	}

	return nil
}
