package main

import (
	"fmt"

	"github.com/eflotty/facultysnipe"
)

// Run executes the enable command.
func (c *EnableCmd) Run(deps *Dependencies) error {
	return setEnabled(deps, c.Target, true)
}

// Run executes the disable command.
func (c *DisableCmd) Run(deps *Dependencies) error {
	return setEnabled(deps, c.Target, false)
}

func setEnabled(deps *Dependencies, ref string, enabled bool) error {
	target, err := findTarget(deps, ref)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", facultysnipe.ErrorMessage(err))
		return err
	}

	if _, err := deps.Targets.UpdateTarget(deps.Ctx, target.ID, facultysnipe.TargetUpdate{Enabled: &enabled}); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", facultysnipe.ErrorMessage(err))
		return err
	}

	verb := "Enabled"
	if !enabled {
		verb = "Disabled"
	}
	fmt.Fprintf(deps.Stdout, "%s target %q\n", verb, target.DisplayName)
	return nil
}
