package main

import (
	"fmt"

	"github.com/eflotty/facultysnipe"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return facultysnipe.Errorf(facultysnipe.EINVALID, "use --force to confirm deletion")
	}

	target, err := findTarget(deps, c.Target)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", facultysnipe.ErrorMessage(err))
		return err
	}

	if err := deps.Targets.DeleteTarget(deps.Ctx, target.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", facultysnipe.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted target %q\n", target.DisplayName)
	return nil
}
