package main

import (
	"fmt"

	"github.com/eflotty/facultysnipe"
	"github.com/eflotty/facultysnipe/yaml"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	n, err := yaml.Import(deps.Ctx, deps.Targets, c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error after %d imported: %s\n", n, facultysnipe.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d targets from %s\n", n, c.Path)
	return nil
}
