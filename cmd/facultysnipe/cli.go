package main

import (
	"context"
	"io"

	"github.com/eflotty/facultysnipe"
	"github.com/eflotty/facultysnipe/scrape"
	"github.com/eflotty/facultysnipe/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	DB      *sqlite.DB
	Targets facultysnipe.TargetService
	Records facultysnipe.RecordService
	Monitor *scrape.Monitor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Run     RunCmd     `cmd:"" help:"Scrape enabled targets and report personnel changes"`
	Add     AddCmd     `cmd:"" help:"Register a directory page to monitor"`
	List    ListCmd    `cmd:"" help:"List registered targets"`
	Enable  EnableCmd  `cmd:"" help:"Enable a target"`
	Disable DisableCmd `cmd:"" help:"Disable a target"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a target and its stored records"`
	Import  ImportCmd  `cmd:"" help:"Import targets from a YAML file"`
	Records RecordsCmd `cmd:"" help:"Show the stored snapshot for a target"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Target  string `short:"t" help:"Restrict the run to one target by ID or name"`
	Verbose bool   `short:"v" help:"Enable debug logging"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Name     string `arg:"" help:"Target display name"`
	URL      string `arg:"" help:"Directory page URL"`
	Disabled bool   `help:"Register without enabling"`
	Scraper  string `short:"s" help:"Registered scraper to use instead of the default cascade"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// EnableCmd is the "enable" subcommand.
type EnableCmd struct {
	Target string `arg:"" help:"Target ID or display name"`
}

// DisableCmd is the "disable" subcommand.
type DisableCmd struct {
	Target string `arg:"" help:"Target ID or display name"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Target string `arg:"" help:"Target ID or display name"`
	Force  bool   `help:"Confirm deletion"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Path string `arg:"" help:"YAML file with target definitions"`
}

// RecordsCmd is the "records" subcommand.
type RecordsCmd struct {
	Target string `arg:"" help:"Target ID or display name"`
	JSON   bool   `help:"Emit records as JSON"`
}

// findTarget resolves a target reference given as either an ID or a
// display name. Returns ENOTFOUND when neither matches.
func findTarget(deps *Dependencies, ref string) (*facultysnipe.Target, error) {
	target, err := deps.Targets.FindTargetByID(deps.Ctx, ref)
	if err == nil {
		return target, nil
	}
	if facultysnipe.ErrorCode(err) != facultysnipe.ENOTFOUND {
		return nil, err
	}

	targets, err := deps.Targets.FindTargets(deps.Ctx, facultysnipe.TargetFilter{})
	if err != nil {
		return nil, err
	}
	for _, t := range targets {
		if t.DisplayName == ref {
			return t, nil
		}
	}
	return nil, facultysnipe.Errorf(facultysnipe.ENOTFOUND, "target %q not found", ref)
}
