package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/eflotty/facultysnipe"
)

// Run executes the records command.
func (c *RecordsCmd) Run(deps *Dependencies) error {
	target, err := findTarget(deps, c.Target)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", facultysnipe.ErrorMessage(err))
		return err
	}

	snapshot, err := deps.Records.Snapshot(deps.Ctx, target.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", facultysnipe.ErrorMessage(err))
		return err
	}

	records := make([]facultysnipe.Record, 0, len(snapshot))
	for _, r := range snapshot {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintf(deps.Stdout, "No records stored for %q. Use 'facultysnipe run' to scrape it.\n", target.DisplayName)
		return nil
	}

	for _, r := range records {
		fmt.Fprintln(deps.Stdout, formatRecord(r))
	}
	fmt.Fprintf(deps.Stdout, "%d records\n", len(records))
	return nil
}

// formatRecord renders a record as a single line of its non-empty fields.
func formatRecord(r facultysnipe.Record) string {
	parts := []string{r.Name}
	if r.Title != "" {
		parts = append(parts, r.Title)
	}
	if r.Email != "" {
		parts = append(parts, "<"+r.Email+">")
	}
	if r.Phone != "" {
		parts = append(parts, r.Phone)
	}
	if r.Department != "" {
		parts = append(parts, r.Department)
	}
	return strings.Join(parts, "  ")
}
