// Package yaml loads target definitions from YAML files for bulk import.
package yaml

import (
	"context"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eflotty/facultysnipe"
)

// targetFile is the on-disk import format:
//
//	targets:
//	  - name: Biology Faculty
//	    url: https://u.edu/biology/faculty
//	  - name: Physics Faculty
//	    url: https://u.edu/physics/people
//	    enabled: false
//	    scraper: legacy-table
type targetFile struct {
	Targets []targetEntry `yaml:"targets"`
}

type targetEntry struct {
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Enabled *bool  `yaml:"enabled"`
	Scraper string `yaml:"scraper"`
}

// LoadTargets parses a YAML import file. Targets without an explicit
// enabled value default to enabled.
func LoadTargets(path string) ([]*facultysnipe.Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, facultysnipe.Errorf(facultysnipe.EINVALID, "read import file: %v", err)
	}
	return ParseTargets(data)
}

// ParseTargets parses YAML import data.
func ParseTargets(data []byte) ([]*facultysnipe.Target, error) {
	var file targetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, facultysnipe.Errorf(facultysnipe.EINVALID, "parse import file: %v", err)
	}

	targets := make([]*facultysnipe.Target, 0, len(file.Targets))
	for i, entry := range file.Targets {
		target := &facultysnipe.Target{
			DisplayName:     entry.Name,
			URL:             entry.URL,
			Enabled:         entry.Enabled == nil || *entry.Enabled,
			ScraperOverride: entry.Scraper,
		}
		if err := target.Validate(); err != nil {
			return nil, facultysnipe.Errorf(facultysnipe.EINVALID, "target %d: %s", i+1, facultysnipe.ErrorMessage(err))
		}
		targets = append(targets, target)
	}

	return targets, nil
}

// Import loads targets from the file and creates them through the service.
// Returns the number of targets created; the first failure aborts the
// import.
func Import(ctx context.Context, svc facultysnipe.TargetService, path string) (int, error) {
	targets, err := LoadTargets(path)
	if err != nil {
		return 0, err
	}

	for i, target := range targets {
		if err := svc.CreateTarget(ctx, target); err != nil {
			return i, err
		}
	}
	return len(targets), nil
}
