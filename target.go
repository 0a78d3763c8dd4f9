package facultysnipe

import (
	"context"
	"time"
)

// RunStatus is the outcome of processing one target during a run.
type RunStatus string

// Run status values written back to target configuration.
const (
	RunStatusSuccess RunStatus = "SUCCESS"
	RunStatusFailed  RunStatus = "FAILED"
	RunStatusSkipped RunStatus = "SKIPPED"
)

// Target represents one directory page root to be monitored.
type Target struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	URL         string `json:"url"`
	Enabled     bool   `json:"enabled"`

	// ScraperOverride names a registered scraper implementation to use
	// instead of the default cascade. Empty means the default.
	ScraperOverride string `json:"scraperOverride,omitempty"`

	LastStatus RunStatus `json:"lastStatus,omitempty"`
	LastRun    time.Time `json:"lastRun,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the target contains invalid fields.
func (t *Target) Validate() error {
	if t.DisplayName == "" {
		return Errorf(EINVALID, "target display name required")
	}
	if t.URL == "" {
		return Errorf(EINVALID, "target URL required")
	}
	return nil
}

// TargetFilter represents a filter for FindTargets.
type TargetFilter struct {
	ID      *string `json:"id"`
	Enabled *bool   `json:"enabled"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// TargetUpdate represents fields that can be updated on a target.
type TargetUpdate struct {
	DisplayName     *string `json:"displayName"`
	URL             *string `json:"url"`
	Enabled         *bool   `json:"enabled"`
	ScraperOverride *string `json:"scraperOverride"`
}

// TargetService manages target configuration. The monitoring core consumes
// only ListEnabledTargets and UpdateRunStatus; the CRUD operations serve
// the CLI.
type TargetService interface {
	// CreateTarget creates a new target.
	CreateTarget(ctx context.Context, target *Target) error

	// FindTargetByID retrieves a target by ID.
	// Returns ENOTFOUND if the target does not exist.
	FindTargetByID(ctx context.Context, id string) (*Target, error)

	// FindTargets retrieves targets matching the filter.
	FindTargets(ctx context.Context, filter TargetFilter) ([]*Target, error)

	// UpdateTarget updates an existing target.
	// Returns ENOTFOUND if the target does not exist.
	UpdateTarget(ctx context.Context, id string, upd TargetUpdate) (*Target, error)

	// DeleteTarget permanently removes a target and its stored records.
	// Returns ENOTFOUND if the target does not exist.
	DeleteTarget(ctx context.Context, id string) error

	// ListEnabledTargets returns all targets with Enabled set.
	ListEnabledTargets(ctx context.Context) ([]*Target, error)

	// UpdateRunStatus records the outcome and timestamp of the most
	// recent processing of a target.
	UpdateRunStatus(ctx context.Context, id string, status RunStatus, at time.Time) error
}
