package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eflotty/facultysnipe"
)

// Compile-time interface verification.
var _ facultysnipe.TargetService = (*TargetService)(nil)

// TargetService implements facultysnipe.TargetService using SQLite.
type TargetService struct {
	db *DB
}

// NewTargetService creates a new TargetService.
func NewTargetService(db *DB) *TargetService {
	return &TargetService{db: db}
}

// CreateTarget creates a new target.
func (s *TargetService) CreateTarget(ctx context.Context, target *facultysnipe.Target) error {
	if err := target.Validate(); err != nil {
		return err
	}

	target.ID = uuid.New().String()
	now := time.Now().UTC()
	target.CreatedAt = now
	target.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO targets (id, display_name, url, enabled, scraper_override, last_status, last_run, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, '', '', ?, ?)
	`, target.ID, target.DisplayName, target.URL, boolToInt(target.Enabled), target.ScraperOverride,
		target.CreatedAt.Format(time.RFC3339), target.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindTargetByID retrieves a target by ID.
func (s *TargetService) FindTargetByID(ctx context.Context, id string) (*facultysnipe.Target, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+targetColumns+`
		FROM targets
		WHERE id = ?
	`, id)

	target, err := scanTarget(row)
	if err == sql.ErrNoRows {
		return nil, facultysnipe.Errorf(facultysnipe.ENOTFOUND, "target not found")
	}
	if err != nil {
		return nil, err
	}

	return target, nil
}

// FindTargets retrieves targets matching the filter.
func (s *TargetService) FindTargets(ctx context.Context, filter facultysnipe.TargetFilter) ([]*facultysnipe.Target, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + targetColumns + " FROM targets WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Enabled != nil {
		query.WriteString(" AND enabled = ?")
		args = append(args, boolToInt(*filter.Enabled))
	}

	query.WriteString(" ORDER BY created_at ASC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var targets []*facultysnipe.Target
	for rows.Next() {
		target, err := scanTarget(rows)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}

	return targets, rows.Err()
}

// UpdateTarget updates an existing target.
func (s *TargetService) UpdateTarget(ctx context.Context, id string, upd facultysnipe.TargetUpdate) (*facultysnipe.Target, error) {
	target, err := s.FindTargetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.DisplayName != nil {
		target.DisplayName = *upd.DisplayName
	}
	if upd.URL != nil {
		target.URL = *upd.URL
	}
	if upd.Enabled != nil {
		target.Enabled = *upd.Enabled
	}
	if upd.ScraperOverride != nil {
		target.ScraperOverride = *upd.ScraperOverride
	}

	if err := target.Validate(); err != nil {
		return nil, err
	}

	target.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE targets
		SET display_name = ?, url = ?, enabled = ?, scraper_override = ?, updated_at = ?
		WHERE id = ?
	`, target.DisplayName, target.URL, boolToInt(target.Enabled), target.ScraperOverride,
		target.UpdatedAt.Format(time.RFC3339), id)

	if err != nil {
		return nil, err
	}

	return target, nil
}

// DeleteTarget permanently removes a target and, through the foreign key
// cascade, its stored records.
func (s *TargetService) DeleteTarget(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM targets WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return facultysnipe.Errorf(facultysnipe.ENOTFOUND, "target not found")
	}

	return nil
}

// ListEnabledTargets returns all targets with Enabled set.
func (s *TargetService) ListEnabledTargets(ctx context.Context) ([]*facultysnipe.Target, error) {
	enabled := true
	return s.FindTargets(ctx, facultysnipe.TargetFilter{Enabled: &enabled})
}

// UpdateRunStatus records the outcome and timestamp of the most recent
// processing of a target.
func (s *TargetService) UpdateRunStatus(ctx context.Context, id string, status facultysnipe.RunStatus, at time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE targets
		SET last_status = ?, last_run = ?
		WHERE id = ?
	`, string(status), at.UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return facultysnipe.Errorf(facultysnipe.ENOTFOUND, "target not found")
	}

	return nil
}

const targetColumns = "id, display_name, url, enabled, scraper_override, last_status, last_run, created_at, updated_at"

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTarget(row scanner) (*facultysnipe.Target, error) {
	var target facultysnipe.Target
	var enabled int
	var lastStatus, lastRun, createdAt, updatedAt string

	if err := row.Scan(&target.ID, &target.DisplayName, &target.URL, &enabled, &target.ScraperOverride,
		&lastStatus, &lastRun, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	target.Enabled = enabled != 0
	target.LastStatus = facultysnipe.RunStatus(lastStatus)

	var parseErr error
	if lastRun != "" {
		target.LastRun, parseErr = time.Parse(time.RFC3339, lastRun)
		if parseErr != nil {
			return nil, fmt.Errorf("failed to parse last_run: %w", parseErr)
		}
	}
	target.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAt)
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", parseErr)
	}
	target.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAt)
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", parseErr)
	}

	return &target, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
