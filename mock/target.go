package mock

import (
	"context"
	"time"

	"github.com/eflotty/facultysnipe"
)

var _ facultysnipe.TargetService = (*TargetService)(nil)

// TargetService is a mock implementation of facultysnipe.TargetService.
type TargetService struct {
	CreateTargetFn       func(ctx context.Context, target *facultysnipe.Target) error
	FindTargetByIDFn     func(ctx context.Context, id string) (*facultysnipe.Target, error)
	FindTargetsFn        func(ctx context.Context, filter facultysnipe.TargetFilter) ([]*facultysnipe.Target, error)
	UpdateTargetFn       func(ctx context.Context, id string, upd facultysnipe.TargetUpdate) (*facultysnipe.Target, error)
	DeleteTargetFn       func(ctx context.Context, id string) error
	ListEnabledTargetsFn func(ctx context.Context) ([]*facultysnipe.Target, error)
	UpdateRunStatusFn    func(ctx context.Context, id string, status facultysnipe.RunStatus, at time.Time) error
}

func (s *TargetService) CreateTarget(ctx context.Context, target *facultysnipe.Target) error {
	return s.CreateTargetFn(ctx, target)
}

func (s *TargetService) FindTargetByID(ctx context.Context, id string) (*facultysnipe.Target, error) {
	return s.FindTargetByIDFn(ctx, id)
}

func (s *TargetService) FindTargets(ctx context.Context, filter facultysnipe.TargetFilter) ([]*facultysnipe.Target, error) {
	return s.FindTargetsFn(ctx, filter)
}

func (s *TargetService) UpdateTarget(ctx context.Context, id string, upd facultysnipe.TargetUpdate) (*facultysnipe.Target, error) {
	return s.UpdateTargetFn(ctx, id, upd)
}

func (s *TargetService) DeleteTarget(ctx context.Context, id string) error {
	return s.DeleteTargetFn(ctx, id)
}

func (s *TargetService) ListEnabledTargets(ctx context.Context) ([]*facultysnipe.Target, error) {
	return s.ListEnabledTargetsFn(ctx)
}

func (s *TargetService) UpdateRunStatus(ctx context.Context, id string, status facultysnipe.RunStatus, at time.Time) error {
	if s.UpdateRunStatusFn == nil {
		return nil
	}
	return s.UpdateRunStatusFn(ctx, id, status, at)
}

var _ facultysnipe.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of facultysnipe.RecordService.
type RecordService struct {
	SnapshotFn       func(ctx context.Context, targetID string) (map[string]facultysnipe.Record, error)
	ReplaceRecordsFn func(ctx context.Context, targetID string, records []facultysnipe.Record) error
}

func (s *RecordService) Snapshot(ctx context.Context, targetID string) (map[string]facultysnipe.Record, error) {
	return s.SnapshotFn(ctx, targetID)
}

func (s *RecordService) ReplaceRecords(ctx context.Context, targetID string, records []facultysnipe.Record) error {
	return s.ReplaceRecordsFn(ctx, targetID, records)
}
