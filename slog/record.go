package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/eflotty/facultysnipe"
)

// Ensure LoggingRecordService implements facultysnipe.RecordService.
var _ facultysnipe.RecordService = (*LoggingRecordService)(nil)

// LoggingRecordService wraps a RecordService with debug logging.
type LoggingRecordService struct {
	next   facultysnipe.RecordService
	logger *slog.Logger
}

// NewLoggingRecordService creates a new LoggingRecordService.
func NewLoggingRecordService(next facultysnipe.RecordService, logger *slog.Logger) *LoggingRecordService {
	return &LoggingRecordService{next: next, logger: logger}
}

// Snapshot logs the snapshot size and delegates to the wrapped service.
func (s *LoggingRecordService) Snapshot(ctx context.Context, targetID string) (snapshot map[string]facultysnipe.Record, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("snapshot",
			"target_id", targetID,
			"records", len(snapshot),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Snapshot(ctx, targetID)
}

// ReplaceRecords logs the replacement size and delegates to the wrapped
// service.
func (s *LoggingRecordService) ReplaceRecords(ctx context.Context, targetID string, records []facultysnipe.Record) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("replace records",
			"target_id", targetID,
			"records", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReplaceRecords(ctx, targetID, records)
}
