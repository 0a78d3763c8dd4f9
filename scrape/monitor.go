package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eflotty/facultysnipe"
)

// RunStats aggregates the outcome of one monitoring run. Counters are
// guarded by an internal mutex because target workers update them
// concurrently.
type RunStats struct {
	mu sync.Mutex

	Targets   int
	Succeeded int
	Failed    int
	Skipped   int

	NewRecords     int
	ChangedRecords int
	RemovedRecords int

	Duration time.Duration
	Errors   []string
}

func (s *RunStats) recordSuccess(changes Changes) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Succeeded++
	s.NewRecords += len(changes.New)
	s.ChangedRecords += len(changes.Changed)
	s.RemovedRecords += len(changes.RemovedIDs)
}

func (s *RunStats) recordFailure(target *facultysnipe.Target, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failed++
	s.Errors = append(s.Errors, fmt.Sprintf("%s: %s", target.DisplayName, err))
}

func (s *RunStats) recordSkip() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Skipped++
}

// Monitor orchestrates one run across all enabled targets: scrape, diff
// against the stored snapshot, persist, notify, and write back status.
// Targets are isolated from each other; one failing never stops the rest.
type Monitor struct {
	Targets  facultysnipe.TargetService
	Records  facultysnipe.RecordService
	Scrapers *Registry
	Notifier facultysnipe.Notifier // nil disables notifications
	Logger   *slog.Logger

	// Now is the clock used for status timestamps; defaults to time.Now.
	Now func() time.Time
}

func (m *Monitor) log() *slog.Logger {
	return logOrDiscard(m.Logger)
}

// RunOnce processes the enabled targets and returns aggregated stats.
// A non-empty targetFilter restricts the run to the target whose ID or
// display name matches; an unmatched filter is ENOTFOUND. The returned
// error is non-nil only when the run could not start at all.
func (m *Monitor) RunOnce(ctx context.Context, targetFilter string) (*RunStats, error) {
	started := m.now()

	targets, err := m.Targets.ListEnabledTargets(ctx)
	if err != nil {
		return nil, err
	}

	if targetFilter != "" {
		targets = filterTargets(targets, targetFilter)
		if len(targets) == 0 {
			return nil, facultysnipe.Errorf(facultysnipe.ENOTFOUND, "no enabled target matches %q", targetFilter)
		}
	}

	stats := &RunStats{Targets: len(targets)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(poolSize(len(targets)))

	for _, target := range targets {
		target := target
		g.Go(func() error {
			m.processTarget(gctx, target, stats)
			return nil
		})
	}
	_ = g.Wait()

	stats.Duration = m.now().Sub(started)
	m.logSummary(stats)

	return stats, nil
}

// poolSize scales worker concurrency with target count. Small runs gain
// nothing from parallelism; large runs stay bounded to keep browser and
// network load predictable.
func poolSize(targets int) int {
	switch {
	case targets < 4:
		return 1
	case targets < 10:
		return 3
	case targets < 20:
		return 4
	default:
		return 5
	}
}

// processTarget runs the full pipeline for one target. Every failure path
// is contained here: the error is recorded in stats and the target's
// status written back, nothing propagates.
func (m *Monitor) processTarget(ctx context.Context, target *facultysnipe.Target, stats *RunStats) {
	defer func() {
		if r := recover(); r != nil {
			err := facultysnipe.Errorf(facultysnipe.EINTERNAL, "panic: %v", r)
			stats.recordFailure(target, err)
			m.writeStatus(ctx, target, facultysnipe.RunStatusFailed)
		}
	}()

	if err := target.Validate(); err != nil {
		m.log().Warn("skipping invalid target",
			slog.String("target", target.ID),
			slog.String("error", err.Error()))
		stats.recordSkip()
		m.writeStatus(ctx, target, facultysnipe.RunStatusSkipped)
		return
	}

	scraper := m.Scrapers.Resolve(target.ScraperOverride)

	records, err := scraper.Scrape(ctx, target)
	if err != nil {
		stats.recordFailure(target, err)
		m.writeStatus(ctx, target, facultysnipe.RunStatusFailed)
		return
	}

	snapshot, err := m.Records.Snapshot(ctx, target.ID)
	if err != nil {
		stats.recordFailure(target, err)
		m.writeStatus(ctx, target, facultysnipe.RunStatusFailed)
		return
	}

	changes := DetectChanges(records, snapshot)

	if err := m.Records.ReplaceRecords(ctx, target.ID, records); err != nil {
		stats.recordFailure(target, err)
		m.writeStatus(ctx, target, facultysnipe.RunStatusFailed)
		return
	}

	if m.Notifier != nil && !changes.Empty() {
		if err := m.Notifier.Notify(ctx, target, changes.New, changes.Changed, changes.RemovedIDs); err != nil {
			// Notification failure doesn't undo a successful scrape.
			m.log().Warn("notification failed",
				slog.String("target", target.DisplayName),
				slog.String("error", err.Error()))
		}
	}

	stats.recordSuccess(changes)
	m.writeStatus(ctx, target, facultysnipe.RunStatusSuccess)

	m.log().Info("target processed",
		slog.String("target", target.DisplayName),
		slog.Int("records", len(records)),
		slog.Int("new", len(changes.New)),
		slog.Int("changed", len(changes.Changed)),
		slog.Int("removed", len(changes.RemovedIDs)))
}

func (m *Monitor) writeStatus(ctx context.Context, target *facultysnipe.Target, status facultysnipe.RunStatus) {
	if err := m.Targets.UpdateRunStatus(ctx, target.ID, status, m.now()); err != nil {
		m.log().Warn("status write-back failed",
			slog.String("target", target.ID),
			slog.String("error", err.Error()))
	}
}

func (m *Monitor) logSummary(stats *RunStats) {
	m.log().Info("run finished",
		slog.Int("targets", stats.Targets),
		slog.Int("succeeded", stats.Succeeded),
		slog.Int("failed", stats.Failed),
		slog.Int("skipped", stats.Skipped),
		slog.Int("new_records", stats.NewRecords),
		slog.Int("changed_records", stats.ChangedRecords),
		slog.Int("removed_records", stats.RemovedRecords),
		slog.Duration("duration", stats.Duration))
}

func (m *Monitor) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// filterTargets keeps targets whose ID or display name equals the filter.
func filterTargets(targets []*facultysnipe.Target, filter string) []*facultysnipe.Target {
	var out []*facultysnipe.Target
	for _, t := range targets {
		if t.ID == filter || t.DisplayName == filter {
			out = append(out, t)
		}
	}
	return out
}
