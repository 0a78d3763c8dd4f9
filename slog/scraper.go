package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/eflotty/facultysnipe"
)

// Ensure LoggingScraper implements facultysnipe.Scraper.
var _ facultysnipe.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with per-target timing and yield logging.
type LoggingScraper struct {
	next   facultysnipe.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next facultysnipe.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape logs the target and yield and delegates to the wrapped scraper.
func (s *LoggingScraper) Scrape(ctx context.Context, target *facultysnipe.Target) (records []facultysnipe.Record, err error) {
	defer func(begin time.Time) {
		s.logger.Info("scrape",
			"target", target.DisplayName,
			"url", target.URL,
			"records", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Scrape(ctx, target)
}
