// Package mock provides hand-written mock implementations of the
// facultysnipe service interfaces for use in tests.
package mock

import (
	"context"

	"github.com/eflotty/facultysnipe"
)

var _ facultysnipe.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of facultysnipe.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ facultysnipe.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of facultysnipe.Strategy.
type Strategy struct {
	ExtractFn func(html, baseURL string) ([]facultysnipe.Record, int, error)
	NameFn    func() string
}

func (s *Strategy) Extract(html, baseURL string) ([]facultysnipe.Record, int, error) {
	return s.ExtractFn(html, baseURL)
}

func (s *Strategy) Name() string {
	if s.NameFn == nil {
		return "mock"
	}
	return s.NameFn()
}

var _ facultysnipe.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of facultysnipe.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, target *facultysnipe.Target) ([]facultysnipe.Record, error)
}

func (s *Scraper) Scrape(ctx context.Context, target *facultysnipe.Target) ([]facultysnipe.Record, error) {
	return s.ScrapeFn(ctx, target)
}

var _ facultysnipe.AIExtractor = (*AIExtractor)(nil)

// AIExtractor is a mock implementation of facultysnipe.AIExtractor.
type AIExtractor struct {
	ExtractFn func(ctx context.Context, html string) ([]facultysnipe.Record, float64, error)
}

func (e *AIExtractor) Extract(ctx context.Context, html string) ([]facultysnipe.Record, float64, error) {
	return e.ExtractFn(ctx, html)
}

var _ facultysnipe.Notifier = (*Notifier)(nil)

// Notifier is a mock implementation of facultysnipe.Notifier.
type Notifier struct {
	NotifyFn func(ctx context.Context, target *facultysnipe.Target, newRecords, changed []facultysnipe.Record, removedIDs []string) error
}

func (n *Notifier) Notify(ctx context.Context, target *facultysnipe.Target, newRecords, changed []facultysnipe.Record, removedIDs []string) error {
	return n.NotifyFn(ctx, target, newRecords, changed, removedIDs)
}
