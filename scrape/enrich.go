package scrape

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/eflotty/facultysnipe"
	"github.com/eflotty/facultysnipe/bloom"
	"github.com/eflotty/facultysnipe/goquery"
)

// DefaultEnrichRPS is the default profile-page fetch rate.
const DefaultEnrichRPS = 2

// enrichExpectedURLs sizes the profile-URL dedup filter.
const (
	enrichExpectedURLs      = 10000
	enrichFalsePositiveRate = 0.01
)

// Enricher backfills contact details for records that came off the
// directory page without an email but with a profile link. Enrichment is
// fill-only: it never overwrites a field the directory already provided,
// and a failed profile fetch leaves the record as it was.
type Enricher struct {
	fetcher facultysnipe.Fetcher
	limiter *rate.Limiter
	seen    *bloom.Filter
	logger  *slog.Logger
}

// EnricherOption configures an Enricher.
type EnricherOption func(*Enricher)

// WithEnrichLimit overrides the profile-page fetch rate.
func WithEnrichLimit(rps float64) EnricherOption {
	return func(e *Enricher) {
		e.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewEnricher creates an Enricher that fetches profile pages with the
// given fetcher.
func NewEnricher(fetcher facultysnipe.Fetcher, logger *slog.Logger, opts ...EnricherOption) *Enricher {
	e := &Enricher{
		fetcher: fetcher,
		limiter: rate.NewLimiter(rate.Limit(DefaultEnrichRPS), 1),
		seen:    bloom.NewFilter(enrichExpectedURLs, enrichFalsePositiveRate),
		logger:  logOrDiscard(logger),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich visits the profile page of each record missing an email and fills
// in whatever the page yields. The input slice is modified in place and
// returned.
func (e *Enricher) Enrich(ctx context.Context, records []facultysnipe.Record) []facultysnipe.Record {
	for i := range records {
		rec := &records[i]
		if rec.Email != "" || rec.ProfileURL == "" {
			continue
		}
		// Visit reports true when the URL was already fetched this run;
		// a false positive only skips a redundant fill-only fetch.
		if e.seen.Visit(rec.ProfileURL) {
			continue
		}

		if err := e.limiter.Wait(ctx); err != nil {
			return records
		}

		html, err := e.fetcher.Fetch(ctx, rec.ProfileURL)
		if err != nil {
			e.logger.Debug("profile fetch failed, leaving record unenriched",
				slog.String("name", rec.Name),
				slog.String("url", rec.ProfileURL),
				slog.String("error", err.Error()))
			continue
		}

		details, err := goquery.ExtractProfileDetails(html)
		if err != nil {
			continue
		}

		if rec.Email == "" {
			rec.Email = details.Email
		}
		if rec.Phone == "" {
			rec.Phone = details.Phone
		}
		if rec.Department == "" {
			rec.Department = details.Department
		}
		if rec.ResearchInterests == "" {
			rec.ResearchInterests = details.ResearchInterests
		}
	}
	return records
}
