package scrape

import (
	"context"
	"log/slog"
	"strings"

	gq "github.com/PuerkitoBio/goquery"

	"github.com/eflotty/facultysnipe"
)

// DefaultMinResults is the record count at which a cascade attempt is
// accepted without escalating to a more expensive one.
const DefaultMinResults = 3

// maxAIInputBytes caps the HTML sent to the AI backend.
const maxAIInputBytes = 100000

// Ensure Cascade implements facultysnipe.Scraper at compile time.
var _ facultysnipe.Scraper = (*Cascade)(nil)

// Cascade is the default scraper: it escalates from cheap static fetching
// through browser rendering to AI extraction, stopping as soon as an
// attempt yields enough records. Failed attempts count as zero records and
// never abort the cascade; an empty final set is a valid result.
type Cascade struct {
	StaticFetcher  facultysnipe.Fetcher
	BrowserFetcher facultysnipe.Fetcher     // nil disables the browser attempt
	AI             facultysnipe.AIExtractor // nil disables the AI attempt
	Strategies     []facultysnipe.Strategy
	Paginator      *Paginator
	Enricher       *Enricher // nil disables enrichment
	MinResults     int
	Logger         *slog.Logger
}

func (c *Cascade) log() *slog.Logger {
	return logOrDiscard(c.Logger)
}

// attempt is one completed escalation step.
type attempt struct {
	name    string
	records []facultysnipe.Record
	err     error
}

// Scrape runs the cascade for one target and returns the best record set
// found. An error is returned only when every attempt failed outright.
func (c *Cascade) Scrape(ctx context.Context, target *facultysnipe.Target) ([]facultysnipe.Record, error) {
	minResults := c.MinResults
	if minResults <= 0 {
		minResults = DefaultMinResults
	}

	var attempts []attempt
	var firstPageHTML string

	static := c.runFetchAttempt(ctx, "static", c.StaticFetcher, target, &firstPageHTML)
	attempts = append(attempts, static)
	if static.err == nil && len(static.records) >= minResults {
		return static.records, nil
	}

	if c.BrowserFetcher != nil {
		browser := c.runFetchAttempt(ctx, "browser", c.BrowserFetcher, target, nil)
		attempts = append(attempts, browser)
		if browser.err == nil && len(browser.records) >= minResults {
			return browser.records, nil
		}
	}

	if c.AI != nil {
		attempts = append(attempts, c.runAIAttempt(ctx, target, firstPageHTML))
	}

	return pickBest(attempts)
}

// runFetchAttempt paginates with the given fetcher, runs every strategy
// over every page, merges, and enriches. When firstPage is non-nil the
// first page's HTML is saved for a later AI attempt.
func (c *Cascade) runFetchAttempt(ctx context.Context, name string, fetcher facultysnipe.Fetcher, target *facultysnipe.Target, firstPage *string) attempt {
	pages, err := c.Paginator.Pages(ctx, fetcher, target.URL)
	if err != nil {
		c.log().Warn("cascade attempt failed",
			slog.String("attempt", name),
			slog.String("target", target.DisplayName),
			slog.String("error", err.Error()))
		return attempt{name: name, err: err}
	}
	if firstPage != nil && len(pages) > 0 {
		*firstPage = pages[0].HTML
	}

	merger := NewMerger()
	for _, page := range pages {
		for _, strategy := range c.Strategies {
			records, confidence, err := strategy.Extract(page.HTML, page.URL)
			if err != nil {
				// A strategy that cannot parse the page contributes nothing.
				c.log().Debug("strategy failed",
					slog.String("strategy", strategy.Name()),
					slog.String("url", page.URL),
					slog.String("error", err.Error()))
				continue
			}
			merger.Add(records, confidence)
		}
	}

	records := merger.Records()
	if c.Enricher != nil {
		records = c.Enricher.Enrich(ctx, records)
	}

	c.log().Info("cascade attempt finished",
		slog.String("attempt", name),
		slog.String("target", target.DisplayName),
		slog.Int("pages", len(pages)),
		slog.Int("records", len(records)))

	return attempt{name: name, records: records}
}

// runAIAttempt sends the first directory page to the AI backend. When the
// static attempt never got a page, one more static fetch is tried.
func (c *Cascade) runAIAttempt(ctx context.Context, target *facultysnipe.Target, firstPageHTML string) attempt {
	if firstPageHTML == "" {
		html, err := FetchWithRetryDelays(ctx, target.URL, c.StaticFetcher.Fetch, c.log(), c.Paginator.RetryDelays)
		if err != nil {
			return attempt{name: "ai", err: err}
		}
		firstPageHTML = html
	}

	cleaned := cleanForAI(firstPageHTML)

	records, costUSD, err := c.AI.Extract(ctx, cleaned)
	if err != nil {
		c.log().Warn("AI extraction failed",
			slog.String("target", target.DisplayName),
			slog.String("error", err.Error()))
		return attempt{name: "ai", err: err}
	}

	c.log().Info("AI extraction finished",
		slog.String("target", target.DisplayName),
		slog.Int("records", len(records)),
		slog.Float64("cost_usd", costUSD))

	valid := records[:0]
	for _, rec := range records {
		if rec.Valid() {
			valid = append(valid, rec)
		}
	}
	return attempt{name: "ai", records: valid}
}

// pickBest returns the records of the attempt with the most records, ties
// going to the earlier (cheaper) attempt. When every attempt errored, the
// last error is returned.
func pickBest(attempts []attempt) ([]facultysnipe.Record, error) {
	best := -1
	var lastErr error
	allFailed := true

	for i, a := range attempts {
		if a.err != nil {
			lastErr = a.err
			continue
		}
		allFailed = false
		if best == -1 || len(a.records) > len(attempts[best].records) {
			best = i
		}
	}

	if allFailed {
		return nil, lastErr
	}
	return attempts[best].records, nil
}

// cleanForAI strips non-content nodes and truncates the HTML to keep AI
// input (and cost) bounded.
func cleanForAI(html string) string {
	doc, err := gq.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		doc.Find("script, style, nav, header, footer").Remove()
		if cleaned, err := doc.Html(); err == nil {
			html = cleaned
		}
	}
	if len(html) > maxAIInputBytes {
		html = html[:maxAIInputBytes]
	}
	return html
}
