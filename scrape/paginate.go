package scrape

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/eflotty/facultysnipe"
	"github.com/eflotty/facultysnipe/goquery"
)

// DefaultMaxPages is the hard cap on directory pages followed per target.
const DefaultMaxPages = 10

// Page is one fetched directory page.
type Page struct {
	URL  string
	HTML string
}

// Paginator walks a paginated directory sequentially, following next-page
// links until no more are found, a page repeats, or the page cap is hit.
type Paginator struct {
	MaxPages    int
	Limiter     facultysnipe.DomainLimiter
	RetryDelays []time.Duration
	Logger      *slog.Logger
}

// NewPaginator creates a Paginator with default settings.
func NewPaginator(limiter facultysnipe.DomainLimiter, logger *slog.Logger) *Paginator {
	return &Paginator{
		MaxPages:    DefaultMaxPages,
		Limiter:     limiter,
		RetryDelays: DefaultRetryDelays(),
		Logger:      logger,
	}
}

func (p *Paginator) log() *slog.Logger {
	return logOrDiscard(p.Logger)
}

// Pages fetches the page at startURL and every next page after it, in
// order. Three guards terminate traversal on misbehaving sites: an exact
// visited-URL set (circular next links), a per-page content fingerprint
// (distinct URLs serving identical content), and the page cap.
//
// A fetch failure on the first page is an error; a failure on a later page
// returns the pages gathered so far.
func (p *Paginator) Pages(ctx context.Context, fetcher facultysnipe.Fetcher, startURL string) ([]Page, error) {
	maxPages := p.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	visited := make(map[string]bool)
	fingerprints := make(map[uint64]bool)
	var pages []Page

	pageURL := startURL
	for len(pages) < maxPages {
		if err := ctx.Err(); err != nil {
			return pages, err
		}
		visited[pageURL] = true

		if p.Limiter != nil {
			if err := p.Limiter.Wait(ctx, domainOf(pageURL)); err != nil {
				return pages, err
			}
		}

		html, err := FetchWithRetryDelays(ctx, pageURL, fetcher.Fetch, p.log(), p.RetryDelays)
		if err != nil {
			if len(pages) == 0 {
				return nil, err
			}
			p.log().Warn("pagination fetch failed, keeping pages gathered so far",
				slog.String("url", pageURL),
				slog.Int("pages", len(pages)),
				slog.String("error", err.Error()))
			return pages, nil
		}

		fp := xxhash.Sum64String(html)
		if fingerprints[fp] {
			// Same content under a new URL; the site paginates forever.
			break
		}
		fingerprints[fp] = true
		pages = append(pages, Page{URL: pageURL, HTML: html})

		next, err := goquery.NextPageURL(html, pageURL)
		if err != nil || next == "" || visited[next] {
			break
		}
		pageURL = next
	}

	return pages, nil
}

// domainOf extracts the host for rate limiting; unparseable URLs share
// one bucket.
func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
