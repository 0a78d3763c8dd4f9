// Package rod provides a browser-based implementation of
// facultysnipe.Fetcher for directory pages that render their content with
// JavaScript or load entries lazily on scroll.
package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"github.com/eflotty/facultysnipe"
)

// DefaultSettleDelay is how long the fetcher waits after each scroll for
// lazy-loaded content to arrive.
const DefaultSettleDelay = 2 * time.Second

// DefaultMaxScrolls caps the scroll loop on pages whose height never
// stabilizes (infinite feeds, animated layouts).
const DefaultMaxScrolls = 15

// stableRounds is how many consecutive unchanged heights end the loop.
const stableRounds = 2

// Ensure Fetcher implements facultysnipe.Fetcher at compile time.
var _ facultysnipe.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation. After
// navigation it scrolls to the bottom repeatedly until the page height
// stops growing, so lazily loaded directory entries are present in the
// returned HTML. Fetcher is safe for concurrent use.
type Fetcher struct {
	manager    *BrowserManager
	settle     time.Duration
	maxScrolls int
	logger     *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithSettleDelay sets the wait after each scroll.
// Defaults to DefaultSettleDelay if not specified.
func WithSettleDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// WithMaxScrolls sets the scroll iteration cap.
// Defaults to DefaultMaxScrolls if not specified.
func WithMaxScrolls(n int) Option {
	return func(f *Fetcher) {
		f.maxScrolls = n
	}
}

// NewFetcher creates a new browser-based Fetcher. A nil logger discards
// log output. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(logger *slog.Logger, opts ...Option) (*Fetcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}

	f := &Fetcher{
		manager:    manager,
		settle:     DefaultSettleDelay,
		maxScrolls: DefaultMaxScrolls,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// Fetch navigates to the URL, scrolls until the page height stabilizes,
// and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", facultysnipe.Errorf(facultysnipe.EUNAVAILABLE, "open page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", facultysnipe.Errorf(facultysnipe.EUNAVAILABLE, "navigate to %s: %v", url, err)
	}

	if err := page.WaitLoad(); err != nil {
		return "", facultysnipe.Errorf(facultysnipe.EUNAVAILABLE, "wait for %s: %v", url, err)
	}

	if err := f.scrollUntilStable(ctx, pageScroller{page}, url); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", facultysnipe.Errorf(facultysnipe.EUNAVAILABLE, "read HTML from %s: %v", url, err)
	}

	f.manager.PageDone()

	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}

// scroller abstracts the two page operations the scroll loop needs, so the
// convergence logic can be tested without a browser.
type scroller interface {
	ScrollToBottom() error
	ScrollHeight() (int, error)
}

// scrollUntilStable scrolls to the bottom until the page height is
// unchanged for stableRounds consecutive iterations. If the height never
// stabilizes within the iteration cap, the loop logs a warning and
// proceeds with whatever has loaded.
func (f *Fetcher) scrollUntilStable(ctx context.Context, s scroller, url string) error {
	lastHeight := -1
	stable := 0

	for i := 0; i < f.maxScrolls; i++ {
		if err := s.ScrollToBottom(); err != nil {
			return facultysnipe.Errorf(facultysnipe.EUNAVAILABLE, "scroll %s: %v", url, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.settle):
		}

		height, err := s.ScrollHeight()
		if err != nil {
			return facultysnipe.Errorf(facultysnipe.EUNAVAILABLE, "measure %s: %v", url, err)
		}

		if height == lastHeight {
			stable++
			if stable >= stableRounds {
				return nil
			}
		} else {
			stable = 0
			lastHeight = height
		}
	}

	f.logger.Warn("page height never stabilized, proceeding with loaded content",
		slog.String("url", url),
		slog.Int("scrolls", f.maxScrolls))
	return nil
}
