// Package http provides an HTTP-based implementation of
// facultysnipe.Fetcher for directory pages that don't require JavaScript
// rendering.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/eflotty/facultysnipe"
)

// DefaultFetchTimeout is the default timeout for HTTP requests. University
// directory pages can be slow, so this is generous.
const DefaultFetchTimeout = 180 * time.Second

// userAgent mimics a desktop browser; some university sites reject
// unidentified clients.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Ensure Fetcher implements facultysnipe.Fetcher at compile time.
var _ facultysnipe.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript and is suitable
// for static pages only.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL. Response status
// codes are mapped to application error codes so callers can distinguish
// transient failures (worth retrying) from permanent ones.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", facultysnipe.Errorf(facultysnipe.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", facultysnipe.Errorf(facultysnipe.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode, url); err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", facultysnipe.Errorf(facultysnipe.EUNAVAILABLE, "read body from %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func statusError(code int, url string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusTooManyRequests || code >= 500:
		return facultysnipe.Errorf(facultysnipe.EUNAVAILABLE, "HTTP %d for %s", code, url)
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return facultysnipe.Errorf(facultysnipe.EUNAUTHORIZED, "HTTP %d for %s", code, url)
	case code == http.StatusNotFound:
		return facultysnipe.Errorf(facultysnipe.ENOTFOUND, "HTTP %d for %s", code, url)
	default:
		return facultysnipe.Errorf(facultysnipe.EINVALID, "HTTP %d for %s", code, url)
	}
}
