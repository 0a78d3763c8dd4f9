package scrape

import (
	"context"
	"log/slog"
	"time"

	"github.com/eflotty/facultysnipe"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays for fetch retries:
// 2s, 4s, 8s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}
}

// Retryable reports whether an error is worth retrying. Transient
// failures (unavailable upstreams, unclassified network errors) are;
// permanent ones (bad URLs, auth walls, missing pages) are not.
func Retryable(err error) bool {
	switch facultysnipe.ErrorCode(err) {
	case facultysnipe.EUNAVAILABLE, facultysnipe.EINTERNAL:
		return true
	default:
		return false
	}
}

// FetchWithRetry attempts a fetch with exponential backoff: up to 3
// retries (4 total attempts) with delays of 2s, 4s, 8s. Only transient
// errors are retried.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger) (string, error) {
	return FetchWithRetryDelays(ctx, url, fetch, logger, DefaultRetryDelays())
}

// FetchWithRetryDelays is like FetchWithRetry but allows configurable
// delays. This is useful for testing without waiting for real delays.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (string, error) {
	logger = logOrDiscard(logger)
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if !Retryable(err) || attempt >= maxAttempts-1 {
			break
		}

		logger.Debug("retrying fetch",
			slog.String("url", url),
			slog.Int("attempt", attempt+2),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
