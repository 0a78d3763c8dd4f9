package scrape_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eflotty/facultysnipe"
	"github.com/eflotty/facultysnipe/scrape"
)

func shortDelays() []time.Duration {
	return []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}
}

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("returns immediately on success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "<html></html>", nil
		}

		html, err := scrape.FetchWithRetryDelays(context.Background(), "https://u.edu", fetch, nil, shortDelays())

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient errors up to three times", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, url string) (string, error) {
			calls++
			return "", facultysnipe.Errorf(facultysnipe.EUNAVAILABLE, "HTTP 503 for %s", url)
		}

		_, err := scrape.FetchWithRetryDelays(context.Background(), "https://u.edu", fetch, nil, shortDelays())

		require.Error(t, err)
		assert.Equal(t, 4, calls)
	})

	t.Run("recovers when a retry succeeds", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, url string) (string, error) {
			calls++
			if calls < 3 {
				return "", facultysnipe.Errorf(facultysnipe.EUNAVAILABLE, "HTTP 503 for %s", url)
			}
			return "ok", nil
		}

		html, err := scrape.FetchWithRetryDelays(context.Background(), "https://u.edu", fetch, nil, shortDelays())

		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("does not retry permanent errors", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, url string) (string, error) {
			calls++
			return "", facultysnipe.Errorf(facultysnipe.EUNAUTHORIZED, "HTTP 403 for %s", url)
		}

		_, err := scrape.FetchWithRetryDelays(context.Background(), "https://u.edu", fetch, nil, shortDelays())

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("aborts on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(_ context.Context, url string) (string, error) {
			cancel()
			return "", facultysnipe.Errorf(facultysnipe.EUNAVAILABLE, "HTTP 503 for %s", url)
		}

		_, err := scrape.FetchWithRetryDelays(ctx, "https://u.edu", fetch, nil, []time.Duration{time.Minute})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRetryable(t *testing.T) {
	t.Parallel()

	assert.True(t, scrape.Retryable(facultysnipe.Errorf(facultysnipe.EUNAVAILABLE, "down")))
	assert.True(t, scrape.Retryable(assert.AnError), "unclassified errors are treated as transient")
	assert.False(t, scrape.Retryable(facultysnipe.Errorf(facultysnipe.EUNAUTHORIZED, "auth")))
	assert.False(t, scrape.Retryable(facultysnipe.Errorf(facultysnipe.ENOTFOUND, "gone")))
	assert.False(t, scrape.Retryable(facultysnipe.Errorf(facultysnipe.EINVALID, "bad")))
}
