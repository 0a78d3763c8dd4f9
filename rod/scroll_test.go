package rod

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScroller grows its height per a scripted sequence.
type fakeScroller struct {
	heights []int
	calls   int
}

func (f *fakeScroller) ScrollToBottom() error { return nil }

func (f *fakeScroller) ScrollHeight() (int, error) {
	i := f.calls
	if i >= len(f.heights) {
		i = len(f.heights) - 1
	}
	f.calls++
	return f.heights[i], nil
}

func testFetcher(maxScrolls int) *Fetcher {
	return &Fetcher{
		settle:     time.Millisecond,
		maxScrolls: maxScrolls,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestScrollUntilStable(t *testing.T) {
	t.Parallel()

	t.Run("stops after two consecutive unchanged heights", func(t *testing.T) {
		t.Parallel()

		s := &fakeScroller{heights: []int{1000, 2000, 3000, 3000, 3000}}
		f := testFetcher(15)

		err := f.scrollUntilStable(context.Background(), s, "https://university.edu/faculty")

		require.NoError(t, err)
		// Three growth reads plus two stable reads.
		assert.Equal(t, 5, s.calls)
	})

	t.Run("gives up after the iteration cap on ever-growing pages", func(t *testing.T) {
		t.Parallel()

		heights := make([]int, 20)
		for i := range heights {
			heights[i] = (i + 1) * 1000
		}
		s := &fakeScroller{heights: heights}
		f := testFetcher(5)

		err := f.scrollUntilStable(context.Background(), s, "https://university.edu/faculty")

		require.NoError(t, err)
	})

	t.Run("respects context cancellation between scrolls", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s := &fakeScroller{heights: []int{1000}}
		f := testFetcher(15)

		err := f.scrollUntilStable(ctx, s, "https://university.edu/faculty")

		assert.ErrorIs(t, err, context.Canceled)
	})
}
