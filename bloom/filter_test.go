package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eflotty/facultysnipe/bloom"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	t.Run("first visit returns false, repeat visits return true", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(100, 0.01)

		assert.False(t, f.Visit("https://u.edu/people/alin"))
		assert.True(t, f.Visit("https://u.edu/people/alin"))
		assert.True(t, f.Seen("https://u.edu/people/alin"))
	})

	t.Run("unvisited URLs are not seen", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(100, 0.01)
		f.Visit("https://u.edu/people/alin")

		assert.False(t, f.Seen("https://u.edu/people/zpark"))
	})

	t.Run("supports concurrent visitors", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(10000, 0.01)

		var wg sync.WaitGroup
		for w := 0; w < 5; w++ {
			w := w
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < 200; i++ {
					url := fmt.Sprintf("https://u%d.edu/people/%d", w, i)
					assert.False(t, f.Visit(url))
					assert.True(t, f.Seen(url))
				}
			}()
		}
		wg.Wait()

		assert.InDelta(t, 1000, float64(f.EstimatedCount()), 50)
	})

	t.Run("estimates count of recorded URLs", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.01)
		f.Visit("https://u.edu/people/alin")
		f.Visit("https://u.edu/people/zpark")

		assert.InDelta(t, 2, float64(f.EstimatedCount()), 1)
	})
}
