// Package bloom provides probabilistic URL deduplication for fetch guards.
// A false positive skips a redundant fetch; callers must only use the
// filter where skipping is safe.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter tracks URLs that have already been fetched. The underlying bitset
// is not safe for concurrent use, so all access goes through a mutex;
// Filter itself is safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Visit records a URL and reports whether it was already present.
// A true result may be a false positive.
func (f *Filter) Visit(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f.TestString(url) {
		return true
	}
	f.f.AddString(url)
	return false
}

// Seen reports whether the URL might have been visited.
func (f *Filter) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of URLs recorded.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
