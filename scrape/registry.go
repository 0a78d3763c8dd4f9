package scrape

import (
	"sync"

	"github.com/eflotty/facultysnipe"
)

// Registry maps scraper override names to implementations. Targets name an
// override in their configuration; empty or unknown names resolve to the
// default scraper.
type Registry struct {
	mu       sync.RWMutex
	scrapers map[string]facultysnipe.Scraper
	fallback facultysnipe.Scraper
}

// NewRegistry creates a Registry with the given default scraper.
func NewRegistry(fallback facultysnipe.Scraper) *Registry {
	return &Registry{
		scrapers: make(map[string]facultysnipe.Scraper),
		fallback: fallback,
	}
}

// Register adds a named scraper. Re-registering a name replaces it.
func (r *Registry) Register(name string, scraper facultysnipe.Scraper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scrapers[name] = scraper
}

// Resolve returns the scraper for an override name. The empty string and
// unknown names resolve to the default.
func (r *Registry) Resolve(name string) facultysnipe.Scraper {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if scraper, ok := r.scrapers[name]; ok {
		return scraper
	}
	return r.fallback
}
