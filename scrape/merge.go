// Package scrape provides the monitoring engine: record merging,
// pagination, the extraction cascade, profile enrichment, change
// detection, and run orchestration across targets.
package scrape

import (
	"strings"

	"github.com/eflotty/facultysnipe"
)

// Merger accumulates candidate records proposed by strategies across pages
// and reconciles duplicates by record identity. Merging is idempotent:
// adding the same records again never changes the result.
type Merger struct {
	records map[string]*facultysnipe.Record
	order   []string
	conf    map[string]int
}

// NewMerger creates an empty Merger.
func NewMerger() *Merger {
	return &Merger{
		records: make(map[string]*facultysnipe.Record),
		conf:    make(map[string]int),
	}
}

// Add folds a strategy's candidate records into the accumulated set.
// Invalid records are dropped; duplicates (same identity) are merged
// field by field.
func (m *Merger) Add(records []facultysnipe.Record, confidence int) {
	for _, rec := range records {
		if !rec.Valid() {
			continue
		}
		id := rec.ID()

		existing, ok := m.records[id]
		if !ok {
			clone := rec
			m.records[id] = &clone
			m.order = append(m.order, id)
			m.conf[id] = confidence
			continue
		}

		mergeInto(existing, &rec)
		if confidence > m.conf[id] {
			m.conf[id] = confidence
		}
	}
}

// Records returns the merged records in first-seen order.
func (m *Merger) Records() []facultysnipe.Record {
	out := make([]facultysnipe.Record, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.records[id])
	}
	return out
}

// Confidence returns the best confidence observed for a record id, or 0.
func (m *Merger) Confidence(id string) int {
	return m.conf[id]
}

// Len returns the number of distinct records accumulated so far.
func (m *Merger) Len() int {
	return len(m.records)
}

// mergeInto folds src into dst. Contact fields keep the first non-empty
// value seen; descriptive fields prefer the longer string, keeping the
// existing value on ties; RawData is a key union where later values win.
func mergeInto(dst, src *facultysnipe.Record) {
	if dst.Email == "" {
		dst.Email = src.Email
	}
	if dst.Phone == "" {
		dst.Phone = src.Phone
	}
	if dst.ProfileURL == "" {
		dst.ProfileURL = src.ProfileURL
	}

	dst.Title = longer(dst.Title, src.Title)
	dst.Department = longer(dst.Department, src.Department)
	dst.ResearchInterests = longer(dst.ResearchInterests, src.ResearchInterests)

	if len(src.RawData) > 0 {
		if dst.RawData == nil {
			dst.RawData = make(map[string]string, len(src.RawData))
		}
		for k, v := range src.RawData {
			dst.RawData[k] = v
		}
	}
}

// longer picks the longer of two strings, keeping the existing value on
// ties. Longer usually means more complete for titles and department
// names scraped from terse markup.
func longer(existing, candidate string) string {
	if len(strings.TrimSpace(candidate)) > len(strings.TrimSpace(existing)) {
		return candidate
	}
	return existing
}
