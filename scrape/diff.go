package scrape

import (
	"sort"
	"strings"

	"github.com/eflotty/facultysnipe"
)

// Changes is the outcome of comparing a freshly scraped record set against
// the stored snapshot for a target.
type Changes struct {
	// New holds records whose identity is absent from the snapshot.
	New []facultysnipe.Record

	// Changed holds records present in both sets whose tracked fields
	// differ from the snapshot.
	Changed []facultysnipe.Record

	// RemovedIDs holds identities present in the snapshot but absent from
	// the current set, sorted for determinism.
	RemovedIDs []string
}

// Empty reports whether the comparison found nothing to report.
func (c Changes) Empty() bool {
	return len(c.New) == 0 && len(c.Changed) == 0 && len(c.RemovedIDs) == 0
}

// DetectChanges compares current records against the snapshot keyed by
// record id. It is a pure function of its inputs.
func DetectChanges(current []facultysnipe.Record, snapshot map[string]facultysnipe.Record) Changes {
	var changes Changes
	currentIDs := make(map[string]bool, len(current))

	for _, rec := range current {
		id := rec.ID()
		currentIDs[id] = true

		old, ok := snapshot[id]
		if !ok {
			changes.New = append(changes.New, rec)
			continue
		}
		if recordChanged(&old, &rec) {
			changes.Changed = append(changes.Changed, rec)
		}
	}

	for id := range snapshot {
		if !currentIDs[id] {
			changes.RemovedIDs = append(changes.RemovedIDs, id)
		}
	}
	sort.Strings(changes.RemovedIDs)

	return changes
}

// recordChanged compares the tracked fields after trimming. Fields outside
// this set (phone, research interests, raw data) do not count as changes.
func recordChanged(old, new *facultysnipe.Record) bool {
	return trimmed(old.Name) != trimmed(new.Name) ||
		trimmed(old.Title) != trimmed(new.Title) ||
		trimmed(old.Email) != trimmed(new.Email) ||
		trimmed(old.ProfileURL) != trimmed(new.ProfileURL) ||
		trimmed(old.Department) != trimmed(new.Department)
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
