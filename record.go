package facultysnipe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Record represents a normalized personnel entry extracted from a
// directory page.
type Record struct {
	Name              string            `json:"name"`
	Title             string            `json:"title"`
	Email             string            `json:"email"`
	ProfileURL        string            `json:"profileUrl"`
	Department        string            `json:"department"`
	Phone             string            `json:"phone"`
	ResearchInterests string            `json:"researchInterests"`

	// RawData carries provenance (strategy name, source URL, matched
	// container) as an opaque key/value map.
	RawData map[string]string `json:"rawData,omitempty"`
}

// ID returns the record's derived identity: the first 16 hex characters of
// the SHA-256 digest of lower(trim(name)) + "|" + lower(trim(email)) + "|" +
// lower(trim(title)). Two records with identical name, email, and title
// always collide to the same id regardless of other fields.
func (r *Record) ID() string {
	key := strings.ToLower(strings.TrimSpace(r.Name)) + "|" +
		strings.ToLower(strings.TrimSpace(r.Email)) + "|" +
		strings.ToLower(strings.TrimSpace(r.Title))
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:16]
}

// Validate returns an error if the record fails the validity invariant:
// a non-empty name of at least 2 characters after trimming, and at least
// one of email, profile URL, or phone.
func (r *Record) Validate() error {
	if len(strings.TrimSpace(r.Name)) < 2 {
		return Errorf(EINVALID, "record name required")
	}
	if r.Email == "" && r.ProfileURL == "" && r.Phone == "" {
		return Errorf(EINVALID, "record %q has no contact info", r.Name)
	}
	return nil
}

// Valid reports whether the record satisfies the validity invariant.
func (r *Record) Valid() bool {
	return r.Validate() == nil
}

// RecordService provides access to the stored record snapshots for targets.
// Implementations are external collaborators (e.g. sqlite); the core treats
// them as possibly remote services.
type RecordService interface {
	// Snapshot returns the previously stored record set for a target,
	// keyed by record id. A target with no prior records returns an
	// empty map, not an error.
	Snapshot(ctx context.Context, targetID string) (map[string]Record, error)

	// ReplaceRecords replaces the target's stored record set with the
	// given records (full replace semantics).
	ReplaceRecords(ctx context.Context, targetID string, records []Record) error
}
