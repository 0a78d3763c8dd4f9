// Package facultysnipe monitors personnel directory pages for changes.
// It extracts structured records (name, title, contact info) from
// heterogeneous HTML directory pages using a cascade of heuristic
// strategies, diffs each target's records against the previously stored
// snapshot, and reports which records are new, changed, or removed.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/) or their
// function (scrape/).
package facultysnipe
