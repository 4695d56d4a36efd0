package model

import (
	"time"
)

// RawRecord is an untyped job posting as supplied by the data file.
// Shapes differ per scraper; every field may be missing.
type RawRecord map[string]any

// Canonical representation of a job posting, built once at load time.
type Job struct {
	ID          string    // raw id, or a random fallback token
	DisplayID   string    // short human-facing id (amazon id_icims)
	Title       string    // job title
	Company     string    // canonical company display name
	Location    string    // location string
	Description string    // short description, may be empty
	URL         string    // outbound apply link, "#" when unknown
	Date        time.Time // posted date, load time when unknown
	Raw         RawRecord // source record as loaded
}

// SortOrder controls how the visible jobs are ordered by date.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// Valid reports whether o is one of the known sort orders.
func (o SortOrder) Valid() bool {
	return o == SortNewest || o == SortOldest
}

// FilterState is the user's current search text and company selection.
type FilterState struct {
	Search    string          // lowercased substring
	Companies map[string]bool // selected company display names
}

// Has reports whether company is currently selected.
func (f FilterState) Has(company string) bool {
	return f.Companies[company]
}

// Clone returns a copy whose company set can be mutated independently.
func (f FilterState) Clone() FilterState {
	companies := make(map[string]bool, len(f.Companies))
	for c, ok := range f.Companies {
		if ok {
			companies[c] = true
		}
	}
	return FilterState{Search: f.Search, Companies: companies}
}

// JobFilter decides whether a job matches the user's criteria.
type JobFilter interface {
	Match(job Job) bool
}

// Notifier reports newly ingested jobs.
type Notifier interface {
	Notify(jobs []Job) error
}
