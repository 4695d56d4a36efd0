// Package normalize maps raw scraper records onto the canonical job model.
// Normalization never fails: missing or malformed fields fall back to
// per-field defaults and no record is ever dropped.
package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"

	"github.com/amishk599/jobboard/internal/model"
)

const (
	DefaultTitle    = "No Title"
	DefaultCompany  = "Unknown"
	DefaultLocation = "Remote/Unknown"
	DefaultURL      = "#"

	amazonJobsOrigin = "https://www.amazon.jobs"
)

// Canonical employer names.
const (
	Amazon    = "Amazon"
	Microsoft = "Microsoft"
	CVSHealth = "CVS Health"
)

// employer pairs a lowercase substring with the display name it resolves to.
type employer struct {
	substr string
	name   string
}

var knownEmployers = []employer{
	{substr: "amazon", name: Amazon},
	{substr: "microsoft", name: Microsoft},
	{substr: "cvs", name: CVSHealth},
}

// Normalizer converts raw records into jobs. The zero value uses the wall
// clock and random UUIDs for missing identifiers.
type Normalizer struct {
	Now   func() time.Time
	NewID func() string
}

// Normalize converts a raw record using the default Normalizer.
func Normalize(raw model.RawRecord) model.Job {
	return Normalizer{}.Normalize(raw)
}

// NormalizeAll converts every record, preserving order.
func NormalizeAll(raws []model.RawRecord) []model.Job {
	return Normalizer{}.NormalizeAll(raws)
}

// NormalizeAll converts every record, preserving order.
func (n Normalizer) NormalizeAll(raws []model.RawRecord) []model.Job {
	jobs := make([]model.Job, 0, len(raws))
	for _, raw := range raws {
		jobs = append(jobs, n.Normalize(raw))
	}
	return jobs
}

// Normalize converts a single raw record into a Job.
func (n Normalizer) Normalize(raw model.RawRecord) model.Job {
	company := CanonicalCompany(getString(raw, "company", "company_name"))

	url := getString(raw, "url_next_step")
	if url == "" {
		url = DefaultURL
	}
	if company == Amazon {
		if path := getString(raw, "job_path"); path != "" {
			url = amazonJobsOrigin + path
		}
	}

	id := getString(raw, "id")
	if id == "" {
		id = n.newID()
	}
	displayID := getString(raw, "id_icims")
	if displayID == "" {
		displayID = id
	}

	return model.Job{
		ID:          id,
		DisplayID:   displayID,
		Title:       orDefault(getString(raw, "title"), DefaultTitle),
		Company:     company,
		Location:    orDefault(getString(raw, "location"), DefaultLocation),
		Description: getString(raw, "description_short", "description"),
		URL:         url,
		Date:        n.parseDate(raw),
		Raw:         raw,
	}
}

// CanonicalCompany resolves a raw company name to its display name. Names
// containing a known employer substring (case-insensitive) collapse to that
// employer; anything else is kept as is, with "Unknown" for empty input.
func CanonicalCompany(raw string) string {
	company := orDefault(raw, DefaultCompany)
	for _, e := range knownEmployers {
		if strings.Contains(strings.ToLower(company), e.substr) {
			company = e.name
		}
	}
	return company
}

func (n Normalizer) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}

func (n Normalizer) newID() string {
	if n.NewID != nil {
		return n.NewID()
	}
	return uuid.NewString()
}

// parseDate reads posted_date, falling back to postedTs. Strings go through
// a permissive parser; numbers are unix timestamps in seconds or, when large
// enough, milliseconds.
func (n Normalizer) parseDate(raw model.RawRecord) time.Time {
	v, ok := firstPresent(raw, "posted_date", "postedTs")
	if !ok {
		return n.now()
	}
	if t, ok := ParseDate(v); ok {
		return t
	}
	return n.now()
}

// ParseDate interprets a raw date value. It reports false when the value
// cannot be read as a point in time.
func ParseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case string:
		t, err := dateparse.ParseLocal(strings.TrimSpace(d))
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	case float64:
		return fromUnix(d)
	case int64:
		return fromUnix(float64(d))
	case int:
		return fromUnix(float64(d))
	case time.Time:
		return d, !d.IsZero()
	}
	return time.Time{}, false
}

func fromUnix(v float64) (time.Time, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return time.Time{}, false
	}
	if math.Abs(v) >= 1e12 {
		return time.UnixMilli(int64(v)), true
	}
	return time.Unix(int64(v), 0), true
}

// firstPresent returns the first value under keys that is not empty.
func firstPresent(raw model.RawRecord, keys ...string) (any, bool) {
	for _, key := range keys {
		val, ok := raw[key]
		if !ok || val == nil {
			continue
		}
		switch v := val.(type) {
		case string:
			if v == "" {
				continue
			}
		case float64:
			if v == 0 {
				continue
			}
		case bool:
			if !v {
				continue
			}
		}
		return val, true
	}
	return nil, false
}

// getString extracts the first non-empty string-like value under keys.
func getString(raw model.RawRecord, keys ...string) string {
	for _, key := range keys {
		val, ok := raw[key]
		if !ok {
			continue
		}
		switch v := val.(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			if v != 0 {
				return strconv.FormatFloat(v, 'f', -1, 64)
			}
		case int:
			if v != 0 {
				return strconv.Itoa(v)
			}
		case int64:
			if v != 0 {
				return strconv.FormatInt(v, 10)
			}
		}
	}
	return ""
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
