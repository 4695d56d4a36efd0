package filter

import (
	"slices"
	"sort"
	"strings"

	"github.com/amishk599/jobboard/internal/model"
)

// SearchFilter matches jobs whose title, company or location contains the
// search text and whose company is selected. Matching is case-insensitive.
// An empty search string passes every job.
type SearchFilter struct {
	search    string
	companies map[string]bool
}

var _ model.JobFilter = (*SearchFilter)(nil)

// NewSearchFilter returns a filter for the given state. The search text is
// lowercased here, so callers may pass it as typed.
func NewSearchFilter(state model.FilterState) *SearchFilter {
	return &SearchFilter{
		search:    strings.ToLower(state.Search),
		companies: state.Companies,
	}
}

// Match returns true if the job passes both the search and the company
// predicate.
func (f *SearchFilter) Match(job model.Job) bool {
	if !f.companies[job.Company] {
		return false
	}
	if f.search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(job.Title), f.search) ||
		strings.Contains(strings.ToLower(job.Company), f.search) ||
		strings.Contains(strings.ToLower(job.Location), f.search)
}

// Derive returns the jobs passing filters, ordered by date per order. The
// input slice is left untouched and equal dates keep their input order.
func Derive(jobs []model.Job, filters model.FilterState, order model.SortOrder) []model.Job {
	f := NewSearchFilter(filters)

	out := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		if f.Match(j) {
			out = append(out, j)
		}
	}

	SortByDate(out, order)
	return out
}

// SortByDate stably sorts jobs in place: newest first for SortNewest,
// oldest first otherwise.
func SortByDate(jobs []model.Job, order model.SortOrder) {
	if order == model.SortNewest {
		sort.SliceStable(jobs, func(i, j int) bool {
			return jobs[i].Date.After(jobs[j].Date)
		})
		return
	}
	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].Date.Before(jobs[j].Date)
	})
}

// Companies returns the distinct company names across jobs, sorted.
func Companies(jobs []model.Job) []string {
	seen := make(map[string]bool)
	var out []string
	for _, j := range jobs {
		if !seen[j.Company] {
			seen[j.Company] = true
			out = append(out, j.Company)
		}
	}
	slices.Sort(out)
	return out
}
