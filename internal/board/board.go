// Package board holds the job board state: the loaded jobs, the current
// filter selection and the sort order. Mutations go through Board's methods,
// which notify subscribers with the regions that need re-rendering.
package board

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/amishk599/jobboard/internal/filter"
	"github.com/amishk599/jobboard/internal/model"
	"github.com/amishk599/jobboard/internal/normalize"
)

var (
	// ErrNoData is returned by Load when the data source holds no records.
	ErrNoData = errors.New("no job data loaded")
	// ErrAlreadyLoaded is returned by Load once the board left Uninitialized.
	ErrAlreadyLoaded = errors.New("board already loaded")
	// ErrUnknownSort is returned by SetSort for values other than newest/oldest.
	ErrUnknownSort = errors.New("unknown sort order")
)

// State is the page lifecycle.
type State int

const (
	Uninitialized State = iota
	Loading
	Ready
	LoadFailed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case LoadFailed:
		return "load_failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Region is a bit set of view regions affected by a mutation.
type Region uint8

const (
	RegionFilters Region = 1 << iota
	RegionJobs
)

// Has reports whether r includes other.
func (r Region) Has(other Region) bool {
	return r&other != 0
}

// Board is the single owner of job board state. It is not safe for
// concurrent use; callers drive it from one event loop.
type Board struct {
	state     State
	jobs      []model.Job
	companies []string
	filters   model.FilterState
	sort      model.SortOrder

	normalizer  normalize.Normalizer
	subscribers []func(Region)
	logger      *slog.Logger
}

// Option configures a Board.
type Option func(*Board)

// WithNormalizer overrides the normalizer used by Load.
func WithNormalizer(n normalize.Normalizer) Option {
	return func(b *Board) { b.normalizer = n }
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Board) { b.logger = logger }
}

// New returns an Uninitialized board.
func New(opts ...Option) *Board {
	b := &Board{
		filters: model.FilterState{Companies: make(map[string]bool)},
		sort:    model.SortNewest,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load normalizes raws and moves the board to Ready, selecting every
// company. An empty input moves it to LoadFailed, which is terminal.
func (b *Board) Load(raws []model.RawRecord) error {
	if b.state != Uninitialized {
		return ErrAlreadyLoaded
	}
	b.state = Loading

	if len(raws) == 0 {
		b.state = LoadFailed
		b.logger.Warn("no records in data source")
		return ErrNoData
	}

	b.jobs = b.normalizer.NormalizeAll(raws)
	b.companies = filter.Companies(b.jobs)
	for _, c := range b.companies {
		b.filters.Companies[c] = true
	}
	b.state = Ready

	b.logger.Info("jobs loaded", "jobs", len(b.jobs), "companies", len(b.companies))
	b.notify(RegionFilters | RegionJobs)
	return nil
}

// Subscribe registers fn to be called after every mutation.
func (b *Board) Subscribe(fn func(Region)) {
	b.subscribers = append(b.subscribers, fn)
}

// SetSearch stores the lowercased search text.
func (b *Board) SetSearch(text string) {
	b.filters.Search = strings.ToLower(text)
	b.notify(RegionJobs)
}

// ToggleCompany flips company's selection. Deselecting the last selected
// company is refused, so the selection never becomes empty.
func (b *Board) ToggleCompany(name string) {
	if b.filters.Companies[name] {
		if b.selectedCount() > 1 {
			delete(b.filters.Companies, name)
		} else {
			b.logger.Debug("refusing to deselect last company", "company", name)
		}
	} else {
		b.filters.Companies[name] = true
	}
	b.notify(RegionFilters | RegionJobs)
}

// SetSort replaces the sort order.
func (b *Board) SetSort(order model.SortOrder) error {
	if !order.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSort, order)
	}
	b.sort = order
	b.notify(RegionJobs)
	return nil
}

// State returns the lifecycle state.
func (b *Board) State() State { return b.state }

// Jobs returns all loaded jobs in load order.
func (b *Board) Jobs() []model.Job { return b.jobs }

// Companies returns the distinct company names, sorted.
func (b *Board) Companies() []string { return b.companies }

// Sort returns the current sort order.
func (b *Board) Sort() model.SortOrder { return b.sort }

// Search returns the current lowercased search text.
func (b *Board) Search() string { return b.filters.Search }

// IsSelected reports whether company is currently selected.
func (b *Board) IsSelected(company string) bool { return b.filters.Has(company) }

// Filters returns a copy of the filter state.
func (b *Board) Filters() model.FilterState { return b.filters.Clone() }

// Visible derives the jobs currently passing the filters, in sort order.
func (b *Board) Visible() []model.Job {
	return filter.Derive(b.jobs, b.filters, b.sort)
}

func (b *Board) selectedCount() int {
	n := 0
	for _, ok := range b.filters.Companies {
		if ok {
			n++
		}
	}
	return n
}

func (b *Board) notify(r Region) {
	for _, fn := range b.subscribers {
		fn(r)
	}
}
