package board

import (
	"errors"
	"testing"
	"time"

	"github.com/amishk599/jobboard/internal/model"
	"github.com/amishk599/jobboard/internal/normalize"
)

func newTestBoard(t *testing.T, raws []model.RawRecord) *Board {
	t.Helper()
	now := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	b := New(WithNormalizer(normalize.Normalizer{Now: func() time.Time { return now }}))
	if err := b.Load(raws); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return b
}

func sampleRecords() []model.RawRecord {
	return []model.RawRecord{
		{"id": "1", "title": "Data Engineer", "company": "Amazon.com Services LLC", "location": "Seattle, WA", "posted_date": "2026-01-03T00:00:00Z"},
		{"id": "2", "title": "Data Engineer II", "company": "Microsoft", "location": "Redmond, WA", "posted_date": "2026-01-04T00:00:00Z"},
		{"id": "3", "title": "Analytics Engineer", "company": "CVS Health", "location": "Remote", "posted_date": "2026-01-02T00:00:00Z"},
	}
}

func TestLoad_InitialState(t *testing.T) {
	b := newTestBoard(t, sampleRecords())

	if b.State() != Ready {
		t.Fatalf("State = %v, want ready", b.State())
	}
	if got := b.Companies(); len(got) != 3 || got[0] != "Amazon" || got[1] != "CVS Health" || got[2] != "Microsoft" {
		t.Errorf("Companies = %v", got)
	}
	for _, c := range b.Companies() {
		if !b.IsSelected(c) {
			t.Errorf("company %q not selected initially", c)
		}
	}
	if b.Search() != "" {
		t.Errorf("Search = %q, want empty", b.Search())
	}
	if b.Sort() != model.SortNewest {
		t.Errorf("Sort = %q, want newest", b.Sort())
	}
	visible := b.Visible()
	if len(visible) != 3 || visible[0].ID != "2" || visible[2].ID != "3" {
		t.Errorf("Visible order unexpected: %+v", visible)
	}
}

func TestLoad_Empty(t *testing.T) {
	b := New()
	err := b.Load(nil)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("Load(nil) = %v, want ErrNoData", err)
	}
	if b.State() != LoadFailed {
		t.Errorf("State = %v, want load_failed", b.State())
	}
	if len(b.Visible()) != 0 {
		t.Error("expected no visible jobs after failed load")
	}

	// terminal: a second load does not recover
	if err := b.Load(sampleRecords()); !errors.Is(err, ErrAlreadyLoaded) {
		t.Errorf("second Load = %v, want ErrAlreadyLoaded", err)
	}
	if b.State() != LoadFailed {
		t.Errorf("State = %v, want load_failed", b.State())
	}
}

func TestSetSearch_Lowercases(t *testing.T) {
	b := newTestBoard(t, sampleRecords())
	b.SetSearch("REDMOND")
	if b.Search() != "redmond" {
		t.Errorf("Search = %q, want redmond", b.Search())
	}
	visible := b.Visible()
	if len(visible) != 1 || visible[0].ID != "2" {
		t.Errorf("Visible = %+v, want only job 2", visible)
	}
}

func TestToggleCompany(t *testing.T) {
	b := newTestBoard(t, sampleRecords())

	b.ToggleCompany("Amazon")
	if b.IsSelected("Amazon") {
		t.Error("Amazon still selected after toggle")
	}
	if len(b.Visible()) != 2 {
		t.Errorf("len(Visible) = %d, want 2", len(b.Visible()))
	}

	b.ToggleCompany("Amazon")
	if !b.IsSelected("Amazon") {
		t.Error("Amazon not reselected after second toggle")
	}
}

func TestToggleCompany_LastSelectedIsNoop(t *testing.T) {
	b := newTestBoard(t, sampleRecords())
	b.ToggleCompany("Amazon")
	b.ToggleCompany("Microsoft")

	b.ToggleCompany("CVS Health")
	if !b.IsSelected("CVS Health") {
		t.Fatal("last selected company was deselected")
	}
	if n := len(b.Filters().Companies); n != 1 {
		t.Errorf("selected = %d, want 1", n)
	}
	if len(b.Visible()) != 1 {
		t.Errorf("len(Visible) = %d, want 1", len(b.Visible()))
	}
}

func TestSetSort(t *testing.T) {
	b := newTestBoard(t, sampleRecords())
	if err := b.SetSort(model.SortOldest); err != nil {
		t.Fatalf("SetSort: %v", err)
	}
	visible := b.Visible()
	if visible[0].ID != "3" || visible[2].ID != "2" {
		t.Errorf("oldest order = %s %s %s", visible[0].ID, visible[1].ID, visible[2].ID)
	}

	if err := b.SetSort("random"); !errors.Is(err, ErrUnknownSort) {
		t.Errorf("SetSort(random) = %v, want ErrUnknownSort", err)
	}
	if b.Sort() != model.SortOldest {
		t.Errorf("Sort = %q after rejected value, want oldest", b.Sort())
	}
}

func TestSubscribe_Regions(t *testing.T) {
	b := New()
	var got []Region
	b.Subscribe(func(r Region) { got = append(got, r) })

	if err := b.Load(sampleRecords()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	b.SetSearch("data")
	b.ToggleCompany("Amazon")
	_ = b.SetSort(model.SortOldest)

	want := []Region{
		RegionFilters | RegionJobs,
		RegionJobs,
		RegionFilters | RegionJobs,
		RegionJobs,
	}
	if len(got) != len(want) {
		t.Fatalf("notifications = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification %d = %v, want %v", i, got[i], want[i])
		}
	}
	if !got[2].Has(RegionFilters) || got[1].Has(RegionFilters) {
		t.Error("Region.Has reports wrong membership")
	}
}

func TestFilters_ReturnsCopy(t *testing.T) {
	b := newTestBoard(t, sampleRecords())
	f := b.Filters()
	delete(f.Companies, "Amazon")
	if !b.IsSelected("Amazon") {
		t.Error("mutating Filters() copy changed board state")
	}
}
