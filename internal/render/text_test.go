package render

import (
	"strings"
	"testing"
	"time"
)

func TestTruncate(t *testing.T) {
	desc := strings.Repeat("a", 150)
	got := TruncateDescription(desc)
	if len(got) != 142 {
		t.Errorf("len = %d, want 142", len(got))
	}
	if !strings.HasSuffix(got, "...") || strings.TrimSuffix(got, "...") != strings.Repeat("a", 139) {
		t.Errorf("TruncateDescription = %q", got)
	}

	exact := strings.Repeat("b", 140)
	if got := TruncateDescription(exact); got != exact {
		t.Errorf("140 chars should not be truncated, got %q", got)
	}
	if got := Truncate("", 140); got != "" {
		t.Errorf("Truncate(\"\") = %q", got)
	}
}

func TestFormatLocation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Seattle, WA", "Seattle, WA"},
		{"Seattle, WA, United States of America", "Seattle..."},
		{"A location name without any commas at all", "A location name without any commas at all..."},
		{strings.Repeat("x", 30), strings.Repeat("x", 30)},
	}
	for _, tt := range tests {
		if got := FormatLocation(tt.in); got != tt.want {
			t.Errorf("FormatLocation(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"minutes", now.Add(-30 * time.Minute), "Just now"},
		{"exactly one hour", now.Add(-time.Hour), "Just now"},
		{"hours", now.Add(-5 * time.Hour), "5 hours ago"},
		{"days", now.Add(-50 * time.Hour), "2 days ago"},
		{"months", now.AddDate(0, 0, -65), "2 months ago"},
		{"years", now.AddDate(-3, 0, -1), "3 years ago"},
		{"future", now.Add(48 * time.Hour), "Just now"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeAgo(tt.date, now); got != tt.want {
				t.Errorf("TimeAgo = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompanyColor(t *testing.T) {
	tests := map[string]string{
		"Amazon":         "#FF9900",
		"Microsoft":      "#00A4EF",
		"CVS Health":     "#CC0000",
		"JPMorgan Chase": "#3b82f6",
	}
	for company, want := range tests {
		if got := CompanyColor(company); got != want {
			t.Errorf("CompanyColor(%q) = %q, want %q", company, got, want)
		}
	}
}

func TestHighlightHTML(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		search string
		want   string
	}{
		{"empty search", "Data Engineer", "", "Data Engineer"},
		{"single", "Data Engineer", "data", "<mark>Data</mark> Engineer"},
		{"all occurrences", "Data data DATA", "data", "<mark>Data</mark> <mark>data</mark> <mark>DATA</mark>"},
		{"literal regex chars", "C++ (Senior)", "c++", "<mark>C++</mark> (Senior)"},
		{"escapes html", "<b>Data</b>", "data", "&lt;b&gt;<mark>Data</mark>&lt;/b&gt;"},
		{"no match", "Data Engineer", "sre", "Data Engineer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(HighlightHTML(tt.text, tt.search)); got != tt.want {
				t.Errorf("HighlightHTML = %q, want %q", got, tt.want)
			}
		})
	}
}
