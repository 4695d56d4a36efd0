package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/amishk599/jobboard/internal/model"
)

// Messages shown by the load-failure and empty views.
const (
	LoadErrorTitle = "Could not load job data."
	LoadErrorHint  = "Please ensure jobs.js is present in the folder."
	NoResults      = "No jobs found matching your criteria."
)

// Fragment is rendered markup for the three page regions. A failed
// fragment carries only the job region, which holds the error view.
type Fragment struct {
	Filters template.HTML
	Count   string
	Jobs    template.HTML
	Failed  bool
}

// String joins the regions into a single markup document fragment.
func (f Fragment) String() string {
	var b bytes.Buffer
	if !f.Failed {
		fmt.Fprintf(&b, "<div id=\"filter-container\">%s</div>\n", f.Filters)
		fmt.Fprintf(&b, "<div id=\"job-count\">%s</div>\n", template.HTMLEscapeString(f.Count))
	}
	fmt.Fprintf(&b, "<div id=\"job-container\">%s</div>\n", f.Jobs)
	return b.String()
}

// CountLabel is the text of the count region.
func CountLabel(n int) string {
	return strconv.Itoa(n) + " Jobs Found"
}

var filtersTmpl = template.Must(template.New("filters").Parse(`<div class="filter-group">
<span class="filter-label">Company:</span>
{{- range .Pills}}
<button class="filter-pill{{if .Active}} active{{end}}" data-company="{{.Name}}">{{.Name}}</button>
{{- end}}
</div>
<div class="filter-group right">
<select id="sort-select">
<option value="newest"{{if eq .Sort "newest"}} selected{{end}}>Newest First</option>
<option value="oldest"{{if eq .Sort "oldest"}} selected{{end}}>Oldest First</option>
</select>
</div>`))

var jobsTmpl = template.Must(template.New("jobs").Parse(`
{{- range .}}
<div class="job-card" data-job-id="{{.ID}}" style="border-left: 4px solid {{.Color}}">
<div class="job-header">
<h3>{{.Title}}</h3>
<span class="company-badge" style="background: {{.Tint}}; color: {{.Color}}">{{.Company}}</span>
</div>
<div class="job-meta">
<span class="job-location" title="{{.Location}}">{{.ShortLocation}}</span>
<span class="job-date" title="{{.DateTitle}}">{{.Ago}}</span>
<span class="job-id-tag">{{.DisplayID}}</span>
</div>
<p class="job-desc">{{.Description}}</p>
<div class="job-actions">
<a href="{{.URL}}" target="_blank" rel="noopener" class="apply-btn">Apply Now</a>
</div>
</div>
{{- end}}`))

var noResultsTmpl = template.Must(template.New("empty").Parse(
	`<div class="no-results">{{.}}</div>`))

var errorTmpl = template.Must(template.New("error").Parse(`<div class="load-error">
<h3>{{.Title}}</h3>
<p>{{.Hint}}</p>
</div>`))

type pillView struct {
	Name   string
	Active bool
}

type cardView struct {
	ID            string
	Title         template.HTML
	Company       string
	Color         template.CSS
	Tint          template.CSS
	Location      string
	ShortLocation string
	DateTitle     string
	Ago           string
	DisplayID     string
	Description   string
	URL           string
}

// HTML renders board state as HTML fragments. Now supplies the reference
// time for relative dates and defaults to the wall clock.
type HTML struct {
	Now func() time.Time
}

// Render produces the filter panel, count and job list for jobs, which
// must already be filtered and sorted.
func (h HTML) Render(jobs []model.Job, filters model.FilterState, companies []string, order model.SortOrder) (Fragment, error) {
	var frag Fragment

	pills := make([]pillView, 0, len(companies))
	for _, c := range companies {
		pills = append(pills, pillView{Name: c, Active: filters.Has(c)})
	}
	var buf bytes.Buffer
	if err := filtersTmpl.Execute(&buf, struct {
		Pills []pillView
		Sort  string
	}{Pills: pills, Sort: string(order)}); err != nil {
		return Fragment{}, fmt.Errorf("rendering filters: %w", err)
	}
	frag.Filters = template.HTML(buf.String())
	frag.Count = CountLabel(len(jobs))

	buf.Reset()
	if len(jobs) == 0 {
		if err := noResultsTmpl.Execute(&buf, NoResults); err != nil {
			return Fragment{}, fmt.Errorf("rendering empty state: %w", err)
		}
		frag.Jobs = template.HTML(buf.String())
		return frag, nil
	}

	now := h.now()
	cards := make([]cardView, 0, len(jobs))
	for _, j := range jobs {
		color := CompanyColor(j.Company)
		cards = append(cards, cardView{
			ID:            j.ID,
			Title:         HighlightHTML(j.Title, filters.Search),
			Company:       j.Company,
			Color:         template.CSS(color),
			Tint:          template.CSS(color + "20"),
			Location:      j.Location,
			ShortLocation: FormatLocation(j.Location),
			DateTitle:     j.Date.Format("Jan 2, 2006") + " (" + humanize.RelTime(j.Date, now, "ago", "from now") + ")",
			Ago:           TimeAgo(j.Date, now),
			DisplayID:     j.DisplayID,
			Description:   TruncateDescription(j.Description),
			URL:           j.URL,
		})
	}
	if err := jobsTmpl.Execute(&buf, cards); err != nil {
		return Fragment{}, fmt.Errorf("rendering jobs: %w", err)
	}
	frag.Jobs = template.HTML(buf.String())
	return frag, nil
}

// RenderError produces the load-failure view. It replaces the whole board.
func (h HTML) RenderError(title, hint string) (Fragment, error) {
	var buf bytes.Buffer
	if err := errorTmpl.Execute(&buf, struct{ Title, Hint string }{title, hint}); err != nil {
		return Fragment{}, fmt.Errorf("rendering error: %w", err)
	}
	return Fragment{Jobs: template.HTML(buf.String()), Failed: true}, nil
}

// HighlightHTML escapes text and wraps every case-insensitive occurrence of
// search in <mark>.
func HighlightHTML(text, search string) template.HTML {
	return template.HTML(highlight(text, search,
		template.HTMLEscapeString,
		func(s string) string { return "<mark>" + template.HTMLEscapeString(s) + "</mark>" },
	))
}

func (h HTML) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
