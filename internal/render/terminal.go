package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/jobboard/internal/model"
)

var (
	pillStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("245")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	pillActiveStyle = pillStyle.
			Foreground(lipgloss.Color("15")).
			BorderForeground(lipgloss.Color("39"))

	pillCursorStyle = lipgloss.NewStyle().
			Underline(true)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true)

	markStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("220"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Underline(true)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
)

// Terminal renders board state for the interactive terminal board.
type Terminal struct {
	Now func() time.Time
}

// FilterBar renders one pill per company plus the sort indicator. cursor
// marks the pill the keyboard focus is on; pass -1 for none.
func (t Terminal) FilterBar(companies []string, filters model.FilterState, cursor int, order model.SortOrder) string {
	pills := make([]string, 0, len(companies)+1)
	pills = append(pills, labelStyle.Render("Company:"))
	for i, c := range companies {
		st := pillStyle
		if filters.Has(c) {
			st = pillActiveStyle
		}
		name := c
		if i == cursor {
			name = pillCursorStyle.Render(name)
		}
		pills = append(pills, st.Render(name))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Center, pills...)

	sortLabel := "Newest First"
	if order == model.SortOldest {
		sortLabel = "Oldest First"
	}
	return bar + "\n" + labelStyle.Render("Sort: ") + sortLabel
}

// Cards renders the job list, or the no-results line when jobs is empty.
// Each card takes CardHeight lines. selected marks the focused card; pass -1
// for none.
func (t Terminal) Cards(jobs []model.Job, search string, selected int) string {
	if len(jobs) == 0 {
		return hintStyle.Render("  " + NoResults)
	}
	now := t.now()
	var b strings.Builder
	for i, j := range jobs {
		accent := lipgloss.NewStyle().Foreground(lipgloss.Color(CompanyColor(j.Company)))
		bar := accent.Render("▌") + " "
		if i == selected {
			bar = accent.Render("█") + " "
		}

		title := highlight(j.Title, search, func(s string) string { return cardTitleStyle.Render(s) }, func(s string) string { return markStyle.Render(s) })
		b.WriteString(bar + title + "  " + accent.Bold(true).Render(j.Company) + "\n")

		meta := fmt.Sprintf("%s · %s · %s", FormatLocation(j.Location), TimeAgo(j.Date, now), j.DisplayID)
		b.WriteString(bar + metaStyle.Render(meta) + "\n")

		desc := strings.Join(strings.Fields(TruncateDescription(j.Description)), " ")
		b.WriteString(bar + descStyle.Render(desc) + "\n")
		b.WriteString(bar + linkStyle.Render(j.URL) + "\n")

		if i < len(jobs)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// CardHeight is the number of lines a card occupies, separator included.
const CardHeight = 5

// Count renders the count region.
func (t Terminal) Count(n int) string {
	return labelStyle.Render(CountLabel(n))
}

// Error renders the load-failure view.
func (t Terminal) Error(title, hint string) string {
	return errorStyle.Render(title) + "\n" + hintStyle.Render(hint)
}

func (t Terminal) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}
