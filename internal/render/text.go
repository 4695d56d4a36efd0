// Package render projects the board state into display markup: HTML
// fragments for the page shell and lipgloss-styled text for the terminal
// board. It keeps no state of its own.
package render

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/amishk599/jobboard/internal/normalize"
)

const (
	maxLocationLen    = 30
	maxDescriptionLen = 140
	ellipsis          = "..."

	DefaultColor = "#3b82f6"
)

var companyColors = map[string]string{
	normalize.Amazon:    "#FF9900",
	normalize.Microsoft: "#00A4EF",
	normalize.CVSHealth: "#CC0000",
}

// CompanyColor returns the accent color for a canonical company name.
func CompanyColor(company string) string {
	if c, ok := companyColors[company]; ok {
		return c
	}
	return DefaultColor
}

// TimeAgo returns a coarse relative label for date as seen from now.
func TimeAgo(date, now time.Time) string {
	seconds := math.Floor(now.Sub(date).Seconds())
	units := []struct {
		seconds float64
		label   string
	}{
		{31536000, "years"},
		{2592000, "months"},
		{86400, "days"},
		{3600, "hours"},
	}
	for _, u := range units {
		if interval := seconds / u.seconds; interval > 1 {
			return fmt.Sprintf("%d %s ago", int(math.Floor(interval)), u.label)
		}
	}
	return "Just now"
}

// FormatLocation shortens locations longer than 30 characters to the text
// before the first comma.
func FormatLocation(loc string) string {
	if len([]rune(loc)) > maxLocationLen {
		return strings.SplitN(loc, ",", 2)[0] + ellipsis
	}
	return loc
}

// Truncate cuts s to n-1 characters plus an ellipsis when it is longer
// than n characters.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n-1]) + ellipsis
	}
	return s
}

// TruncateDescription applies the card description limit.
func TruncateDescription(s string) string {
	return Truncate(s, maxDescriptionLen)
}

// span is a half-open byte range of a search match.
type span struct{ start, end int }

// matchSpans returns every case-insensitive occurrence of search in text.
// The search text is matched literally.
func matchSpans(text, search string) []span {
	if search == "" {
		return nil
	}
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(search))
	if err != nil {
		return nil
	}
	var out []span
	for _, loc := range re.FindAllStringIndex(text, -1) {
		out = append(out, span{start: loc[0], end: loc[1]})
	}
	return out
}

// highlight splits text around search matches and joins the pieces back,
// passing plain runs through plain and matches through mark.
func highlight(text, search string, plain, mark func(string) string) string {
	spans := matchSpans(text, search)
	if len(spans) == 0 {
		return plain(text)
	}
	var b strings.Builder
	prev := 0
	for _, s := range spans {
		b.WriteString(plain(text[prev:s.start]))
		b.WriteString(mark(text[s.start:s.end]))
		prev = s.end
	}
	b.WriteString(plain(text[prev:]))
	return b.String()
}
