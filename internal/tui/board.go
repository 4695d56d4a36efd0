// Package tui is the interactive terminal rendition of the job board. Key
// handlers call exactly one board mutation; the board's subscription then
// re-renders the affected regions.
package tui

import (
	"errors"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/jobboard/internal/board"
	"github.com/amishk599/jobboard/internal/model"
	"github.com/amishk599/jobboard/internal/render"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))
)

const (
	statusFilters = " ←/→ company  space toggle  / search  s sort  ↑/↓ jobs  o open  q quit"
	statusSearch  = " type to search  enter/esc done  ctrl+c quit"
)

// Option configures a Model.
type Option func(*Model)

// WithNow sets the clock used for relative dates.
func WithNow(now func() time.Time) Option {
	return func(m *Model) { m.term.Now = now }
}

// WithOpener replaces the function used to open job URLs.
func WithOpener(open func(url string)) Option {
	return func(m *Model) { m.open = open }
}

// Model is the bubbletea model over a board.
type Model struct {
	board *board.Board
	term  render.Terminal
	open  func(url string)

	search   textinput.Model
	viewport viewport.Model

	cursor    int // company pill under keyboard focus
	jobCursor int

	filterBar string
	count     string
	visible   []model.Job

	width  int
	height int
	ready  bool
}

// New returns a model bound to b and subscribes it to b's mutations.
func New(b *board.Board, opts ...Option) *Model {
	search := textinput.New()
	search.Placeholder = "Search title, company or location..."
	search.Prompt = "/ "
	search.SetValue(b.Search())

	m := &Model{
		board:  b,
		open:   openURL,
		search: search,
	}
	for _, opt := range opts {
		opt(m)
	}

	b.Subscribe(m.refresh)
	m.refresh(board.RegionFilters | board.RegionJobs)
	return m
}

// refresh re-renders the regions named in r.
func (m *Model) refresh(r board.Region) {
	if m.board.State() != board.Ready {
		return
	}
	if r.Has(board.RegionFilters) {
		m.filterBar = m.term.FilterBar(m.board.Companies(), m.board.Filters(), m.cursor, m.board.Sort())
	}
	if r.Has(board.RegionJobs) {
		m.visible = m.board.Visible()
		m.count = m.term.Count(len(m.visible))
		m.jobCursor = clamp(m.jobCursor, 0, max(len(m.visible)-1, 0))
		m.renderCards()
		// the sort indicator lives in the filter bar
		if !r.Has(board.RegionFilters) {
			m.filterBar = m.term.FilterBar(m.board.Companies(), m.board.Filters(), m.cursor, m.board.Sort())
		}
	}
}

func (m *Model) renderCards() {
	m.viewport.SetContent(m.term.Cards(m.visible, m.board.Search(), m.jobCursor))
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case tea.KeyMsg:
		if m.board.State() != board.Ready {
			switch msg.String() {
			case "q", "ctrl+c", "esc":
				return m, tea.Quit
			}
			return m, nil
		}
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateBoard(msg)
	}

	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "enter":
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != before {
		m.board.SetSearch(v)
	}
	return m, cmd
}

func (m *Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	companies := m.board.Companies()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "/":
		return m, m.search.Focus()
	case "left", "h":
		m.cursor = clamp(m.cursor-1, 0, max(len(companies)-1, 0))
		m.refresh(board.RegionFilters)
		return m, nil
	case "right", "l":
		m.cursor = clamp(m.cursor+1, 0, max(len(companies)-1, 0))
		m.refresh(board.RegionFilters)
		return m, nil
	case " ":
		if len(companies) > 0 {
			m.board.ToggleCompany(companies[m.cursor])
		}
		return m, nil
	case "s":
		next := model.SortOldest
		if m.board.Sort() == model.SortOldest {
			next = model.SortNewest
		}
		// both orders are valid
		_ = m.board.SetSort(next)
		return m, nil
	case "up", "k":
		m.moveJobCursor(-1)
		return m, nil
	case "down", "j":
		m.moveJobCursor(1)
		return m, nil
	case "o", "enter":
		if job, ok := m.selectedJob(); ok && job.URL != "" && job.URL != "#" {
			m.open(job.URL)
		}
		return m, nil
	}

	// pgup/pgdn/home/end scroll the job list.
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) moveJobCursor(delta int) {
	m.jobCursor = clamp(m.jobCursor+delta, 0, max(len(m.visible)-1, 0))
	m.renderCards()
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	top := m.jobCursor * render.CardHeight
	bottom := top + render.CardHeight - 2

	if top < m.viewport.YOffset {
		m.viewport.SetYOffset(top)
	} else if bottom >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(bottom - m.viewport.Height + 1)
	}
}

func (m *Model) selectedJob() (model.Job, bool) {
	if m.jobCursor < 0 || m.jobCursor >= len(m.visible) {
		return model.Job{}, false
	}
	return m.visible[m.jobCursor], true
}

func (m *Model) recalcLayout() {
	// Title (1) + filter bar + search (1) + count (1) + borders (2) + status bar (1).
	overhead := 6 + lipgloss.Height(m.filterBar)
	width := max(m.width-2, 20)
	height := max(m.height-overhead, 5)

	if !m.ready {
		m.viewport = viewport.New(width, height)
		m.ready = true
		m.renderCards()
	} else {
		m.viewport.Width = width
		m.viewport.Height = height
	}
	m.search.Width = max(m.width-4, 10)
}

func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	title := titleStyle.Render("Job Board")
	if m.board.State() != board.Ready {
		return title + "\n\n" + m.term.Error(render.LoadErrorTitle, render.LoadErrorHint) + "\n"
	}

	status := statusFilters
	if m.search.Focused() {
		status = statusSearch
	}
	statusBar := statusBarStyle.Width(m.width).Render(status)
	list := borderStyle.Width(m.viewport.Width).Render(m.viewport.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.filterBar,
		m.search.View(),
		m.count,
		list,
		statusBar,
	)
}

// Visible returns the jobs currently shown, in display order.
func (m *Model) Visible() []model.Job { return m.visible }

// Cursor returns the index of the company pill under keyboard focus.
func (m *Model) Cursor() int { return m.cursor }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// openURL opens url in the default system browser, fire-and-forget.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}
	_ = cmd.Start()
}

// ErrNotLoaded is returned by Run for a board that was never loaded.
var ErrNotLoaded = errors.New("board not loaded")

// Run starts the interactive board in the alternate screen and blocks until
// the user quits. A board in LoadFailed shows the load-failure view only.
func Run(b *board.Board, opts ...Option) error {
	if b.State() == board.Uninitialized || b.State() == board.Loading {
		return ErrNotLoaded
	}
	p := tea.NewProgram(New(b, opts...), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
