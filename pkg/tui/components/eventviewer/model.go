// Package eventviewer renders the debug activity log: what the calendar did
// in response to navigation, filters, the detail modal and store reloads.
package eventviewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/worldsync/pkg/tui/theme"
	"tableflip.dev/worldsync/pkg/tui/ui"
)

// Kind groups log lines by the part of the calendar they concern.
type Kind int

const (
	// Input is raw key presses and resizes, hidden unless requested.
	Input Kind = iota
	Navigation
	Filters
	Details
	Store
)

var kindNames = [...]string{"input", "nav", "filter", "detail", "store"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "other"
}

// Kinds lists the kinds counted in the header, input excluded.
func Kinds() []Kind { return []Kind{Navigation, Filters, Details, Store} }

// Entry is one line of activity.
type Entry struct {
	At     time.Time
	Kind   Kind
	Text   string
	Failed bool
}

// Model keeps the newest entries and shows them oldest first, following the
// bottom until the user scrolls up.
type Model struct {
	viewport viewport.Model
	entries  []Entry
	counts   map[Kind]int
	failures int

	limit     int
	showInput bool
	follow    bool
	clock     func() time.Time

	width  int
	height int
	styles theme.LogTheme
}

// NewModel keeps at most limit entries.
func NewModel(limit int) *Model {
	if limit <= 0 {
		limit = 200
	}
	return &Model{
		viewport: viewport.New(viewport.WithWidth(1), viewport.WithHeight(1)),
		counts:   make(map[Kind]int),
		limit:    limit,
		follow:   true,
		clock:    time.Now,
		styles:   theme.Default().Log,
	}
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// Update implements ui.Component. `i` toggles input lines; other keys
// scroll.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "i" {
		m.ToggleInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	m.follow = m.viewport.AtBottom()
	return m, cmd
}

// Len is the number of retained entries, input included.
func (m *Model) Len() int { return len(m.entries) }

// Count is how many entries of kind k were recorded since the log opened.
func (m *Model) Count(k Kind) int { return m.counts[k] }

// Failures is how many failed entries were recorded.
func (m *Model) Failures() int { return m.failures }

// ToggleInput shows or hides key and resize lines.
func (m *Model) ToggleInput() {
	m.showInput = !m.showInput
	m.refresh()
}

// Record appends an entry, dropping the oldest past the limit.
func (m *Model) Record(e Entry) {
	if e.At.IsZero() {
		e.At = m.clock()
	}
	m.counts[e.Kind]++
	if e.Failed {
		m.failures++
	}
	m.entries = append(m.entries, e)
	if over := len(m.entries) - m.limit; over > 0 {
		m.entries = m.entries[over:]
	}
	m.refresh()
}

// SetSize fits the log into width x height including its border.
func (m *Model) SetSize(width, height int) {
	width, height = max(width, 4), max(height, 3)
	if m.width == width && m.height == height {
		return
	}
	m.width, m.height = width, height
	m.viewport.SetWidth(max(1, width-2))
	m.viewport.SetHeight(max(1, height-3))
	m.refresh()
}

// View renders the header with per-kind counts above the entries.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	body := lipgloss.JoinVertical(lipgloss.Left, m.header(), m.viewport.View())
	return m.styles.Frame.Width(m.width).Height(m.height).Render(body)
}

func (m *Model) header() string {
	parts := make([]string, 0, len(Kinds())+1)
	for _, k := range Kinds() {
		parts = append(parts, fmt.Sprintf("%s %d", k, m.counts[k]))
	}
	if m.failures > 0 {
		parts = append(parts, m.styles.Failed.Render(fmt.Sprintf("%d failed", m.failures)))
	}
	input := "i: show input"
	if m.showInput {
		input = "i: hide input"
	}
	line := m.styles.Title.Render("Activity") + "  " + strings.Join(parts, " · ") + "  " + m.styles.Muted.Render(input)
	return truncate.String(line, uint(max(1, m.width-2)))
}

func (m *Model) refresh() {
	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		if e.Kind == Input && !m.showInput {
			continue
		}
		lines = append(lines, m.line(e))
	}
	if len(lines) == 0 {
		lines = append(lines, m.styles.Muted.Render("Nothing has happened yet."))
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
	if m.follow {
		m.viewport.GotoBottom()
	}
}

func (m *Model) line(e Entry) string {
	text := e.Text
	if e.Failed {
		text = m.styles.Failed.Render(text)
	}
	return m.styles.Muted.Render(e.At.Format("15:04:05")) + " " +
		m.styles.Kind.Render(fmt.Sprintf("%-6s", e.Kind)) + " " + text
}
