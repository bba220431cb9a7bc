// Package filtersidebar renders the country, religion and event type
// checklists with a live search box.
package filtersidebar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/worldsync/pkg/filter"
	"tableflip.dev/worldsync/pkg/tui/events"
	"tableflip.dev/worldsync/pkg/tui/theme"
	"tableflip.dev/worldsync/pkg/tui/ui"
)

type row struct {
	cat  filter.Category
	item filter.Item
}

// Model is the filter sidebar.
type Model struct {
	id    events.ComponentID
	state *filter.State
	theme theme.Theme

	search    textinput.Model
	searching bool

	cursor  int
	focused bool

	width  int
	height int
}

// NewModel returns a sidebar over a fresh state for catalog.
func NewModel(id events.ComponentID, catalog filter.Catalog, th theme.Theme) *Model {
	if id == "" {
		id = "filters"
	}
	search := textinput.New()
	search.Prompt = ""
	search.Placeholder = "search filters"
	return &Model{
		id:     id,
		state:  filter.New(catalog),
		theme:  th,
		search: search,
	}
}

// ID returns the component identifier.
func (m *Model) ID() events.ComponentID { return m.id }

// State exposes the checked flags.
func (m *Model) State() *filter.State { return m.state }

// Searching reports whether keys go to the search box.
func (m *Model) Searching() bool { return m.searching }

// Focus lets the sidebar react to keys.
func (m *Model) Focus() tea.Cmd {
	if m.focused {
		return nil
	}
	m.focused = true
	return events.FocusCmd(m.id)
}

// Blur stops key handling and leaves search mode.
func (m *Model) Blur() tea.Cmd {
	if !m.focused {
		return nil
	}
	m.focused = false
	m.searching = false
	m.search.Blur()
	return events.BlurCmd(m.id)
}

// Focused reports whether keys reach the sidebar.
func (m *Model) Focused() bool { return m.focused }

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	m.width = max(width, 16)
	m.height = max(height, 6)
	m.search.SetWidth(max(1, m.width-4))
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}
	if m.searching {
		switch key.String() {
		case "esc", "enter", "tab":
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.state.SetSearch(m.search.Value())
		m.clampCursor()
		return m, cmd
	}

	switch key.String() {
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "up", "k":
		m.cursor--
		m.clampCursor()
	case "down", "j":
		m.cursor++
		m.clampCursor()
	case "space", " ", "x":
		if r, ok := m.current(); ok {
			m.state.Flip(r.cat, r.item.ID)
		}
	case "a":
		var cmd tea.Cmd
		m.state.Apply(func(sel filter.Selection) {
			cmd = events.FiltersAppliedCmd(m.id, sel)
		})
		return m, cmd
	case "r":
		var cmd tea.Cmd
		m.state.Reset(func() {
			m.search.SetValue("")
			m.cursor = 0
			cmd = events.FiltersResetCmd(m.id)
		})
		return m, cmd
	}
	return m, nil
}

// SetSearch replaces the search text.
func (m *Model) SetSearch(q string) {
	m.search.SetValue(q)
	m.state.SetSearch(q)
	m.clampCursor()
}

func (m *Model) rows() []row {
	var out []row
	for _, cat := range filter.Categories() {
		for _, it := range m.state.Visible(cat) {
			out = append(out, row{cat: cat, item: it})
		}
	}
	return out
}

func (m *Model) current() (row, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return row{}, false
	}
	return rows[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View implements ui.Component.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}
	st := m.theme.Sidebar
	inner := m.width - st.Frame.GetHorizontalFrameSize()

	head := []string{st.Section.Render("Filters"), "/ " + m.search.View(), ""}

	var body []string
	cursorLine := 0
	idx := 0
	for _, cat := range filter.Categories() {
		title := st.Section.Render(cat.Label())
		if n := m.state.Count(cat); n > 0 {
			title += " " + st.Count.Render(fmt.Sprint(n))
		}
		body = append(body, title)
		items := m.state.Visible(cat)
		if len(items) == 0 {
			body = append(body, st.Empty.Render(truncate.StringWithTail(cat.Empty(), uint(inner), "…")))
		}
		for _, it := range items {
			box := "[ ]"
			if it.Checked {
				box = "[x]"
			}
			line := truncate.StringWithTail(box+" "+it.Name, uint(inner), "…")
			if m.focused && !m.searching && idx == m.cursor {
				cursorLine = len(body)
				line = st.Cursor.Render(line)
			} else {
				line = st.Item.Render(line)
			}
			body = append(body, line)
			idx++
		}
		body = append(body, "")
	}

	foot := m.theme.Footer.Help.Render(truncate.String("space toggle · a apply · r reset", uint(inner)))
	room := max(1, m.height-len(head)-1)
	start := 0
	if cursorLine >= room {
		start = cursorLine - room + 1
	}
	end := min(len(body), start+room)
	lines := append(head, body[start:end]...)
	for len(lines) < m.height-1 {
		lines = append(lines, "")
	}
	lines = append(lines, foot)
	return st.Frame.Height(m.height).Render(strings.Join(lines, "\n"))
}
