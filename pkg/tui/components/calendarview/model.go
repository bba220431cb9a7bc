// Package calendarview renders the month, week and day layouts and turns
// arrow keys into day and event highlights.
package calendarview

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/worldsync/pkg/calendar"
	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/navigation"
	"tableflip.dev/worldsync/pkg/tui/events"
	"tableflip.dev/worldsync/pkg/tui/theme"
	"tableflip.dev/worldsync/pkg/tui/ui"
)

// NoEventsToday is the day view's empty state.
const NoEventsToday = "No events scheduled for this day"

const maxDots = 3

// Options configures a Model.
type Options struct {
	ID        events.ComponentID
	WeekStart time.Weekday
	Today     event.Date
	Theme     theme.Theme
}

// Model renders the calendar for a view state.
type Model struct {
	id        events.ComponentID
	engine    *calendar.Engine
	state     navigation.ViewState
	weekStart time.Weekday
	today     event.Date
	theme     theme.Theme

	// highlight indexes the cursor day's events; -1 means none.
	highlight int
	focused   bool

	width  int
	height int
}

// NewModel returns a calendar with no events, focused on today.
func NewModel(opts Options) *Model {
	if opts.ID == "" {
		opts.ID = "calendar"
	}
	return &Model{
		id:        opts.ID,
		engine:    calendar.New(nil),
		state:     navigation.ViewState{Mode: navigation.ModeMonth, Current: opts.Today},
		weekStart: opts.WeekStart,
		today:     opts.Today,
		theme:     opts.Theme,
		highlight: -1,
		focused:   true,
	}
}

// ID returns the component identifier.
func (m *Model) ID() events.ComponentID { return m.id }

// SetEngine swaps the indexed events. The event highlight survives only if
// the cursor day still has that many events.
func (m *Model) SetEngine(e *calendar.Engine) {
	if e == nil {
		e = calendar.New(nil)
	}
	m.engine = e
	if m.highlight >= len(m.dayEvents()) {
		m.highlight = -1
	}
}

// SetState re-renders around a view state. Moving to another day drops the
// event highlight.
func (m *Model) SetState(s navigation.ViewState) {
	if !s.Current.Equal(m.state.Current) {
		m.highlight = -1
	}
	m.state = s
}

// State returns the rendered view state.
func (m *Model) State() navigation.ViewState { return m.state }

// Cursor is the highlighted day.
func (m *Model) Cursor() event.Date { return m.state.Current }

// Highlighted returns the highlighted event, if any.
func (m *Model) Highlighted() (event.Event, bool) {
	evs := m.dayEvents()
	if m.highlight < 0 || m.highlight >= len(evs) {
		return event.Event{}, false
	}
	return evs[m.highlight], true
}

// Focus lets the model react to keys.
func (m *Model) Focus() tea.Cmd {
	if m.focused {
		return nil
	}
	m.focused = true
	return events.FocusCmd(m.id)
}

// Blur stops key handling.
func (m *Model) Blur() tea.Cmd {
	if !m.focused {
		return nil
	}
	m.focused = false
	return events.BlurCmd(m.id)
}

// Focused reports whether keys reach the model.
func (m *Model) Focused() bool { return m.focused }

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	m.width = max(width, 14)
	m.height = max(height, 4)
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}
	switch key.String() {
	case "left", "h":
		return m, m.move(-1)
	case "right", "l":
		return m, m.move(1)
	case "up", "k":
		if m.state.Mode == navigation.ModeDay {
			return m, m.cycle(-1)
		}
		return m, m.move(-7)
	case "down", "j":
		if m.state.Mode == navigation.ModeDay {
			return m, m.cycle(1)
		}
		return m, m.move(7)
	case "e":
		return m, m.cycle(1)
	case "E":
		return m, m.cycle(-1)
	case "enter":
		if ev, ok := m.Highlighted(); ok {
			return m, events.EventSelectCmd(m.id, ev)
		}
		return m, events.DayActivateCmd(m.id, m.state.Current)
	}
	return m, nil
}

func (m *Model) move(days int) tea.Cmd {
	m.SetState(navigation.ViewState{Mode: m.state.Mode, Current: m.state.Current.AddDays(days)})
	return events.DayHighlightCmd(m.id, m.state.Current)
}

// cycle walks the cursor day's events, wrapping at both ends.
func (m *Model) cycle(step int) tea.Cmd {
	evs := m.dayEvents()
	if len(evs) == 0 {
		m.highlight = -1
		return nil
	}
	switch {
	case m.highlight < 0 && step > 0:
		m.highlight = 0
	case m.highlight < 0:
		m.highlight = len(evs) - 1
	default:
		m.highlight = (m.highlight + step + len(evs)) % len(evs)
	}
	ev := evs[m.highlight]
	id := m.id
	return func() tea.Msg {
		return events.EventHighlightMsg{Component: id, EventID: ev.ID, Name: ev.Name}
	}
}

func (m *Model) dayEvents() []event.Event {
	return m.engine.EventsOn(m.state.Current)
}

// View implements ui.Component.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}
	var body string
	switch m.state.Mode {
	case navigation.ModeWeek:
		body = m.weekView()
	case navigation.ModeDay:
		body = m.dayView()
	default:
		body = m.monthView()
	}
	lines := strings.Split(body, "\n")
	legend := m.legend()
	room := m.height - 1
	if len(lines) > room {
		lines = lines[:room]
	}
	for len(lines) < room {
		lines = append(lines, "")
	}
	return strings.Join(append(lines, legend), "\n")
}

func (m *Model) cellWidth() int {
	return max(4, (m.width-6)/7)
}

func (m *Model) monthView() string {
	st := m.theme.Calendar
	cw := m.cellWidth()

	headers := calendar.WeekdayHeaders(m.weekStart)
	cols := make([]string, len(headers))
	for i, h := range headers {
		cols[i] = st.Weekday.Width(cw).Render(h)
	}
	lines := []string{strings.Join(cols, " ")}

	for _, week := range calendar.MonthGrid(m.state.Current, m.weekStart) {
		nums := make([]string, 7)
		dots := make([]string, 7)
		for i, d := range week {
			if d.IsZero() {
				nums[i] = strings.Repeat(" ", cw)
				dots[i] = strings.Repeat(" ", cw)
				continue
			}
			cell := m.engine.Cell(d)
			nums[i] = m.dayStyle(d, len(cell.Indicators) > 0).Width(cw).Render(cell.Label)
			dots[i] = lipgloss.NewStyle().Width(cw).Render(indicators(cell.Indicators, cw))
		}
		lines = append(lines, strings.Join(nums, " "), strings.Join(dots, " "))
	}

	lines = append(lines, "", st.Weekday.Render(m.state.Current.Format("Monday, January 2")))
	lines = append(lines, m.eventRows(m.dayEvents(), false)...)
	return strings.Join(lines, "\n")
}

func (m *Model) dayStyle(d event.Date, busy bool) lipgloss.Style {
	st := m.theme.Calendar
	style := st.Day
	if busy {
		style = st.Busy
	}
	if !m.today.IsZero() && d.Equal(m.today) {
		style = style.Inherit(st.Today)
	}
	if d.Equal(m.state.Current) {
		style = st.Cursor.Inherit(style)
	}
	return style
}

// indicators renders one colored dot per event within width cells. Events
// that do not fit collapse into a "+N" count sized to leave room for it.
func indicators(in []calendar.Indicator, width int) string {
	dots := min(len(in), maxDots, width)
	more := ""
	if dots < len(in) {
		for dots = min(maxDots, width); dots > 0; dots-- {
			more = fmt.Sprintf("+%d", len(in)-dots)
			if dots+len(more) <= width {
				break
			}
		}
		if dots == 0 {
			more = fmt.Sprintf("+%d", len(in))
			if len(more) > width {
				more = ""
				dots = min(len(in), width)
			}
		}
	}
	var b strings.Builder
	for _, ind := range in[:dots] {
		b.WriteString(theme.Swatch(calendar.Color(ind.Type), "●"))
	}
	b.WriteString(more)
	return b.String()
}

func (m *Model) weekView() string {
	st := m.theme.Calendar
	cw := m.cellWidth()

	week := calendar.Week(m.state.Current, m.weekStart)
	heads := make([]string, 7)
	rows := 0
	for i, d := range week {
		heads[i] = m.dayStyle(d, len(m.engine.EventsOn(d)) > 0).Width(cw).Render(d.Format("Mon 2"))
		rows = max(rows, len(m.engine.EventsOn(d)))
	}
	lines := []string{strings.Join(heads, " ")}

	for r := 0; r < rows; r++ {
		cells := make([]string, 7)
		for i, d := range week {
			evs := m.engine.EventsOn(d)
			if r >= len(evs) {
				cells[i] = strings.Repeat(" ", cw)
				continue
			}
			label := truncate.StringWithTail(evs[r].Name, uint(cw), "…")
			label += strings.Repeat(" ", max(0, cw-lipgloss.Width(label)))
			if d.Equal(m.state.Current) && r == m.highlight {
				cells[i] = st.Selected.Render(label)
				continue
			}
			cells[i] = theme.Chip(calendar.Color(evs[r].Type), label)
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	if rows == 0 {
		lines = append(lines, st.Muted.Render("No events this week"))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) dayView() string {
	evs := m.dayEvents()
	if len(evs) == 0 {
		return m.theme.Calendar.Muted.Render(NoEventsToday)
	}
	return strings.Join(m.eventRows(evs, true), "\n")
}

// eventRows lists events with the highlighted one marked. Full rows add the
// place and a wrapped description.
func (m *Model) eventRows(evs []event.Event, full bool) []string {
	st := m.theme.Calendar
	if len(evs) == 0 {
		return []string{st.Muted.Render("  none")}
	}
	var lines []string
	for i, ev := range evs {
		marker := "  "
		name := st.Event.Render(ev.Name)
		if i == m.highlight {
			marker = "› "
			name = st.Selected.Render(ev.Name)
		}
		line := marker + theme.Swatch(calendar.Color(ev.Type), "●") + " " + name + "  " + st.Muted.Render(ev.Type.Label())
		lines = append(lines, line)
		if !full {
			continue
		}
		if p := place(ev); p != "" {
			lines = append(lines, "    "+st.Muted.Render(p))
		}
		if ev.Description != "" {
			for _, l := range strings.Split(wordwrap.String(ev.Description, max(10, m.width-6)), "\n") {
				lines = append(lines, "    "+l)
			}
		}
		lines = append(lines, "")
	}
	return lines
}

func place(e event.Event) string {
	switch {
	case e.Country != "" && e.Religion != "":
		return e.Country + " · " + e.Religion
	case e.Country != "":
		return e.Country
	}
	return e.Religion
}

func (m *Model) legend() string {
	parts := make([]string, 0, len(calendar.Legend()))
	for _, l := range calendar.Legend() {
		parts = append(parts, theme.Swatch(l.Color, "●")+" "+l.Label)
	}
	return truncate.String(strings.Join(parts, "  "), uint(m.width))
}
