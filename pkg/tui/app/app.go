// Package app is the root Bubble Tea model of the interactive calendar. It
// owns navigation, the applied filter selection and the modal, and wires the
// calendar, filter sidebar and event detail components together.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	wsapp "tableflip.dev/worldsync/pkg/app"
	"tableflip.dev/worldsync/pkg/calendar"
	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/filter"
	"tableflip.dev/worldsync/pkg/navigation"
	"tableflip.dev/worldsync/pkg/store"
	"tableflip.dev/worldsync/pkg/tui/components/calendarview"
	"tableflip.dev/worldsync/pkg/tui/components/eventdetail"
	"tableflip.dev/worldsync/pkg/tui/components/eventviewer"
	"tableflip.dev/worldsync/pkg/tui/components/filtersidebar"
	"tableflip.dev/worldsync/pkg/tui/components/help"
	"tableflip.dev/worldsync/pkg/tui/events"
	"tableflip.dev/worldsync/pkg/tui/theme"
	"tableflip.dev/worldsync/pkg/tui/ui/overlay"
)

const (
	calendarID events.ComponentID = "calendar"
	filtersID  events.ComponentID = "filters"
	modalID    events.ComponentID = "event-detail"

	sidebarWidth    = 32
	minSidebarWidth = 72
)

// Options configures the root model.
type Options struct {
	Mode      navigation.Mode
	WeekStart time.Weekday
	// Start is the initial focus date. Zero means today.
	Start event.Date
	Clock func() time.Time
	// ExportDir receives .ics files saved from the modal.
	ExportDir string
	// Copy overrides the clipboard writer.
	Copy  func(string) error
	Debug bool
	// Selection preselects sidebar filters.
	Selection filter.Selection
}

type engineLoadedMsg struct {
	engine *calendar.Engine
	err    error
}

type storeChangedMsg struct {
	change store.Change
	ch     <-chan store.Change
}

type watchFailedMsg struct{ err error }

// Model composes the calendar UI.
type Model struct {
	service *wsapp.Service
	opts    Options
	theme   theme.Theme

	nav       *navigation.Controller
	selection filter.Selection
	engine    *calendar.Engine

	calendar *calendarview.Model
	filters  *filtersidebar.Model
	detail   *eventdetail.Model
	help     *help.Model

	// showSidebar is the user's show/hide choice; narrow windows still
	// hide the sidebar.
	showSidebar    bool
	filtersFocused bool
	showHelp       bool

	debugEnabled bool
	eventViewer  *eventviewer.Model

	status string
	err    error

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// New constructs a root model over service.
func New(service *wsapp.Service, opts Options) *Model {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Mode == "" {
		opts.Mode = navigation.ModeMonth
	}
	th := theme.Default()
	today := event.Today(opts.Clock)
	nav := navigation.New(opts.Mode, opts.Start, navigation.WithClock(opts.Clock))

	cal := calendarview.NewModel(calendarview.Options{
		ID:        calendarID,
		WeekStart: opts.WeekStart,
		Today:     today,
		Theme:     th,
	})
	cal.SetState(nav.State())

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		service:  service,
		opts:     opts,
		theme:    th,
		nav:      nav,
		engine:   calendar.New(nil),
		calendar: cal,
		filters:  filtersidebar.NewModel(filtersID, service.CatalogOrDefault(), th),
		detail: eventdetail.NewModel(eventdetail.Options{
			ID:        modalID,
			Theme:     th,
			ExportDir: opts.ExportDir,
			Copy:      opts.Copy,
		}),
		showSidebar: true,
		status:      "Loading events…",
		ctx:         ctx,
		cancel:      cancel,
	}
	if !opts.Selection.IsEmpty() {
		st := m.filters.State()
		st.Preselect(opts.Selection)
		m.selection = st.Selection()
	}
	if opts.Debug {
		m.debugEnabled = true
		m.eventViewer = eventviewer.NewModel(logLimit)
	}
	return m
}

// Run launches the Bubble Tea program.
func Run(ctx context.Context, service *wsapp.Service, opts Options) error {
	m := New(service, opts)
	defer m.cancel()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.watch())
}

func (m *Model) load() tea.Cmd {
	svc, ctx, sel := m.service, m.ctx, m.selection
	return func() tea.Msg {
		engine, err := svc.Engine(ctx, sel)
		return engineLoadedMsg{engine: engine, err: err}
	}
}

func (m *Model) watch() tea.Cmd {
	if m.service.Persistence == nil {
		return nil
	}
	svc, ctx := m.service, m.ctx
	return func() tea.Msg {
		ch, err := svc.Watch(ctx)
		if err != nil {
			return watchFailedMsg{err: err}
		}
		return next(ch)
	}
}

func waitForChange(ch <-chan store.Change) tea.Cmd {
	return func() tea.Msg { return next(ch) }
}

func next(ch <-chan store.Change) tea.Msg {
	c, ok := <-ch
	if !ok {
		return nil
	}
	return storeChangedMsg{change: c, ch: ch}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.noteEvent(msg)

	var cmds []tea.Cmd
	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.layout()
		return m, nil
	case engineLoadedMsg:
		if v.err != nil {
			m.err = v.err
			m.status = "Load failed: " + v.err.Error()
			return m, nil
		}
		m.err = nil
		m.engine = v.engine
		m.calendar.SetEngine(v.engine)
		m.status = fmt.Sprintf("%d events", v.engine.Len())
		return m, nil
	case storeChangedMsg:
		return m, tea.Batch(m.load(), waitForChange(v.ch))
	case watchFailedMsg:
		m.status = "Live reload unavailable"
		return m, nil
	case events.DayHighlightMsg:
		m.nav.SetCurrent(v.Date)
		m.calendar.SetState(m.nav.State())
		return m, nil
	case events.DayActivateMsg:
		m.nav.SetCurrent(v.Date)
		m.nav.SetMode(navigation.ModeDay)
		m.calendar.SetState(m.nav.State())
		return m, nil
	case events.EventSelectMsg:
		m.detail.Open(v.Event)
		m.layout()
		return m, nil
	case events.FiltersAppliedMsg:
		m.selection = v.Selection
		m.status = "Filters applied"
		return m, m.load()
	case events.FiltersResetMsg:
		m.selection = filter.Selection{}
		m.status = "Filters cleared"
		return m, m.load()
	case events.ModalClosedMsg:
		return m, nil
	case events.ExportedMsg, events.SharedMsg:
		_, cmd := m.detail.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m, m.handleKey(v)
	}

	if m.eventViewer != nil {
		_, cmd := m.eventViewer.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(key tea.KeyMsg) tea.Cmd {
	k := key.String()
	if k == "ctrl+c" {
		return tea.Quit
	}

	if m.showHelp {
		switch k {
		case "?", "esc", "q":
			m.showHelp = false
			return nil
		}
		_, cmd := m.help.Update(key)
		return cmd
	}

	if m.detail.IsOpen() {
		_, cmd := m.detail.Update(key)
		return cmd
	}

	if m.filtersFocused && m.filters.Searching() {
		_, cmd := m.filters.Update(key)
		return cmd
	}

	switch k {
	case "q":
		return tea.Quit
	case "?":
		m.showHelp = true
		m.layout()
		return nil
	case "D":
		m.toggleDebug()
		return nil
	case "i":
		if m.eventViewer != nil {
			m.eventViewer.ToggleInput()
		}
		return nil
	case "f":
		return m.toggleSidebar()
	case "tab":
		if !m.sidebarVisible() {
			return nil
		}
		return m.toggleFocus()
	case "esc":
		if m.filtersFocused {
			return m.toggleFocus()
		}
		return nil
	case "m":
		m.setMode(navigation.ModeMonth)
		return nil
	case "w":
		m.setMode(navigation.ModeWeek)
		return nil
	case "d":
		m.setMode(navigation.ModeDay)
		return nil
	case "[", "p":
		m.nav.Previous()
		m.calendar.SetState(m.nav.State())
		return nil
	case "]", "n":
		m.nav.Next()
		m.calendar.SetState(m.nav.State())
		return nil
	case "t":
		m.nav.Today()
		m.calendar.SetState(m.nav.State())
		return nil
	}

	if m.filtersFocused {
		_, cmd := m.filters.Update(key)
		return cmd
	}
	_, cmd := m.calendar.Update(key)
	return cmd
}

func (m *Model) setMode(mode navigation.Mode) {
	m.nav.SetMode(mode)
	m.calendar.SetState(m.nav.State())
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.filtersFocused {
		return m.focusCalendar()
	}
	return m.focusFilters()
}

func (m *Model) focusFilters() tea.Cmd {
	m.filtersFocused = true
	return tea.Batch(m.calendar.Blur(), m.filters.Focus())
}

func (m *Model) focusCalendar() tea.Cmd {
	m.filtersFocused = false
	return tea.Batch(m.filters.Blur(), m.calendar.Focus())
}

// toggleSidebar shows or hides the filter sidebar. A shown sidebar takes
// focus; a hidden one gives it back to the calendar.
func (m *Model) toggleSidebar() tea.Cmd {
	m.showSidebar = !m.showSidebar
	m.layout()
	if !m.showSidebar {
		m.status = "Filters hidden"
		if m.filtersFocused {
			return m.focusCalendar()
		}
		return nil
	}
	if !m.sidebarVisible() {
		m.status = "Window too narrow for filters"
		return nil
	}
	m.status = "Filters shown"
	return m.focusFilters()
}

// State returns the current navigation state.
func (m *Model) State() navigation.ViewState { return m.nav.State() }

// Selection returns the applied filter selection.
func (m *Model) Selection() filter.Selection { return m.selection }

func (m *Model) sidebarVisible() bool {
	return m.showSidebar && m.width >= minSidebarWidth
}

// SidebarVisible reports whether the filter sidebar is drawn.
func (m *Model) SidebarVisible() bool { return m.sidebarVisible() }

func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	// header, blank and footer
	rows := max(1, m.height-3)
	if m.debugEnabled {
		if m.eventViewer == nil {
			m.eventViewer = eventviewer.NewModel(logLimit)
		}
		if dh := m.computeDebugHeight(rows); dh > 0 {
			m.eventViewer.SetSize(m.width, dh)
			rows -= dh
		}
	}

	calWidth := m.width
	if m.sidebarVisible() {
		m.filters.SetSize(sidebarWidth, rows)
		calWidth -= sidebarWidth + 1
	} else if m.filtersFocused {
		// Keys must not reach filters nobody can see.
		_ = m.focusCalendar()
	}
	m.calendar.SetSize(calWidth, rows)

	place := overlay.Centered(m.width, m.height, 0.8, 40, 14)
	m.detail.SetSize(place.Width, place.Height)
	if m.showHelp {
		if m.help == nil {
			m.help = help.New(place.Width, place.Height)
		}
		m.help.SetSize(place.Width, place.Height)
	}
}

// View implements tea.Model.
func (m *Model) View() (string, *tea.Cursor) {
	if m.width <= 0 || m.height <= 0 {
		return "initializing…", nil
	}

	main := m.calendar.View()
	if m.sidebarVisible() {
		main = lipgloss.JoinHorizontal(lipgloss.Top, m.filters.View(), " ", main)
	}
	parts := []string{m.header(), "", main}
	if m.debugEnabled && m.eventViewer != nil {
		parts = append(parts, m.eventViewer.View())
	}
	parts = append(parts, m.footer())
	view := strings.Join(parts, "\n")

	place := overlay.Centered(m.width, m.height, 0.8, 40, 14)
	switch {
	case m.showHelp && m.help != nil:
		view = overlay.Compose(view, m.width, m.height, m.help.View(), place)
	case m.detail.IsOpen():
		view = overlay.Compose(view, m.width, m.height, m.detail.View(), place)
	}
	return view, nil
}

func (m *Model) header() string {
	st := m.theme.Header
	tabs := make([]string, 0, len(navigation.Modes()))
	for _, mode := range navigation.Modes() {
		if mode == m.nav.Mode() {
			tabs = append(tabs, st.ActiveTab.Render(mode.Label()))
			continue
		}
		tabs = append(tabs, st.Tab.Render(mode.Label()))
	}
	left := st.Title.Render("WorldSync") + "  " + m.nav.Title()
	if n := selectionSize(m.selection); n > 0 {
		left += "  " + st.Badge.Render(fmt.Sprintf("%d filters", n))
	}
	right := strings.Join(tabs, "")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return truncate.String(left+" "+right, uint(m.width))
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) footer() string {
	st := m.theme.Footer
	status := st.Status.Render(m.status)
	if m.err != nil {
		status = st.Error.Render(m.status)
	}
	toggle := "f show filters"
	if m.sidebarVisible() {
		toggle = "f hide filters"
	}
	hints := st.Help.Render("? help · " + toggle + " · m/w/d view · [/] move · t today · q quit")
	gap := m.width - lipgloss.Width(status) - lipgloss.Width(hints)
	if gap < 1 {
		return truncate.String(status, uint(m.width))
	}
	return status + strings.Repeat(" ", gap) + hints
}

func selectionSize(s filter.Selection) int {
	return len(s.Countries) + len(s.Religions) + len(s.EventTypes)
}
