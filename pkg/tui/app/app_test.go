package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	wsapp "tableflip.dev/worldsync/pkg/app"
	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/filter"
	"tableflip.dev/worldsync/pkg/navigation"
	"tableflip.dev/worldsync/pkg/store"
	"tableflip.dev/worldsync/pkg/tui/components/eventviewer"
	"tableflip.dev/worldsync/pkg/tui/events"
)

func stripANSIString(s string) string {
	var b strings.Builder
	inSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			inSeq = true
			continue
		}
		if inSeq {
			if ansi.IsTerminator(r) {
				inSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func newModel(t *testing.T) *Model {
	t.Helper()
	svc := &wsapp.Service{Fixtures: []event.Event{
		{ID: "diwali", Name: "Diwali", Date: event.MustParseDate("2024-11-01"), Type: event.Religious, Country: "India", Religion: "Hinduism", Description: "Festival of lights."},
		{ID: "thanksgiving", Name: "Thanksgiving", Date: event.MustParseDate("2024-11-28"), Type: event.National, Country: "United States"},
		{ID: "dotd", Name: "Day of the Dead", Date: event.MustParseDate("2024-11-02"), Type: event.Cultural, Country: "Mexico"},
	}}
	now := func() time.Time { return time.Date(2024, time.November, 1, 9, 0, 0, 0, time.UTC) }
	m := New(svc, Options{WeekStart: time.Sunday, Clock: now, ExportDir: t.TempDir(), Copy: func(string) error { return nil }})
	t.Cleanup(m.cancel)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	feed(t, m, m.load())
	return m
}

// feed runs cmd and hands its message back to the model, following up to a
// few chained commands. Batches are skipped.
func feed(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil && i < 4; i++ {
		msg := cmd()
		if msg == nil {
			return
		}
		if _, ok := msg.(tea.BatchMsg); ok {
			return
		}
		_, cmd = m.Update(msg)
	}
}

func press(t *testing.T, m *Model, msg tea.KeyPressMsg) {
	t.Helper()
	_, cmd := m.Update(msg)
	feed(t, m, cmd)
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Text: string(r), Code: r}
}

func TestEnterOnHighlightedEventOpensModalOnly(t *testing.T) {
	m := newModel(t)
	press(t, m, key('e'))
	press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	if !m.detail.IsOpen() {
		t.Fatalf("expected modal open")
	}
	if e, _ := m.detail.Presenter().Current(); e.ID != "diwali" {
		t.Fatalf("expected diwali in modal, got %q", e.ID)
	}
	if m.State().Mode != navigation.ModeMonth {
		t.Fatalf("expected view to stay in month mode, got %s", m.State().Mode)
	}

	view, _ := m.View()
	if !strings.Contains(stripANSIString(view), "Festival of lights.") {
		t.Fatalf("expected modal content in view:\n%s", stripANSIString(view))
	}
}

func TestEnterOnDayShowsDayView(t *testing.T) {
	m := newModel(t)
	press(t, m, tea.KeyPressMsg{Code: tea.KeyRight})
	press(t, m, tea.KeyPressMsg{Code: tea.KeyEnter})

	st := m.State()
	if st.Mode != navigation.ModeDay || st.Current.String() != "2024-11-02" {
		t.Fatalf("expected day view on 2024-11-02, got %s %s", st.Mode, st.Current)
	}
	if m.detail.IsOpen() {
		t.Fatalf("modal should stay closed")
	}
}

func TestModalSwallowsQuit(t *testing.T) {
	m := newModel(t)
	_, _ = m.Update(events.EventSelectMsg{Component: calendarID, Event: event.Event{ID: "x", Name: "X", Date: event.MustParseDate("2024-11-05"), Type: event.Special}})
	_, cmd := m.Update(key('q'))
	if cmd == nil {
		t.Fatalf("expected close command")
	}
	if _, ok := cmd().(events.ModalClosedMsg); !ok {
		t.Fatalf("expected q to close the modal instead of quitting")
	}
	if m.detail.IsOpen() {
		t.Fatalf("expected modal closed")
	}
}

func TestFiltersApplyReloadsEngine(t *testing.T) {
	m := newModel(t)
	press(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	if !m.filters.Focused() || m.calendar.Focused() {
		t.Fatalf("expected focus on filters")
	}
	// The first country in the default catalog is the United States.
	press(t, m, key('x'))
	press(t, m, key('a'))

	if got := m.Selection().Countries; len(got) != 1 || got[0] != "us" {
		t.Fatalf("expected us selected, got %v", got)
	}
	if n := m.engine.Len(); n != 1 {
		t.Fatalf("expected 1 event after filtering, got %d", n)
	}
	view, _ := m.View()
	if !strings.Contains(stripANSIString(view), "1 filters") {
		t.Fatalf("expected filter badge in header")
	}

	press(t, m, key('r'))
	if !m.Selection().IsEmpty() || m.engine.Len() != 3 {
		t.Fatalf("expected reset to restore all events, got %d", m.engine.Len())
	}
}

func TestNavigationKeys(t *testing.T) {
	m := newModel(t)
	tests := []struct {
		key  tea.KeyPressMsg
		mode navigation.Mode
		date string
	}{
		{key(']'), navigation.ModeMonth, "2024-12-01"},
		{key('w'), navigation.ModeWeek, "2024-12-01"},
		{key('['), navigation.ModeWeek, "2024-11-24"},
		{key('d'), navigation.ModeDay, "2024-11-24"},
		{key('n'), navigation.ModeDay, "2024-11-25"},
		{key('t'), navigation.ModeDay, "2024-11-01"},
		{key('m'), navigation.ModeMonth, "2024-11-01"},
	}
	for _, tc := range tests {
		press(t, m, tc.key)
		st := m.State()
		if st.Mode != tc.mode || st.Current.String() != tc.date {
			t.Fatalf("after %q expected %s %s, got %s %s", tc.key.String(), tc.mode, tc.date, st.Mode, st.Current)
		}
		if !m.calendar.State().Current.Equal(st.Current) {
			t.Fatalf("calendar out of sync after %q", tc.key.String())
		}
	}
}

func TestHelpOverlayToggles(t *testing.T) {
	m := newModel(t)
	press(t, m, key('?'))
	view, _ := m.View()
	if !strings.Contains(view, "Holidays, observances") {
		t.Fatalf("expected help overlay:\n%s", view)
	}
	press(t, m, key('?'))
	if m.showHelp {
		t.Fatalf("expected help hidden")
	}
}

func TestDebugLogRecordsMessages(t *testing.T) {
	m := newModel(t)
	press(t, m, key('D'))
	press(t, m, tea.KeyPressMsg{Code: tea.KeyRight})
	if m.eventViewer == nil || m.eventViewer.Len() == 0 {
		t.Fatalf("expected debug entries")
	}
	view, _ := m.View()
	if !strings.Contains(stripANSIString(view), "Focused Sat Nov 2, 2024") {
		t.Fatalf("expected highlight in activity log:\n%s", stripANSIString(view))
	}
}

func TestSummarizeSpeaksCalendar(t *testing.T) {
	diwali := event.Event{ID: "diwali", Name: "Diwali", Date: event.MustParseDate("2024-11-01"), Type: event.Religious}
	tests := map[string]struct {
		msg    tea.Msg
		kind   eventviewer.Kind
		text   string
		failed bool
	}{
		"select": {
			msg:  events.EventSelectMsg{Event: diwali},
			kind: eventviewer.Details,
			text: "Opened Diwali (Religious, 2024-11-01)",
		},
		"filters": {
			msg:  events.FiltersAppliedMsg{Selection: filter.Selection{Countries: []string{"us", "ca"}, EventTypes: []string{"un"}}},
			kind: eventviewer.Filters,
			text: "Applied countries us, ca; event types un",
		},
		"no filters": {
			msg:  events.FiltersAppliedMsg{},
			kind: eventviewer.Filters,
			text: "Applied no filters",
		},
		"store change": {
			msg:  storeChangedMsg{change: store.Change{Type: store.ChangeMonth, Month: "2024-11"}},
			kind: eventviewer.Store,
			text: "Store " + store.ChangeMonth.String() + " in 2024-11, reloading",
		},
		"load failure": {
			msg:    engineLoadedMsg{err: errors.New("disk gone")},
			kind:   eventviewer.Store,
			text:   "Loading events failed: disk gone",
			failed: true,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := summarize(tc.msg)
			if !ok {
				t.Fatalf("expected %T to be logged", tc.msg)
			}
			if got.Kind != tc.kind || got.Text != tc.text || got.Failed != tc.failed {
				t.Fatalf("got %+v", got)
			}
		})
	}

	if _, ok := summarize(events.FocusMsg{}); ok {
		t.Fatalf("focus changes should not be logged")
	}
}

func TestPreselectedFilters(t *testing.T) {
	svc := &wsapp.Service{Fixtures: []event.Event{
		{ID: "diwali", Name: "Diwali", Date: event.MustParseDate("2024-11-01"), Type: event.Religious, Country: "India", Religion: "Hinduism"},
		{ID: "thanksgiving", Name: "Thanksgiving", Date: event.MustParseDate("2024-11-28"), Type: event.National, Country: "United States"},
	}}
	now := func() time.Time { return time.Date(2024, time.November, 1, 9, 0, 0, 0, time.UTC) }
	m := New(svc, Options{Clock: now, Selection: filter.Selection{Countries: []string{"us"}}})
	t.Cleanup(m.cancel)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	feed(t, m, m.load())

	if got := m.Selection().Countries; len(got) != 1 || got[0] != "us" {
		t.Fatalf("expected us preselected, got %v", got)
	}
	if !m.filters.State().Checked(filter.Countries, "us") {
		t.Fatalf("expected sidebar to show us checked")
	}
	view, _ := m.View()
	if strings.Contains(stripANSIString(view), "Diwali") {
		t.Fatalf("expected Diwali filtered out:\n%s", stripANSIString(view))
	}
	if m.engine.Len() != 1 {
		t.Fatalf("expected one event loaded, got %d", m.engine.Len())
	}
}

func TestSidebarToggle(t *testing.T) {
	m := newModel(t)
	if !m.SidebarVisible() {
		t.Fatalf("expected sidebar shown on a wide window")
	}

	press(t, m, key('f'))
	if m.SidebarVisible() || m.filters.Focused() || !m.calendar.Focused() {
		t.Fatalf("expected f to hide the sidebar and leave focus on the calendar")
	}
	view, _ := m.View()
	if strings.Contains(stripANSIString(view), "Religions") {
		t.Fatalf("expected hidden sidebar not drawn:\n%s", stripANSIString(view))
	}
	press(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	if m.filters.Focused() {
		t.Fatalf("tab must not focus a hidden sidebar")
	}

	press(t, m, key('f'))
	if !m.SidebarVisible() || !m.filters.Focused() {
		t.Fatalf("expected f to show and focus the sidebar")
	}
	view, _ = m.View()
	if !strings.Contains(stripANSIString(view), "Religions") {
		t.Fatalf("expected sidebar drawn:\n%s", stripANSIString(view))
	}
}

func TestNarrowWindowNeverFocusesHiddenSidebar(t *testing.T) {
	m := newModel(t)
	press(t, m, tea.KeyPressMsg{Code: tea.KeyTab})
	if !m.filters.Focused() {
		t.Fatalf("expected filters focused on a wide window")
	}

	m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	if m.SidebarVisible() || m.filters.Focused() {
		t.Fatalf("expected shrinking the window to move focus off the sidebar")
	}

	for _, k := range []tea.KeyPressMsg{key('f'), key('f'), {Code: tea.KeyTab}, {Code: tea.KeySpace, Text: " "}, key('a')} {
		press(t, m, k)
		if m.filters.Focused() {
			t.Fatalf("sidebar focused while not drawn after %q", k.String())
		}
	}
	if !m.Selection().IsEmpty() {
		t.Fatalf("expected no filters applied, got %+v", m.Selection())
	}
}
