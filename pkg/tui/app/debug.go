package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/worldsync/pkg/filter"
	"tableflip.dev/worldsync/pkg/tui/components/eventviewer"
	"tableflip.dev/worldsync/pkg/tui/events"
)

const logLimit = 400

func (m *Model) toggleDebug() {
	if m.debugEnabled {
		m.debugEnabled = false
		m.eventViewer = nil
		m.status = "Activity log hidden"
		m.layout()
		return
	}
	m.debugEnabled = true
	if m.eventViewer == nil {
		m.eventViewer = eventviewer.NewModel(logLimit)
	}
	m.status = "Activity log visible"
	m.layout()
}

// noteEvent records msg in the activity log while it is open.
func (m *Model) noteEvent(msg tea.Msg) {
	if m.eventViewer == nil {
		return
	}
	if e, ok := summarize(msg); ok {
		m.eventViewer.Record(e)
	}
}

// summarize explains a message in calendar terms. Focus changes and
// messages the log has nothing to say about are skipped.
func summarize(msg tea.Msg) (eventviewer.Entry, bool) {
	const day = "Mon Jan 2, 2006"
	switch v := msg.(type) {
	case tea.KeyPressMsg:
		return eventviewer.Entry{Kind: eventviewer.Input, Text: "key " + v.String()}, true
	case tea.WindowSizeMsg:
		return eventviewer.Entry{Kind: eventviewer.Input, Text: fmt.Sprintf("resize %dx%d", v.Width, v.Height)}, true

	case events.DayHighlightMsg:
		return eventviewer.Entry{Kind: eventviewer.Navigation, Text: "Focused " + v.Date.Format(day)}, true
	case events.DayActivateMsg:
		return eventviewer.Entry{Kind: eventviewer.Navigation, Text: "Day view for " + v.Date.Format(day)}, true

	case events.EventHighlightMsg:
		return eventviewer.Entry{Kind: eventviewer.Details, Text: "Highlighted " + v.Name}, true
	case events.EventSelectMsg:
		e := v.Event
		return eventviewer.Entry{Kind: eventviewer.Details, Text: fmt.Sprintf("Opened %s (%s, %s)", e.Name, e.Type.Label(), e.Date)}, true
	case events.ModalClosedMsg:
		return eventviewer.Entry{Kind: eventviewer.Details, Text: "Closed event details"}, true
	case events.ExportedMsg:
		if v.Err != nil {
			return eventviewer.Entry{Kind: eventviewer.Details, Text: fmt.Sprintf("Saving %s failed: %v", v.EventID, v.Err), Failed: true}, true
		}
		return eventviewer.Entry{Kind: eventviewer.Details, Text: "Saved " + v.Path}, true
	case events.SharedMsg:
		if v.Err != nil {
			return eventviewer.Entry{Kind: eventviewer.Details, Text: fmt.Sprintf("Copying %s failed: %v", v.EventID, v.Err), Failed: true}, true
		}
		return eventviewer.Entry{Kind: eventviewer.Details, Text: "Copied " + v.Text}, true

	case events.FiltersAppliedMsg:
		return eventviewer.Entry{Kind: eventviewer.Filters, Text: "Applied " + describeSelection(v.Selection)}, true
	case events.FiltersResetMsg:
		return eventviewer.Entry{Kind: eventviewer.Filters, Text: "Cleared every filter"}, true

	case engineLoadedMsg:
		if v.err != nil {
			return eventviewer.Entry{Kind: eventviewer.Store, Text: "Loading events failed: " + v.err.Error(), Failed: true}, true
		}
		return eventviewer.Entry{Kind: eventviewer.Store, Text: fmt.Sprintf("Showing %d events", v.engine.Len())}, true
	case storeChangedMsg:
		text := "Store " + v.change.Type.String()
		if v.change.Month != "" {
			text += " in " + v.change.Month
		}
		return eventviewer.Entry{Kind: eventviewer.Store, Text: text + ", reloading"}, true
	case watchFailedMsg:
		return eventviewer.Entry{Kind: eventviewer.Store, Text: "Live reload unavailable: " + v.err.Error(), Failed: true}, true
	}
	return eventviewer.Entry{}, false
}

// describeSelection reads like "countries us, ca; types un".
func describeSelection(sel filter.Selection) string {
	var parts []string
	for _, cat := range filter.Categories() {
		if ids := sel.IDs(cat); len(ids) > 0 {
			parts = append(parts, strings.ToLower(cat.Label())+" "+strings.Join(ids, ", "))
		}
	}
	if len(parts) == 0 {
		return "no filters"
	}
	return strings.Join(parts, "; ")
}

func (m *Model) computeDebugHeight(totalRows int) int {
	if totalRows <= 4 {
		return 0
	}
	return min(max(totalRows/3, 5), 12, totalRows-1)
}
