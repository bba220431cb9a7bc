// Package events defines the messages TUI components exchange through the
// Bubble Tea update loop.
package events

import (
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/filter"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// DayHighlightMsg is emitted when the calendar cursor moves to a day.
type DayHighlightMsg struct {
	Component ComponentID
	Date      event.Date
}

// DayHighlightCmd wraps DayHighlightMsg in a tea.Cmd.
func DayHighlightCmd(component ComponentID, d event.Date) tea.Cmd {
	return func() tea.Msg {
		return DayHighlightMsg{Component: component, Date: d}
	}
}

// DayActivateMsg is emitted when the user activates a day with no event
// highlighted. The root switches to the day view on that date.
type DayActivateMsg struct {
	Component ComponentID
	Date      event.Date
}

// DayActivateCmd wraps DayActivateMsg in a tea.Cmd.
func DayActivateCmd(component ComponentID, d event.Date) tea.Cmd {
	return func() tea.Msg {
		return DayActivateMsg{Component: component, Date: d}
	}
}

// EventHighlightMsg fires whenever the calendar highlights an event.
type EventHighlightMsg struct {
	Component ComponentID
	EventID   string
	Name      string
}

// EventSelectMsg fires when the user activates a highlighted event. It
// replaces the day activation for the same key press.
type EventSelectMsg struct {
	Component ComponentID
	Event     event.Event
}

// EventSelectCmd wraps EventSelectMsg in a tea.Cmd.
func EventSelectCmd(component ComponentID, e event.Event) tea.Cmd {
	return func() tea.Msg {
		return EventSelectMsg{Component: component, Event: e}
	}
}

// FiltersAppliedMsg carries the checked ids exported by the sidebar.
type FiltersAppliedMsg struct {
	Component ComponentID
	Selection filter.Selection
}

// FiltersAppliedCmd wraps FiltersAppliedMsg in a tea.Cmd.
func FiltersAppliedCmd(component ComponentID, sel filter.Selection) tea.Cmd {
	return func() tea.Msg {
		return FiltersAppliedMsg{Component: component, Selection: sel}
	}
}

// FiltersResetMsg announces that every filter was cleared.
type FiltersResetMsg struct {
	Component ComponentID
}

// FiltersResetCmd wraps FiltersResetMsg in a tea.Cmd.
func FiltersResetCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return FiltersResetMsg{Component: component}
	}
}

// ModalClosedMsg is emitted when the event detail modal is dismissed.
type ModalClosedMsg struct {
	Component ComponentID
}

// ModalClosedCmd wraps ModalClosedMsg in a tea.Cmd.
func ModalClosedCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return ModalClosedMsg{Component: component}
	}
}

// ExportedMsg reports the result of writing an event to an .ics file.
type ExportedMsg struct {
	Component ComponentID
	EventID   string
	Path      string
	Err       error
}

// SharedMsg reports the result of copying an event summary.
type SharedMsg struct {
	Component ComponentID
	EventID   string
	Text      string
	Err       error
}

// FocusMsg indicates a component just gained focus.
type FocusMsg struct {
	Component ComponentID
}

// BlurMsg indicates a component just lost focus.
type BlurMsg struct {
	Component ComponentID
}

// FocusCmd wraps a FocusMsg in a tea.Cmd helper.
func FocusCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return FocusMsg{Component: component}
	}
}

// BlurCmd wraps a BlurMsg in a tea.Cmd helper.
func BlurCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return BlurMsg{Component: component}
	}
}
