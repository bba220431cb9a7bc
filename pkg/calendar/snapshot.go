package calendar

import (
	"time"

	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/navigation"
)

// Snapshot is a rendered view in data form, shared by the JSON outputs.
type Snapshot struct {
	View       navigation.Mode `json:"view"`
	Title      string          `json:"title"`
	RangeStart event.Date      `json:"range_start"`
	RangeEnd   event.Date      `json:"range_end"`
	Days       []Day           `json:"days"`
	Total      int             `json:"total"`
}

// Snap captures the visible days of a view state.
func (e *Engine) Snap(state navigation.ViewState, weekStart time.Weekday) Snapshot {
	first, last := Range(state, weekStart)
	days := e.Days(first, last)
	total := 0
	for i := range days {
		if days[i].Events == nil {
			days[i].Events = []event.Event{}
		}
		total += len(days[i].Events)
	}
	return Snapshot{
		View:       state.Mode,
		Title:      navigation.Title(state),
		RangeStart: first,
		RangeEnd:   last,
		Days:       days,
		Total:      total,
	}
}
