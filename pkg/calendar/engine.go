// Package calendar groups events by calendar day and computes the days each
// view mode shows.
package calendar

import (
	"time"

	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/navigation"
)

// Engine answers per-day event queries over a fixed set of events.
type Engine struct {
	events []event.Event
	byDay  map[event.Date][]event.Event
}

// New indexes events by day. Events keep their input order within a day.
func New(events []event.Event) *Engine {
	e := &Engine{
		events: make([]event.Event, 0, len(events)),
		byDay:  make(map[event.Date][]event.Event, len(events)),
	}
	for _, ev := range events {
		ev = ev.Clone()
		e.events = append(e.events, ev)
		e.byDay[ev.Date] = append(e.byDay[ev.Date], ev)
	}
	return e
}

// Events returns every indexed event in input order.
func (e *Engine) Events() []event.Event {
	out := make([]event.Event, len(e.events))
	copy(out, e.events)
	return out
}

// Len is the number of indexed events.
func (e *Engine) Len() int { return len(e.events) }

// EventsOn returns the events whose date is d. The result is never nil.
func (e *Engine) EventsOn(d event.Date) []event.Event {
	matched := e.byDay[event.Date{Year: d.Year, Month: d.Month, Day: d.Day}]
	out := make([]event.Event, len(matched))
	copy(out, matched)
	return out
}

// Find returns the event with the given id.
func (e *Engine) Find(id string) (event.Event, bool) {
	for _, ev := range e.events {
		if ev.ID == id {
			return ev, true
		}
	}
	return event.Event{}, false
}

// Between returns the events from first through last inclusive, by date.
func (e *Engine) Between(first, last event.Date) []event.Event {
	out := make([]event.Event, 0)
	for _, ev := range e.events {
		if ev.Date.Before(first) || ev.Date.After(last) {
			continue
		}
		out = append(out, ev)
	}
	event.Sort(out)
	return out
}

// Day is one visible day and its events.
type Day struct {
	Date   event.Date    `json:"date"`
	Events []event.Event `json:"events"`
}

// Days groups the events for each day from first through last.
func (e *Engine) Days(first, last event.Date) []Day {
	var days []Day
	for d := first; !d.After(last); d = d.AddDays(1) {
		days = append(days, Day{Date: d, Events: e.EventsOn(d)})
	}
	return days
}

// Visible returns the days shown for a view state: the whole month, the
// seven days of the week, or the single focus day.
func (e *Engine) Visible(state navigation.ViewState, weekStart time.Weekday) []Day {
	first, last := Range(state, weekStart)
	return e.Days(first, last)
}

// Range returns the first and last day a view state shows.
func Range(state navigation.ViewState, weekStart time.Weekday) (event.Date, event.Date) {
	switch state.Mode {
	case navigation.ModeWeek:
		week := Week(state.Current, weekStart)
		return week[0], week[6]
	case navigation.ModeDay:
		return state.Current, state.Current
	default:
		first := state.Current.FirstOfMonth()
		return first, first.AddMonths(1).AddDays(-1)
	}
}

// Week returns the seven days containing d, starting on weekStart.
func Week(d event.Date, weekStart time.Weekday) [7]event.Date {
	offset := (int(d.Weekday()) - int(weekStart) + 7) % 7
	start := d.AddDays(-offset)
	var week [7]event.Date
	for i := range week {
		week[i] = start.AddDays(i)
	}
	return week
}

// MonthGrid returns whole weeks covering d's month. Cells outside the month
// are zero Dates.
func MonthGrid(d event.Date, weekStart time.Weekday) [][7]event.Date {
	first := d.FirstOfMonth()
	daysInMonth := event.DaysIn(first.Year, first.Month)
	offset := (int(first.Weekday()) - int(weekStart) + 7) % 7
	rows := (offset + daysInMonth + 6) / 7

	grid := make([][7]event.Date, rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < 7; col++ {
			day := row*7 + col - offset + 1
			if day < 1 || day > daysInMonth {
				continue
			}
			grid[row][col] = event.Date{Year: first.Year, Month: first.Month, Day: day}
		}
	}
	return grid
}

// WeekdayHeaders returns two-letter weekday names starting at weekStart.
func WeekdayHeaders(weekStart time.Weekday) [7]string {
	var out [7]string
	for i := range out {
		out[i] = time.Weekday((int(weekStart) + i) % 7).String()[:2]
	}
	return out
}
