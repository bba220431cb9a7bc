// Package navigation holds the calendar's view mode and focus date and turns
// previous/next/today intents into date arithmetic.
package navigation

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/worldsync/pkg/event"
)

// Mode selects the calendar layout and the navigation step.
type Mode string

const (
	// ModeMonth shows a month grid and steps by one month.
	ModeMonth Mode = "month"
	// ModeWeek shows seven day columns and steps by one week.
	ModeWeek Mode = "week"
	// ModeDay lists a single day and steps by one day.
	ModeDay Mode = "day"
)

// Modes lists the view modes in tab order.
func Modes() []Mode {
	return []Mode{ModeMonth, ModeWeek, ModeDay}
}

// Label is the tab caption for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeWeek:
		return "Week"
	case ModeDay:
		return "Day"
	default:
		return "Month"
	}
}

// ParseMode accepts month/week/day and the monthly/weekly/daily spellings.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "month", "monthly", "m":
		return ModeMonth, nil
	case "week", "weekly", "w":
		return ModeWeek, nil
	case "day", "daily", "d":
		return ModeDay, nil
	}
	return "", fmt.Errorf("navigation: unknown view mode %q", s)
}

// ViewState is the pair the calendar renders from. Current is the anchor the
// view is computed around, not necessarily today.
type ViewState struct {
	Mode    Mode
	Current event.Date
}

// Controller owns a ViewState. It is not safe for concurrent use; the UI
// drives it from its single update loop.
type Controller struct {
	state ViewState
	now   func() time.Time
}

// Option customizes a Controller.
type Option func(*Controller)

// WithClock overrides the wall clock used by Today.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// New returns a controller in the given mode focused on current. A zero
// current date means today.
func New(mode Mode, current event.Date, opts ...Option) *Controller {
	c := &Controller{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if mode == "" {
		mode = ModeMonth
	}
	if current.IsZero() {
		current = event.Today(c.now)
	}
	c.state = ViewState{Mode: mode, Current: current}
	return c
}

// State returns a copy of the current view state.
func (c *Controller) State() ViewState { return c.state }

// Mode returns the active view mode.
func (c *Controller) Mode() Mode { return c.state.Mode }

// Current returns the focus date.
func (c *Controller) Current() event.Date { return c.state.Current }

// Previous steps the focus date back by one unit of the current mode.
func (c *Controller) Previous() {
	c.state.Current = Step(c.state.Mode, c.state.Current, -1)
}

// Next steps the focus date forward by one unit of the current mode.
func (c *Controller) Next() {
	c.state.Current = Step(c.state.Mode, c.state.Current, 1)
}

// Today moves the focus date to the clock's current day, whatever the mode.
func (c *Controller) Today() {
	c.state.Current = event.Today(c.now)
}

// SetMode switches the layout and leaves the focus date alone.
func (c *Controller) SetMode(mode Mode) {
	c.state.Mode = mode
}

// SetCurrent focuses a specific day, as when a day is picked in a view.
func (c *Controller) SetCurrent(d event.Date) {
	if d.IsZero() {
		return
	}
	c.state.Current = d
}

// Title renders the header caption for the state.
func (c *Controller) Title() string {
	return Title(c.state)
}

// Step moves d by n units of mode. Month steps clamp to the last day of the
// target month, which makes previous-then-next lossy around month ends:
// March 31 back one month is February 29, and forward again is March 29.
func Step(mode Mode, d event.Date, n int) event.Date {
	switch mode {
	case ModeWeek:
		return d.AddDays(7 * n)
	case ModeDay:
		return d.AddDays(n)
	default:
		return d.AddMonths(n)
	}
}

// Title renders the header caption for a view state.
func Title(s ViewState) string {
	switch s.Mode {
	case ModeWeek:
		return "Week of " + s.Current.Format("Jan 2, 2006")
	case ModeDay:
		return s.Current.Format("January 2, 2006")
	default:
		return s.Current.Format("January 2006")
	}
}
