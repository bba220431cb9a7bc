package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/worldsync/pkg/calendar"
	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/navigation"
)

// NoEventsToday is printed for an empty day view.
const NoEventsToday = "No events scheduled for this day"

const width = len("11 12 13 14 15 16 17") // an example week

// View prints the state's view of the engine.
func (pp *PrettyPrint) View(engine *calendar.Engine, state navigation.ViewState) {
	switch state.Mode {
	case navigation.ModeWeek:
		pp.Week(engine, state)
	case navigation.ModeDay:
		pp.Day(engine, state)
	default:
		pp.Month(engine, state)
	}
}

// Month prints a month grid, days with events in bold, followed by the
// month's events.
func (pp *PrettyPrint) Month(engine *calendar.Engine, state navigation.ViewState) {
	title := navigation.Title(state)
	tf := pp.style(color.FgWhite, color.Italic)
	mid := (width - len(title)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(pp.Out, "%s%s\n", strings.Repeat(" ", mid), title)

	hf := pp.style(color.Faint)
	h := calendar.WeekdayHeaders(pp.WeekStart)
	_, _ = hf.Fprintln(pp.Out, strings.Join(h[:], " "))

	l1 := pp.style(color.Faint, color.FgWhite)
	l2 := pp.style(color.Bold, color.FgHiWhite)
	today := pp.style(color.Bold, color.Underline)

	for _, week := range calendar.MonthGrid(state.Current, pp.WeekStart) {
		for i, d := range week {
			if i > 0 {
				_, _ = fmt.Fprint(pp.Out, " ")
			}
			if d.IsZero() {
				_, _ = fmt.Fprint(pp.Out, "  ")
				continue
			}
			printer := l1
			if len(engine.EventsOn(d)) > 0 {
				printer = l2
			}
			if !pp.Today.IsZero() && d.Equal(pp.Today) {
				printer = today
			}
			_, _ = printer.Fprintf(pp.Out, "%2d", d.Day)
		}
		pp.NewLine()
	}
	pp.NewLine()

	first, last := calendar.Range(state, pp.WeekStart)
	events := engine.Between(first, last)
	pp.TitleWithCount("Events", len(events))
	pp.Events(events...)
}

// Week prints the seven days of the week with their events inline.
func (pp *PrettyPrint) Week(engine *calendar.Engine, state navigation.ViewState) {
	pp.Title(navigation.Title(state))

	p := pp.style()
	b := pp.style(color.Bold)
	u := pp.style(color.Bold, color.Underline)
	f := pp.style(color.Faint, color.Italic)

	for _, d := range calendar.Week(state.Current, pp.WeekStart) {
		printer := b
		if !pp.Today.IsZero() && d.Equal(pp.Today) {
			printer = u
		}
		_, _ = printer.Fprintf(pp.Out, "%s", d.Format("Mon Jan 2"))

		events := engine.EventsOn(d)
		if len(events) == 0 {
			_, _ = f.Fprint(pp.Out, "   -\n")
			continue
		}
		for i, e := range events {
			if i == 0 {
				_, _ = p.Fprint(pp.Out, "   ")
			} else {
				_, _ = p.Fprint(pp.Out, strings.Repeat(" ", len("Mon Jan 2")+3))
			}
			_, _ = p.Fprintf(pp.Out, "%s %s\n", pp.swatch(calendar.Color(e.Type), "●"), e.Name)
		}
	}
	pp.NewLine()
}

// Day prints every event of the focus day in full.
func (pp *PrettyPrint) Day(engine *calendar.Engine, state navigation.ViewState) {
	events := engine.EventsOn(state.Current)
	pp.TitleWithCount(navigation.Title(state), len(events))
	pp.NewLine()

	if len(events) == 0 {
		_, _ = pp.style(color.Faint, color.Italic).Fprintln(pp.Out, NoEventsToday)
		pp.NewLine()
		return
	}
	for _, e := range events {
		pp.dayEvent(e)
	}
}

func (pp *PrettyPrint) dayEvent(e event.Event) {
	b := pp.style(color.Bold)
	f := pp.style(color.Faint)

	_, _ = b.Fprintf(pp.Out, "%s %s", pp.swatch(calendar.Color(e.Type), "●"), e.Name)
	_, _ = f.Fprintf(pp.Out, "  %s\n", e.Type.Label())
	if p := place(e); p != "" {
		_, _ = f.Fprintf(pp.Out, "  %s\n", p)
	}
	if e.Description != "" {
		_, _ = fmt.Fprintf(pp.Out, "  %s\n", e.Description)
	}
	if pp.ShowID {
		_, _ = f.Fprintf(pp.Out, "  id: %s\n", e.ID)
	}
	pp.NewLine()
}
