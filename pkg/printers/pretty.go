// Package printers renders calendar views, events and the filter catalog as
// colored terminal text for the non-interactive commands.
package printers

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"tableflip.dev/worldsync/pkg/calendar"
	"tableflip.dev/worldsync/pkg/detail"
	"tableflip.dev/worldsync/pkg/event"
)

// PrettyPrint writes human readable output.
type PrettyPrint struct {
	Out       io.Writer
	Color     bool
	ShowID    bool
	WeekStart time.Weekday
	// Today is highlighted in grids. Zero disables the highlight.
	Today event.Date
}

// New returns a printer for out. Color is on only when out is a terminal.
func New(out io.Writer) *PrettyPrint {
	if out == nil {
		out = color.Output
	}
	return &PrettyPrint{Out: out, Color: IsTerminal(out)}
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (pp *PrettyPrint) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if pp.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// swatch paints s in a hex color, or leaves it plain without color.
func (pp *PrettyPrint) swatch(hex, s string) string {
	if !pp.Color {
		return s
	}
	out := termenv.NewOutput(pp.Out)
	return out.String(s).Foreground(out.Color(hex)).String()
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.Out, "")
}

func (pp *PrettyPrint) Title(title string) {
	_, _ = pp.style(color.Bold, color.Underline).Fprintln(pp.Out, title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := pp.style(color.Bold, color.Underline)
	c := pp.style(color.Faint)

	_, _ = t.Fprint(pp.Out, title)
	_, _ = c.Fprintf(pp.Out, " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.Out, " event")
	default:
		_, _ = c.Fprintln(pp.Out, " events")
	}
}

// Events prints a table of events, one row each.
func (pp *PrettyPrint) Events(events ...event.Event) {
	if len(events) == 0 {
		_, _ = pp.style(color.Faint, color.Italic).Fprint(pp.Out, " none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	for _, e := range events {
		row := []interface{}{e.Date.Format("Mon Jan 2"), pp.swatch(calendar.Color(e.Type), "●") + " " + e.Name, e.Type.Label(), place(e)}
		if pp.ShowID {
			row = append([]interface{}{pp.style(color.FgHiYellow, color.Italic, color.Faint).Sprint(e.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.Out, tbl)
	pp.NewLine()
}

func place(e event.Event) string {
	parts := make([]string, 0, 2)
	if e.Country != "" {
		parts = append(parts, e.Country)
	}
	if e.Religion != "" {
		parts = append(parts, e.Religion)
	}
	return strings.Join(parts, ", ")
}

// Event prints every field of e followed by both detail tabs.
func (pp *PrettyPrint) Event(e event.Event) {
	b := pp.style(color.Bold)
	f := pp.style(color.Faint)

	_, _ = b.Fprintf(pp.Out, "%s %s\n", pp.swatch(calendar.Color(e.Type), "●"), e.Name)
	_, _ = f.Fprintf(pp.Out, "%s · %s", e.Date.Format("Monday, January 2, 2006"), e.Type.Label())
	if p := place(e); p != "" {
		_, _ = f.Fprintf(pp.Out, " · %s", p)
	}
	pp.NewLine()
	if pp.ShowID {
		_, _ = f.Fprintf(pp.Out, "id: %s\n", e.ID)
	}

	for _, tab := range detail.Tabs() {
		pp.NewLine()
		pp.Title(tab.String())
		for _, s := range detail.Sections(e, tab) {
			if s.Title != "" {
				_, _ = b.Fprintln(pp.Out, s.Title)
			}
			_, _ = fmt.Fprintln(pp.Out, wordwrap.String(s.Body, 80))
		}
	}
	pp.NewLine()
}

// Legend prints the type colors. counts may be nil; otherwise each row shows
// how many events of the type are in view.
func (pp *PrettyPrint) Legend(entries []calendar.LegendEntry, counts map[event.Type]int) {
	bold := pp.style(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	if counts != nil {
		tbl.AddRow(bold.Sprint("  Type"), bold.Sprint("Events"))
	} else {
		tbl.AddRow(bold.Sprint("  Type"))
	}
	for _, l := range entries {
		label := pp.swatch(l.Color, "●") + " " + l.Label
		if counts != nil {
			tbl.AddRow(label, counts[l.Type])
		} else {
			tbl.AddRow(label)
		}
	}
	_, _ = fmt.Fprintln(pp.Out, tbl)
}
