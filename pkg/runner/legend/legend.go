package legend

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/worldsync/pkg/app"
	"tableflip.dev/worldsync/pkg/calendar"
	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/filter"
	"tableflip.dev/worldsync/pkg/navigation"
	"tableflip.dev/worldsync/pkg/printers"
)

// Legend prints the type colors with how many filtered events of each type
// fall in the view around State.
type Legend struct {
	Service   *app.Service
	Selection filter.Selection
	State     navigation.ViewState
	WeekStart time.Weekday
	JSON      bool
	Out       io.Writer
}

func (n *Legend) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not count events, no service")
	}
	first, last := calendar.Range(n.State, n.WeekStart)
	report, err := n.Service.Report(ctx, n.Selection, first, last)
	if err != nil {
		return err
	}

	entries := calendar.Legend()
	pp := printers.New(n.Out)
	if n.JSON {
		return printers.JSON(pp.Out, calendar.CountedLegend(report.Count))
	}

	counts := make(map[event.Type]int, len(entries))
	for _, l := range entries {
		counts[l.Type] = report.Count(l.Type)
	}
	pp.Title(navigation.Title(n.State))
	pp.Legend(entries, counts)
	return nil
}
