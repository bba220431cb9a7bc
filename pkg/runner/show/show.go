package show

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/worldsync/pkg/app"
	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/filter"
	"tableflip.dev/worldsync/pkg/navigation"
	"tableflip.dev/worldsync/pkg/printers"
)

// Show prints one month, week or day of filtered events.
type Show struct {
	Service   *app.Service
	Selection filter.Selection
	State     navigation.ViewState
	WeekStart time.Weekday
	// Today is highlighted in grids.
	Today  event.Date
	ShowID bool
	JSON   bool
	Out    io.Writer
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show, no service")
	}
	engine, err := n.Service.Engine(ctx, n.Selection)
	if err != nil {
		return err
	}

	pp := printers.New(n.Out)
	if n.JSON {
		return printers.JSON(pp.Out, engine.Snap(n.State, n.WeekStart))
	}

	pp.ShowID = n.ShowID
	pp.WeekStart = n.WeekStart
	pp.Today = n.Today
	pp.View(engine, n.State)
	return nil
}
