package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/worldsync/pkg/app"
	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/filter"
	"tableflip.dev/worldsync/pkg/ics"
)

// Export writes the filtered events between From and To as iCalendar.
type Export struct {
	Service   *app.Service
	Selection filter.Selection
	// From and To bound the export inclusively. Zero leaves that end open.
	From event.Date
	To   event.Date
	// Path is the destination file. Empty or "-" writes to Out.
	Path string
	Name string
	Out  io.Writer
}

func (n *Export) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not export, no service")
	}
	events, err := Events(ctx, n.Service, n.Selection, n.From, n.To)
	if err != nil {
		return err
	}

	var opts []ics.Option
	if n.Name != "" {
		opts = append(opts, ics.WithName(n.Name))
	}

	if n.Path == "" || n.Path == "-" {
		out := n.Out
		if out == nil {
			out = os.Stdout
		}
		return ics.Export(out, events, opts...)
	}

	f, err := os.Create(n.Path)
	if err != nil {
		return err
	}
	if err := ics.Export(f, events, opts...); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if n.Out != nil {
		_, _ = fmt.Fprintf(n.Out, "Wrote %d events to %s\n", len(events), n.Path)
	}
	return nil
}

// Events returns the events accepted by sel inside the optional bounds.
func Events(ctx context.Context, svc *app.Service, sel filter.Selection, from, to event.Date) ([]event.Event, error) {
	engine, err := svc.Engine(ctx, sel)
	if err != nil {
		return nil, err
	}
	all := engine.Events()
	out := all[:0]
	for _, e := range all {
		if !from.IsZero() && e.Date.Before(from) {
			continue
		}
		if !to.IsZero() && e.Date.After(to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
