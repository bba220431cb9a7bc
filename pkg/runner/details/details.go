package details

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/worldsync/pkg/app"
	"tableflip.dev/worldsync/pkg/printers"
)

// Details prints both tabs of one event.
type Details struct {
	Service *app.Service
	ID      string
	JSON    bool
	Out     io.Writer
}

func (n *Details) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get event, no service")
	}
	e, err := n.Service.Event(ctx, n.ID)
	if err != nil {
		return err
	}
	pp := printers.New(n.Out)
	if n.JSON {
		return printers.JSON(pp.Out, e)
	}
	pp.Event(e)
	return nil
}
