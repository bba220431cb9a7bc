package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/worldsync/pkg/app"
	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/printers"
	"tableflip.dev/worldsync/pkg/store"
)

// Info explains where settings and events come from.
type Info struct {
	Config  store.Config
	Service *app.Service
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	pp := printers.New(n.Out)
	out := pp.Out

	if override := os.Getenv("WORLDSYNC_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "WORLDSYNC_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "WORLDSYNC_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.path:", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.week_start:", n.Config.WeekStart())
	_, _ = fmt.Fprintln(out, "Config.view:", n.Config.DefaultView())
	catalog := n.Config.CatalogPath()
	if catalog == "" {
		catalog = "built-in"
	}
	_, _ = fmt.Fprintln(out, "Config.catalog:", catalog)
	_, _ = fmt.Fprintln(out, "Config.listen:", n.Config.Listen())

	if n.Service == nil {
		return errors.New("failed to create service")
	}

	stored := 0
	if n.Service.Persistence != nil {
		stored = len(n.Service.Persistence.ListAll(ctx))
	}
	all, err := n.Service.Events(ctx)
	if err != nil {
		return err
	}
	pp.NewLine()
	if stored == 0 {
		_, _ = fmt.Fprintln(out, "Store is empty, showing built-in holidays.")
	}
	pp.TitleWithCount("Events", len(all))
	for _, t := range event.Types() {
		count := 0
		for _, e := range all {
			if e.Type == t {
				count++
			}
		}
		_, _ = fmt.Fprintf(out, "  %-24s %d\n", t.Label(), count)
	}
	return nil
}
