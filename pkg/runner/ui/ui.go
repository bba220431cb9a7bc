package ui

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/worldsync/pkg/app"
	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/filter"
	"tableflip.dev/worldsync/pkg/navigation"
	tuiapp "tableflip.dev/worldsync/pkg/tui/app"
)

// UI runs the interactive calendar until the user quits.
type UI struct {
	Service   *app.Service
	Mode      navigation.Mode
	WeekStart time.Weekday
	Start     event.Date
	ExportDir string
	Selection filter.Selection
	Debug     bool
}

func (d *UI) Do(ctx context.Context) error {
	if d.Service == nil {
		return errors.New("can not start ui, no service")
	}
	return tuiapp.Run(ctx, d.Service, tuiapp.Options{
		Mode:      d.Mode,
		WeekStart: d.WeekStart,
		Start:     d.Start,
		ExportDir: d.ExportDir,
		Selection: d.Selection,
		Debug:     d.Debug,
	})
}
