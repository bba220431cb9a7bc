package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/worldsync/pkg/event"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions picks the day a view is anchored on.
type OnOptions struct {
	OnString string
	// Now is the clock used for today and the short form. Nil is time.Now.
	Now func() time.Time
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2024-11-1" or --on="11/1". Defaults to today.`)
}

// GetOn parses the --on flag. An empty flag is today; the short form is in
// the current year.
func (o *OnOptions) GetOn() (event.Date, error) {
	return ParseDate(o.OnString, o.Now)
}

// ParseDate accepts 2024-1-2, 2024-01-02 and 1/2.
func ParseDate(s string, now func() time.Time) (event.Date, error) {
	if now == nil {
		now = time.Now
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return event.Today(now), nil
	}
	if t, err := time.Parse(layoutISO, s); err == nil {
		return event.FromTime(t), nil
	}
	t, err := time.Parse(layoutISOShort, s)
	if err != nil {
		return event.Date{}, fmt.Errorf("invalid date %q, want 2006-1-2 or 1/2", s)
	}
	return event.NewDate(now().Year(), t.Month(), t.Day()), nil
}

// RangeOptions bounds an export.
type RangeOptions struct {
	From string
	To   string
}

func AddRangeArgs(cmd *cobra.Command, o *RangeOptions) {
	cmd.Flags().StringVar(&o.From, "from", "", "First day to include.")
	cmd.Flags().StringVar(&o.To, "to", "", "Last day to include.")
}

// Bounds parses the flags. Missing ends are zero.
func (o *RangeOptions) Bounds(now func() time.Time) (event.Date, event.Date, error) {
	var from, to event.Date
	var err error
	if strings.TrimSpace(o.From) != "" {
		if from, err = ParseDate(o.From, now); err != nil {
			return from, to, err
		}
	}
	if strings.TrimSpace(o.To) != "" {
		if to, err = ParseDate(o.To, now); err != nil {
			return from, to, err
		}
	}
	return from, to, nil
}
