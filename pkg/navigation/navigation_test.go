package navigation

import (
	"testing"
	"time"

	"tableflip.dev/worldsync/pkg/event"
)

func fixedClock(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 9, 30, 0, 0, time.Local) }
}

func TestPreviousNextStepByMode(t *testing.T) {
	cases := []struct {
		mode     Mode
		start    string
		next     string
		previous string
	}{
		{ModeMonth, "2024-01-15", "2024-02-15", "2023-12-15"},
		{ModeWeek, "2024-01-03", "2024-01-10", "2023-12-27"},
		{ModeDay, "2024-01-01", "2024-01-02", "2023-12-31"},
	}
	for _, tc := range cases {
		c := New(tc.mode, event.MustParseDate(tc.start))
		c.Next()
		if got := c.Current().String(); got != tc.next {
			t.Fatalf("%s next: expected %s, got %s", tc.mode, tc.next, got)
		}
		c.SetCurrent(event.MustParseDate(tc.start))
		c.Previous()
		if got := c.Current().String(); got != tc.previous {
			t.Fatalf("%s previous: expected %s, got %s", tc.mode, tc.previous, got)
		}
	}
}

func TestPreviousThenNextRoundTrips(t *testing.T) {
	for _, mode := range Modes() {
		start := event.MustParseDate("2024-06-15")
		c := New(mode, start)
		c.Previous()
		c.Next()
		if !c.Current().Equal(start) {
			t.Fatalf("%s: expected %s after round trip, got %s", mode, start, c.Current())
		}
	}
}

func TestMonthStepIsLossyAtMonthEnd(t *testing.T) {
	c := New(ModeMonth, event.MustParseDate("2024-03-31"))
	c.Previous()
	if got := c.Current().String(); got != "2024-02-29" {
		t.Fatalf("expected clamp to 2024-02-29, got %s", got)
	}
	c.Next()
	if got := c.Current().String(); got != "2024-03-29" {
		t.Fatalf("expected 2024-03-29 (not 2024-03-31), got %s", got)
	}

	c.SetCurrent(event.MustParseDate("2024-01-31"))
	c.Next()
	c.Previous()
	if got := c.Current().String(); got != "2024-01-29" {
		t.Fatalf("expected 2024-01-29, got %s", got)
	}
}

func TestTodayIgnoresMode(t *testing.T) {
	for _, mode := range Modes() {
		c := New(mode, event.MustParseDate("2020-05-05"), WithClock(fixedClock(2024, time.July, 4)))
		c.Today()
		if got := c.Current().String(); got != "2024-07-04" {
			t.Fatalf("%s: expected today 2024-07-04, got %s", mode, got)
		}
		if c.Mode() != mode {
			t.Fatalf("today changed mode to %s", c.Mode())
		}
	}
}

func TestSetModeKeepsCurrent(t *testing.T) {
	start := event.MustParseDate("2024-01-03")
	c := New(ModeMonth, start)
	for _, mode := range []Mode{ModeWeek, ModeDay, ModeMonth} {
		c.SetMode(mode)
		if !c.Current().Equal(start) {
			t.Fatalf("SetMode(%s) moved current to %s", mode, c.Current())
		}
	}
}

func TestNewDefaultsToToday(t *testing.T) {
	c := New("", event.Date{}, WithClock(fixedClock(2025, time.March, 9)))
	if c.Mode() != ModeMonth {
		t.Fatalf("expected month mode, got %s", c.Mode())
	}
	if got := c.Current().String(); got != "2025-03-09" {
		t.Fatalf("expected 2025-03-09, got %s", got)
	}
}

func TestTitle(t *testing.T) {
	d := event.MustParseDate("2024-01-03")
	cases := map[Mode]string{
		ModeMonth: "January 2024",
		ModeWeek:  "Week of Jan 3, 2024",
		ModeDay:   "January 3, 2024",
	}
	for mode, want := range cases {
		if got := Title(ViewState{Mode: mode, Current: d}); got != want {
			t.Fatalf("%s: expected %q, got %q", mode, want, got)
		}
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"month": ModeMonth, "Weekly": ModeWeek, "daily": ModeDay, "": ModeMonth} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q) = %s, %v", in, got, err)
		}
	}
	if _, err := ParseMode("year"); err == nil {
		t.Fatalf("expected error for year")
	}
}
