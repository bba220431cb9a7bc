package options

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	now := func() time.Time { return time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC) }
	tests := map[string]struct {
		in      string
		want    string
		wantErr bool
	}{
		"empty is today": {in: "", want: "2024-03-09"},
		"iso":            {in: "2025-01-02", want: "2025-01-02"},
		"loose iso":      {in: "2025-1-2", want: "2025-01-02"},
		"short":          {in: "11/1", want: "2024-11-01"},
		"garbage":        {in: "tomorrow", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseDate(tc.in, now)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestRangeBounds(t *testing.T) {
	r := RangeOptions{From: "2024-11-1"}
	from, to, err := r.Bounds(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if from.String() != "2024-11-01" || !to.IsZero() {
		t.Fatalf("unexpected bounds %s %s", from, to)
	}
}

func TestHandleErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	o := OutputOptions{JSON: true, Out: &buf}
	if err := o.HandleError(errors.New("boom")); err != nil {
		t.Fatalf("expected error to be rendered, got %v", err)
	}
	if strings.TrimSpace(buf.String()) != `{"error":"boom"}` {
		t.Fatalf("unexpected output %q", buf.String())
	}

	o.JSON = false
	if err := o.HandleError(errors.New("boom")); err == nil {
		t.Fatalf("expected error passthrough without --json")
	}
}

func TestFilterSelection(t *testing.T) {
	f := FilterOptions{Countries: []string{"us"}, Types: []string{"un"}}
	sel := f.Selection()
	if len(sel.Countries) != 1 || len(sel.Religions) != 0 || sel.EventTypes[0] != "un" {
		t.Fatalf("unexpected selection %+v", sel)
	}
}
