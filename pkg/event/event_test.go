package event

import "testing"

func TestValidate(t *testing.T) {
	good := Event{ID: "1", Name: "New Year's Day", Date: MustParseDate("2024-01-01"), Type: National}
	if err := good.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := []Event{
		{Name: "x", Date: good.Date, Type: National},
		{ID: "1", Date: good.Date, Type: National},
		{ID: "1", Name: "x", Type: National},
		{ID: "1", Name: "x", Date: good.Date, Type: "holiday"},
	}
	for i, e := range bad {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestTypeLabel(t *testing.T) {
	cases := map[Type]string{
		National:  "National",
		Religious: "Religious",
		UN:        "UN",
	}
	for typ, want := range cases {
		if got := typ.Label(); got != want {
			t.Fatalf("%s: expected %q, got %q", typ, want, got)
		}
	}
	if _, err := ParseType(" Cultural "); err != nil {
		t.Fatalf("expected Cultural to parse: %v", err)
	}
}

func TestSortOrdersByDateThenName(t *testing.T) {
	events := []Event{
		{ID: "3", Name: "B", Date: MustParseDate("2024-02-10")},
		{ID: "1", Name: "Z", Date: MustParseDate("2024-01-01")},
		{ID: "2", Name: "A", Date: MustParseDate("2024-02-10")},
	}
	Sort(events)
	got := []string{events[0].ID, events[1].ID, events[2].ID}
	want := []string{"1", "2", "3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestCloneDoesNotShareVariations(t *testing.T) {
	e := Event{RegionalVariations: []RegionalVariation{{Region: "North", Details: "a"}}}
	c := e.Clone()
	c.RegionalVariations[0].Details = "b"
	if e.RegionalVariations[0].Details != "a" {
		t.Fatalf("clone mutated the original")
	}
}
