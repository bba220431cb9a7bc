package store

import (
	"testing"
	"time"

	"tableflip.dev/worldsync/pkg/event"
)

func TestFixtures(t *testing.T) {
	events := Fixtures()
	if len(events) != 12 {
		t.Fatalf("expected 12 fixture events, got %d", len(events))
	}
	var diwali event.Event
	for _, e := range events {
		if e.ID == "6" {
			diwali = e
		}
	}
	if diwali.Name != "Diwali" || !diwali.Date.Equal(event.NewDate(2024, time.October, 31)) {
		t.Fatalf("unexpected diwali fixture %+v", diwali)
	}
	if len(diwali.RegionalVariations) != 3 {
		t.Fatalf("expected 3 diwali variations, got %d", len(diwali.RegionalVariations))
	}
}

func TestDecodeEvents(t *testing.T) {
	cases := []struct {
		name    string
		format  string
		data    string
		want    int
		wantErr bool
	}{
		{"yaml document", "yaml", "events:\n  - {id: a, name: A, date: 2024-01-02, type: national}\n", 1, false},
		{"yaml list", "yaml", "- {id: a, name: A, date: 2024-01-02, type: national}\n- {id: b, name: B, date: 2024-01-03, type: un}\n", 2, false},
		{"json list", "json", `[{"id":"a","name":"A","date":"2024-01-02","type":"cultural"}]`, 1, false},
		{"json document", "json", `{"events":[{"id":"a","name":"A","date":"2024-01-02","type":"cultural"}]}`, 1, false},
		{"bad type", "yaml", "- {id: a, name: A, date: 2024-01-02, type: birthday}\n", 0, true},
		{"duplicate", "json", `[{"id":"a","name":"A","date":"2024-01-02","type":"un"},{"id":"a","name":"B","date":"2024-01-03","type":"un"}]`, 0, true},
		{"unknown format", "toml", "", 0, true},
	}
	for _, tc := range cases {
		got, err := DecodeEvents([]byte(tc.data), tc.format)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%s: expected error", tc.name)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if len(got) != tc.want {
			t.Fatalf("%s: expected %d events, got %d", tc.name, tc.want, len(got))
		}
	}
}

func TestEncodeEventsRoundTrip(t *testing.T) {
	data, err := EncodeEvents(Fixtures()[:2])
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeEvents(data, "yaml")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1" {
		t.Fatalf("unexpected round trip %+v", got)
	}
}

func TestFormatOf(t *testing.T) {
	for name, want := range map[string]string{"a.yml": "yaml", "b.YAML": "yaml", "c.json": "json"} {
		if got, err := FormatOf(name); err != nil || got != want {
			t.Fatalf("FormatOf(%q) = %q, %v", name, got, err)
		}
	}
	if _, err := FormatOf("d.ics"); err == nil {
		t.Fatalf("expected error for ics")
	}
}
