package web

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tableflip.dev/worldsync/pkg/app"
	"tableflip.dev/worldsync/pkg/calendar"
	"tableflip.dev/worldsync/pkg/detail"
	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/filter"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := &app.Service{Fixtures: []event.Event{
		{ID: "diwali", Name: "Diwali", Date: event.MustParseDate("2024-11-01"), Type: event.Religious, Country: "India", Religion: "Hinduism"},
		{ID: "thanksgiving", Name: "Thanksgiving", Date: event.MustParseDate("2024-11-28"), Type: event.National, Country: "United States"},
		{ID: "hanukkah", Name: "Hanukkah", Date: event.MustParseDate("2024-12-25"), Type: event.Religious, Religion: "Judaism"},
	}}
	s := NewServer(svc, Options{
		WeekStart: time.Sunday,
		Now:       func() time.Time { return time.Date(2024, time.November, 10, 0, 0, 0, 0, time.UTC) },
		Logger:    log.New(io.Discard, "", 0),
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return resp, body
}

func TestStatusCodes(t *testing.T) {
	ts := newTestServer(t)
	tests := map[string]struct {
		path string
		want int
	}{
		"health":        {path: "/health", want: http.StatusOK},
		"events":        {path: "/api/events", want: http.StatusOK},
		"bad view":      {path: "/api/events?view=year", want: http.StatusBadRequest},
		"bad date":      {path: "/api/events?on=someday", want: http.StatusBadRequest},
		"event":         {path: "/api/events/diwali", want: http.StatusOK},
		"missing event": {path: "/api/events/nope", want: http.StatusNotFound},
		"missing ics":   {path: "/api/events/nope.ics", want: http.StatusNotFound},
		"catalog":       {path: "/api/catalog", want: http.StatusOK},
		"legend":        {path: "/api/legend", want: http.StatusOK},
		"feed":          {path: "/calendar.ics", want: http.StatusOK},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			resp, body := get(t, ts, tc.path)
			if resp.StatusCode != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, resp.StatusCode, body)
			}
		})
	}
}

func TestEventsFiltersAndView(t *testing.T) {
	ts := newTestServer(t)
	_, body := get(t, ts, "/api/events?view=month&on=2024-11-05&country=us,in&type=national")

	var snap calendar.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Title != "November 2024" || snap.Total != 1 {
		t.Fatalf("unexpected snapshot %s with %d events", snap.Title, snap.Total)
	}
	for _, d := range snap.Days {
		for _, e := range d.Events {
			if e.ID != "thanksgiving" {
				t.Fatalf("unexpected event %s", e.ID)
			}
		}
	}
}

func TestEventDetailAndErrors(t *testing.T) {
	ts := newTestServer(t)
	_, body := get(t, ts, "/api/events/diwali")
	var card detail.Card
	if err := json.Unmarshal(body, &card); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if card.Name != "Diwali" || card.UID != "diwali@worldsync" {
		t.Fatalf("unexpected card %+v", card)
	}
	if card.About[0].Body != "No description available." {
		t.Fatalf("expected placeholder description, got %q", card.About[0].Body)
	}

	resp, body := get(t, ts, "/api/events/nope")
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("unexpected content type %s", ct)
	}
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil || !strings.Contains(e.Error, "nope") {
		t.Fatalf("unexpected error body %s", body)
	}
}

func TestICS(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts, "/api/events/hanukkah.ics")
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Fatalf("unexpected content type %s", ct)
	}
	if !strings.Contains(string(body), "SUMMARY:Hanukkah") {
		t.Fatalf("unexpected calendar:\n%s", body)
	}

	_, body = get(t, ts, "/calendar.ics?religion=jewish")
	feed := string(body)
	if !strings.Contains(feed, "hanukkah@worldsync") || strings.Contains(feed, "Diwali") {
		t.Fatalf("expected filtered feed, got:\n%s", feed)
	}
}

func TestCatalogSearch(t *testing.T) {
	ts := newTestServer(t)
	_, body := get(t, ts, "/api/catalog?search=india&country=in")
	var l filter.Listing
	if err := json.Unmarshal(body, &l); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(l.Countries) != 1 || !l.Countries[0].Checked || len(l.Religions) != 0 {
		t.Fatalf("unexpected listing %+v", l)
	}
}
