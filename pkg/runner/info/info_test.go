package info

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"tableflip.dev/worldsync/pkg/app"
	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/store"
)

func testService() *app.Service {
	return &app.Service{Fixtures: []event.Event{
		{ID: "diwali", Name: "Diwali", Date: event.MustParseDate("2024-11-01"), Type: event.Religious, Religion: "Hinduism"},
		{ID: "christmas", Name: "Christmas", Date: event.MustParseDate("2024-12-25"), Type: event.Religious, Religion: "Christianity"},
		{ID: "thanksgiving", Name: "Thanksgiving", Date: event.MustParseDate("2024-11-28"), Type: event.National, Country: "United States"},
	}}
}

func TestInfoReportsConfigAndCounts(t *testing.T) {
	tests := map[string]struct {
		env    string
		config store.StaticConfig
		want   []string
	}{
		"defaults": {
			config: store.StaticConfig{Path: "/tmp/worldsync", Start: time.Sunday},
			want: []string{
				"WORLDSYNC_CONFIG_PATH env var not set",
				"Config.path: /tmp/worldsync",
				"Config.week_start: Sunday",
				"Config.view: month",
				"Config.catalog: built-in",
				"Config.listen: 127.0.0.1:8080",
				"Store is empty, showing built-in holidays.",
				"Religious",
			},
		},
		"override": {
			env:    "/etc/worldsync",
			config: store.StaticConfig{Path: "/etc/worldsync", Start: time.Monday, View: "week", Catalog: "/etc/worldsync/catalog.yaml", Addr: ":9000"},
			want: []string{
				"WORLDSYNC_CONFIG_PATH found on env, using /etc/worldsync",
				"Config.week_start: Monday",
				"Config.view: week",
				"Config.catalog: /etc/worldsync/catalog.yaml",
				"Config.listen: :9000",
			},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("WORLDSYNC_CONFIG_PATH", tc.env)
			var buf bytes.Buffer
			i := Info{Config: tc.config, Service: testService(), Out: &buf}
			if err := i.Do(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tc.want {
				if !strings.Contains(buf.String(), want) {
					t.Fatalf("expected %q in output:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestInfoCountsByType(t *testing.T) {
	var buf bytes.Buffer
	i := Info{Config: store.StaticConfig{}, Service: testService(), Out: &buf}
	if err := i.Do(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, line := range strings.Split(buf.String(), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "Religious":
			if fields[len(fields)-1] != "2" {
				t.Fatalf("expected 2 religious events, got %q", line)
			}
		case "National":
			if fields[len(fields)-1] != "1" {
				t.Fatalf("expected 1 national event, got %q", line)
			}
		}
	}
}

func TestInfoWithoutService(t *testing.T) {
	var buf bytes.Buffer
	i := Info{Config: store.StaticConfig{}, Out: &buf}
	if err := i.Do(context.Background()); err == nil {
		t.Fatalf("expected error without service")
	}
	if !strings.Contains(buf.String(), "Config.path:") {
		t.Fatalf("expected config printed before the error:\n%s", buf.String())
	}
}
