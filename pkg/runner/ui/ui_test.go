package ui

import (
	"context"
	"testing"

	"tableflip.dev/worldsync/pkg/navigation"
)

func TestUIRequiresService(t *testing.T) {
	tests := map[string]UI{
		"zero":  {},
		"debug": {Mode: navigation.ModeWeek, Debug: true},
	}
	for name, u := range tests {
		t.Run(name, func(t *testing.T) {
			if err := u.Do(context.Background()); err == nil {
				t.Fatalf("expected error without service")
			}
		})
	}
}
