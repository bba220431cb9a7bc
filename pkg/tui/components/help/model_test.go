package help

import (
	"strings"
	"testing"
)

func TestHelpRendersKeyReference(t *testing.T) {
	m := New(80, 120)
	view := m.View()
	for _, want := range []string{"WorldSync Calendar", "Filters", "Regional Variations"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in help:\n%s", want, view)
		}
	}
}

func TestHelpEnforcesMinimumSize(t *testing.T) {
	m := New(1, 1)
	if m.width != 32 || m.height != 8 {
		t.Fatalf("expected minimum 32x8, got %dx%d", m.width, m.height)
	}
}
