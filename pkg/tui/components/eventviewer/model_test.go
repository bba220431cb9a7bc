package eventviewer

import (
	"strings"
	"testing"
	"time"
)

func TestRecordKeepsNewestAndCounts(t *testing.T) {
	m := NewModel(2)
	m.SetSize(80, 8)
	for _, text := range []string{"Focused Fri Nov 1, 2024", "Focused Sat Nov 2, 2024", "Focused Sun Nov 3, 2024"} {
		m.Record(Entry{Kind: Navigation, Text: text})
	}
	m.Record(Entry{Kind: Store, Text: "Loading events failed: boom", Failed: true})

	if m.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", m.Len())
	}
	if m.Count(Navigation) != 3 || m.Count(Store) != 1 || m.Failures() != 1 {
		t.Fatalf("unexpected counts nav=%d store=%d failed=%d", m.Count(Navigation), m.Count(Store), m.Failures())
	}
	view := m.View()
	for _, want := range []string{"nav 3", "store 1", "1 failed", "Sun Nov 3", "boom"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Fri Nov 1") {
		t.Fatalf("expected oldest entry dropped:\n%s", view)
	}
}

func TestInputHiddenUntilToggled(t *testing.T) {
	m := NewModel(10)
	m.SetSize(80, 8)
	if !strings.Contains(m.View(), "Nothing has happened yet.") {
		t.Fatalf("expected empty placeholder:\n%s", m.View())
	}

	m.Record(Entry{Kind: Input, Text: "key right", At: time.Date(2024, 11, 1, 9, 30, 0, 0, time.UTC)})
	if strings.Contains(m.View(), "key right") {
		t.Fatalf("input lines should be hidden by default")
	}
	m.ToggleInput()
	view := m.View()
	if !strings.Contains(view, "key right") || !strings.Contains(view, "09:30:00") {
		t.Fatalf("expected input line after toggle:\n%s", view)
	}
	if !strings.Contains(view, "i: hide input") {
		t.Fatalf("expected toggle hint:\n%s", view)
	}
}
