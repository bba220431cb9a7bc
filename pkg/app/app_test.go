package app

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/filter"
	"tableflip.dev/worldsync/pkg/store"
)

type memoryPersistence struct {
	mu     sync.Mutex
	events map[string]event.Event
}

func newMemoryPersistence(events ...event.Event) *memoryPersistence {
	mp := &memoryPersistence{events: make(map[string]event.Event)}
	for _, e := range events {
		mp.events[e.ID] = e.Clone()
	}
	return mp
}

func (m *memoryPersistence) ListAll(_ context.Context) []event.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]event.Event, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryPersistence) Get(_ context.Context, id string) (event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return event.Event{}, store.ErrNotFound
	}
	return e.Clone(), nil
}

func (m *memoryPersistence) Store(e event.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[e.ID] = e.Clone()
	return nil
}

func (m *memoryPersistence) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *memoryPersistence) Watch(_ context.Context) (<-chan store.Change, error) {
	return make(chan store.Change), nil
}

var (
	holi   = event.Event{ID: "holi", Name: "Holi", Date: event.MustParseDate("2024-03-25"), Type: event.Religious, Religion: "Hindu", Country: "India"}
	anzac  = event.Event{ID: "anzac", Name: "Anzac Day", Date: event.MustParseDate("2024-04-25"), Type: event.National, Country: "Australia"}
	nowruz = event.Event{ID: "nowruz", Name: "Nowruz", Date: event.MustParseDate("2024-03-20"), Type: event.Cultural, Religion: "Zoroastrianism"}
)

func TestEventsFallBackToFixtures(t *testing.T) {
	svc := &Service{}
	got, err := svc.Events(context.Background())
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(got) != 12 {
		t.Fatalf("expected built-in fixtures, got %d", len(got))
	}
	if got[0].ID != "1" {
		t.Fatalf("expected fixtures sorted by date, first %q", got[0].ID)
	}

	svc = &Service{Persistence: newMemoryPersistence(), Fixtures: []event.Event{holi}}
	got, _ = svc.Events(context.Background())
	if len(got) != 1 || got[0].ID != "holi" {
		t.Fatalf("expected configured fixtures for an empty store, got %+v", got)
	}
}

func TestEventsPreferStore(t *testing.T) {
	svc := &Service{Persistence: newMemoryPersistence(anzac, holi)}
	got, err := svc.Events(context.Background())
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(got) != 2 || got[0].ID != "holi" || got[1].ID != "anzac" {
		t.Fatalf("expected store events sorted by date, got %+v", got)
	}
}

func TestEventNotFound(t *testing.T) {
	svc := &Service{Fixtures: []event.Event{holi}}
	if _, err := svc.Event(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	e, err := svc.Event(context.Background(), "holi")
	if err != nil || e.Name != "Holi" {
		t.Fatalf("expected holi, got %+v %v", e, err)
	}
}

func TestEngineAppliesSelection(t *testing.T) {
	svc := &Service{Fixtures: []event.Event{holi, anzac, nowruz}}
	ctx := context.Background()

	engine, err := svc.Engine(ctx, filter.Selection{Countries: []string{"in", "au"}})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	if engine.Len() != 2 {
		t.Fatalf("expected two events, got %d", engine.Len())
	}
	if got := engine.EventsOn(nowruz.Date); len(got) != 0 {
		t.Fatalf("expected nowruz filtered out, got %+v", got)
	}

	engine, _ = svc.Engine(ctx, filter.Selection{Religions: []string{"zoroastrian"}})
	if got := engine.EventsOn(nowruz.Date); len(got) != 1 {
		t.Fatalf("expected nowruz by religion name, got %+v", got)
	}
}

func TestImportAndRemove(t *testing.T) {
	mem := newMemoryPersistence()
	svc := &Service{Persistence: mem}
	ctx := context.Background()

	n, err := svc.Import(ctx, []event.Event{holi, anzac})
	if err != nil || n != 2 {
		t.Fatalf("import: %d %v", n, err)
	}

	bad := event.Event{ID: "bad", Name: "Bad"}
	n, err = svc.Import(ctx, []event.Event{nowruz, bad})
	if err == nil || n != 1 {
		t.Fatalf("expected failure after one write, got %d %v", n, err)
	}

	if err := svc.Remove(ctx, "anzac"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.Remove(ctx, "anzac"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := (&Service{}).Import(ctx, nil); err == nil {
		t.Fatalf("expected error without persistence")
	}
}

func TestReportGroupsByType(t *testing.T) {
	svc := &Service{Fixtures: []event.Event{holi, anzac, nowruz}}
	r, err := svc.Report(context.Background(), filter.Selection{}, event.MustParseDate("2024-04-30"), event.MustParseDate("2024-03-01"))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !r.Since.Equal(event.MustParseDate("2024-03-01")) {
		t.Fatalf("expected swapped bounds, got %s", r.Since)
	}
	if r.Total != 3 || len(r.Sections) != 3 {
		t.Fatalf("expected 3 events in 3 sections, got %d/%d", r.Total, len(r.Sections))
	}
	if r.Sections[0].Type != event.National || r.Count(event.Religious) != 1 || r.Count(event.UN) != 0 {
		t.Fatalf("unexpected sections %+v", r.Sections)
	}
}
