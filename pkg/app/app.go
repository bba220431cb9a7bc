package app

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/worldsync/pkg/calendar"
	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/filter"
	"tableflip.dev/worldsync/pkg/store"
)

// Service provides the operations shared by the UI, the CLI printers, the
// HTTP surface and the MCP tools. It chooses the event source and applies
// the active filter selection before anything is rendered.
type Service struct {
	// Persistence holds imported events. Nil means fixtures only.
	Persistence store.Persistence
	// Fixtures are served when the store is nil or empty. Nil uses the
	// built-in holidays.
	Fixtures []event.Event
	// Catalog resolves filter ids. The zero value uses the default catalog.
	Catalog filter.Catalog
}

// ErrNotFound is returned when no event has the requested id.
var ErrNotFound = errors.New("app: event not found")

// Events returns every event known to the service, sorted by date.
func (s *Service) Events(ctx context.Context) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var all []event.Event
	if s.Persistence != nil {
		all = s.Persistence.ListAll(ctx)
	}
	if len(all) == 0 {
		all = s.fixtures()
	}
	event.Sort(all)
	return all, nil
}

func (s *Service) fixtures() []event.Event {
	src := s.Fixtures
	if src == nil {
		src = store.Fixtures()
	}
	out := make([]event.Event, len(src))
	for i, e := range src {
		out[i] = e.Clone()
	}
	return out
}

// Event finds one event by id.
func (s *Service) Event(ctx context.Context, id string) (event.Event, error) {
	all, err := s.Events(ctx)
	if err != nil {
		return event.Event{}, err
	}
	for _, e := range all {
		if e.ID == id {
			return e, nil
		}
	}
	return event.Event{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// CatalogOrDefault returns the configured catalog, falling back to the
// embedded one.
func (s *Service) CatalogOrDefault() filter.Catalog {
	if len(s.Catalog.Countries)+len(s.Catalog.Religions)+len(s.Catalog.EventTypes) == 0 {
		return filter.DefaultCatalog()
	}
	return s.Catalog
}

// Engine filters events by sel and indexes the survivors by day. The same
// engine feeds month, week and day views.
func (s *Service) Engine(ctx context.Context, sel filter.Selection) (*calendar.Engine, error) {
	all, err := s.Events(ctx)
	if err != nil {
		return nil, err
	}
	return calendar.New(sel.Apply(s.CatalogOrDefault(), all)), nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Change, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.Watch(ctx)
}

// Import stores events, replacing any with the same id. It stops at the
// first failure and reports how many were written.
func (s *Service) Import(ctx context.Context, events []event.Event) (int, error) {
	if s.Persistence == nil {
		return 0, errors.New("app: no persistence configured")
	}
	for i, e := range events {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := s.Persistence.Store(e); err != nil {
			return i, fmt.Errorf("app: import %s: %w", e.ID, err)
		}
	}
	return len(events), nil
}

// Remove deletes an imported event.
func (s *Service) Remove(ctx context.Context, id string) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	if err := s.Persistence.Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return err
	}
	return nil
}
