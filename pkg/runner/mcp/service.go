// Package mcp provides the Model Context Protocol server integration for worldsync.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/worldsync/pkg/app"
	"tableflip.dev/worldsync/pkg/calendar"
	"tableflip.dev/worldsync/pkg/detail"
	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/filter"
	"tableflip.dev/worldsync/pkg/navigation"
)

// Service adapts the calendar service to the shapes the MCP tools return.
type Service struct {
	App       *app.Service
	WeekStart time.Weekday
	// Now anchors requests without a date. Nil is time.Now.
	Now func() time.Time
}

// ListEventsOptions selects a view and filters.
type ListEventsOptions struct {
	View      string
	On        string
	Countries []string
	Religions []string
	Types     []string
}

// AddEventOptions captures the fields of a new event.
type AddEventOptions struct {
	Name        string
	Date        string
	Type        string
	Country     string
	Religion    string
	Description string
}

// NewService wraps an app service.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

func (s *Service) now() func() time.Time {
	if s.Now == nil {
		return time.Now
	}
	return s.Now
}

func (s *Service) ready() error {
	if s.App == nil {
		return errors.New("calendar service is not configured")
	}
	return nil
}

// ListEvents returns the days of one view with their filtered events.
func (s *Service) ListEvents(ctx context.Context, opts ListEventsOptions) (calendar.Snapshot, error) {
	if err := s.ready(); err != nil {
		return calendar.Snapshot{}, err
	}
	mode := navigation.ModeMonth
	if strings.TrimSpace(opts.View) != "" {
		var err error
		if mode, err = navigation.ParseMode(opts.View); err != nil {
			return calendar.Snapshot{}, err
		}
	}
	on := event.Today(s.now())
	if strings.TrimSpace(opts.On) != "" {
		var err error
		if on, err = event.ParseDate(opts.On); err != nil {
			return calendar.Snapshot{}, err
		}
	}

	engine, err := s.App.Engine(ctx, filter.Selection{
		Countries:  opts.Countries,
		Religions:  opts.Religions,
		EventTypes: opts.Types,
	})
	if err != nil {
		return calendar.Snapshot{}, err
	}
	return engine.Snap(navigation.ViewState{Mode: mode, Current: on}, s.WeekStart), nil
}

// GetEvent returns one event with both detail tabs.
func (s *Service) GetEvent(ctx context.Context, id string) (*detail.Card, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, errors.New("id is required")
	}
	e, err := s.App.Event(ctx, id)
	if err != nil {
		return nil, err
	}
	card := detail.NewCard(e)
	return &card, nil
}

// ListCatalog returns the filter options whose names contain search.
func (s *Service) ListCatalog(ctx context.Context, search string) (filter.Listing, error) {
	if err := s.ready(); err != nil {
		return filter.Listing{}, err
	}
	if err := ctx.Err(); err != nil {
		return filter.Listing{}, err
	}
	st := filter.New(s.App.CatalogOrDefault())
	st.SetSearch(search)
	return st.Listing(), nil
}

// SearchEvents performs a substring match across names, places and
// descriptions.
func (s *Service) SearchEvents(ctx context.Context, query string, limit int) ([]event.Event, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	q := strings.TrimSpace(strings.ToLower(query))
	if q == "" {
		return []event.Event{}, nil
	}
	if limit <= 0 {
		limit = 20
	}

	all, err := s.App.Events(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]event.Event, 0, limit)
	for _, e := range all {
		if len(results) >= limit {
			break
		}
		for _, field := range []string{e.Name, e.Country, e.Religion, e.Description} {
			if strings.Contains(strings.ToLower(field), q) {
				results = append(results, e)
				break
			}
		}
	}
	return results, nil
}

// AddEvent stores a new event under a random id.
func (s *Service) AddEvent(ctx context.Context, opts AddEventOptions) (*detail.Card, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	date, err := event.ParseDate(opts.Date)
	if err != nil {
		return nil, err
	}
	typ := event.Special
	if opts.Type != "" {
		if typ, err = event.ParseType(opts.Type); err != nil {
			return nil, err
		}
	}
	e := event.Event{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(opts.Name),
		Date:        date,
		Type:        typ,
		Country:     strings.TrimSpace(opts.Country),
		Religion:    strings.TrimSpace(opts.Religion),
		Description: strings.TrimSpace(opts.Description),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.App.Import(ctx, []event.Event{e}); err != nil {
		return nil, err
	}
	card := detail.NewCard(e)
	return &card, nil
}

// RemoveEvent deletes a stored event.
func (s *Service) RemoveEvent(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if id == "" {
		return errors.New("id is required")
	}
	if err := s.App.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove %s: %w", id, err)
	}
	return nil
}

// Legend returns the type colors with unfiltered event counts for the
// month around today.
func (s *Service) Legend(ctx context.Context) ([]calendar.LegendCount, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	state := navigation.ViewState{Mode: navigation.ModeMonth, Current: event.Today(s.now())}
	first, last := calendar.Range(state, s.WeekStart)
	report, err := s.App.Report(ctx, filter.Selection{}, first, last)
	if err != nil {
		return nil, err
	}
	return calendar.CountedLegend(report.Count), nil
}
