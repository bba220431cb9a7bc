package app

import (
	"context"

	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/filter"
)

// ReportSection groups the events of one type.
type ReportSection struct {
	Type   event.Type    `json:"type"`
	Events []event.Event `json:"events"`
}

// ReportResult summarizes the filtered events inside a date window.
type ReportResult struct {
	Since    event.Date      `json:"since"`
	Until    event.Date      `json:"until"`
	Sections []ReportSection `json:"sections"`
	Total    int             `json:"total"`
}

// Count returns the number of events of type t.
func (r ReportResult) Count(t event.Type) int {
	for _, s := range r.Sections {
		if s.Type == t {
			return len(s.Events)
		}
	}
	return 0
}

// Report returns the events accepted by sel between since and until
// (inclusive), grouped by type in legend order. Types with no events are
// omitted.
func (s *Service) Report(ctx context.Context, sel filter.Selection, since, until event.Date) (ReportResult, error) {
	if since.After(until) {
		since, until = until, since
	}
	engine, err := s.Engine(ctx, sel)
	if err != nil {
		return ReportResult{}, err
	}

	grouped := make(map[event.Type][]event.Event)
	total := 0
	for _, e := range engine.Between(since, until) {
		grouped[e.Type] = append(grouped[e.Type], e)
		total++
	}

	result := ReportResult{Since: since, Until: until, Total: total}
	for _, t := range event.Types() {
		if len(grouped[t]) == 0 {
			continue
		}
		result.Sections = append(result.Sections, ReportSection{Type: t, Events: grouped[t]})
	}
	return result, nil
}
