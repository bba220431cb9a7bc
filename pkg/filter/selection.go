package filter

import (
	"tableflip.dev/worldsync/pkg/event"
)

// Selection is the exported result of applying filters: the checked ids of
// each category.
type Selection struct {
	Countries  []string `json:"countries"`
	Religions  []string `json:"religions"`
	EventTypes []string `json:"eventTypes"`
}

// IDs returns the ids selected for a category.
func (s Selection) IDs(cat Category) []string {
	switch cat {
	case Countries:
		return s.Countries
	case Religions:
		return s.Religions
	case EventTypes:
		return s.EventTypes
	}
	return nil
}

// IsEmpty reports whether no category constrains anything.
func (s Selection) IsEmpty() bool {
	return len(s.Countries) == 0 && len(s.Religions) == 0 && len(s.EventTypes) == 0
}

// Predicate builds the event test for the selection. A category with no
// ids accepts everything; otherwise the event's field must match one of the
// checked options. All constrained categories must match.
func (s Selection) Predicate(c Catalog) func(event.Event) bool {
	if s.IsEmpty() {
		return func(event.Event) bool { return true }
	}
	countries := resolve(c, Countries, s.Countries)
	religions := resolve(c, Religions, s.Religions)
	types := resolve(c, EventTypes, s.EventTypes)
	return func(e event.Event) bool {
		return matchAny(countries, e.Country) &&
			matchAny(religions, e.Religion) &&
			matchAny(types, string(e.Type))
	}
}

// Apply returns the events the selection accepts, in input order.
func (s Selection) Apply(c Catalog, events []event.Event) []event.Event {
	pred := s.Predicate(c)
	out := make([]event.Event, 0, len(events))
	for _, e := range events {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

func resolve(c Catalog, cat Category, ids []string) []Option {
	if len(ids) == 0 {
		return nil
	}
	opts := make([]Option, 0, len(ids))
	for _, id := range ids {
		if o, ok := c.Option(cat, id); ok {
			opts = append(opts, o)
			continue
		}
		// Ids from outside the catalog still match on their literal value.
		opts = append(opts, Option{ID: id, Name: id})
	}
	return opts
}

func matchAny(opts []Option, value string) bool {
	if opts == nil {
		return true
	}
	for _, o := range opts {
		if o.Matches(value) {
			return true
		}
	}
	return false
}
