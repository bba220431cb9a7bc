// Package event defines the holiday records shown by the calendar.
package event

import (
	"fmt"
	"sort"
	"strings"
)

// Type classifies an event.
type Type string

const (
	National  Type = "national"
	Religious Type = "religious"
	Cultural  Type = "cultural"
	Special   Type = "special"
	UN        Type = "un"
)

// Types lists every event type in legend order.
func Types() []Type {
	return []Type{National, Religious, Cultural, Special, UN}
}

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	switch t {
	case National, Religious, Cultural, Special, UN:
		return true
	}
	return false
}

// Label is the capitalized display name, e.g. "Religious".
func (t Type) Label() string {
	if t == UN {
		return "UN"
	}
	s := string(t)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseType parses a type name case-insensitively.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("event: unknown type %q", s)
	}
	return t, nil
}

// RegionalVariation describes how a region observes an event.
type RegionalVariation struct {
	Region  string `json:"region" yaml:"region"`
	Details string `json:"details" yaml:"details"`
}

// Event is a named occurrence pinned to one calendar day. Events are values;
// nothing in this module mutates an event after it is loaded.
type Event struct {
	ID                   string              `json:"id" yaml:"id"`
	Name                 string              `json:"name" yaml:"name"`
	Date                 Date                `json:"date" yaml:"date"`
	Type                 Type                `json:"type" yaml:"type"`
	Country              string              `json:"country,omitempty" yaml:"country,omitempty"`
	Religion             string              `json:"religion,omitempty" yaml:"religion,omitempty"`
	Description          string              `json:"description,omitempty" yaml:"description,omitempty"`
	CulturalSignificance string              `json:"culturalSignificance,omitempty" yaml:"culturalSignificance,omitempty"`
	RegionalVariations   []RegionalVariation `json:"regionalVariations,omitempty" yaml:"regionalVariations,omitempty"`
}

// Validate checks the fields every event must carry.
func (e Event) Validate() error {
	switch {
	case strings.TrimSpace(e.ID) == "":
		return fmt.Errorf("event: missing id (name %q)", e.Name)
	case strings.TrimSpace(e.Name) == "":
		return fmt.Errorf("event %s: missing name", e.ID)
	case e.Date.IsZero():
		return fmt.Errorf("event %s: missing date", e.ID)
	case !e.Type.Valid():
		return fmt.Errorf("event %s: unknown type %q", e.ID, e.Type)
	}
	return nil
}

// SameDay reports whether the event falls on d.
func (e Event) SameDay(d Date) bool {
	return e.Date.Equal(d)
}

// Share renders a one-line summary suitable for pasting elsewhere.
func (e Event) Share() string {
	parts := []string{e.Name, e.Date.Format("January 2, 2006")}
	if e.Country != "" {
		parts = append(parts, e.Country)
	}
	if e.Religion != "" {
		parts = append(parts, e.Religion)
	}
	return strings.Join(parts, " · ")
}

// Clone returns a copy that shares no slices with e.
func (e Event) Clone() Event {
	if e.RegionalVariations != nil {
		e.RegionalVariations = append([]RegionalVariation(nil), e.RegionalVariations...)
	}
	return e
}

// Sort orders events by date, then name, then id.
func Sort(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}
