// Package ics converts events to and from iCalendar. Events are exported as
// all-day VEVENTs so any calendar client shows them on the right day
// regardless of the viewer's zone.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"tableflip.dev/worldsync/pkg/event"
)

const (
	productID  = "-//worldsync//calendar//EN"
	uidSuffix  = "@worldsync"
	dateLayout = "20060102"

	propReligion     = ical.ComponentProperty("X-WORLDSYNC-RELIGION")
	propEventID      = ical.ComponentProperty("X-WORLDSYNC-ID")
	propSignificance = ical.ComponentProperty("X-WORLDSYNC-SIGNIFICANCE")
	propVariation    = ical.ComponentProperty("X-WORLDSYNC-VARIATION")
)

type options struct {
	name string
	now  func() time.Time
}

// Option configures Export.
type Option func(*options)

// WithName sets the calendar display name (X-WR-CALNAME).
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithClock fixes the DTSTAMP clock.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// UID returns the iCalendar UID of an event.
func UID(e event.Event) string {
	return e.ID + uidSuffix
}

// Build returns a calendar holding one all-day VEVENT per event.
func Build(events []event.Event, opts ...Option) *ical.Calendar {
	o := options{name: "WorldSync Calendar", now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	stamp := o.now().UTC()

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(o.name)

	for _, e := range events {
		ev := cal.AddEvent(UID(e))
		ev.SetDtStampTime(stamp)
		ev.SetSummary(e.Name)
		ev.SetAllDayStartAt(e.Date.Time(time.UTC))
		ev.SetAllDayEndAt(e.Date.AddDays(1).Time(time.UTC))
		ev.SetProperty(ical.ComponentPropertyCategories, string(e.Type))
		ev.SetProperty(propEventID, e.ID)
		if desc := description(e); desc != "" {
			ev.SetDescription(desc)
		}
		if e.Country != "" {
			ev.SetLocation(e.Country)
		}
		if e.Religion != "" {
			ev.SetProperty(propReligion, e.Religion)
		}
		// DESCRIPTION carries the same text for other clients.
		if e.CulturalSignificance != "" {
			ev.SetProperty(propSignificance, e.CulturalSignificance)
		}
		for _, v := range e.RegionalVariations {
			ev.AddProperty(propVariation, v.Region+": "+v.Details)
		}
	}
	return cal
}

// Export writes events as an iCalendar document.
func Export(w io.Writer, events []event.Event, opts ...Option) error {
	if _, err := io.WriteString(w, Build(events, opts...).Serialize()); err != nil {
		return fmt.Errorf("ics: write: %w", err)
	}
	return nil
}

func description(e event.Event) string {
	parts := make([]string, 0, 2+len(e.RegionalVariations))
	if e.Description != "" {
		parts = append(parts, e.Description)
	}
	if e.CulturalSignificance != "" {
		parts = append(parts, e.CulturalSignificance)
	}
	for _, v := range e.RegionalVariations {
		parts = append(parts, v.Region+": "+v.Details)
	}
	return strings.Join(parts, "\n\n")
}

// ownDescription strips the significance and variation text Build appended
// to DESCRIPTION, leaving what the event itself said.
func ownDescription(desc string, e event.Event) string {
	extra := description(event.Event{CulturalSignificance: e.CulturalSignificance, RegionalVariations: e.RegionalVariations})
	switch {
	case extra == "":
		return desc
	case desc == extra:
		return ""
	}
	return strings.TrimSuffix(desc, "\n\n"+extra)
}

// Import reads every VEVENT of an iCalendar document. Events without a UID
// get a random one; the category becomes the type when it names one,
// otherwise the event is special.
func Import(r io.Reader) ([]event.Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("ics: parse: %w", err)
	}

	var out []event.Event
	for _, ve := range cal.Events() {
		e, err := fromVEvent(ve)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func fromVEvent(ve *ical.VEvent) (event.Event, error) {
	var e event.Event

	switch {
	case value(ve, propEventID) != "":
		e.ID = value(ve, propEventID)
	case value(ve, ical.ComponentPropertyUniqueId) != "":
		e.ID = strings.TrimSuffix(value(ve, ical.ComponentPropertyUniqueId), uidSuffix)
	default:
		e.ID = uuid.NewString()
	}

	e.Name = value(ve, ical.ComponentPropertySummary)
	if e.Name == "" {
		return e, fmt.Errorf("ics: event %s: missing SUMMARY", e.ID)
	}

	start := value(ve, ical.ComponentPropertyDtStart)
	if len(start) < len(dateLayout) {
		return e, fmt.Errorf("ics: event %s: missing DTSTART", e.ID)
	}
	// Time of day and zone are dropped; events are civil days.
	t, err := time.Parse(dateLayout, start[:len(dateLayout)])
	if err != nil {
		return e, fmt.Errorf("ics: event %s: DTSTART %q: %w", e.ID, start, err)
	}
	e.Date = event.FromTime(t)

	e.Type = event.Special
	for _, cat := range strings.Split(value(ve, ical.ComponentPropertyCategories), ",") {
		if t, err := event.ParseType(cat); err == nil {
			e.Type = t
			break
		}
	}

	e.Country = value(ve, ical.ComponentPropertyLocation)
	e.Religion = value(ve, propReligion)
	e.CulturalSignificance = value(ve, propSignificance)
	for _, p := range ve.GetProperties(propVariation) {
		region, details, ok := strings.Cut(unescape(strings.TrimSpace(p.Value)), ": ")
		if !ok {
			details, region = region, ""
		}
		e.RegionalVariations = append(e.RegionalVariations, event.RegionalVariation{Region: region, Details: details})
	}
	e.Description = ownDescription(value(ve, ical.ComponentPropertyDescription), e)

	if err := e.Validate(); err != nil {
		return e, fmt.Errorf("ics: %w", err)
	}
	return e, nil
}

func value(ve *ical.VEvent, prop ical.ComponentProperty) string {
	p := ve.GetProperty(prop)
	if p == nil {
		return ""
	}
	return unescape(strings.TrimSpace(p.Value))
}

var textUnescaper = strings.NewReplacer(`\n`, "\n", `\N`, "\n", `\,`, ",", `\;`, ";", `\\`, `\`)

func unescape(s string) string {
	return textUnescaper.Replace(s)
}
