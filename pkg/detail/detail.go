// Package detail tracks the event shown in the detail modal.
package detail

import (
	"tableflip.dev/worldsync/pkg/event"
)

// Tab selects a page of the detail modal.
type Tab int

const (
	// TabAbout shows the description and cultural significance.
	TabAbout Tab = iota
	// TabVariations lists regional variations.
	TabVariations
)

// Tabs lists the modal tabs in display order.
func Tabs() []Tab { return []Tab{TabAbout, TabVariations} }

func (t Tab) String() string {
	switch t {
	case TabVariations:
		return "Regional Variations"
	default:
		return "About"
	}
}

// NoVariations is shown on the variations tab when an event has none.
const NoVariations = "No regional variations recorded for this event."

// Presenter is the Closed/Open(e) state machine behind the modal.
type Presenter struct {
	selected *event.Event
	tab      Tab
}

// New returns a closed presenter.
func New() *Presenter { return &Presenter{} }

// Select opens the modal on e, replacing any open event, and shows the About
// tab.
func (p *Presenter) Select(e event.Event) {
	c := e.Clone()
	p.selected = &c
	p.tab = TabAbout
}

// Close clears the selection.
func (p *Presenter) Close() {
	p.selected = nil
	p.tab = TabAbout
}

// IsOpen reports whether an event is selected.
func (p *Presenter) IsOpen() bool { return p.selected != nil }

// Current returns the selected event.
func (p *Presenter) Current() (event.Event, bool) {
	if p.selected == nil {
		return event.Event{}, false
	}
	return *p.selected, true
}

// Tab returns the visible tab.
func (p *Presenter) Tab() Tab { return p.tab }

// SetTab switches tabs while open.
func (p *Presenter) SetTab(t Tab) {
	if p.selected == nil {
		return
	}
	if t != TabAbout && t != TabVariations {
		return
	}
	p.tab = t
}

// NextTab cycles to the following tab.
func (p *Presenter) NextTab() {
	if p.tab == TabAbout {
		p.SetTab(TabVariations)
		return
	}
	p.SetTab(TabAbout)
}

// Section is a titled block of modal text.
type Section struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body"`
}

// About returns the sections of the About tab.
func About(e event.Event) []Section {
	sections := []Section{{Title: "Description", Body: e.Description}}
	if sections[0].Body == "" {
		sections[0].Body = "No description available."
	}
	if e.CulturalSignificance != "" {
		sections = append(sections, Section{Title: "Cultural Significance", Body: e.CulturalSignificance})
	}
	return sections
}

// Variations returns the sections of the Regional Variations tab. Events
// without variations produce a single untitled NoVariations section.
func Variations(e event.Event) []Section {
	if len(e.RegionalVariations) == 0 {
		return []Section{{Body: NoVariations}}
	}
	out := make([]Section, 0, len(e.RegionalVariations))
	for _, v := range e.RegionalVariations {
		out = append(out, Section{Title: v.Region, Body: v.Details})
	}
	return out
}

// Sections returns the content of tab t for e.
func Sections(e event.Event, t Tab) []Section {
	if t == TabVariations {
		return Variations(e)
	}
	return About(e)
}
