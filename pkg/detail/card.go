package detail

import (
	"tableflip.dev/worldsync/pkg/calendar"
	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/ics"
)

// Card is an event together with both tabs rendered as sections, the form
// served by the JSON surfaces.
type Card struct {
	event.Event
	UID        string    `json:"uid"`
	Color      string    `json:"color"`
	About      []Section `json:"about"`
	Variations []Section `json:"variations"`
	Share      string    `json:"share"`
}

// NewCard renders e.
func NewCard(e event.Event) Card {
	return Card{
		Event:      e,
		UID:        ics.UID(e),
		Color:      calendar.Color(e.Type),
		About:      About(e),
		Variations: Variations(e),
		Share:      e.Share(),
	}
}
