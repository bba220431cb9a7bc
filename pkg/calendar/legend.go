package calendar

import "tableflip.dev/worldsync/pkg/event"

// Fallback is the color of events whose type is unknown.
const Fallback = "#6b7280"

var typeColors = map[event.Type]string{
	event.National:  "#ef4444",
	event.Religious: "#3b82f6",
	event.Cultural:  "#22c55e",
	event.Special:   "#a855f7",
	event.UN:        "#06b6d4",
}

// Color returns the hex color used for indicators of type t.
func Color(t event.Type) string {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return Fallback
}

// LegendEntry pairs a type with its display label and color.
type LegendEntry struct {
	Type  event.Type `json:"type"`
	Label string     `json:"label"`
	Color string     `json:"color"`
}

// Legend lists every type in display order.
func Legend() []LegendEntry {
	out := make([]LegendEntry, 0, len(typeColors))
	for _, t := range event.Types() {
		out = append(out, LegendEntry{Type: t, Label: t.Label(), Color: Color(t)})
	}
	return out
}

// LegendCount is a legend entry with the number of events of its type.
type LegendCount struct {
	LegendEntry
	Count int `json:"count"`
}

// CountedLegend pairs every legend entry with count(type).
func CountedLegend(count func(event.Type) int) []LegendCount {
	entries := Legend()
	out := make([]LegendCount, 0, len(entries))
	for _, l := range entries {
		out = append(out, LegendCount{LegendEntry: l, Count: count(l.Type)})
	}
	return out
}
