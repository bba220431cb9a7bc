package calendar

import (
	"strconv"

	"tableflip.dev/worldsync/pkg/event"
)

// Indicator marks one event inside a day cell.
type Indicator struct {
	EventID string
	Name    string
	Type    event.Type
}

// Cell is the content of a single day cell.
type Cell struct {
	Date       event.Date
	Label      string
	Indicators []Indicator
}

// CellRenderer produces per-day cell content for a grid view.
type CellRenderer interface {
	Cell(d event.Date) Cell
}

// CellRendererFunc adapts a function to CellRenderer.
type CellRendererFunc func(d event.Date) Cell

// Cell implements CellRenderer.
func (f CellRendererFunc) Cell(d event.Date) Cell { return f(d) }

// Cell implements CellRenderer with one indicator per event on d.
func (e *Engine) Cell(d event.Date) Cell {
	c := Cell{Date: d}
	if d.IsZero() {
		return c
	}
	c.Label = strconv.Itoa(d.Day)
	for _, ev := range e.EventsOn(d) {
		c.Indicators = append(c.Indicators, Indicator{EventID: ev.ID, Name: ev.Name, Type: ev.Type})
	}
	return c
}
