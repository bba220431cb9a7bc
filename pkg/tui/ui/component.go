package ui

import tea "github.com/charmbracelet/bubbletea/v2"

// Component is the contract shared by the calendar, the filter sidebar, the
// detail modal and the debug log.
type Component interface {
	Init() tea.Cmd
	Update(tea.Msg) (Component, tea.Cmd)
	View() string
	SetSize(width, height int)
}
