package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Background is the assumed terminal background tints are blended into.
const Background = "#1f2937"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header   HeaderTheme
	Calendar CalendarTheme
	Sidebar  SidebarTheme
	Modal    ModalTheme
	Footer   FooterTheme
	Log      LogTheme
}

// HeaderTheme styles the title bar and view mode tabs.
type HeaderTheme struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Badge     lipgloss.Style
}

// CalendarTheme styles day cells and event rows.
type CalendarTheme struct {
	Weekday  lipgloss.Style
	Day      lipgloss.Style
	Busy     lipgloss.Style
	Today    lipgloss.Style
	Cursor   lipgloss.Style
	Event    lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
}

// SidebarTheme styles the filter panel.
type SidebarTheme struct {
	Frame   lipgloss.Style
	Section lipgloss.Style
	Item    lipgloss.Style
	Cursor  lipgloss.Style
	Count   lipgloss.Style
	Empty   lipgloss.Style
}

// ModalTheme styles centered modal overlays.
type ModalTheme struct {
	Frame     lipgloss.Style
	Title     lipgloss.Style
	Meta      lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Heading   lipgloss.Style
	Body      lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// LogTheme styles the debug activity log.
type LogTheme struct {
	Frame  lipgloss.Style
	Title  lipgloss.Style
	Kind   lipgloss.Style
	Muted  lipgloss.Style
	Failed lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	tab := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1)
	return Theme{
		Header: HeaderTheme{
			Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
			Tab:       tab,
			ActiveTab: tab.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("212")).Bold(true),
			Badge:     lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		},
		Calendar: CalendarTheme{
			Weekday:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
			Day:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Busy:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
			Today:    lipgloss.NewStyle().Underline(true),
			Cursor:   lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
			Event:    lipgloss.NewStyle(),
			Selected: lipgloss.NewStyle().Reverse(true).Bold(true),
			Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		},
		Sidebar: SidebarTheme{
			Frame:   lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, true, false, false).BorderForeground(lipgloss.Color("240")).PaddingRight(1),
			Section: lipgloss.NewStyle().Bold(true),
			Item:    lipgloss.NewStyle(),
			Cursor:  lipgloss.NewStyle().Reverse(true),
			Count:   lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("212")).Padding(0, 1),
			Empty:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 2),
			Title:     lipgloss.NewStyle().Bold(true),
			Meta:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Tab:       tab,
			ActiveTab: tab.Underline(true).Bold(true).Foreground(lipgloss.Color("15")),
			Heading:   lipgloss.NewStyle().Bold(true),
			Body:      lipgloss.NewStyle(),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
		},
		Log: LogTheme{
			Frame:  lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")),
			Title:  lipgloss.NewStyle().Bold(true),
			Kind:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Failed: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
		},
	}
}

// Tint blends a type color into the background so event labels can carry a
// soft colored fill. amount 0 is the background, 1 the color itself.
func Tint(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	bg, err := colorful.Hex(Background)
	if err != nil {
		return hex
	}
	if amount < 0 {
		amount = 0
	}
	if amount > 1 {
		amount = 1
	}
	return bg.BlendLab(c, amount).Clamped().Hex()
}

// Swatch renders s in a type color.
func Swatch(hex, s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(s)
}

// Chip renders s on a tinted fill with the full color as foreground.
func Chip(hex, s string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color(Tint(hex, 0.45))).
		Render(s)
}
