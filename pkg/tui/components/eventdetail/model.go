// Package eventdetail is the modal that shows one event's tabs and offers
// calendar export and sharing.
package eventdetail

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/worldsync/pkg/calendar"
	"tableflip.dev/worldsync/pkg/detail"
	"tableflip.dev/worldsync/pkg/event"
	"tableflip.dev/worldsync/pkg/ics"
	"tableflip.dev/worldsync/pkg/tui/events"
	"tableflip.dev/worldsync/pkg/tui/theme"
	"tableflip.dev/worldsync/pkg/tui/ui"
)

// Options configures the modal.
type Options struct {
	ID    events.ComponentID
	Theme theme.Theme
	// ExportDir receives exported .ics files. Empty means the working
	// directory.
	ExportDir string
	// Copy writes to the clipboard. Nil uses the system clipboard.
	Copy func(string) error
}

// Model renders the detail modal for the presenter's event.
type Model struct {
	id        events.ComponentID
	presenter *detail.Presenter
	viewport  viewport.Model
	theme     theme.Theme

	exportDir string
	copy      func(string) error
	status    string

	inner  int
	width  int
	height int
}

// NewModel returns a closed modal.
func NewModel(opts Options) *Model {
	if opts.ID == "" {
		opts.ID = "event-detail"
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	vp := viewport.New(
		viewport.WithWidth(1),
		viewport.WithHeight(1),
	)
	return &Model{
		id:        opts.ID,
		presenter: detail.New(),
		viewport:  vp,
		theme:     opts.Theme,
		exportDir: opts.ExportDir,
		copy:      opts.Copy,
	}
}

// ID returns the component identifier.
func (m *Model) ID() events.ComponentID { return m.id }

// Presenter exposes the open/closed state.
func (m *Model) Presenter() *detail.Presenter { return m.presenter }

// IsOpen reports whether the modal is showing.
func (m *Model) IsOpen() bool { return m.presenter.IsOpen() }

// Open shows e on the About tab. Opening while open replaces the event.
func (m *Model) Open(e event.Event) {
	m.presenter.Select(e)
	m.status = ""
	m.refresh()
}

// Close dismisses the modal.
func (m *Model) Close() tea.Cmd {
	if !m.presenter.IsOpen() {
		return nil
	}
	m.presenter.Close()
	m.status = ""
	return events.ModalClosedCmd(m.id)
}

// Init implements ui.Component.
func (m *Model) Init() tea.Cmd { return nil }

// SetSize implements ui.Component.
func (m *Model) SetSize(width, height int) {
	width = max(width, 30)
	height = max(height, 10)
	if m.width == width && m.height == height {
		return
	}
	m.width = width
	m.height = height
	frame := m.theme.Modal.Frame
	// title, meta, blank, tabs, blank above the body; blank, help below.
	m.inner = max(1, width-frame.GetHorizontalFrameSize())
	m.viewport.SetWidth(m.inner)
	m.viewport.SetHeight(max(1, height-frame.GetVerticalFrameSize()-7))
	m.refresh()
}

// Update implements ui.Component.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	switch v := msg.(type) {
	case events.ExportedMsg:
		if v.Err != nil {
			m.status = "Export failed: " + v.Err.Error()
		} else {
			m.status = "Saved " + v.Path
		}
		return m, nil
	case events.SharedMsg:
		if v.Err != nil {
			m.status = "Copy failed: " + v.Err.Error()
		} else {
			m.status = "Copied to clipboard"
		}
		return m, nil
	case tea.KeyMsg:
		if !m.presenter.IsOpen() {
			return m, nil
		}
		switch v.String() {
		case "esc", "q":
			return m, m.Close()
		case "tab", "shift+tab", "left", "right", "h", "l":
			m.presenter.NextTab()
			m.refresh()
			return m, nil
		case "1":
			m.presenter.SetTab(detail.TabAbout)
			m.refresh()
			return m, nil
		case "2":
			m.presenter.SetTab(detail.TabVariations)
			m.refresh()
			return m, nil
		case "x":
			return m, m.export()
		case "s":
			return m, m.share()
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// ExportPath is where the open event is written by export.
func (m *Model) ExportPath(e event.Event) string {
	name := strings.NewReplacer("/", "-", string(os.PathSeparator), "-").Replace(e.ID) + ".ics"
	return filepath.Join(m.exportDir, name)
}

func (m *Model) export() tea.Cmd {
	e, ok := m.presenter.Current()
	if !ok {
		return nil
	}
	id, path := m.id, m.ExportPath(e)
	return func() tea.Msg {
		out := events.ExportedMsg{Component: id, EventID: e.ID, Path: path}
		f, err := os.Create(path)
		if err != nil {
			out.Err = err
			return out
		}
		if err := ics.Export(f, []event.Event{e}, ics.WithName(e.Name)); err != nil {
			_ = f.Close()
			out.Err = err
			return out
		}
		out.Err = f.Close()
		return out
	}
}

func (m *Model) share() tea.Cmd {
	e, ok := m.presenter.Current()
	if !ok {
		return nil
	}
	id, copyFn := m.id, m.copy
	return func() tea.Msg {
		text := e.Share()
		return events.SharedMsg{Component: id, EventID: e.ID, Text: text, Err: copyFn(text)}
	}
}

func (m *Model) refresh() {
	e, ok := m.presenter.Current()
	if !ok {
		m.viewport.SetContent("")
		return
	}
	wrap := max(10, m.inner)
	st := m.theme.Modal
	var blocks []string
	for _, s := range detail.Sections(e, m.presenter.Tab()) {
		var b strings.Builder
		if s.Title != "" {
			b.WriteString(st.Heading.Render(s.Title))
			b.WriteString("\n")
		}
		b.WriteString(st.Body.Render(wordwrap.String(s.Body, wrap)))
		blocks = append(blocks, b.String())
	}
	m.viewport.SetContent(strings.Join(blocks, "\n\n"))
	m.viewport.SetYOffset(0)
}

// View implements ui.Component.
func (m *Model) View() string {
	e, ok := m.presenter.Current()
	if !ok || m.width == 0 {
		return ""
	}
	st := m.theme.Modal
	inner := m.inner

	title := theme.Swatch(calendar.Color(e.Type), "●") + " " + st.Title.Render(e.Name)
	meta := []string{e.Date.Format("Monday, January 2, 2006"), e.Type.Label()}
	if e.Country != "" {
		meta = append(meta, e.Country)
	}
	if e.Religion != "" {
		meta = append(meta, e.Religion)
	}

	tabs := make([]string, 0, len(detail.Tabs()))
	for _, t := range detail.Tabs() {
		if t == m.presenter.Tab() {
			tabs = append(tabs, st.ActiveTab.Render(t.String()))
			continue
		}
		tabs = append(tabs, st.Tab.Render(t.String()))
	}

	help := "tab switch · x export .ics · s share · esc close"
	if m.status != "" {
		help = m.status
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		truncate.StringWithTail(title, uint(inner), "…"),
		st.Meta.Render(truncate.StringWithTail(strings.Join(meta, " · "), uint(inner), "…")),
		"",
		strings.Join(tabs, " "),
		"",
		m.viewport.View(),
		"",
		m.theme.Footer.Help.Render(truncate.StringWithTail(help, uint(inner), "…")),
	)
	return st.Frame.Width(m.width).Height(m.height).Render(body)
}
