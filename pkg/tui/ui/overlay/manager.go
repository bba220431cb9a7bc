// Package overlay paints a foreground block over a rendered background.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

// Placement controls overlay alignment and sizing.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginX    int
	MarginY    int
	Width      int
	Height     int
}

// Centered returns a placement taking frac of each dimension, never smaller
// than the minimums unless the screen is.
func Centered(width, height int, frac float64, minW, minH int) Placement {
	w := fitSize(int(float64(width)*frac), minW, width)
	h := fitSize(int(float64(height)*frac), minH, height)
	return Placement{
		Horizontal: lipgloss.Center,
		Vertical:   lipgloss.Center,
		Width:      w,
		Height:     h,
	}
}

// Compose overlays the foreground atop the background. Background cells
// outside the overlay rectangle are preserved.
func Compose(background string, width, height int, foreground string, p Placement) string {
	bg := normalize(background, width, height)
	if foreground == "" || width <= 0 || height <= 0 {
		return strings.Join(bg, "\n")
	}
	fg := strings.Split(foreground, "\n")

	w := p.Width
	if w <= 0 {
		for _, line := range fg {
			w = max(w, lipgloss.Width(line))
		}
	}
	w = min(w, width)
	h := p.Height
	if h <= 0 {
		h = len(fg)
	}
	h = min(h, height)
	if w <= 0 || h <= 0 {
		return strings.Join(bg, "\n")
	}

	x, y := offsets(width, height, w, h, p)
	for row := 0; row < h; row++ {
		line := ""
		if row < len(fg) {
			line = fg[row]
		}
		base := bg[y+row]
		bg[y+row] = truncate.String(base, uint(x)) + pad(line, w) + skip(base, x+w)
	}
	return strings.Join(bg, "\n")
}

func normalize(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = pad(lines[i], width)
	}
	return lines
}

// pad forces s to exactly width cells.
func pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	} else if w > width {
		return truncate.String(s, uint(width))
	}
	return s
}

// skip drops the first n printable cells of s. Escape sequences are dropped
// with them; the caller resets styling by painting its own content first.
func skip(s string, n int) string {
	var b strings.Builder
	seen := 0
	inSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			inSeq = true
		}
		if inSeq {
			if seen >= n {
				b.WriteRune(r)
			}
			if ansi.IsTerminator(r) {
				inSeq = false
			}
			continue
		}
		if seen >= n {
			b.WriteRune(r)
			continue
		}
		seen += lipgloss.Width(string(r))
	}
	return b.String()
}

func offsets(width, height, w, h int, p Placement) (int, int) {
	x := p.MarginX
	switch p.Horizontal {
	case lipgloss.Right:
		x = width - w - p.MarginX
	case lipgloss.Center:
		x = (width - w) / 2
	}
	y := p.MarginY
	switch p.Vertical {
	case lipgloss.Bottom:
		y = height - h - p.MarginY
	case lipgloss.Center:
		y = (height - h) / 2
	}
	return clampSize(x, 0, width-w), clampSize(y, 0, height-h)
}

// fitSize raises v to lower, then caps it at the screen size.
func fitSize(v, lower, screen int) int {
	return max(min(max(v, lower), screen), 0)
}

// clampSize keeps an offset inside [lower, upper]; lower wins when the
// overlay is larger than the screen.
func clampSize(v, lower, upper int) int {
	if v > upper {
		v = upper
	}
	if v < lower {
		v = lower
	}
	return v
}
