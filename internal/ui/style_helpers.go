package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// surface paints a header, command bar or list row on one background. Each
// segment carries the background itself so the joins between separately
// styled segments are never left unpainted.
type surface struct {
	color lipgloss.Color
	fill  lipgloss.Style
}

func newSurface(color string) surface {
	c := lipgloss.Color(color)
	return surface{color: c, fill: lipgloss.NewStyle().Background(c)}
}

// Render draws text in style on the surface.
func (s surface) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	return style.Background(s.color).Render(text)
}

// Spaces returns n painted blanks.
func (s surface) Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return s.fill.Render(strings.Repeat(" ", n))
}

// Join joins rendered parts with a painted separator.
func (s surface) Join(parts []string, sep string) string {
	return strings.Join(parts, s.fill.Render(sep))
}

// FillLine pads a rendered line to width.
func (s surface) FillLine(content string, width int) string {
	return s.fill.Width(width).Render(content)
}
