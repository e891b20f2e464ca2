package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// BgStyle provides helpers for rendering text with consistent background colors.
// Lipgloss resets between styled segments leave gaps in the background, so
// every segment and separator gets the background explicitly.
type BgStyle struct {
	bg    lipgloss.Color
	space string // cached styled space
}

// NewBgStyle creates a new background style helper for the given color.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Render renders text with a style on the helper's background.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	return style.Background(b.bg).Render(text)
}

// Join joins already rendered parts with styled spaces.
func (b BgStyle) Join(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, b.space+b.space)
}

// FillLine pads rendered content to width with the background color,
// cutting it when it is wider.
func (b BgStyle) FillLine(content string, width int) string {
	if width <= 0 {
		return content
	}
	if xansi.StringWidth(content) > width {
		content = xansi.Truncate(content, width, "…")
	}
	return lipgloss.NewStyle().Background(b.bg).Width(width).Render(content)
}
