package ui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	mdRendererMu sync.Mutex
	// Keyed by style and wrap width. WithAutoStyle queries the terminal and
	// can block, so the style is chosen up front and renderers are reused.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

// renderMarkdown renders trusted markdown such as the help overlay. Todo titles
// never go through it. On any renderer failure the plain text is returned.
func renderMarkdown(md string, width int, themeName string) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := markdownStyle(themeName)
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdRendererMu.Unlock()
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}
	mdRendererMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// markdownStyle follows the lipgloss color profile: plain output when colors
// are off, otherwise the glamour palette closest to the UI theme.
func markdownStyle(themeName string) string {
	if lipgloss.ColorProfile() == termenv.Ascii {
		return styles.NoTTYStyle
	}
	if themeName == "Dracula" {
		return styles.DraculaStyle
	}
	return styles.DarkStyle
}
