package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// helpWidth is the text width inside the help modal.
const helpWidth = 36

var helpSections = []helpSection{
	{
		title: "Navigation",
		items: []helpItem{
			{"j/k", "Move up/down"},
			{"enter", "Open todo / press control"},
			{"tab", "Next control"},
			{"b/esc", "Go back"},
			{"m", "Main page"},
			{":", "Go to path"},
		},
	},
	{
		title: "Todos",
		items: []helpItem{
			{"a", "Add todo"},
			{"/", "Search"},
			{"s", "Sort by title"},
			{"x/space", "Check / uncheck"},
			{"e", "Edit title"},
			{"d", "Delete"},
		},
	},
	{
		title: "General",
		items: []helpItem{
			{"r", "Refresh"},
			{"T", "Cycle theme"},
			{"?", "Toggle help"},
			{"q/ctrl+c", "Quit"},
		},
	},
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	body := renderMarkdown(helpMarkdown(helpSections, ThemeNames()), helpWidth, m.theme.Name)

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(helpWidth + 4)

	return m.placeCenter(modal.Render(body))
}

// helpMarkdown lays the shortcut sections and the theme cycle out as markdown.
func helpMarkdown(sections []helpSection, themeNames []string) string {
	var b strings.Builder
	b.WriteString("# Keyboard Shortcuts\n\n")
	for _, section := range sections {
		fmt.Fprintf(&b, "## %s\n\n", section.title)
		for _, item := range section.items {
			fmt.Fprintf(&b, "- `%s` %s\n", item.key, item.desc)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Themes: %s\n", strings.Join(themeNames, ", "))
	return b.String()
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
