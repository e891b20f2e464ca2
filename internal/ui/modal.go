package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

type promptKind int

const (
	promptAdd promptKind = iota
	promptEdit
	promptPath
)

// promptResultMsg carries a submitted prompt value back to the model.
type promptResultMsg struct {
	kind  promptKind
	id    int
	value string
}

// promptModal asks for one line of text: a new title, an edited title or a
// path to navigate to.
type promptModal struct {
	kind  promptKind
	id    int
	title string
	input textinput.Model
}

func newPromptModal(kind promptKind, id int, initial string) promptModal {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200
	ti.Width = 40
	switch kind {
	case promptPath:
		ti.Placeholder = "/task/1"
	default:
		ti.Placeholder = "Todo title..."
	}
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()

	title := "Add todo"
	switch kind {
	case promptEdit:
		title = "Edit todo"
	case promptPath:
		title = "Go to path"
	}
	return promptModal{kind: kind, id: id, title: title, input: ti}
}

func (p promptModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Escape):
			return p, nil, true
		case key.Matches(km, keys.Confirm):
			value := strings.TrimSpace(p.input.Value())
			if value == "" {
				// Nothing entered: behave like a cancelled prompt.
				return p, nil, true
			}
			result := promptResultMsg{kind: p.kind, id: p.id, value: value}
			return p, func() tea.Msg { return result }, true
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd, false
}

func (p promptModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(p.title))
	b.WriteString("\n\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("enter to confirm, esc to cancel"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.BorderFocus)).
		Padding(1, 2).
		Width(50)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
	)
}
