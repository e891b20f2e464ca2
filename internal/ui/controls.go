package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Button renders a labelled push button. It holds no state; focus is decided
// by the caller.
func Button(styles Styles, label string, focused bool) string {
	style := styles.Button
	if focused {
		style = styles.ButtonFocused
	}
	return style.Render(label)
}

// ControlButton is a button bound to one item. Pressing it hands the item id
// to OnControl.
type ControlButton struct {
	Label     string
	Key       key.Binding
	OnControl func(id int) tea.Cmd
}

// Render draws the button.
func (c ControlButton) Render(styles Styles, focused bool) string {
	return Button(styles, c.Label, focused)
}

// Press invokes the handler with id.
func (c ControlButton) Press(id int) tea.Cmd {
	if c.OnControl == nil {
		return nil
	}
	return c.OnControl(id)
}

// SearchBox is the toolbar's search field. Its value mirrors the shell's
// search text; the model copies it across on every change.
type SearchBox struct {
	input textinput.Model
}

// NewSearchBox builds an unfocused, empty search box.
func NewSearchBox() SearchBox {
	ti := textinput.New()
	ti.Prompt = "Search: "
	ti.Placeholder = "type to filter"
	ti.CharLimit = 120
	return SearchBox{input: ti}
}

// Focus gives the box keyboard input.
func (s *SearchBox) Focus() tea.Cmd { return s.input.Focus() }

// Blur releases keyboard input.
func (s *SearchBox) Blur() { s.input.Blur() }

// Focused reports whether the box has keyboard input.
func (s SearchBox) Focused() bool { return s.input.Focused() }

// Value returns the current text.
func (s SearchBox) Value() string { return s.input.Value() }

// SetValue replaces the text and moves the cursor to the end.
func (s *SearchBox) SetValue(v string) {
	s.input.SetValue(v)
	s.input.CursorEnd()
}

// Update feeds msg to the input and reports whether the text changed.
func (s SearchBox) Update(msg tea.Msg) (SearchBox, tea.Cmd, bool) {
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, s.input.Value() != before
}

// View renders the box.
func (s SearchBox) View(styles Styles, width int) string {
	style := styles.SearchBox
	if s.Focused() {
		style = styles.SearchBoxFocused
	}
	if width > 0 {
		s.input.Width = max(width-len(s.input.Prompt)-4, 8)
	}
	return style.Render(s.input.View())
}
