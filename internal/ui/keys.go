package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/five82/docket/internal/router"
)

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Refresh    key.Binding
	GoTo       key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding
	Confirm    key.Binding

	// Navigation
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Home key.Binding

	// Item actions
	Add    key.Binding
	Sort   key.Binding
	Search key.Binding
	Check  key.Binding
	Edit   key.Binding
	Delete key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		GoTo: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "Go to path"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next control"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous control"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open / press"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "backspace"),
			key.WithHelp("b", "Go back"),
		),
		Home: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Main page"),
		),

		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add todo"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Sort todos"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		Check: key.NewBinding(
			key.WithKeys("x", " "),
			key.WithHelp("x", "Check"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete"),
		),
	}
}

// screenKeys narrows the help bar to the bindings of one screen.
type screenKeys struct {
	keys   keyMap
	screen router.Screen
}

// ShortHelp returns key bindings for the short help view.
func (s screenKeys) ShortHelp() []key.Binding {
	k := s.keys
	switch s.screen {
	case router.ScreenList:
		return []key.Binding{k.Add, k.Search, k.Sort, k.Check, k.Confirm, k.Help, k.Quit}
	case router.ScreenDetail:
		return []key.Binding{k.Back, k.Check, k.Edit, k.Delete, k.Add, k.Search, k.Help, k.Quit}
	default:
		return []key.Binding{k.Home, k.Back, k.Add, k.Search, k.Help, k.Quit}
	}
}

// FullHelp returns key bindings for the full help view.
func (s screenKeys) FullHelp() [][]key.Binding {
	k := s.keys
	return [][]key.Binding{
		{k.Up, k.Down, k.Tab, k.ShiftTab, k.Confirm},
		{k.Back, k.Home, k.GoTo},
		{k.Add, k.Search, k.Sort, k.Check, k.Edit, k.Delete},
		{k.Refresh, k.CycleTheme, k.Help, k.Quit},
	}
}
