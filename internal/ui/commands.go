package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Messages

type tickMsg time.Time

// intent is a user action raised by a control or a key.
type intent int

const (
	intentRefresh intent = iota
	intentAdd
	intentOpen
	intentCheck
	intentEdit
	intentDelete
	intentSort
	intentBack
	intentHome
)

type intentMsg struct {
	kind intent
	id   int
}

// requestDoneMsg reports a finished network action.
type requestDoneMsg struct {
	action string
	err    error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func raise(kind intent) func(id int) tea.Cmd {
	return func(id int) tea.Cmd {
		return func() tea.Msg { return intentMsg{kind: kind, id: id} }
	}
}

// requestCmd runs fn off the UI goroutine under RequestTimeout.
func requestCmd(parent context.Context, action string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, RequestTimeout)
		defer cancel()
		return requestDoneMsg{action: action, err: fn(ctx)}
	}
}
