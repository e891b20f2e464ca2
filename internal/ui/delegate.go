package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/five82/docket/internal/derive"
	"github.com/five82/docket/internal/todos"
)

const (
	boxChecked   = "[x]"
	boxUnchecked = "[ ]"
)

// rowItem adapts todos.Item to list.Item.
type rowItem struct {
	todos.Item
}

func (r rowItem) FilterValue() string { return r.Title }

func checkbox(checked bool) string {
	if checked {
		return boxChecked
	}
	return boxUnchecked
}

// rowDelegate renders one single-line row: checkbox and truncated title.
type rowDelegate struct {
	normal   lipgloss.Style
	done     lipgloss.Style
	box      lipgloss.Style
	boxDone  lipgloss.Style
	selected lipgloss.Style
}

func newRowDelegate(styles Styles) rowDelegate {
	return rowDelegate{
		normal:   styles.Text,
		done:     styles.MutedText.Strikethrough(true),
		box:      styles.MutedText,
		boxDone:  styles.SuccessText,
		selected: styles.Selected.Bold(true),
	}
}

func (d rowDelegate) Height() int                             { return 1 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(rowItem)
	if !ok {
		return
	}
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	title := derive.RowTitle(firstLine(row.Title))
	if index == m.Index() {
		line := "> " + checkbox(row.Checked) + " " + title
		fmt.Fprint(w, d.selected.Render(fitWidth(line, contentW)))
		return
	}

	box, text := d.box.Render(checkbox(row.Checked)), d.normal.Render(title)
	if row.Checked {
		box, text = d.boxDone.Render(boxChecked), d.done.Render(title)
	}
	fmt.Fprint(w, fitWidth("  "+box+" "+text, contentW))
}

// fitWidth pads or cuts line to exactly width cells.
func fitWidth(line string, width int) string {
	lineW := xansi.StringWidth(line)
	if lineW < width {
		return line + strings.Repeat(" ", width-lineW)
	}
	if lineW > width {
		return xansi.Cut(line, 0, width)
	}
	return line
}
