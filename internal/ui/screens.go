package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/five82/docket/internal/router"
	"github.com/five82/docket/internal/todos"
)

const (
	listHeading     = "List of things to complete"
	notFoundMessage = "URL is not found. We can take you to the main page."
)

// toolbarControls is the number of toolbar buttons leading every control set.
const toolbarControls = 2

// controls returns the focusable buttons of the current screen, in tab order.
// The toolbar's Add Todo and Sort Todos come first on every screen.
func (m Model) controls() []ControlButton {
	k := m.keys
	out := []ControlButton{
		{Label: "Add Todo", Key: k.Add, OnControl: raise(intentAdd)},
		{Label: "Sort Todos", Key: k.Sort, OnControl: raise(intentSort)},
	}
	switch m.view.Route.Screen {
	case router.ScreenList:
		return out
	case router.ScreenDetail:
		out = append(out, ControlButton{Label: "Go Back", Key: k.Back, OnControl: raise(intentBack)})
		if len(m.view.Detail) > 0 {
			out = append(out,
				ControlButton{Label: checkbox(m.view.Detail[0].Checked), Key: k.Check, OnControl: raise(intentCheck)},
				ControlButton{Label: "Edit", Key: k.Edit, OnControl: raise(intentEdit)},
				ControlButton{Label: "Delete", Key: k.Delete, OnControl: raise(intentDelete)},
			)
		}
		return out
	default:
		return append(out, ControlButton{Label: "Main page", Key: k.Home, OnControl: raise(intentHome)})
	}
}

// rowControls act on the highlighted list row.
func (m Model) rowControls() []ControlButton {
	k := m.keys
	return []ControlButton{
		{Label: "Check", Key: k.Check, OnControl: raise(intentCheck)},
		{Label: "Edit", Key: k.Edit, OnControl: raise(intentEdit)},
		{Label: "Delete", Key: k.Delete, OnControl: raise(intentDelete)},
	}
}

// lookup finds id in the last loaded collection.
func (m Model) lookup(id int) (todos.Item, bool) {
	for _, it := range m.view.Snapshot.Todos {
		if it.ID == id {
			return it, true
		}
	}
	return todos.Item{}, false
}

// renderMain renders header, the routed screen and the footer.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderToolbar())
	b.WriteString("\n\n")

	switch m.view.Route.Screen {
	case router.ScreenList:
		b.WriteString(m.renderList())
	case router.ScreenDetail:
		b.WriteString(m.renderDetail())
	default:
		b.WriteString(m.renderNotFound())
	}

	body := strings.TrimRight(b.String(), "\n")
	used := strings.Count(body, "\n") + 1
	if pad := m.height - used - 2; pad > 0 {
		body += strings.Repeat("\n", pad)
	}
	return body + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	snap := m.view.Snapshot

	parts := []string{
		bg.Render("docket", styles.Logo),
		bg.Render(m.view.Route.Path, styles.MutedText),
		bg.Render(fmt.Sprintf("%s %d", boxChecked, m.view.Done), styles.SuccessText) +
			bg.Render("  ", styles.Text) +
			bg.Render(fmt.Sprintf("%s %d", boxUnchecked, m.view.Pending), styles.WarningText),
	}
	if m.pending > 0 {
		parts = append(parts, bg.Render(m.spinner.View(), styles.AccentText))
	}
	if snap.IsOffline() {
		parts = append(parts, bg.Render("OFFLINE", styles.DangerText))
	}
	return styles.Header.Render(bg.FillLine(bg.Join(parts...), max(m.width-2, 1)))
}

// renderToolbar renders the heading and the [Add Todo] search [Sort Todos]
// row shown above every screen.
func (m Model) renderToolbar() string {
	styles := m.theme.Styles()
	controls := m.controls()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(listHeading))
	b.WriteString("\n")

	searchWidth := max(m.width-30, 20)
	toolbar := []string{
		controls[0].Render(styles, m.focus == 0),
		m.search.View(styles, searchWidth),
		controls[1].Render(styles, m.focus == 1),
	}
	if m.view.Snapshot.Sorted {
		toolbar = append(toolbar, styles.MutedText.Render("by title"))
	}
	b.WriteString(strings.Join(toolbar, " "))
	return b.String()
}

func (m Model) renderList() string {
	styles := m.theme.Styles()

	var b strings.Builder
	snap := m.view.Snapshot
	switch {
	case !snap.Loaded && snap.LastError == nil:
		b.WriteString(styles.FaintText.Render(m.spinner.View() + " Loading todos..."))
	case len(m.view.Rows) == 0 && snap.Search != "":
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("No todos match %q", snap.Search)))
	case len(m.view.Rows) == 0:
		b.WriteString(styles.FaintText.Render("Nothing to do. Press a to add a todo."))
	default:
		b.WriteString(m.rows.View())
	}
	return b.String()
}

func (m Model) renderDetail() string {
	styles := m.theme.Styles()
	controls := m.controls()[toolbarControls:]
	focus := m.focus - toolbarControls

	var b strings.Builder
	b.WriteString(controls[0].Render(styles, focus == 0))
	b.WriteString("\n\n")

	if len(m.view.Detail) == 0 {
		return b.String()
	}

	width := min(max(m.width-8, 10), LayoutMaxContentWidth)
	for _, item := range m.view.Detail {
		b.WriteString(controls[1].Render(styles, focus == 1))
		b.WriteString(" ")
		b.WriteString(renderTitle(styles, item.Title, item.Checked, width))
		b.WriteString("\n\n")
	}
	b.WriteString(controls[2].Render(styles, focus == 2))
	b.WriteString(" ")
	b.WriteString(controls[3].Render(styles, focus == 3))
	return b.String()
}

// renderTitle renders a todo title as literal text, wrapped to width.
func renderTitle(styles Styles, title string, checked bool, width int) string {
	if xansi.StringWidth(title) > width {
		title = xansi.Wrap(title, width, "")
	}
	return titleStyle(styles, checked).Render(title)
}

// titleStyle strikes through finished todos.
func titleStyle(styles Styles, checked bool) lipgloss.Style {
	if checked {
		return styles.MutedText.Strikethrough(true)
	}
	return styles.Text
}

func (m Model) renderNotFound() string {
	styles := m.theme.Styles()
	controls := m.controls()[toolbarControls:]

	var b strings.Builder
	b.WriteString(controls[0].Render(styles, m.focus == toolbarControls))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(notFoundMessage))
	return b.String()
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	var line string
	snap := m.view.Snapshot
	switch {
	case m.lastErr != nil:
		line = bg.Render("Error: "+truncate(m.lastErr.Error(), max(m.width-10, 20)), styles.DangerText)
	case snap.LastError != nil:
		line = bg.Render("Refresh failed: "+truncate(snap.LastError.Error(), max(m.width-20, 20)), styles.WarningText)
	case m.status != "":
		line = bg.Render(m.status, styles.SuccessText)
	case !snap.LastUpdated.IsZero():
		line = bg.Render("Updated "+snap.LastUpdated.Format("15:04:05"), styles.InfoText)
	}

	var help string
	if m.width < LayoutCompactWidth {
		help = m.help.ShortHelpView([]key.Binding{m.keys.Help, m.keys.Quit})
	} else {
		help = m.help.View(screenKeys{keys: m.keys, screen: m.view.Route.Screen})
	}
	return styles.Footer.Render(bg.FillLine(line, max(m.width-2, 1))) + "\n" + help
}
