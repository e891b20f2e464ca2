package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/five82/docket/internal/logging"
	"github.com/five82/docket/internal/prefs"
	"github.com/five82/docket/internal/router"
	"github.com/five82/docket/internal/shell"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Shell     *shell.Shell
	Logger    *log.Logger
	Prefs     prefs.Prefs
	PrefsPath string
	PollTick  time.Duration
}

// noFocus means no toolbar control has focus; keys go to the screen itself.
const noFocus = -1

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	shell     *shell.Shell
	logger    *log.Logger
	prefsPath string
	pollTick  time.Duration

	// UI state
	keys     keyMap
	help     help.Model
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool
	modal    Modal
	focus    int

	// Data state
	view    shell.View
	rows    list.Model
	search  SearchBox
	spinner spinner.Model
	pending int
	status  string
	lastErr error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = DefaultUIInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	theme := GetTheme(opts.Prefs.Theme)

	rows := list.New(nil, newRowDelegate(theme.Styles()), 0, 0)
	rows.SetShowTitle(false)
	rows.SetShowStatusBar(false)
	rows.SetShowHelp(false)
	rows.SetFilteringEnabled(false)
	rows.SetShowPagination(true)
	rows.DisableQuitKeybindings()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = theme.Styles().AccentText

	m := Model{
		ctx:       ctx,
		shell:     opts.Shell,
		logger:    logger,
		prefsPath: prefsPath,
		pollTick:  pollTick,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     theme,
		focus:     noFocus,
		rows:      rows,
		search:    NewSearchBox(),
		spinner:   sp,
	}
	m.syncView()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
		func() tea.Msg { return intentMsg{kind: intentRefresh} },
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rows.SetSize(msg.Width, max(msg.Height-listChromeLines, 1))
		m.ready = true
		return m, nil

	case tickMsg:
		m.syncView()
		return m, tickCmd(m.pollTick)

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case intentMsg:
		return m.handleIntent(msg)

	case promptResultMsg:
		return m.handlePromptResult(msg)

	case requestDoneMsg:
		m.pending = max(m.pending-1, 0)
		switch {
		case msg.err == nil:
			m.lastErr = nil
			m.status = actionStatus(msg.action)
		case errors.Is(msg.err, shell.ErrEmptyTitle):
			m.status = ""
		default:
			m.lastErr = msg.err
			m.status = ""
			m.logger.Error("action failed", "action", msg.action, "err", msg.err)
		}
		m.syncView()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}

	screen := m.view.Route.Screen
	controls := m.controls()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.setTheme(GetTheme(NextTheme(m.theme.Name)))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m.handleIntent(intentMsg{kind: intentRefresh})

	case key.Matches(msg, m.keys.GoTo):
		m.modal = newPromptModal(promptPath, 0, m.view.Route.Path)
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.focus = cycleFocus(m.focus, len(controls), 1)
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.focus = cycleFocus(m.focus, len(controls), -1)
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.focus != noFocus {
			m.focus = noFocus
			return m, nil
		}
		if screen != router.ScreenList {
			return m.handleIntent(intentMsg{kind: intentBack})
		}
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if m.focus >= 0 && m.focus < len(controls) {
			return m, controls[m.focus].Press(m.targetID())
		}
		switch screen {
		case router.ScreenList:
			if id, ok := m.selectedID(); ok {
				return m.handleIntent(intentMsg{kind: intentOpen, id: id})
			}
		case router.ScreenNotFound:
			return m.handleIntent(intentMsg{kind: intentHome})
		}
		return m, nil
	}

	for _, c := range controls {
		if key.Matches(msg, c.Key) {
			return m, c.Press(m.targetID())
		}
	}
	if screen != router.ScreenList && key.Matches(msg, m.keys.Back) {
		return m.handleIntent(intentMsg{kind: intentBack})
	}
	if key.Matches(msg, m.keys.Search) {
		m.focus = noFocus
		return m, m.search.Focus()
	}

	if screen == router.ScreenList {
		for _, c := range m.rowControls() {
			if key.Matches(msg, c.Key) {
				id, ok := m.selectedID()
				if !ok {
					return m, nil
				}
				return m, c.Press(id)
			}
		}
		var cmd tea.Cmd
		m.rows, cmd = m.rows.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleSearchKey feeds keys to the focused search box and mirrors its text
// into the shell.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Confirm) {
		m.search.Blur()
		return m, nil
	}
	var (
		cmd     tea.Cmd
		changed bool
	)
	m.search, cmd, changed = m.search.Update(msg)
	if changed {
		m.shell.SetSearch(m.search.Value())
		m.syncView()
		m.rows.Select(0)
	}
	return m, cmd
}

// handleIntent carries out a user action.
func (m Model) handleIntent(msg intentMsg) (tea.Model, tea.Cmd) {
	sh := m.shell
	switch msg.kind {
	case intentRefresh:
		return m.startRequest("refresh", sh.Refresh)

	case intentAdd:
		m.modal = newPromptModal(promptAdd, 0, "")
		return m, nil

	case intentEdit:
		initial := ""
		if item, ok := m.lookup(msg.id); ok {
			initial = item.Title
		}
		m.modal = newPromptModal(promptEdit, msg.id, initial)
		return m, nil

	case intentOpen:
		sh.OpenTask(msg.id)

	case intentCheck:
		id := msg.id
		return m.startRequest("check", func(ctx context.Context) error {
			return sh.Check(ctx, id)
		})

	case intentDelete:
		id := msg.id
		return m.startRequest("delete", func(ctx context.Context) error {
			return sh.Delete(ctx, id)
		})

	case intentSort:
		sh.ToggleSort()
		m.syncView()
		m.savePrefs()
		return m, nil

	case intentBack:
		sh.Back()

	case intentHome:
		sh.Navigate(router.RootPath)
	}
	m.syncView()
	return m, nil
}

func (m Model) handlePromptResult(msg promptResultMsg) (tea.Model, tea.Cmd) {
	sh := m.shell
	switch msg.kind {
	case promptAdd:
		title := msg.value
		return m.startRequest("add", func(ctx context.Context) error {
			_, err := sh.Add(ctx, title)
			return err
		})
	case promptEdit:
		id, title := msg.id, msg.value
		return m.startRequest("edit", func(ctx context.Context) error {
			return sh.Edit(ctx, id, title)
		})
	case promptPath:
		sh.Navigate(msg.value)
		m.syncView()
	}
	return m, nil
}

// startRequest runs fn as a command and shows the spinner until it reports back.
func (m Model) startRequest(action string, fn func(ctx context.Context) error) (tea.Model, tea.Cmd) {
	m.pending++
	m.status = ""
	cmds := []tea.Cmd{requestCmd(m.ctx, action, fn)}
	if m.pending == 1 {
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

// syncView re-derives the screen from the shell.
func (m *Model) syncView() {
	if m.shell == nil {
		return
	}
	prev := m.view.Route.Path
	m.view = m.shell.View()
	if m.view.Route.Path != prev {
		m.focus = noFocus
	}
	if m.search.Value() != m.view.Snapshot.Search {
		m.search.SetValue(m.view.Snapshot.Search)
	}

	items := make([]list.Item, 0, len(m.view.Rows))
	for _, it := range m.view.Rows {
		items = append(items, rowItem{Item: it})
	}
	m.rows.SetItems(items)
	if n := len(items); n > 0 && m.rows.Index() >= n {
		m.rows.Select(n - 1)
	}
}

func (m *Model) setTheme(t Theme) {
	m.theme = t
	m.rows.SetDelegate(newRowDelegate(t.Styles()))
	m.spinner.Style = t.Styles().AccentText
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, SortByTitle: m.view.Snapshot.Sorted}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", "err", err)
	}
}

// selectedID returns the id of the highlighted row.
func (m Model) selectedID() (int, bool) {
	row, ok := m.rows.SelectedItem().(rowItem)
	if !ok {
		return 0, false
	}
	return row.ID, true
}

// targetID is the item the screen's controls act on.
func (m Model) targetID() int {
	switch m.view.Route.Screen {
	case router.ScreenList:
		id, _ := m.selectedID()
		return id
	case router.ScreenDetail:
		if len(m.view.Detail) > 0 {
			return m.view.Detail[0].ID
		}
	}
	return 0
}

func cycleFocus(current, n, step int) int {
	if n == 0 {
		return noFocus
	}
	if current == noFocus {
		if step > 0 {
			return 0
		}
		return n - 1
	}
	next := current + step
	if next < 0 || next >= n {
		return noFocus
	}
	return next
}

func actionStatus(action string) string {
	switch action {
	case "add":
		return "Todo added"
	case "edit":
		return "Todo updated"
	case "delete":
		return "Todo deleted"
	case "check":
		return "Todo toggled"
	case "refresh":
		return ""
	default:
		return action + " done"
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}

// placeCenter centers content in the terminal, like the help and prompt overlays.
func (m Model) placeCenter(content string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content,
		lipgloss.WithWhitespaceChars(" "))
}
