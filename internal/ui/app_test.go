package ui

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/five82/docket/internal/prefs"
	"github.com/five82/docket/internal/router"
	"github.com/five82/docket/internal/shell"
	"github.com/five82/docket/internal/todos"
	"github.com/five82/docket/internal/todos/todostest"
)

type harness struct {
	t         *testing.T
	m         Model
	srv       *todostest.Server
	shell     *shell.Shell
	prefsPath string
}

func newHarness(t *testing.T, items ...todos.Item) *harness {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)

	srv := todostest.New(t, items...)
	client, err := todos.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	sh := shell.New(shell.Options{Client: client})
	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")

	h := &harness{
		t:         t,
		m:         New(Options{Context: context.Background(), Shell: sh, PrefsPath: prefsPath}),
		srv:       srv,
		shell:     sh,
		prefsPath: prefsPath,
	}
	h.send(tea.WindowSizeMsg{Width: 80, Height: 24})
	h.run(func() tea.Msg { return intentMsg{kind: intentRefresh} })
	return h
}

// send delivers msg and returns the command Update produced without running it.
func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	m, ok := next.(Model)
	if !ok {
		h.t.Fatalf("Update returned %T, want Model", next)
	}
	h.m = m
	return cmd
}

// run executes cmd and feeds every resulting message back, following
// batches. Timer driven messages are dropped.
func (h *harness) run(cmd tea.Cmd) {
	h.t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg, tickMsg, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			queue = append(queue, h.send(msg))
		}
	}
}

// press sends a key and runs the command it produces.
func (h *harness) press(k string) {
	h.t.Helper()
	h.run(h.send(keyMsg(k)))
}

// typeText sends each rune as a key without running blink commands.
func (h *harness) typeText(s string) {
	h.t.Helper()
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func (h *harness) screen() router.Screen {
	return h.m.view.Route.Screen
}

func (h *harness) assertContains(want ...string) {
	h.t.Helper()
	out := h.m.View()
	for _, w := range want {
		if !strings.Contains(out, w) {
			h.t.Fatalf("view missing %q:\n%s", w, out)
		}
	}
}

func (h *harness) assertNotContains(unwanted ...string) {
	h.t.Helper()
	out := h.m.View()
	for _, w := range unwanted {
		if strings.Contains(out, w) {
			h.t.Fatalf("view unexpectedly contains %q:\n%s", w, out)
		}
	}
}

func TestListScreen_RendersControlsAndTruncatedRows(t *testing.T) {
	h := newHarness(t,
		todos.Item{ID: 1, Title: "Buy groceries today"},
		todos.Item{ID: 2, Title: "Walk", Checked: true},
	)

	h.assertContains(listHeading, "Add Todo", "Sort Todos", "Search:",
		"[ ] Buy grocer...", "[x] Walk")
	h.assertNotContains("Buy groceries today")
}

func TestListScreen_EnterOpensDetail(t *testing.T) {
	h := newHarness(t, todos.Item{ID: 1, Title: "Buy groceries today"})

	h.press("enter")

	if h.screen() != router.ScreenDetail || h.m.view.Route.Path != "/task/1" {
		t.Fatalf("route = %+v, want /task/1", h.m.view.Route)
	}
	h.assertContains("Go Back", "Buy groceries today", "Edit", "Delete")
}

func TestListScreen_CheckTogglesSelectedRow(t *testing.T) {
	h := newHarness(t, todos.Item{ID: 5, Title: "A"})

	h.press("x")

	req, ok := h.srv.LastWrite()
	if !ok || req.Method != http.MethodPut || req.Path != "/todos/5" || req.Body["checked"] != true {
		t.Fatalf("last write = %+v", req)
	}
	h.assertContains("[x] A", "Todo toggled")
	if h.m.pending != 0 {
		t.Fatalf("pending = %d after request finished", h.m.pending)
	}
}

func TestAddPrompt_CreatesTodo(t *testing.T) {
	h := newHarness(t, todos.Item{ID: 1, Title: "first"})

	h.press("a")
	if h.m.modal == nil {
		t.Fatalf("add prompt not open")
	}
	h.assertContains("Add todo")

	h.typeText("Milk")
	h.press("enter")

	if h.m.modal != nil {
		t.Fatalf("prompt still open after enter")
	}
	items := h.srv.Items()
	if len(items) != 2 || items[1].Title != "Milk" {
		t.Fatalf("stored = %#v", items)
	}
	if h.screen() != router.ScreenList {
		t.Fatalf("route = %s, want list", h.screen())
	}
	h.assertContains("Milk", "Todo added")
}

func TestAddPrompt_EmptyOrCancelledSendsNothing(t *testing.T) {
	h := newHarness(t)
	before := len(h.srv.Requests())

	h.press("a")
	h.typeText("   ")
	h.press("enter")

	h.press("a")
	h.typeText("later")
	h.press("esc")

	if h.m.modal != nil {
		t.Fatalf("prompt still open")
	}
	if got := len(h.srv.Requests()); got != before {
		t.Fatalf("requests = %d, want %d", got, before)
	}
}

func TestSearchBox_FiltersRowsAndMirrorsShell(t *testing.T) {
	h := newHarness(t,
		todos.Item{ID: 1, Title: "Buy milk"},
		todos.Item{ID: 2, Title: "Walk dog"},
	)

	h.send(keyMsg("/"))
	if !h.m.search.Focused() {
		t.Fatalf("search box not focused")
	}
	h.typeText("DOG")

	if got := h.shell.Store().Snapshot().Search; got != "DOG" {
		t.Fatalf("shell search = %q, want DOG", got)
	}
	h.assertContains("Walk dog")
	h.assertNotContains("Buy milk")

	// q is text while the box is focused.
	h.typeText("q")
	if h.m.search.Value() != "DOGq" {
		t.Fatalf("search value = %q", h.m.search.Value())
	}

	h.press("esc")
	if h.m.search.Focused() {
		t.Fatalf("search box still focused after esc")
	}
}

func TestMutationClearsSearchBox(t *testing.T) {
	h := newHarness(t, todos.Item{ID: 1, Title: "Buy milk"})

	h.send(keyMsg("/"))
	h.typeText("milk")
	h.press("enter")
	h.press("d")

	if h.m.search.Value() != "" || h.shell.Store().Snapshot().Search != "" {
		t.Fatalf("search not cleared: box %q shell %q", h.m.search.Value(), h.shell.Store().Snapshot().Search)
	}
	if len(h.srv.Items()) != 0 {
		t.Fatalf("stored = %#v", h.srv.Items())
	}
}

func TestSortButton_TogglesAndSavesPrefs(t *testing.T) {
	h := newHarness(t,
		todos.Item{ID: 1, Title: "b"},
		todos.Item{ID: 2, Title: "A"},
	)

	h.press("s")

	if !h.shell.Store().Snapshot().Sorted {
		t.Fatalf("sort not enabled")
	}
	if got := h.m.view.Rows; len(got) != 2 || got[0].ID != 2 {
		t.Fatalf("rows = %#v, want A first", got)
	}
	h.assertContains("by title")

	p, err := prefs.Load(h.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if !p.SortByTitle {
		t.Fatalf("prefs = %+v, want SortByTitle", p)
	}
}

func TestTabFocusAndEnterPressesButton(t *testing.T) {
	h := newHarness(t, todos.Item{ID: 1, Title: "a"})

	h.press("tab")
	if h.m.focus != 0 {
		t.Fatalf("focus = %d, want 0", h.m.focus)
	}
	h.press("enter")
	if h.m.modal == nil {
		t.Fatalf("enter on focused Add Todo did not open the prompt")
	}
}

func TestDetail_EditPromptPrefilledAndNavigatesHome(t *testing.T) {
	h := newHarness(t, todos.Item{ID: 3, Title: "Walk", Checked: true})
	h.press("enter")

	h.press("e")
	h.assertContains("Edit todo", "Walk")

	h.typeText("ing")
	h.press("enter")

	items := h.srv.Items()
	if items[0].Title != "Walking" || !items[0].Checked {
		t.Fatalf("stored = %#v, want edited title with checked kept", items)
	}
	if h.screen() != router.ScreenList {
		t.Fatalf("route = %s, want list", h.screen())
	}
}

func TestDetail_CheckStaysOnDetail(t *testing.T) {
	h := newHarness(t, todos.Item{ID: 3, Title: "Walk"})
	h.press("enter")

	h.press("space")

	if h.screen() != router.ScreenDetail {
		t.Fatalf("route = %s, want detail", h.screen())
	}
	if !h.srv.Items()[0].Checked {
		t.Fatalf("item not checked")
	}
	if got := h.m.controls()[toolbarControls+1].Label; got != boxChecked {
		t.Fatalf("checkbox label = %q, want %q", got, boxChecked)
	}
}

func TestDetail_DeleteFailureShowsErrorAndStays(t *testing.T) {
	h := newHarness(t, todos.Item{ID: 3, Title: "Walk"})
	h.press("enter")
	h.srv.FailWrites(http.StatusInternalServerError)

	h.press("d")

	if h.screen() != router.ScreenDetail {
		t.Fatalf("route = %s, want detail after failure", h.screen())
	}
	h.assertContains("Error: delete todo")
	if len(h.srv.Items()) != 1 {
		t.Fatalf("item removed despite failure")
	}
}

func TestDetail_BackReturnsToList(t *testing.T) {
	h := newHarness(t, todos.Item{ID: 3, Title: "Walk"})
	h.press("enter")

	h.press("b")

	if h.screen() != router.ScreenList {
		t.Fatalf("route = %s, want list", h.screen())
	}
}

func TestDetail_UnknownIDShowsOnlyToolbarAndGoBack(t *testing.T) {
	h := newHarness(t, todos.Item{ID: 3, Title: "Walk"})
	h.shell.Navigate("/task/abc")
	h.m.syncView()

	h.assertContains("Go Back", "Add Todo", "Sort Todos")
	h.assertNotContains("Walk")
	got := h.m.controls()
	if len(got) != toolbarControls+1 || got[toolbarControls].Label != "Go Back" {
		t.Fatalf("controls = %#v, want toolbar then Go Back", got)
	}
}

func TestDetail_TitleRenderedLiterally(t *testing.T) {
	titles := []string{"<todo>", "Call <Bob> today", "# heading", "*starred*", "---", "1. Pay rent"}
	var items []todos.Item
	for i, title := range titles {
		items = append(items, todos.Item{ID: i + 1, Title: title})
	}
	h := newHarness(t, items...)

	for i, title := range titles {
		h.shell.OpenTask(i + 1)
		h.m.syncView()
		h.assertContains(title)
		h.assertNotContains("--------")
	}
}

func TestTitleStyle_StrikesCheckedTitles(t *testing.T) {
	styles := GetTheme("Dracula").Styles()
	if !titleStyle(styles, true).GetStrikethrough() {
		t.Fatalf("checked title not struck through")
	}
	if titleStyle(styles, false).GetStrikethrough() {
		t.Fatalf("open title struck through")
	}
	lines := strings.Split(renderTitle(styles, "Walk the dog", true, 5), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	if got := strings.Join(lines, "|"); got != "Walk|the|dog" {
		t.Fatalf("renderTitle lines = %q", got)
	}
}

func TestToolbar_AddFromDetailReturnsHomeAndClearsSearch(t *testing.T) {
	h := newHarness(t, todos.Item{ID: 1, Title: "Walk"})
	h.press("enter")

	h.assertContains(listHeading, "Add Todo", "Sort Todos", "Search:")
	h.send(keyMsg("/"))
	h.typeText("Wa")
	h.press("enter")
	if h.screen() != router.ScreenDetail || h.shell.Store().Snapshot().Search != "Wa" {
		t.Fatalf("route = %s search = %q, want detail with search kept",
			h.screen(), h.shell.Store().Snapshot().Search)
	}

	h.press("a")
	if h.m.modal == nil {
		t.Fatalf("add prompt not open on the detail screen")
	}
	h.typeText("Milk")
	h.press("enter")

	if h.m.view.Route.Path != router.RootPath {
		t.Fatalf("route = %+v, want /", h.m.view.Route)
	}
	if h.m.search.Value() != "" || h.shell.Store().Snapshot().Search != "" {
		t.Fatalf("search not cleared: box %q shell %q", h.m.search.Value(), h.shell.Store().Snapshot().Search)
	}
	if items := h.srv.Items(); len(items) != 2 || items[1].Title != "Milk" {
		t.Fatalf("stored = %#v", items)
	}
}

func TestFooter_CompactWidthShowsOnlyHelpAndQuit(t *testing.T) {
	h := newHarness(t, todos.Item{ID: 1, Title: "a"})

	h.send(tea.WindowSizeMsg{Width: LayoutCompactWidth - 10, Height: 24})
	h.assertContains("Toggle help", "Quit")
	h.assertNotContains("Add todo")

	h.send(tea.WindowSizeMsg{Width: 80, Height: 24})
	h.assertContains("Add todo")
}

func TestPathPrompt_UnknownRouteAndMainPage(t *testing.T) {
	h := newHarness(t)

	h.press(":")
	h.typeText("unknown")
	h.press("enter")

	if h.screen() != router.ScreenNotFound {
		t.Fatalf("route = %+v, want not found", h.m.view.Route)
	}
	h.assertContains(notFoundMessage, "Main page")

	h.press("enter")
	if h.screen() != router.ScreenList || h.m.view.Route.Path != router.RootPath {
		t.Fatalf("route = %+v, want /", h.m.view.Route)
	}
}

func TestRefreshFailure_KeepsRowsAndShowsFooter(t *testing.T) {
	h := newHarness(t, todos.Item{ID: 1, Title: "kept"})
	h.srv.FailList(http.StatusBadGateway)

	h.press("r")

	h.assertContains("kept", "Error: refresh todos")
}

func TestThemeCycle_SavesPrefs(t *testing.T) {
	h := newHarness(t)
	start := h.m.theme.Name

	h.press("T")

	if h.m.theme.Name == start {
		t.Fatalf("theme unchanged")
	}
	data, err := os.ReadFile(h.prefsPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), h.m.theme.Name) {
		t.Fatalf("prefs = %s, want theme %s", data, h.m.theme.Name)
	}
}

func TestHelpOverlay_AnyKeyCloses(t *testing.T) {
	h := newHarness(t)

	h.press("?")
	h.assertContains("Keyboard Shortcuts", "Cycle theme", "Nightfox")
	h.press("x")
	if h.m.showHelp {
		t.Fatalf("help still shown")
	}
}

func TestQuitKeys(t *testing.T) {
	h := newHarness(t)
	for _, k := range []string{"q", "ctrl+c"} {
		cmd := h.send(keyMsg(k))
		if cmd == nil {
			t.Fatalf("%s returned no command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s did not quit", k)
		}
	}
}

func TestView_NotReadyBeforeWindowSize(t *testing.T) {
	m := New(Options{Shell: shell.New(shell.Options{}), PrefsPath: filepath.Join(t.TempDir(), "p.toml")})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View = %q", got)
	}
}
