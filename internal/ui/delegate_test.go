package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/five82/docket/internal/todos"
)

func renderRows(t *testing.T, width int, items ...todos.Item) []string {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)

	d := newRowDelegate(GetTheme("Dracula").Styles())
	rows := make([]list.Item, 0, len(items))
	for _, it := range items {
		rows = append(rows, rowItem{Item: it})
	}
	m := list.New(rows, d, width, 10)

	out := make([]string, 0, len(rows))
	for i, row := range rows {
		var buf bytes.Buffer
		d.Render(&buf, m, i, row)
		out = append(out, buf.String())
	}
	return out
}

func TestRowDelegate_Render(t *testing.T) {
	got := renderRows(t, 30,
		todos.Item{ID: 1, Title: "Buy groceries today"},
		todos.Item{ID: 2, Title: "Walk", Checked: true},
		todos.Item{ID: 3, Title: "first line\nsecond line"},
	)

	want := []string{
		"> [ ] Buy grocer...",
		"  [x] Walk",
		"  [ ] first line",
	}
	for i, w := range want {
		if strings.TrimRight(got[i], " ") != w {
			t.Fatalf("row %d = %q, want %q", i, got[i], w)
		}
		if xansi.StringWidth(got[i]) != 30 {
			t.Fatalf("row %d width = %d, want 30", i, xansi.StringWidth(got[i]))
		}
	}
}

func TestRowDelegate_NarrowWidth(t *testing.T) {
	got := renderRows(t, 3, todos.Item{ID: 1, Title: "a"})
	if got[0] != "" {
		t.Fatalf("row = %q, want empty", got[0])
	}
}

func TestFitWidth(t *testing.T) {
	if got := fitWidth("abc", 5); got != "abc  " {
		t.Fatalf("pad = %q", got)
	}
	if got := fitWidth("abcdef", 4); got != "abcd" {
		t.Fatalf("cut = %q", got)
	}
	if got := fitWidth("abc", 3); got != "abc" {
		t.Fatalf("exact = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"  short ", 10, "short"},
		{"abcdefgh", 5, "ab..."},
		{"abcdefgh", 2, "ab"},
		{"abc", 0, "abc"},
		{"ñandú tierra", 6, "ñan..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestRenderMarkdown_PlainProfile(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	out := renderMarkdown("Buy **milk**", 40, "Dracula")
	if !strings.Contains(out, "Buy") || !strings.Contains(out, "milk") {
		t.Fatalf("renderMarkdown = %q", out)
	}
	if renderMarkdown("   ", 40, "Dracula") != "" {
		t.Fatalf("blank title rendered non-empty")
	}
	if got := markdownStyle("Nightfox"); got != "notty" {
		t.Fatalf("markdownStyle under ascii = %q, want notty", got)
	}
}
