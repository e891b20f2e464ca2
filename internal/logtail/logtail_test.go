package logtail

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 5)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v; want nil, nil", got, err)
	}
}

// writeRecords logs through charmbracelet/log the way docket does and
// returns the lines written.
func writeRecords(t *testing.T) []string {
	t.Helper()
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{
		Level:           log.DebugLevel,
		Formatter:       log.LogfmtFormatter,
		ReportTimestamp: true,
		Prefix:          "docket",
	})
	logger.Debug("refreshed", "generation", 3, "count", 2)
	logger.WithPrefix("todos").Info("request", "method", "GET", "path", "/todos")
	logger.Error("mutation failed", "action", "delete todo", "err", "api /todos/3 returned status 500")
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
}

func TestParse_LogfmtRecords(t *testing.T) {
	lines := writeRecords(t)
	if len(lines) != 3 {
		t.Fatalf("wrote %d lines: %q", len(lines), lines)
	}

	entries := ParseLines(lines)
	for i, e := range entries {
		if !e.Parsed {
			t.Fatalf("line %d not parsed: %q", i, e.Raw)
		}
		if e.Time == "" {
			t.Fatalf("line %d has no time: %q", i, e.Raw)
		}
	}

	if e := entries[0]; e.Level != log.DebugLevel || e.Message != "refreshed" ||
		!reflect.DeepEqual(e.Fields, []Field{{"generation", "3"}, {"count", "2"}}) {
		t.Fatalf("entry 0 = %+v", e)
	}
	if e := entries[1]; e.Level != log.InfoLevel || !strings.HasSuffix(e.Prefix, "todos") {
		t.Fatalf("entry 1 = %+v", e)
	}
	if e := entries[2]; e.Level != log.ErrorLevel || e.Fields[1].Value != "api /todos/3 returned status 500" {
		t.Fatalf("entry 2 = %+v", e)
	}
}

func TestParse_Unparsed(t *testing.T) {
	for _, line := range []string{"", "   ", "panic: boom", "no level here=1", "level=loud msg=x"} {
		if e := Parse(line); e.Parsed || e.Raw != line {
			t.Errorf("Parse(%q) = %+v, want unparsed", line, e)
		}
	}
}

func TestFilter(t *testing.T) {
	entries := ParseLines(append(writeRecords(t), "goroutine 1 [running]:"))

	if got := Filter(entries, log.DebugLevel); len(got) != 4 {
		t.Fatalf("debug filter kept %d, want 4", len(got))
	}
	warn := Filter(entries, log.WarnLevel)
	if len(warn) != 1 || warn[0].Message != "mutation failed" {
		t.Fatalf("warn filter = %+v", warn)
	}
	if len(entries) != 4 {
		t.Fatalf("Filter modified its input")
	}
}

func TestColorize_PlainRenderer(t *testing.T) {
	var sink bytes.Buffer
	palette := DefaultPalette(lipgloss.NewRenderer(&sink))

	e := Entry{
		Parsed:  true,
		Time:    "2026/10/19 10:00:00",
		Level:   log.WarnLevel,
		Prefix:  "docket",
		Message: "prefs unreadable",
		Fields:  []Field{{Key: "err", Value: "boom"}},
	}
	want := "2026/10/19 10:00:00 WARN  docket: prefs unreadable err=boom"
	if got := palette.Colorize(e); got != want {
		t.Fatalf("Colorize() = %q, want %q", got, want)
	}

	raw := Entry{Raw: "panic: boom"}
	if got := palette.Colorize(raw); got != "panic: boom" {
		t.Fatalf("Colorize(unparsed) = %q", got)
	}

	if got := palette.Colorize(Parse("level=info msg=hi")); got != "INFO  hi" {
		t.Fatalf("Colorize(Parse()) = %q", got)
	}
}
