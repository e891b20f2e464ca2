package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/go-logfmt/logfmt"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Field is one key/value pair beyond the standard keys.
type Field struct {
	Key   string
	Value string
}

// Entry is one parsed logfmt record.
type Entry struct {
	Raw     string
	Parsed  bool
	Time    string
	Level   log.Level
	Prefix  string
	Message string
	Fields  []Field
}

// Parse decodes a logfmt line written by the docket logger. Lines that do
// not decode, or carry no level, come back with Parsed false.
func Parse(line string) Entry {
	entry := Entry{Raw: line, Level: log.InfoLevel}
	if strings.TrimSpace(line) == "" {
		return entry
	}

	dec := logfmt.NewDecoder(strings.NewReader(line))
	if !dec.ScanRecord() {
		return entry
	}
	var (
		fields   []Field
		hasLevel bool
	)
	for dec.ScanKeyval() {
		key, value := string(dec.Key()), string(dec.Value())
		switch key {
		case log.TimestampKey:
			entry.Time = value
		case log.LevelKey:
			level, err := log.ParseLevel(value)
			if err != nil {
				return Entry{Raw: line, Level: log.InfoLevel}
			}
			entry.Level = level
			hasLevel = true
		case log.PrefixKey:
			entry.Prefix = value
		case log.MessageKey:
			entry.Message = value
		default:
			fields = append(fields, Field{Key: key, Value: value})
		}
	}
	if dec.Err() != nil || !hasLevel {
		return Entry{Raw: line, Level: log.InfoLevel}
	}
	entry.Fields = fields
	entry.Parsed = true
	return entry
}

// ParseLines parses every line.
func ParseLines(lines []string) []Entry {
	out := make([]Entry, 0, len(lines))
	for _, line := range lines {
		out = append(out, Parse(line))
	}
	return out
}

// Filter keeps parsed entries at or above min. Unparsed lines are kept only
// when min admits info.
func Filter(entries []Entry, min log.Level) []Entry {
	out := entries[:0:0]
	for _, e := range entries {
		if !e.Parsed && min > log.InfoLevel {
			continue
		}
		if e.Level >= min {
			out = append(out, e)
		}
	}
	return out
}

// Palette holds the styles used by Colorize.
type Palette struct {
	Time    lipgloss.Style
	Prefix  lipgloss.Style
	Key     lipgloss.Style
	Message lipgloss.Style
	Levels  map[log.Level]lipgloss.Style
}

// DefaultPalette builds the palette for r. A renderer without colour
// support yields plain text.
func DefaultPalette(r *lipgloss.Renderer) Palette {
	level := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c)).Bold(true)
	}
	return Palette{
		Time:    r.NewStyle().Foreground(lipgloss.Color("#808080")),
		Prefix:  r.NewStyle().Foreground(lipgloss.Color("#87AFFF")),
		Key:     r.NewStyle().Foreground(lipgloss.Color("#666666")),
		Message: r.NewStyle(),
		Levels: map[log.Level]lipgloss.Style{
			log.DebugLevel: level("#87CEEB"),
			log.InfoLevel:  level("#5FD75F"),
			log.WarnLevel:  level("#FFD700"),
			log.ErrorLevel: level("#FF6B6B"),
			log.FatalLevel: level("#FF6B6B"),
		},
	}
}

// Colorize renders e as "time LEVEL prefix: message key=value ...".
// Unparsed entries are returned unchanged.
func (p Palette) Colorize(e Entry) string {
	if !e.Parsed {
		return e.Raw
	}
	parts := make([]string, 0, 4+len(e.Fields))
	if e.Time != "" {
		parts = append(parts, p.Time.Render(e.Time))
	}
	levelStyle, ok := p.Levels[e.Level]
	if !ok {
		levelStyle = p.Message
	}
	parts = append(parts, levelStyle.Render(fmt.Sprintf("%-5s", strings.ToUpper(e.Level.String()))))
	if e.Prefix != "" {
		parts = append(parts, p.Prefix.Render(e.Prefix+":"))
	}
	if e.Message != "" {
		parts = append(parts, p.Message.Render(e.Message))
	}
	for _, f := range e.Fields {
		parts = append(parts, p.Key.Render(f.Key+"=")+p.Message.Render(f.Value))
	}
	return strings.Join(parts, " ")
}
