// Package logging builds the charmbracelet/log logger docket writes to.
// The TUI owns the terminal, so interactive runs log to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Options holds configuration for a logger.
type Options struct {
	Level     string
	Formatter log.Formatter
	Prefix    string
}

// DefaultOptions returns the options used for the docket log file.
func DefaultOptions() Options {
	return Options{
		Level:     "info",
		Formatter: log.LogfmtFormatter,
		Prefix:    "docket",
	}
}

// New builds a logger writing to w.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       opts.Formatter,
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
	}), nil
}

// OpenFile opens path for appending, creating its directory, and returns a
// logger writing to it. The caller closes the returned file.
func OpenFile(path string, opts Options) (*log.Logger, *os.File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil, fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger, err := New(file, opts)
	if err != nil {
		_ = file.Close()
		return nil, nil, err
	}
	return logger, file, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// ParseLevel accepts the level names used in config files. Empty means info.
func ParseLevel(value string) (log.Level, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	switch trimmed {
	case "":
		return log.InfoLevel, nil
	case "warning":
		trimmed = "warn"
	}
	level, err := log.ParseLevel(trimmed)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("parse log level %q: %w", value, err)
	}
	return level, nil
}
