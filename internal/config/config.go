package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/docket/internal/todos"
)

// Config captures the settings docket reads at start-up.
type Config struct {
	APIURL     string
	LogFile    string
	LogLevel   string
	IDStrategy todos.IDStrategy
	Timeout    time.Duration
}

const (
	defaultConfigPath = "~/.config/docket/config.toml"
	defaultAPIURL     = todos.DefaultBaseURL
	defaultLogFile    = "~/.local/state/docket/docket.log"
	defaultLogLevel   = "info"
	defaultTimeout    = 5 * time.Second
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:     defaultAPIURL,
		LogFile:    mustExpand(defaultLogFile),
		LogLevel:   defaultLogLevel,
		IDStrategy: todos.IDStore,
		Timeout:    defaultTimeout,
	}
}

// Load locates and parses the docket config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL     string `toml:"api_url"`
		LogFile    string `toml:"log_file"`
		LogLevel   string `toml:"log_level"`
		IDStrategy string `toml:"id_strategy"`
		TimeoutMS  int    `toml:"timeout_ms"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.IDStrategy); v != "" {
		strategy, ok := todos.ParseIDStrategy(v)
		if !ok {
			return Config{}, fmt.Errorf("parse config: unknown id_strategy %q", v)
		}
		cfg.IDStrategy = strategy
	}
	if raw.TimeoutMS < 0 {
		return Config{}, fmt.Errorf("parse config: timeout_ms must not be negative")
	}
	if raw.TimeoutMS > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutMS) * time.Millisecond
	}

	return cfg, nil
}

// ExpandPath resolves a user supplied path, expanding a leading ~.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
