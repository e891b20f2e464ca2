package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/docket/internal/config"
	"github.com/five82/docket/internal/logging"
	"github.com/five82/docket/internal/prefs"
	"github.com/five82/docket/internal/shell"
	"github.com/five82/docket/internal/todos"
	"github.com/five82/docket/internal/ui"
)

// Options configure a docket session. Non-empty fields override the config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/docket/prefs.toml
	APIURL     string
	LogFile    string
	LogLevel   string
	StartPath  string
	PollEvery  time.Duration // zero disables background polling
}

// Env is a wired session: config, logger and shell. Close releases the log file.
type Env struct {
	Config config.Config
	Logger *log.Logger
	Shell  *shell.Shell

	closer io.Closer
}

// Close releases resources held by the environment.
func (e *Env) Close() error {
	if e == nil || e.closer == nil {
		return nil
	}
	return e.closer.Close()
}

// Build loads configuration, opens the log file and wires the client and
// shell. It does not fetch.
func Build(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(opts.LogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(opts.LogFile); v != "" {
		expanded, err := config.ExpandPath(v)
		if err != nil {
			return nil, fmt.Errorf("resolve log file: %w", err)
		}
		cfg.LogFile = expanded
	}

	logOpts := logging.DefaultOptions()
	logOpts.Level = cfg.LogLevel
	logger, file, err := logging.OpenFile(cfg.LogFile, logOpts)
	if err != nil {
		return nil, fmt.Errorf("init log: %w", err)
	}

	client, err := todos.NewClient(cfg.APIURL,
		todos.WithTimeout(cfg.Timeout),
		todos.WithLogger(logger.WithPrefix("todos")),
	)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("init todos client: %w", err)
	}

	sh := shell.New(shell.Options{
		Client:     client,
		StartPath:  opts.StartPath,
		IDStrategy: cfg.IDStrategy,
		Logger:     logger.WithPrefix("shell"),
	})

	logger.Info("session started", "api", client.BaseURL(), "id_strategy", cfg.IDStrategy, "pid", os.Getpid())
	return &Env{Config: cfg, Logger: logger, Shell: sh, closer: file}, nil
}

// Run boots the docket TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	env, err := Build(opts)
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		env.Logger.Warn("prefs unreadable, using defaults", "err", err)
	}
	if userPrefs.SortByTitle {
		env.Shell.ToggleSort()
	}

	if opts.PollEvery > 0 {
		StartPoller(ctx, env.Shell, opts.PollEvery, env.Logger.WithPrefix("poller"))
	}

	return ui.Run(ui.Options{
		Context:   ctx,
		Shell:     env.Shell,
		Logger:    env.Logger.WithPrefix("ui"),
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
	})
}
