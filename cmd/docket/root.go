package main

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/docket/internal/app"
)

type globalFlags struct {
	ConfigPath  string
	PrefsPath   string
	APIURL      string
	Route       string
	LogFile     string
	LogLevel    string
	PollSeconds int
}

func (g *globalFlags) options() app.Options {
	opts := app.Options{
		ConfigPath: g.ConfigPath,
		PrefsPath:  g.PrefsPath,
		APIURL:     g.APIURL,
		LogFile:    g.LogFile,
		LogLevel:   g.LogLevel,
		StartPath:  g.Route,
	}
	if g.PollSeconds > 0 {
		opts.PollEvery = time.Duration(g.PollSeconds) * time.Second
	}
	return opts
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "docket",
		Short:         "Terminal client for a json-server todo list",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  docket

  # Open straight onto a todo, polling every 5 seconds
  docket --route /task/3 --poll 5

  # Scriptable commands
  docket list --search milk --sort
  docket add Buy milk
  docket check 3
  docket logs -n 20 --level warn
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), flags.options())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.ConfigPath, "config", envOr("DOCKET_CONFIG", ""), "Config file (default ~/.config/docket/config.toml)")
	pf.StringVar(&flags.PrefsPath, "prefs", envOr("DOCKET_PREFS", ""), "Preferences file (default ~/.config/docket/prefs.toml)")
	pf.StringVar(&flags.APIURL, "api", envOr("DOCKET_API", ""), "Todo API base URL (overrides api_url)")
	pf.StringVar(&flags.LogFile, "log-file", "", "Log file (overrides log_file)")
	pf.StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&flags.Route, "route", "/", "Initial path, e.g. /task/3")
	cmd.Flags().IntVar(&flags.PollSeconds, "poll", 0, "Background refresh interval in seconds (0 disables)")

	cmd.AddCommand(newListCmd(flags))
	cmd.AddCommand(newAddCmd(flags))
	cmd.AddCommand(newCheckCmd(flags))
	cmd.AddCommand(newEditCmd(flags))
	cmd.AddCommand(newRemoveCmd(flags))
	cmd.AddCommand(newLogsCmd(flags))

	return cmd
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
