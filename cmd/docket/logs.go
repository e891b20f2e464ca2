package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/five82/docket/internal/config"
	"github.com/five82/docket/internal/logging"
	"github.com/five82/docket/internal/logtail"
)

func newLogsCmd(flags *globalFlags) *cobra.Command {
	var (
		lines int
		level string
		raw   bool
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the docket log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			path := cfg.LogFile
			if v := strings.TrimSpace(flags.LogFile); v != "" {
				if path, err = config.ExpandPath(v); err != nil {
					return fmt.Errorf("resolve log file: %w", err)
				}
			}
			minLevel, err := logging.ParseLevel(level)
			if err != nil {
				return err
			}

			tail, err := logtail.Read(path, lines)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			palette := logtail.DefaultPalette(lipgloss.NewRenderer(out))
			for _, e := range logtail.Filter(logtail.ParseLines(tail), minLevel) {
				if raw {
					fmt.Fprintln(out, e.Raw)
					continue
				}
				fmt.Fprintln(out, palette.Colorize(e))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to read from the end (0 reads all)")
	cmd.Flags().StringVar(&level, "level", "debug", "Minimum level to print")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print records as written")
	return cmd
}
