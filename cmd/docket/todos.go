package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/docket/internal/app"
	"github.com/five82/docket/internal/derive"
	"github.com/five82/docket/internal/todos"
)

// withEnv builds a session, loads the collection and hands the env to fn.
func withEnv(ctx context.Context, flags *globalFlags, fn func(env *app.Env) error) error {
	env, err := app.Build(flags.options())
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	if err := env.Shell.Refresh(ctx); err != nil {
		return err
	}
	return fn(env)
}

func newListCmd(flags *globalFlags) *cobra.Command {
	var (
		search string
		sorted bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print todos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), flags, func(env *app.Env) error {
				env.Shell.SetSearch(search)
				if sorted {
					env.Shell.ToggleSort()
				}
				view := env.Shell.View()
				out := cmd.OutOrStdout()
				if len(view.Rows) == 0 {
					fmt.Fprintln(out, "No todos.")
					return nil
				}
				for _, it := range view.Rows {
					writeItem(out, it)
				}
				fmt.Fprintf(out, "\n%d done, %d to do\n", view.Done, view.Pending)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Only titles containing this text (case-insensitive)")
	cmd.Flags().BoolVar(&sorted, "sort", false, "Sort by title")
	return cmd
}

func newAddCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd.Context(), flags, func(env *app.Env) error {
				created, err := env.Shell.Add(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d: %s\n", created.ID, created.Title)
				return nil
			})
		},
	}
}

func newCheckCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check <id>",
		Short: "Toggle a todo's checked flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withEnv(cmd.Context(), flags, func(env *app.Env) error {
				if err := env.Shell.Check(cmd.Context(), id); err != nil {
					return err
				}
				for _, it := range derive.SelectByID(env.Shell.Store().Todos(), id) {
					writeItem(cmd.OutOrStdout(), it)
				}
				return nil
			})
		},
	}
}

func newEditCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <title...>",
		Short: "Replace a todo's title",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withEnv(cmd.Context(), flags, func(env *app.Env) error {
				if err := env.Shell.Edit(cmd.Context(), id, strings.Join(args[1:], " ")); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %d\n", id)
				return nil
			})
		},
	}
}

func newRemoveCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withEnv(cmd.Context(), flags, func(env *app.Env) error {
				if err := env.Shell.Delete(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d\n", id)
				return nil
			})
		},
	}
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid todo id %q", raw)
	}
	return id, nil
}

func writeItem(w io.Writer, it todos.Item) {
	box := "[ ]"
	if it.Checked {
		box = "[x]"
	}
	fmt.Fprintf(w, "%4d %s %s\n", it.ID, box, it.Title)
}
