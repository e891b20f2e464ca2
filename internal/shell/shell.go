// Package shell owns the view state and turns user intents into collection
// mutations, refreshes and navigation.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/five82/docket/internal/derive"
	"github.com/five82/docket/internal/router"
	"github.com/five82/docket/internal/state"
	"github.com/five82/docket/internal/todos"
)

var (
	// ErrEmptyTitle is returned by Add and Edit for a blank title. Nothing is sent.
	ErrEmptyTitle = errors.New("title is empty")
	// ErrUnknownItem is returned when an action names an id the collection does not hold.
	ErrUnknownItem = errors.New("unknown todo")
)

// Options configure a Shell.
type Options struct {
	Client     todos.Store
	Store      *state.Store // nil creates a fresh store
	StartPath  string       // empty starts at "/"
	IDStrategy todos.IDStrategy
	Logger     *log.Logger
}

// Shell coordinates the client, the view state and the router. It is safe
// for concurrent use.
type Shell struct {
	client todos.Store
	store  *state.Store
	router *router.Router
	ids    todos.IDStrategy
	logger *log.Logger
}

// New builds a Shell. It does not fetch; call Refresh for the initial load.
func New(opts Options) *Shell {
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Shell{
		client: opts.Client,
		store:  store,
		router: router.New(opts.StartPath),
		ids:    opts.IDStrategy,
		logger: logger,
	}
}

// Store exposes the underlying view state.
func (s *Shell) Store() *state.Store { return s.store }

// Refresh fetches the whole collection under a new generation. Failures are
// logged and recorded on the snapshot; the previous collection stays.
func (s *Shell) Refresh(ctx context.Context) error {
	gen := s.store.BeginRefresh()
	items, err := s.client.List(ctx)
	applied := s.store.ApplyRefresh(gen, items, err)
	if err != nil {
		s.logger.Error("refresh failed", "generation", gen, "err", err)
		return fmt.Errorf("refresh todos: %w", err)
	}
	if !applied {
		s.logger.Debug("discarded superseded refresh", "generation", gen)
		return nil
	}
	s.logger.Debug("refreshed", "generation", gen, "count", len(items))
	return nil
}

// Add creates a todo titled title and returns to the list.
func (s *Shell) Add(ctx context.Context, title string) (todos.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return todos.Item{}, ErrEmptyTitle
	}
	item := todos.Item{
		ID:    todos.NextID(s.ids, s.store.Todos()),
		Title: title,
	}
	created, err := s.client.Create(ctx, item)
	if err != nil {
		return todos.Item{}, s.fail(ctx, "create todo", err)
	}
	s.logger.Info("created todo", "id", created.ID, "strategy", s.ids)
	s.store.SetSearch("")
	s.settle(ctx, router.RootPath)
	return created, nil
}

// Edit replaces the title of id and keeps its checked flag.
func (s *Shell) Edit(ctx context.Context, id int, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	item, err := s.current(ctx, id)
	if err != nil {
		return s.fail(ctx, "edit todo", err)
	}
	item.Title = title
	if err := s.client.Update(ctx, item); err != nil {
		return s.fail(ctx, "edit todo", err)
	}
	s.logger.Info("edited todo", "id", id)
	s.settle(ctx, router.RootPath)
	return nil
}

// Delete removes id and returns to the list.
func (s *Shell) Delete(ctx context.Context, id int) error {
	if err := s.client.Remove(ctx, id); err != nil {
		return s.fail(ctx, "delete todo", err)
	}
	s.logger.Info("deleted todo", "id", id)
	s.store.SetSearch("")
	s.settle(ctx, router.RootPath)
	return nil
}

// Check toggles the checked flag of id. The route is left alone.
func (s *Shell) Check(ctx context.Context, id int) error {
	matches := derive.SelectByID(s.store.Todos(), id)
	if len(matches) == 0 {
		return fmt.Errorf("check todo %d: %w", id, ErrUnknownItem)
	}
	target := matches[0]
	update := todos.Item{ID: target.ID, Title: target.Title, Checked: !target.Checked}
	if err := s.client.Update(ctx, update); err != nil {
		return s.fail(ctx, "check todo", err)
	}
	s.logger.Info("checked todo", "id", id, "checked", update.Checked)
	s.settle(ctx, "")
	return nil
}

// current returns the stored item for id, asking the client when the local
// collection does not hold it.
func (s *Shell) current(ctx context.Context, id int) (todos.Item, error) {
	if matches := derive.SelectByID(s.store.Todos(), id); len(matches) > 0 {
		return matches[0], nil
	}
	item, err := s.client.Get(ctx, id)
	if err != nil {
		if errors.Is(err, todos.ErrNotFound) {
			return todos.Item{}, fmt.Errorf("todo %d: %w", id, ErrUnknownItem)
		}
		return todos.Item{}, err
	}
	if item.ID == 0 {
		item.ID = id
	}
	return item, nil
}

// settle runs after a successful mutation: refetch, then navigate when path
// is set. Add and Delete also clear the search text first.
func (s *Shell) settle(ctx context.Context, path string) {
	_ = s.Refresh(ctx)
	if path != "" {
		s.router.Navigate(path)
	}
}

// fail refetches so the view converges on the store, then records err.
func (s *Shell) fail(ctx context.Context, action string, err error) error {
	wrapped := fmt.Errorf("%s: %w", action, err)
	s.logger.Error("mutation failed", "action", action, "err", err)
	_ = s.Refresh(ctx)
	s.store.RecordError(wrapped)
	return wrapped
}

// SetSearch replaces the search text.
func (s *Shell) SetSearch(text string) { s.store.SetSearch(text) }

// ToggleSort flips title sorting and returns the new value.
func (s *Shell) ToggleSort() bool { return s.store.ToggleSort() }

// Navigate pushes path onto the history.
func (s *Shell) Navigate(path string) router.Route { return s.router.Navigate(path) }

// OpenTask navigates to the detail screen for id.
func (s *Shell) OpenTask(id int) router.Route { return s.router.Navigate(router.TaskPath(id)) }

// Back pops one history entry.
func (s *Shell) Back() (router.Route, bool) { return s.router.Back() }

// Route returns the current route.
func (s *Shell) Route() router.Route { return s.router.Current() }
