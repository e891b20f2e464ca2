package shell

import (
	"github.com/five82/docket/internal/derive"
	"github.com/five82/docket/internal/router"
	"github.com/five82/docket/internal/state"
	"github.com/five82/docket/internal/todos"
)

// View is everything a screen needs to render, computed from one snapshot.
type View struct {
	Route    router.Route
	Snapshot state.Snapshot

	// Rows is the filtered and optionally sorted list; set on ScreenList.
	Rows []todos.Item
	// Detail holds the items matching the routed id; set on ScreenDetail.
	// It is empty when the id is unknown or not a number.
	Detail []todos.Item

	Done    int
	Pending int
}

// View derives the current screen contents.
func (s *Shell) View() View {
	snap := s.store.Snapshot()
	v := View{
		Route:    s.router.Current(),
		Snapshot: snap,
	}
	v.Done, v.Pending = derive.Counts(snap.Todos)

	switch v.Route.Screen {
	case router.ScreenList:
		v.Rows = derive.View(snap.Todos, snap.Search, snap.Sorted)
	case router.ScreenDetail:
		if id, ok := derive.ParseID(v.Route.Param); ok {
			v.Detail = derive.SelectByID(snap.Todos, id)
		}
	}
	return v
}
