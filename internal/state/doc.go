// Package state holds the view state shared by the shell, the UI and the
// background poller.
//
// # Overview
//
// Store is the single container for the collection, the search text, the
// sort flag and refresh bookkeeping. Screens never hold their own copy of the
// collection; they derive rows from a Snapshot each time they render.
//
// # Refresh Generations
//
// Fetches can overlap: a mutation finishes and asks for a refresh while the
// poller's refresh is still in flight. Each fetch therefore runs under a
// generation number:
//
//	gen := store.BeginRefresh()       // issue
//	items, err := client.List(ctx)    // may take a while
//	store.ApplyRefresh(gen, items, err)
//
// ApplyRefresh only accepts the most recently issued generation. A response
// from a superseded fetch is dropped even if it resolves last, so the
// collection always reflects the latest refresh request.
//
// # Errors
//
// A failed refresh keeps the previous collection, records LastError and
// increments ConsecutiveFailures. Two failures in a row mark the snapshot
// offline. A successful refresh clears both.
//
// # Concurrency Model
//
// All methods are safe for concurrent use. Snapshot returns defensive copies
// of the collection and the error so readers can hold them without locking.
package state
