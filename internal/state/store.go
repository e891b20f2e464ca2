package state

import (
	"slices"
	"sync"
	"time"

	"github.com/five82/docket/internal/todos"
)

// Snapshot represents the latest data available to the screens.
type Snapshot struct {
	Todos               []todos.Item
	Loaded              bool
	Search              string
	Sorted              bool
	Generation          uint64
	Refreshing          bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the collection has been unreachable for
// multiple refreshes in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the view state.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	// applied is the generation whose result is currently held.
	applied uint64
}

// BeginRefresh starts a refresh and returns its generation. Results of any
// earlier generation are discarded once this one is issued.
func (s *Store) BeginRefresh() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Generation++
	s.snapshot.Refreshing = true
	return s.snapshot.Generation
}

// ApplyRefresh records the outcome of the refresh started as gen. It reports
// false and changes nothing when a newer refresh has been issued since. When
// err is non-nil the previous collection is kept and the error recorded.
func (s *Store) ApplyRefresh(gen uint64, items []todos.Item, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.snapshot.Generation || gen <= s.applied {
		return false
	}
	s.applied = gen
	s.snapshot.Refreshing = false
	s.snapshot.LastUpdated = time.Now()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return true
	}

	s.snapshot.Todos = cloneTodos(items)
	s.snapshot.Loaded = true
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	return true
}

// RecordError stores err as the latest error without touching the collection.
func (s *Store) RecordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.LastError = err
}

// SetSearch replaces the search text.
func (s *Store) SetSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Search = text
}

// ToggleSort flips the sort flag and returns the new value.
func (s *Store) ToggleSort() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Sorted = !s.snapshot.Sorted
	return s.snapshot.Sorted
}

// Todos returns a copy of the current collection.
func (s *Store) Todos() []todos.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTodos(s.snapshot.Todos)
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Todos = cloneTodos(s.snapshot.Todos)
	return snap
}

func cloneTodos(items []todos.Item) []todos.Item {
	if len(items) == 0 {
		return nil
	}
	return slices.Clone(items)
}
