package todos

import (
	"errors"
	"strings"
)

// Item mirrors one entry of the /todos collection.
type Item struct {
	ID      int    `json:"id,omitempty"`
	Title   string `json:"title"`
	Checked bool   `json:"checked"`
}

var (
	// ErrMalformed reports a response body that is not a valid todo payload.
	ErrMalformed = errors.New("malformed response")
	// ErrNotFound reports a 404 for a single-item request.
	ErrNotFound = errors.New("todo not found")
)

// IDStrategy selects how Create assigns ids to new items.
type IDStrategy int

const (
	// IDStore leaves id assignment to the remote store.
	IDStore IDStrategy = iota
	// IDMax assigns the numeric maximum id plus one.
	IDMax
	// IDTail assigns the id of the last item in collection order plus one.
	// The result depends on the order the store returned, so two items can
	// collide when the collection is not sorted by id.
	IDTail
)

// String returns the config spelling of the strategy.
func (s IDStrategy) String() string {
	switch s {
	case IDMax:
		return "max"
	case IDTail:
		return "tail"
	default:
		return "store"
	}
}

// ParseIDStrategy maps a config value onto an IDStrategy. Empty selects IDStore.
func ParseIDStrategy(value string) (IDStrategy, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "store":
		return IDStore, true
	case "max":
		return IDMax, true
	case "tail":
		return IDTail, true
	default:
		return IDStore, false
	}
}

// NextID returns the id a new item should be created with. Zero means the
// store assigns it.
func NextID(strategy IDStrategy, items []Item) int {
	switch strategy {
	case IDTail:
		if len(items) == 0 || items[0].ID == 0 {
			return 1
		}
		return items[len(items)-1].ID + 1
	case IDMax:
		highest := 0
		for _, it := range items {
			if it.ID > highest {
				highest = it.ID
			}
		}
		return highest + 1
	default:
		return 0
	}
}
