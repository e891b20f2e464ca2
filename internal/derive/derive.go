// Package derive computes the list and detail projections of the collection.
// Every function returns a fresh slice and never mutates its input.
package derive

import (
	"slices"
	"strconv"
	"strings"

	"github.com/five82/docket/internal/todos"
)

// RowTitleLimit is the number of characters a list row shows before truncating.
const RowTitleLimit = 10

const ellipsis = "..."

// Filter keeps the items whose title contains search, ignoring case.
// An empty search keeps everything.
func Filter(items []todos.Item, search string) []todos.Item {
	needle := strings.ToLower(search)
	out := make([]todos.Item, 0, len(items))
	for _, it := range items {
		if needle == "" || strings.Contains(strings.ToLower(it.Title), needle) {
			out = append(out, it)
		}
	}
	return out
}

// SortByTitle orders items by lowercased title, ascending. Ties have no
// guaranteed order.
func SortByTitle(items []todos.Item) []todos.Item {
	out := slices.Clone(items)
	slices.SortFunc(out, func(a, b todos.Item) int {
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	})
	return out
}

// View returns the rows the list screen shows.
func View(items []todos.Item, search string, sorted bool) []todos.Item {
	if sorted {
		items = SortByTitle(items)
	}
	return Filter(items, search)
}

// RowTitle truncates title for a list row.
func RowTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= RowTitleLimit {
		return title
	}
	return string(runes[:RowTitleLimit]) + ellipsis
}

// SelectByID returns the items whose id equals id.
func SelectByID(items []todos.Item, id int) []todos.Item {
	var out []todos.Item
	for _, it := range items {
		if it.ID == id {
			out = append(out, it)
		}
	}
	return out
}

// ParseID parses a routed id parameter. Anything that is not a base-10
// integer reports false.
func ParseID(raw string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return id, true
}

// Counts reports how many items are checked and how many are not.
func Counts(items []todos.Item) (done, pending int) {
	for _, it := range items {
		if it.Checked {
			done++
		} else {
			pending++
		}
	}
	return
}
