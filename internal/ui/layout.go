package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which the footer shows only the
	// help and quit hints.
	LayoutCompactWidth = 60

	// LayoutMaxContentWidth caps the width of the detail pane.
	LayoutMaxContentWidth = 100
)

// Vertical chrome around the rows on the list screen: header bar, title,
// toolbar, blank separator and the two footer lines.
const listChromeLines = 6

// Timing constants.
const (
	// DefaultUIInterval is how often the model re-reads the shell view to pick
	// up background refreshes.
	DefaultUIInterval = time.Second

	// RequestTimeout bounds every request the UI starts.
	RequestTimeout = 10 * time.Second
)
