// Package ui provides the Bubble Tea terminal interface for docket.
//
// # Screens
//
// The mounted screen follows the shell's router:
//
//   - "/" list: heading, [Add Todo], the search box, [Sort Todos] and one
//     row per todo (checkbox plus a title cut to ten characters)
//   - "/task/{id}" detail: [Go Back], the checkbox and the full title
//     rendered as markdown, [Edit] and [Delete]
//   - "/404" not found: [Main page] and a short message
//
// # Controls
//
// Button, ControlButton and SearchBox are stateless render helpers. A
// ControlButton hands its item id to OnControl, which returns a command
// raising an intent message; Update turns intents into shell calls. Tab
// cycles focus through the screen's buttons and enter presses the focused
// one. Every button also has a direct key.
//
// # Requests
//
// Network work (refresh, add, edit, check, delete) runs as a tea.Cmd so the
// program stays responsive. A spinner shows in the header while any request
// is in flight. Failed actions show in the footer until the next success;
// failed refreshes show there too while the previous rows stay visible.
//
// # Prompts
//
// Titles are entered in a modal prompt (a) and edited in one prefilled with
// the current title (e). An empty entry cancels. ":" opens the same prompt
// for a path, so any route including unknown ones can be visited.
//
// # Themes
//
// Dracula, Nightfox and Slate. T cycles them; the choice and the sort flag
// are saved to the prefs file.
package ui
