// Package app is the composition root for docket.
//
// # Overview
//
// Build wires configuration, the diagnostic log, the todos client and the
// shell. Run adds preferences, the optional background poller and the TUI.
// The scripted subcommands in cmd/docket call Build directly and drive the
// shell without a terminal UI.
//
// # Data Flow
//
//	Run()
//	 ├─> config.Load()        read config.toml, apply flag overrides
//	 ├─> logging.OpenFile()   charmbracelet/log to the log file
//	 ├─> todos.NewClient()    REST client for /todos
//	 ├─> shell.New()          state.Store + router + actions
//	 ├─> prefs.Load()         theme and sort preference
//	 ├─> StartPoller()        optional, only with --poll
//	 └─> ui.Run()             Bubble Tea program (blocks)
//
// The UI issues the initial refresh itself so the spinner shows while the
// first fetch is in flight.
//
// # Polling Behavior
//
// The poller is off by default: the collection is refetched after every
// mutation and on demand. With a poll interval it calls Shell.Refresh on
// that cadence and doubles the delay after each consecutive failure, capped
// at 30 seconds. Overlapping refreshes from the poller and from user actions
// are safe; the store applies only the most recently issued one.
//
// # Error Handling
//
// Fatal errors returned from Build and Run:
//   - Invalid configuration file
//   - Unparseable collection URL
//   - Log file that cannot be opened
//
// Everything after start-up is recoverable: failed fetches and mutations are
// logged and shown in the TUI footer.
package app
