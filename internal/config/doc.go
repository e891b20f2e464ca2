// Package config handles loading and parsing docket configuration files.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/docket/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/docket/config.toml
//   - Collection host: http://localhost:3005
//   - Log file: ~/.local/state/docket/docket.log
//   - Log level: info
//   - Id strategy: store (the remote store assigns ids)
//   - Request timeout: 5s
//
// # TOML Format
//
//	api_url     = "http://localhost:3005"
//	log_file    = "~/.local/state/docket/docket.log"
//	log_level   = "info"
//	id_strategy = "store" # store | max | tail
//	timeout_ms  = 5000
//
// Every field is optional. Tilde expansion is performed on log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files, TOML
// parse errors and values that cannot be interpreted (an unknown id_strategy
// or a negative timeout). A missing file is not an error.
//
// Command line flags override whatever Load returns; that merge happens in
// cmd/docket.
package config
