// Package config loads regexfav settings from a TOML file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/regexfav/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or empty, use defaults
//
// # Fields
//
//	api_base        = "https://regexr.com"                  # community API root
//	prefs_path      = "~/.config/regexfav/prefs.toml"       # favourites and ratings
//	log_file        = "~/.local/state/regexfav/regexfav.log"
//	log_level       = "info"                                # debug, info, warn, error
//	preview_length  = 125                                   # preview budget in cells
//	settle_delay_ms = 100                                   # list settle fallback
//
// String values are trimmed and paths expand a leading ~ to the home
// directory. Non-positive numbers fall back to the defaults.
//
// # Errors
//
// A missing file is not an error. An unreadable file or invalid TOML is
// returned wrapped as "open config", "read config" or "parse config" so the
// CLI can report it before the TUI starts.
package config
