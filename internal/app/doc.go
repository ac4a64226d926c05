// Package app is the regexfav composition root.
//
// Run loads config.toml, installs the rotating JSON logger, opens the prefs
// store and builds the community API client. It then starts the Dispatcher
// and hands everything to the Bubble Tea UI. It returns when the UI exits.
//
// Dispatcher implements favorites.Service. Pattern lookups go straight to the
// API client because the UI already runs them off its event loop. Ratings and
// visit records are queued and delivered by one background goroutine, with
// exponential backoff between attempts (base interval doubled per failure,
// capped at 30s, four attempts). A full queue rejects new work instead of
// blocking the UI.
//
//	ui.Model ──▶ favorites.Coordinator ──▶ Dispatcher ──▶ community.Client
//	                     │                    │
//	                     ▼                    └─ queue ─▶ worker (retry)
//	               prefs.Store / state.Document
//
// Bootstrap is shared with the CLI subcommands that need configuration and
// logging but not the TUI.
package app
