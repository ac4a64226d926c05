// Package ui is the regexfav terminal interface, built on Bubble Tea.
//
// The screen has two panes. The left pane is the favourites list. The right
// pane shows the selected pattern (description, author, expression, match
// preview, substitution, rating and favourite flag) above the document the
// user has loaded.
//
// The list, rating stars, load keys, history and scheduler here are thin
// adapters. favorites.Coordinator decides what happens when they fire. The
// adapters emit events synchronously inside Update; async fetches and timers
// are queued on the scheduler and returned as commands from the same Update,
// so every coordinator callback runs on the Bubble Tea event loop.
//
// Mouse support: clicking a row selects it, clicking the selected row loads
// it, and the wheel moves the selection.
package ui
