// Package favorites coordinates the favourites panel.
//
// A Coordinator owns the list of favourite pattern records, the selection and
// the panel visibility mode. It seeds the list widget from the store and the
// community service, renders the content panel through the pattern and
// highlight packages, and forwards load actions to the document and the
// navigator. All collaborators are interfaces so the UI, the prefs store and
// the HTTP client can be swapped for spies in tests.
//
// # State machine
//
//	Hidden --Show--> Loading --load resolved + render--> Content
//	   ^                                                    |
//	   +------------------------Hide------------------------+
//
// A fetch that resolves after Hide still replaces the items and the panel, but
// the mode stays Hidden until the next Show.
//
// # Placeholder
//
// When the user has no favourites, or the fetch fails, the list holds a single
// synthetic record with id "-1". It renders like any other record but cannot
// be favourited, rated or tracked, and committing it resets navigation to the
// base location. Callers inspect the selection through Current, which returns
// NoSelection, Placeholder or Selected instead of comparing ids.
//
// # Events
//
// Subscriptions return disposers. List subscriptions live from New until
// Close; load routing and the rating subscription live from Show until Hide.
// Emitter is a small generic event source the UI adapters use to implement
// those subscriptions.
package favorites
