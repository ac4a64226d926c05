// Package state holds the document that favourites are loaded into.
//
// Document is the in-memory editor model: expression, flags, source text,
// substitution template and whether the substitution section is visible.
// The favourites coordinator writes to it from the UI loop; renderers read
// it through Snapshot, which returns a copy.
//
// Every write bumps Revision and LastUpdated, so a renderer can tell whether
// anything changed since its last frame. SetID is the exception: it only
// records which pattern the content came from and is used to skip reloading
// the same pattern twice.
//
// All methods are safe for concurrent use.
package state
