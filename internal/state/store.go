package state

import (
	"sync"
	"time"

	"github.com/five82/regexfav/internal/pattern"
)

// Snapshot is the document as last loaded from the favourites panel.
type Snapshot struct {
	ID                  string
	Expression          string
	Flags               string
	Text                string
	Substitution        string
	SubstitutionVisible bool
	Revision            int // Incremented on every change
	LastUpdated         time.Time
}

// Pattern returns the document expression and flags as a parsed pattern.
func (s Snapshot) Pattern() pattern.Parsed {
	return pattern.Parsed{Expression: s.Expression, Flags: s.Flags}
}

// Empty reports whether nothing has been loaded yet.
func (s Snapshot) Empty() bool {
	return s.Revision == 0
}

// Document is the editable document that receives loaded patterns. It is
// written from the UI loop and read by renderers and the CLI.
type Document struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

func (d *Document) change(apply func(*Snapshot)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	apply(&d.snapshot)
	d.snapshot.Revision++
	d.snapshot.LastUpdated = time.Now()
}

// SetPattern replaces the expression.
func (d *Document) SetPattern(expr string) {
	d.change(func(s *Snapshot) { s.Expression = expr })
}

// SetFlags replaces the flag letters.
func (d *Document) SetFlags(flags string) {
	d.change(func(s *Snapshot) { s.Flags = flags })
}

// SetText replaces the source text.
func (d *Document) SetText(text string) {
	d.change(func(s *Snapshot) { s.Text = text })
}

// SetSubstitution replaces the substitution template.
func (d *Document) SetSubstitution(replace string) {
	d.change(func(s *Snapshot) { s.Substitution = replace })
}

// ShowSubstitution reveals the substitution section.
func (d *Document) ShowSubstitution() {
	d.change(func(s *Snapshot) { s.SubstitutionVisible = true })
}

// PopulateAll replaces every field at once. The substitution section is
// shown only when replace is non-empty.
func (d *Document) PopulateAll(expr, flags, content, replace string) {
	d.change(func(s *Snapshot) {
		s.Expression = expr
		s.Flags = flags
		s.Text = content
		s.Substitution = replace
		s.SubstitutionVisible = replace != ""
	})
}

// ID returns the id of the loaded pattern.
func (d *Document) ID() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot.ID
}

// SetID records the id of the loaded pattern.
func (d *Document) SetID(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.snapshot.ID = id
}

// Snapshot returns a copy of the document.
func (d *Document) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot
}
