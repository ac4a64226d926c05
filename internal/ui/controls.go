package ui

import (
	"strings"

	"github.com/five82/regexfav/internal/favorites"
	"github.com/five82/regexfav/internal/prefs"
)

// ratingControl is the star widget. Only pick notifies subscribers.
type ratingControl struct {
	value  int
	change favorites.Emitter[int]
}

var _ favorites.RatingControl = (*ratingControl)(nil)

func (r *ratingControl) SetValue(v int) { r.value = v }
func (r *ratingControl) Value() int     { return r.value }

func (r *ratingControl) OnChange(fn func(v int)) func() {
	return r.change.Subscribe(fn)
}

func (r *ratingControl) pick(v int) {
	if v < 0 || v > prefs.MaxRating {
		return
	}
	r.value = v
	r.change.Emit(v)
}

func (r *ratingControl) stars() string {
	return strings.Repeat("★", r.value) + strings.Repeat("☆", prefs.MaxRating-r.value)
}

// contentClicks routes load keys from the content panel.
type contentClicks struct {
	load favorites.Emitter[favorites.LoadKind]
}

var _ favorites.ContentClicks = (*contentClicks)(nil)

func (c *contentClicks) OnLoad(fn func(favorites.LoadKind)) func() {
	return c.load.Subscribe(fn)
}

func (c *contentClicks) press(kind favorites.LoadKind) {
	c.load.Emit(kind)
}

// history is an in-memory navigation stack. The empty locator is the base
// location.
type history struct {
	entries []string
}

var _ favorites.Navigator = (*history)(nil)

func (h *history) Go(locator string) {
	h.entries = append(h.entries, locator)
}

func (h *history) current() string {
	if len(h.entries) == 0 {
		return ""
	}
	return h.entries[len(h.entries)-1]
}

// back pops the current entry and returns the one before it.
func (h *history) back() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.current(), true
}
