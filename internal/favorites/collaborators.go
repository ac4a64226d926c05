package favorites

import (
	"context"
	"time"
)

// ListWidget renders the favourites and reports selection events.
// OnChange fires after the selection moves; related is the item the event
// refers to, and equals the selected item when the event is a commit.
type ListWidget interface {
	SetData(records []Record)
	SetSelectedIndex(i int)
	SelectedItem() (Record, bool)
	SelectedIndex() int
	OnChange(fn func(related *Record)) (dispose func())
	OnEnter(fn func()) (dispose func())
}

// LayoutNotifier is implemented by list widgets that can signal when their
// layout has settled after SetData.
type LayoutNotifier interface {
	AfterLayout(fn func())
}

// Store persists favourite flags and personal ratings.
type Store interface {
	AllFavorites() []string
	Favorite(id string) bool
	SetFavorite(id string, fav bool) error
	Rating(id string) int
	SetRating(id string, v int) error
}

// Service is the remote pattern API.
type Service interface {
	PatternList(ctx context.Context, ids []string) ([]Record, error)
	Rate(ctx context.Context, id string, v int) error
	TrackVisit(ctx context.Context, id string) error
}

// Document receives loaded pattern content.
type Document interface {
	SetPattern(expr string)
	SetFlags(flags string)
	SetText(text string)
	SetSubstitution(replace string)
	ShowSubstitution()
	PopulateAll(expr, flags, content, replace string)
	ID() string
	SetID(id string)
}

// Navigator updates navigation history. An empty locator resets to the
// base location.
type Navigator interface {
	Go(locator string)
}

// RatingControl is the 0-5 star widget. SetValue must not notify OnChange
// subscribers; only user input does.
type RatingControl interface {
	SetValue(v int)
	Value() int
	OnChange(fn func(v int)) (dispose func())
}

// ContentClicks reports load actions triggered from the content panel.
type ContentClicks interface {
	OnLoad(fn func(kind LoadKind)) (dispose func())
}

// Scheduler runs work off the event loop and delivers results back on it.
type Scheduler interface {
	Async(work func() ([]Record, error), done func([]Record, error))
	AfterFunc(d time.Duration, fn func())
}
