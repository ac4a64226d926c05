package favorites

import (
	"html"
	"strconv"
	"strings"

	"github.com/five82/regexfav/internal/community"
	"github.com/five82/regexfav/internal/highlight"
)

// Record is one favourite pattern as returned by the community service.
type Record = community.Pattern

// PlaceholderID marks the synthetic record shown when there are no
// favourites. It is never written to the store or sent to the service.
const PlaceholderID = "-1"

// PlaceholderRecord returns the empty-state record.
func PlaceholderRecord() Record {
	return Record{
		ID:           PlaceholderID,
		Name:         "No favourites yet",
		Description:  "Click the heart icon on any community pattern to add a new favorite.",
		Author:       "regexfav",
		Pattern:      "/(Favo)u?(rite)(s?)/ig",
		Content:      "All your favorite patterns will be saved in the favourites section.",
		Replace:      "$1$2$3",
		WeightedVote: "0",
	}
}

// Persistable reports whether id may be favourited, rated or tracked.
func Persistable(id string) bool {
	id = strings.TrimSpace(id)
	return id != "" && id != PlaceholderID
}

// Selection is the list's current item: NoSelection, Placeholder or Selected.
type Selection interface {
	isSelection()
}

// NoSelection means the list has no selected item.
type NoSelection struct{}

// Placeholder wraps the empty-state record.
type Placeholder struct {
	Record Record
}

// Selected wraps a real favourite.
type Selected struct {
	Record Record
}

func (NoSelection) isSelection() {}
func (Placeholder) isSelection() {}
func (Selected) isSelection()    {}

func selectionOf(rec Record, ok bool) Selection {
	switch {
	case !ok:
		return NoSelection{}
	case !Persistable(rec.ID):
		return Placeholder{Record: rec}
	default:
		return Selected{Record: rec}
	}
}

// Label is the escaped list-row label for rec.
func Label(rec Record) string {
	return html.EscapeString(highlight.StripControls(rec.Name))
}

// StaticRating formats the aggregate vote with one decimal, or returns ""
// when the vote is not a number.
func StaticRating(rec Record) string {
	v, ok := rec.Vote()
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// Locator is the navigation location for a record id. Numeric ids are
// shortened to base 32; the placeholder maps to the base location "".
func Locator(id string) string {
	id = strings.TrimSpace(id)
	if !Persistable(id) {
		return ""
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n < 0 {
		return "/" + id
	}
	return "/" + strconv.FormatInt(n, 32)
}
