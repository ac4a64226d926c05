package ui

// Screen rows above the list body: header, command bar, pane titles.
const listTop = 3

// Pane widths.
const (
	// MinListWidth is the narrowest the favourites list gets.
	MinListWidth = 24

	// CompactWidth is the terminal width below which the list takes half
	// the screen instead of a third.
	CompactWidth = 90
)

// LogTailLines is how many log lines the log view reads.
const LogTailLines = 400

// listWidth returns the width of the favourites pane.
func (m Model) listWidth() int {
	if m.width < CompactWidth {
		return max(m.width/2, 1)
	}
	return max(m.width/3, MinListWidth)
}
