package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/five82/regexfav/internal/favorites"
	"github.com/five82/regexfav/internal/highlight"
)

// recordItem adapts a favourite record to list.Item.
type recordItem struct {
	rec favorites.Record
}

func (i recordItem) FilterValue() string { return i.rec.Name }

// rowDelegate renders one record per line: label on the left, community
// rating on the right.
type rowDelegate struct {
	theme Theme
}

func (d rowDelegate) Height() int                             { return 1 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(recordItem)
	if !ok {
		return
	}
	t := d.theme
	width := m.Width()
	selected := index == m.Index()

	bg := t.Surface
	fg := t.Text
	if selected {
		bg = t.SelectionBg
		fg = t.SelectionText
	}
	bgs := newSurface(bg)
	base := lipgloss.NewStyle().Foreground(lipgloss.Color(fg))

	rating := favorites.StaticRating(it.rec)
	if rating != "" {
		rating = "★ " + rating
	}
	labelWidth := width - 3 - lipgloss.Width(rating)

	marker := "  "
	if selected {
		marker = "▸ "
	}
	var b strings.Builder
	b.WriteString(bgs.Render(marker, lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent))))
	label := truncate.StringWithTail(plainLabel(it.rec), uint(max(labelWidth, 1)), "…")
	b.WriteString(bgs.Render(label, base))
	gap := width - lipgloss.Width(marker) - lipgloss.Width(label) - lipgloss.Width(rating)
	if gap > 0 {
		b.WriteString(bgs.Spaces(gap))
	}
	if rating != "" {
		b.WriteString(bgs.Render(rating, lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning))))
	}
	_, _ = fmt.Fprint(w, b.String())
}

// plainLabel turns the escaped list label back into display text.
func plainLabel(rec favorites.Record) string {
	var b strings.Builder
	for _, seg := range highlight.Segments(favorites.Label(rec)) {
		b.WriteString(seg.Text)
	}
	return b.String()
}

// favoritesList is the list widget the coordinator drives. Selection is
// tracked separately from the bubbles cursor so that "no selection" exists
// between SetData and the first SetSelectedIndex.
type favoritesList struct {
	model    list.Model
	records  []favorites.Record
	selected bool
	sized    bool

	change  favorites.Emitter[*favorites.Record]
	enter   favorites.Emitter[struct{}]
	pending []func()
}

var (
	_ favorites.ListWidget     = (*favoritesList)(nil)
	_ favorites.LayoutNotifier = (*favoritesList)(nil)
)

func newFavoritesList(theme Theme) *favoritesList {
	m := list.New(nil, rowDelegate{theme: theme}, 0, 0)
	m.SetShowTitle(false)
	m.SetShowStatusBar(false)
	m.SetShowPagination(false)
	m.SetShowHelp(false)
	m.SetShowFilter(false)
	m.SetFilteringEnabled(false)
	m.DisableQuitKeybindings()
	return &favoritesList{model: m}
}

func (l *favoritesList) SetData(records []favorites.Record) {
	l.records = append([]favorites.Record(nil), records...)
	items := make([]list.Item, len(l.records))
	for i, rec := range l.records {
		items[i] = recordItem{rec: rec}
	}
	_ = l.model.SetItems(items)
	l.model.Select(0)
	l.selected = false
}

func (l *favoritesList) SetSelectedIndex(i int) {
	if i < 0 || i >= len(l.records) {
		l.selected = false
		return
	}
	l.model.Select(i)
	l.selected = true
	l.change.Emit(nil)
}

func (l *favoritesList) SelectedItem() (favorites.Record, bool) {
	i := l.SelectedIndex()
	if i < 0 {
		return favorites.Record{}, false
	}
	return l.records[i], true
}

func (l *favoritesList) SelectedIndex() int {
	if !l.selected {
		return -1
	}
	i := l.model.Index()
	if i < 0 || i >= len(l.records) {
		return -1
	}
	return i
}

func (l *favoritesList) OnChange(fn func(related *favorites.Record)) func() {
	return l.change.Subscribe(fn)
}

func (l *favoritesList) OnEnter(fn func()) func() {
	return l.enter.Subscribe(func(struct{}) { fn() })
}

// AfterLayout queues fn until the list has been sized and drawn.
func (l *favoritesList) AfterLayout(fn func()) {
	l.pending = append(l.pending, fn)
}

// settleCmd asks for a layoutMsg once the list can lay itself out.
func (l *favoritesList) settleCmd() tea.Cmd {
	if !l.sized || len(l.pending) == 0 {
		return nil
	}
	return func() tea.Msg { return layoutMsg{} }
}

func (l *favoritesList) flushLayout() {
	pending := l.pending
	l.pending = nil
	for _, fn := range pending {
		fn()
	}
}

func (l *favoritesList) setTheme(theme Theme) {
	l.model.SetDelegate(rowDelegate{theme: theme})
}

func (l *favoritesList) setSize(width, height int) {
	l.model.SetSize(width, height)
	l.sized = width > 0 && height > 0
}

// move applies a cursor motion and reports a selection change.
func (l *favoritesList) move(apply func(*list.Model)) {
	if len(l.records) == 0 {
		return
	}
	before := l.SelectedIndex()
	apply(&l.model)
	l.selected = true
	if l.SelectedIndex() != before {
		l.change.Emit(nil)
	}
}

func (l *favoritesList) activate() {
	if l.SelectedIndex() < 0 {
		return
	}
	l.enter.Emit(struct{}{})
}

// click handles a press on the given visible row. Clicking the selected
// row commits it; any other row becomes the selection.
func (l *favoritesList) click(row int) {
	if row < 0 || len(l.records) == 0 {
		return
	}
	start, end := l.model.Paginator.GetSliceBounds(len(l.records))
	idx := start + row
	if idx >= end {
		return
	}
	if idx == l.SelectedIndex() {
		rec := l.records[idx]
		l.change.Emit(&rec)
		return
	}
	l.model.Select(idx)
	l.selected = true
	l.change.Emit(nil)
}

// indexOfLocator returns the row whose locator matches loc, or -1.
func (l *favoritesList) indexOfLocator(loc string) int {
	for i, rec := range l.records {
		if favorites.Locator(rec.ID) == loc {
			return i
		}
	}
	return -1
}

func (l *favoritesList) view() string {
	return l.model.View()
}
