package favorites

import (
	"context"
	"time"
)

type spyList struct {
	items    []Record
	index    int
	change   Emitter[*Record]
	enter    Emitter[struct{}]
	setCalls int
}

func (l *spyList) SetData(records []Record) {
	l.setCalls++
	l.items = append([]Record(nil), records...)
	l.index = -1
}

func (l *spyList) SetSelectedIndex(i int) {
	if i < 0 || i >= len(l.items) {
		l.index = -1
		return
	}
	l.index = i
	l.change.Emit(nil)
}

func (l *spyList) SelectedItem() (Record, bool) {
	if l.index < 0 || l.index >= len(l.items) {
		return Record{}, false
	}
	return l.items[l.index], true
}

func (l *spyList) SelectedIndex() int { return l.index }

func (l *spyList) OnChange(fn func(related *Record)) func() { return l.change.Subscribe(fn) }

func (l *spyList) OnEnter(fn func()) func() {
	return l.enter.Subscribe(func(struct{}) { fn() })
}

// layoutList signals layout explicitly instead of relying on a delay.
type layoutList struct {
	spyList
	pending []func()
}

func (l *layoutList) AfterLayout(fn func()) { l.pending = append(l.pending, fn) }

type spyStore struct {
	favorites  []string
	flags      map[string]bool
	ratings    map[string]int
	reads      int
	writes     int
	listCalls  int
	failWrites error
}

func newSpyStore(ids ...string) *spyStore {
	s := &spyStore{flags: map[string]bool{}, ratings: map[string]int{}}
	for _, id := range ids {
		s.favorites = append(s.favorites, id)
		s.flags[id] = true
	}
	return s
}

func (s *spyStore) AllFavorites() []string {
	s.listCalls++
	return append([]string(nil), s.favorites...)
}

func (s *spyStore) Favorite(id string) bool {
	s.reads++
	return s.flags[id]
}

func (s *spyStore) SetFavorite(id string, fav bool) error {
	s.writes++
	if s.failWrites != nil {
		return s.failWrites
	}
	s.flags[id] = fav
	return nil
}

func (s *spyStore) Rating(id string) int {
	s.reads++
	return s.ratings[id]
}

func (s *spyStore) SetRating(id string, v int) error {
	s.writes++
	if s.failWrites != nil {
		return s.failWrites
	}
	s.ratings[id] = v
	return nil
}

type rateCall struct {
	id string
	v  int
}

type spyService struct {
	records   []Record
	err       error
	listCalls [][]string
	rates     []rateCall
	visits    []string
}

func (s *spyService) PatternList(_ context.Context, ids []string) ([]Record, error) {
	s.listCalls = append(s.listCalls, ids)
	return s.records, s.err
}

func (s *spyService) Rate(_ context.Context, id string, v int) error {
	s.rates = append(s.rates, rateCall{id: id, v: v})
	return nil
}

func (s *spyService) TrackVisit(_ context.Context, id string) error {
	s.visits = append(s.visits, id)
	return nil
}

type spyDocument struct {
	id       string
	calls    []string
	expr     string
	flags    string
	text     string
	replace  string
	populate int
}

func (d *spyDocument) SetPattern(expr string) {
	d.calls = append(d.calls, "pattern")
	d.expr = expr
}

func (d *spyDocument) SetFlags(flags string) {
	d.calls = append(d.calls, "flags")
	d.flags = flags
}

func (d *spyDocument) SetText(text string) {
	d.calls = append(d.calls, "text")
	d.text = text
}

func (d *spyDocument) SetSubstitution(replace string) {
	d.calls = append(d.calls, "substitution")
	d.replace = replace
}

func (d *spyDocument) ShowSubstitution() { d.calls = append(d.calls, "show-substitution") }

func (d *spyDocument) PopulateAll(expr, flags, content, replace string) {
	d.calls = append(d.calls, "populate")
	d.populate++
	d.expr, d.flags, d.text, d.replace = expr, flags, content, replace
}

func (d *spyDocument) ID() string      { return d.id }
func (d *spyDocument) SetID(id string) { d.id = id }

type spyNavigator struct {
	locations []string
}

func (n *spyNavigator) Go(locator string) { n.locations = append(n.locations, locator) }

type spyRating struct {
	value  int
	change Emitter[int]
}

func (r *spyRating) SetValue(v int) { r.value = v }
func (r *spyRating) Value() int     { return r.value }

func (r *spyRating) OnChange(fn func(int)) func() { return r.change.Subscribe(fn) }

// pick simulates the user choosing a star value.
func (r *spyRating) pick(v int) {
	r.value = v
	r.change.Emit(v)
}

type spyClicks struct {
	load Emitter[LoadKind]
}

func (c *spyClicks) OnLoad(fn func(LoadKind)) func() { return c.load.Subscribe(fn) }

type pendingAsync struct {
	work func() ([]Record, error)
	done func([]Record, error)
}

type delayed struct {
	d  time.Duration
	fn func()
}

// manualScheduler holds async work and timers until the test runs them.
type manualScheduler struct {
	async  []pendingAsync
	timers []delayed
}

func (s *manualScheduler) Async(work func() ([]Record, error), done func([]Record, error)) {
	s.async = append(s.async, pendingAsync{work: work, done: done})
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) {
	s.timers = append(s.timers, delayed{d: d, fn: fn})
}

func (s *manualScheduler) runAsync() {
	pending := s.async
	s.async = nil
	for _, p := range pending {
		records, err := p.work()
		p.done(records, err)
	}
}

func (s *manualScheduler) fireTimers() {
	timers := s.timers
	s.timers = nil
	for _, t := range timers {
		t.fn()
	}
}
