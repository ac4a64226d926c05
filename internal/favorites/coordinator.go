package favorites

import (
	"context"
	"errors"
	"html"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/regexfav/internal/highlight"
	"github.com/five82/regexfav/internal/logging"
	"github.com/five82/regexfav/internal/pattern"
)

// Mode is the panel visibility state.
type Mode int

const (
	ModeHidden Mode = iota
	ModeLoading
	ModeContent
)

func (m Mode) String() string {
	switch m {
	case ModeLoading:
		return "loading"
	case ModeContent:
		return "content"
	default:
		return "hidden"
	}
}

// LoadKind selects which part of a record a load action pushes into the
// document.
type LoadKind int

const (
	LoadAll LoadKind = iota
	LoadExpression
	LoadSource
	LoadSubstitution
)

func (k LoadKind) String() string {
	switch k {
	case LoadExpression:
		return "expr"
	case LoadSource:
		return "source"
	case LoadSubstitution:
		return "subst"
	default:
		return "all"
	}
}

// SelectionState is a snapshot of the coordinator's list state.
type SelectionState struct {
	Items         []Record
	SelectedIndex int
	Mode          Mode
}

// Panel is the rendered content panel. Text fields are HTML-safe.
type Panel struct {
	Description         string
	Author              string
	Expression          string
	Preview             string
	PreviewVisible      bool
	Substitution        string
	SubstitutionVisible bool
	Rating              int
	Favorite            Class
}

const (
	DefaultPreviewLength = 125
	DefaultSettleDelay   = 100 * time.Millisecond
	anonymousAuthor      = "Anonymous"
)

// Options wires a Coordinator to its collaborators. Rating and Clicks are
// optional; the rest are required.
type Options struct {
	List      ListWidget
	Store     Store
	Service   Service
	Document  Document
	Navigator Navigator
	Scheduler Scheduler
	Rating    RatingControl
	Clicks    ContentClicks

	// PreviewLength is the preview budget in cells; zero uses the default.
	PreviewLength int
	// SettleDelay is used when the list cannot signal layout; zero uses the default.
	SettleDelay time.Duration
	Logger      *zerolog.Logger
}

// Coordinator owns the favourites selection and keeps the list, content
// panel, document and navigation consistent. It is not safe for concurrent
// use; every method must run on the UI event loop.
type Coordinator struct {
	list      ListWidget
	store     Store
	service   Service
	document  Document
	navigator Navigator
	scheduler Scheduler
	rating    RatingControl
	clicks    ContentClicks
	favorite  *FavoriteSync
	logger    zerolog.Logger

	previewLength int
	settleDelay   time.Duration

	ctx      context.Context
	items    []Record
	mode     Mode
	panel    Panel
	attached bool

	listDisposers     []func()
	attachedDisposers []func()
}

// New builds a Coordinator and subscribes to list events. Call Close to
// release the subscriptions.
func New(opts Options) (*Coordinator, error) {
	switch {
	case opts.List == nil:
		return nil, errors.New("favorites: list widget required")
	case opts.Store == nil:
		return nil, errors.New("favorites: store required")
	case opts.Service == nil:
		return nil, errors.New("favorites: service required")
	case opts.Document == nil:
		return nil, errors.New("favorites: document required")
	case opts.Navigator == nil:
		return nil, errors.New("favorites: navigator required")
	case opts.Scheduler == nil:
		return nil, errors.New("favorites: scheduler required")
	}

	c := &Coordinator{
		list:          opts.List,
		store:         opts.Store,
		service:       opts.Service,
		document:      opts.Document,
		navigator:     opts.Navigator,
		scheduler:     opts.Scheduler,
		rating:        opts.Rating,
		clicks:        opts.Clicks,
		favorite:      NewFavoriteSync(opts.Store),
		previewLength: opts.PreviewLength,
		settleDelay:   opts.SettleDelay,
		ctx:           context.Background(),
		mode:          ModeHidden,
	}
	if opts.Logger != nil {
		c.logger = *opts.Logger
	} else {
		c.logger = logging.Component("favorites")
	}
	if c.previewLength <= 0 {
		c.previewLength = DefaultPreviewLength
	}
	if c.settleDelay <= 0 {
		c.settleDelay = DefaultSettleDelay
	}

	c.listDisposers = []func(){
		c.list.OnChange(c.handleListChange),
		c.list.OnEnter(c.Enter),
	}
	return c, nil
}

// Show makes the panel visible, attaches load routing and the rating
// subscription, and starts a search. A previously loaded selection is
// rendered immediately.
func (c *Coordinator) Show(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	c.ctx = ctx
	c.mode = ModeLoading
	c.attach()
	c.search(ctx)
	c.Render()
}

// Hide detaches load routing and the rating subscription. Items and the
// selection are kept so the next Show resumes where this one left off.
func (c *Coordinator) Hide() {
	c.mode = ModeHidden
	c.detach()
}

// Close hides the panel and releases the list subscriptions.
func (c *Coordinator) Close() {
	c.Hide()
	for _, dispose := range c.listDisposers {
		dispose()
	}
	c.listDisposers = nil
}

func (c *Coordinator) attach() {
	if c.attached {
		return
	}
	c.attached = true
	if c.clicks != nil {
		c.attachedDisposers = append(c.attachedDisposers, c.clicks.OnLoad(c.Load))
	}
	if c.rating != nil {
		c.attachedDisposers = append(c.attachedDisposers, c.rating.OnChange(c.HandleRatingChange))
	}
}

func (c *Coordinator) detach() {
	c.attached = false
	for _, dispose := range c.attachedDisposers {
		dispose()
	}
	c.attachedDisposers = nil
}

func (c *Coordinator) search(ctx context.Context) {
	ids := c.store.AllFavorites()
	if len(ids) == 0 {
		c.HandleFavoritesLoad(nil, nil)
		return
	}
	c.logger.Debug().Int("count", len(ids)).Msg("fetching favourites")
	c.scheduler.Async(func() ([]Record, error) {
		return c.service.PatternList(ctx, ids)
	}, c.HandleFavoritesLoad)
}

// HandleFavoritesLoad replaces the list with records, or with the
// placeholder when records is empty or err is set, selects the first item
// and schedules a settle render.
func (c *Coordinator) HandleFavoritesLoad(records []Record, err error) {
	if err != nil {
		c.logger.Warn().Err(err).Msg("favourites fetch failed, showing placeholder")
	}
	if len(records) == 0 {
		records = []Record{PlaceholderRecord()}
	}
	c.items = append([]Record(nil), records...)
	c.list.SetData(c.items)
	c.list.SetSelectedIndex(0)
	c.scheduleSettle()
}

func (c *Coordinator) scheduleSettle() {
	if n, ok := c.list.(LayoutNotifier); ok {
		n.AfterLayout(c.Render)
		return
	}
	c.scheduler.AfterFunc(c.settleDelay, c.Render)
}

func (c *Coordinator) handleListChange(related *Record) {
	if related != nil {
		if rec, ok := c.list.SelectedItem(); ok && rec == *related {
			c.Enter()
			return
		}
	}
	c.Render()
}

// Current returns the selected item as a Selection.
func (c *Coordinator) Current() Selection {
	return selectionOf(c.list.SelectedItem())
}

// Render fills the content panel from the selected record. It does nothing
// when there is no selection or the record's vote is not a number yet.
func (c *Coordinator) Render() {
	rec, ok := c.list.SelectedItem()
	if !ok {
		return
	}
	if _, ok := rec.Vote(); !ok {
		return
	}

	p := Panel{
		Description: escapeText(rec.Description),
		Author:      anonymousAuthor,
		Expression:  escapeText(rec.Pattern),
	}
	if rec.Author != "" {
		p.Author = escapeText(rec.Author)
	}
	if rec.Content != "" {
		p.Preview = highlight.Highlight(rec.Content, pattern.Parse(rec.Pattern), c.previewLength)
		p.PreviewVisible = true
	}
	if Persistable(rec.ID) {
		p.Rating = c.store.Rating(rec.ID)
	}
	if c.rating != nil {
		c.rating.SetValue(p.Rating)
	}
	p.Favorite = c.favorite.Refresh(rec.ID)
	if rec.Replace != "" {
		p.Substitution = escapeText(rec.Replace)
		p.SubstitutionVisible = true
	}
	c.panel = p

	if c.mode != ModeHidden {
		c.mode = ModeContent
	}
}

// escapeText makes untrusted record text safe for both HTML and terminal
// rendering.
func escapeText(s string) string {
	return html.EscapeString(highlight.StripControls(s))
}

// Enter commits the selected record: it re-renders and, unless the record is
// already the loaded document, loads it, records a visit and navigates.
func (c *Coordinator) Enter() {
	c.Render()
	rec, ok := c.list.SelectedItem()
	if !ok {
		return
	}
	if !c.commit(rec) {
		return
	}
	c.navigator.Go(Locator(rec.ID))
}

// commit pushes the whole record into the document. It reports false when
// the record is already loaded.
func (c *Coordinator) commit(rec Record) bool {
	if rec.ID == c.document.ID() {
		return false
	}
	p := pattern.Parse(rec.Pattern)
	c.document.SetID(rec.ID)
	c.document.PopulateAll(p.Expression, p.Flags, rec.Content, rec.Replace)
	if Persistable(rec.ID) {
		if err := c.service.TrackVisit(c.ctx, rec.ID); err != nil {
			c.logger.Warn().Err(err).Str("id", rec.ID).Msg("track visit failed")
		}
	}
	c.logger.Info().Str("id", rec.ID).Msg("pattern loaded")
	return true
}

// Load pushes one slice of the selected record into the document. It is
// ignored while the panel is hidden.
func (c *Coordinator) Load(kind LoadKind) {
	if !c.attached {
		return
	}
	rec, ok := c.list.SelectedItem()
	if !ok {
		return
	}
	p := pattern.Parse(rec.Pattern)
	switch kind {
	case LoadExpression:
		c.document.SetPattern(p.Expression)
		c.document.SetFlags(p.Flags)
	case LoadSource:
		c.document.SetText(rec.Content)
	case LoadSubstitution:
		c.document.SetSubstitution(rec.Replace)
		c.document.ShowSubstitution()
	case LoadAll:
		c.commit(rec)
	}
}

// HandleRatingChange submits v for the selected record and stores it
// locally. The placeholder cannot be rated.
func (c *Coordinator) HandleRatingChange(v int) {
	sel, ok := c.Current().(Selected)
	if !ok {
		return
	}
	id := sel.Record.ID
	if err := c.service.Rate(c.ctx, id, v); err != nil {
		c.logger.Warn().Err(err).Str("id", id).Int("rating", v).Msg("rate failed")
	}
	if err := c.store.SetRating(id, v); err != nil {
		c.logger.Error().Err(err).Str("id", id).Msg("save rating failed")
	}
	c.panel.Rating = v
}

// ToggleFavorite flips the favourite flag of the selected record.
func (c *Coordinator) ToggleFavorite() {
	sel, ok := c.Current().(Selected)
	if !ok {
		return
	}
	class, err := c.favorite.Toggle(sel.Record.ID)
	if err != nil {
		c.logger.Error().Err(err).Msg("save favourite failed")
	}
	c.panel.Favorite = class
}

// HoverFavorite previews the favourite toggle while hovering is true and
// restores the stored state when it becomes false.
func (c *Coordinator) HoverFavorite(hovering bool) {
	sel, ok := c.Current().(Selected)
	if !ok {
		return
	}
	c.panel.Favorite = c.favorite.PreviewHoverState(sel.Record.ID, hovering)
}

// State returns a copy of the selection state.
func (c *Coordinator) State() SelectionState {
	return SelectionState{
		Items:         append([]Record(nil), c.items...),
		SelectedIndex: c.list.SelectedIndex(),
		Mode:          c.mode,
	}
}

// Mode returns the current visibility mode.
func (c *Coordinator) Mode() Mode {
	return c.mode
}

// Panel returns the last rendered content panel.
func (c *Coordinator) Panel() Panel {
	return c.panel
}

// Attached reports whether load routing is active.
func (c *Coordinator) Attached() bool {
	return c.attached
}
