package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/regexfav/internal/config"
	"github.com/five82/regexfav/internal/favorites"
	"github.com/five82/regexfav/internal/logging"
	"github.com/five82/regexfav/internal/logtail"
	"github.com/five82/regexfav/internal/prefs"
	"github.com/five82/regexfav/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewFavorites View = iota
	ViewLogs
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Service   favorites.Service
	Store     *prefs.Store
	Document  *state.Document
	Config    config.Config
	ThemeName string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx      context.Context
	store    *prefs.Store
	document *state.Document
	logFile  string
	logger   zerolog.Logger

	// Favourites wiring; the coordinator drives the widgets below.
	coordinator *favorites.Coordinator
	list        *favoritesList
	rating      *ratingControl
	clicks      *contentClicks
	nav         *history
	sched       *teaScheduler

	// UI state
	keys        keyMap
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	hovering    bool
	spinner     spinner.Model
	logViewport viewport.Model

	// Flash message in the command bar
	status    string
	statusErr bool
}

// New creates the Bubble Tea model and the favourites coordinator behind it.
func New(opts Options) (Model, error) {
	if opts.Store == nil {
		return Model{}, errors.New("ui: prefs store required")
	}
	if opts.Document == nil {
		return Model{}, errors.New("ui: document required")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = opts.Store.Snapshot().Theme
	}
	theme := GetTheme(themeName)

	m := Model{
		ctx:         ctx,
		store:       opts.Store,
		document:    opts.Document,
		logFile:     opts.Config.LogFile,
		logger:      logging.Component("ui"),
		list:        newFavoritesList(theme),
		rating:      &ratingControl{},
		clicks:      &contentClicks{},
		nav:         &history{},
		sched:       newTeaScheduler(),
		keys:        DefaultKeyMap(),
		theme:       theme,
		currentView: ViewFavorites,
		spinner:     spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		logViewport: viewport.New(0, 0),
	}

	coordinator, err := favorites.New(favorites.Options{
		List:          m.list,
		Store:         opts.Store,
		Service:       opts.Service,
		Document:      opts.Document,
		Navigator:     m.nav,
		Scheduler:     m.sched,
		Rating:        m.rating,
		Clicks:        m.clicks,
		PreviewLength: opts.Config.PreviewLength,
		SettleDelay:   opts.Config.SettleDelay,
	})
	if err != nil {
		return Model{}, fmt.Errorf("init favorites: %w", err)
	}
	m.coordinator = coordinator
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.spinner.Tick,
		func() tea.Msg { return showMsg{} },
	)
}

// Update implements tea.Model. Work the coordinator queued while handling
// msg is returned alongside the handler's own command.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	return m, tea.Batch(cmd, m.sched.drain(), m.list.settleCmd())
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case showMsg:
		m.coordinator.Show(m.ctx)
		return m, nil

	case asyncResultMsg:
		m.sched.resolve(msg)
		return m, nil

	case timerMsg:
		m.sched.fire(msg)
		return m, nil

	case layoutMsg:
		m.list.flushLayout()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case logLinesMsg:
		m.setLogLines(msg)
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Msg("clipboard write failed")
			m.flash("Copy failed: "+msg.err.Error(), true)
		} else {
			m.flash("Copied "+msg.text, false)
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.coordinator.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		if m.currentView == ViewLogs {
			m.currentView = ViewFavorites
			return m, nil
		}
		m.currentView = ViewLogs
		return m, readLogsCmd(m.logFile)

	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewFavorites
		return m, nil
	}

	if m.currentView == ViewLogs {
		var cmd tea.Cmd
		m.logViewport, cmd = m.logViewport.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.TogglePane):
		if m.coordinator.Mode() == favorites.ModeHidden {
			m.coordinator.Show(m.ctx)
		} else {
			m.coordinator.Hide()
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if err := m.store.Reload(); err != nil {
			m.logger.Warn().Err(err).Msg("reload prefs failed")
			m.flash("Reload failed: "+err.Error(), true)
		}
		m.coordinator.Show(m.ctx)
		return m, nil
	}

	if m.coordinator.Mode() == favorites.ModeHidden {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveSelection((*list.Model).CursorUp)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection((*list.Model).CursorDown)
	case key.Matches(msg, m.keys.Top):
		m.moveSelection((*list.Model).GoToStart)
	case key.Matches(msg, m.keys.Bottom):
		m.moveSelection((*list.Model).GoToEnd)
	case key.Matches(msg, m.keys.PageUp):
		m.moveSelection((*list.Model).PrevPage)
	case key.Matches(msg, m.keys.PageDown):
		m.moveSelection((*list.Model).NextPage)
	case key.Matches(msg, m.keys.Back):
		m.goBack()
	case key.Matches(msg, m.keys.Enter):
		m.list.activate()
	case key.Matches(msg, m.keys.ToggleFavorite):
		m.hovering = false
		m.coordinator.ToggleFavorite()
	case key.Matches(msg, m.keys.HoverFavorite):
		m.hovering = !m.hovering
		m.coordinator.HoverFavorite(m.hovering)
	case key.Matches(msg, m.keys.Rate):
		m.rating.pick(int(msg.Runes[0] - '0'))
	case key.Matches(msg, m.keys.Copy):
		return m, m.copySelected()
	case key.Matches(msg, m.keys.LoadExpression):
		m.clicks.press(favorites.LoadExpression)
	case key.Matches(msg, m.keys.LoadSource):
		m.clicks.press(favorites.LoadSource)
	case key.Matches(msg, m.keys.LoadSubstitution):
		m.clicks.press(favorites.LoadSubstitution)
	case key.Matches(msg, m.keys.LoadAll):
		m.clicks.press(favorites.LoadAll)
	}
	return m, nil
}

// handleMouse maps clicks and wheel events onto the favourites list.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.currentView != ViewFavorites || m.coordinator.Mode() == favorites.ModeHidden {
		return m, nil
	}
	if msg.X >= m.listWidth() {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveSelection((*list.Model).CursorUp)
	case tea.MouseButtonWheelDown:
		m.moveSelection((*list.Model).CursorDown)
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress {
			m.hovering = false
			m.list.click(msg.Y - listTop)
		}
	}
	return m, nil
}

func (m *Model) moveSelection(apply func(*list.Model)) {
	m.hovering = false
	m.list.move(apply)
}

// goBack steps navigation history back and reselects the matching row.
func (m *Model) goBack() {
	loc, ok := m.nav.back()
	if !ok {
		m.flash("No history", false)
		return
	}
	if idx := m.list.indexOfLocator(loc); idx >= 0 {
		m.list.SetSelectedIndex(idx)
	}
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.list.setTheme(m.theme)
	if err := m.store.SetTheme(m.theme.Name); err != nil {
		m.logger.Warn().Err(err).Msg("save theme failed")
		m.flash("Theme not saved: "+err.Error(), true)
	}
}

func (m *Model) copySelected() tea.Cmd {
	rec, ok := m.list.SelectedItem()
	if !ok || rec.Pattern == "" {
		return nil
	}
	text := rec.Pattern
	return func() tea.Msg {
		return clipboardMsg{text: text, err: clipboard.WriteAll(text)}
	}
}

func (m *Model) flash(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) resize() {
	bodyHeight := max(m.height-listTop, 1)
	m.list.setSize(m.listWidth(), bodyHeight)
	m.logViewport.Width = m.width
	m.logViewport.Height = bodyHeight
}

func (m *Model) setLogLines(msg logLinesMsg) {
	if msg.err != nil {
		m.logViewport.SetContent(m.theme.Styles().DangerText.Render(msg.err.Error()))
		return
	}
	m.logViewport.SetContent(m.renderLogLines(msg.lines))
	m.logViewport.GotoBottom()
}

// Messages

type showMsg struct{}

type clipboardMsg struct {
	text string
	err  error
}

type logLinesMsg struct {
	lines []string
	err   error
}

// Commands

func readLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, LogTailLines)
		return logLinesMsg{lines: lines, err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(m.ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
