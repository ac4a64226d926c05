package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	TogglePane key.Binding
	Reload     key.Binding
	Logs       key.Binding
	Escape     key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Back     key.Binding

	// Favourites
	Enter          key.Binding
	ToggleFavorite key.Binding
	HoverFavorite  key.Binding
	Rate           key.Binding
	Copy           key.Binding

	// Load into document
	LoadExpression   key.Binding
	LoadSource       key.Binding
	LoadSubstitution key.Binding
	LoadAll          key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		TogglePane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Show/hide favourites"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "Reload favourites"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Toggle log view"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close log view"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "Page down"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Back in history"),
		),

		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Load pattern"),
		),
		ToggleFavorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Toggle favourite"),
		),
		HoverFavorite: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "Preview favourite toggle"),
		),
		Rate: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5"),
			key.WithHelp("0-5", "Rate"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy pattern"),
		),

		LoadExpression: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Load expression"),
		),
		LoadSource: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Load source text"),
		),
		LoadSubstitution: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Load substitution"),
		),
		LoadAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Load everything"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.ToggleFavorite, k.Rate, k.TogglePane, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown, k.Back},
		{k.Enter, k.ToggleFavorite, k.HoverFavorite, k.Rate, k.Copy},
		{k.LoadExpression, k.LoadSource, k.LoadSubstitution, k.LoadAll},
		{k.TogglePane, k.Reload, k.Logs, k.CycleTheme, k.Help, k.Quit},
	}
}
