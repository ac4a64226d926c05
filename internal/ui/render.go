package ui

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rs/zerolog"

	"github.com/five82/regexfav/internal/favorites"
	"github.com/five82/regexfav/internal/highlight"
	"github.com/five82/regexfav/internal/logtail"
	"github.com/five82/regexfav/internal/pattern"
	"github.com/five82/regexfav/internal/state"
)

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := newSurface(m.theme.Surface)
	mode := m.coordinator.Mode()

	parts := []string{
		bg.Render("regexfav", styles.Logo),
		styles.StatusStyle(mode.String()).Render(strings.ToUpper(mode.String())),
	}
	if loc := m.nav.current(); loc != "" {
		parts = append(parts, bg.Render("at "+loc, styles.MutedText))
	}
	if snap := m.document.Snapshot(); !snap.Empty() {
		parts = append(parts, bg.Render(fmt.Sprintf("rev %d", snap.Revision), styles.FaintText))
	}
	return bg.FillLine(bg.Join(parts, "  "), m.width)
}

func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	bg := newSurface(m.theme.Background)
	if m.status != "" {
		style := styles.InfoText
		if m.statusErr {
			style = styles.DangerText
		}
		return bg.FillLine(bg.Render(m.status, style), m.width)
	}
	bindings := m.keys.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		hints = append(hints, bg.Render(h.Key, styles.WarningText)+bg.Spaces(1)+bg.Render(h.Desc, styles.MutedText))
	}
	return bg.FillLine(bg.Join(hints, "  "), m.width)
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	if m.currentView == ViewLogs {
		return m.renderLogs()
	}
	left := m.renderListPane(m.listWidth())
	right := m.renderDetailPane(max(m.width-m.listWidth()-1, 1))
	sep := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Border)).
		Render(strings.TrimSuffix(strings.Repeat("│\n", max(m.height-2, 1)), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, sep, right)
}

func (m Model) paneTitle(title string, width int) string {
	styles := m.theme.Styles()
	return styles.AccentText.Bold(true).Width(width).Render(truncate.StringWithTail(title, uint(max(width, 1)), "…"))
}

func (m Model) renderListPane(width int) string {
	styles := m.theme.Styles()
	mode := m.coordinator.Mode()

	title := fmt.Sprintf("Favourites (%d)", len(m.list.records))
	if mode == favorites.ModeLoading {
		title = m.spinner.View() + " Favourites"
	}
	lines := []string{m.paneTitle(title, width)}
	if mode == favorites.ModeHidden {
		lines = append(lines, styles.FaintText.Render("hidden · tab to show"))
	} else {
		lines = append(lines, m.list.view())
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) renderDetailPane(width int) string {
	var sections []string
	switch m.coordinator.Mode() {
	case favorites.ModeContent:
		sections = append(sections, m.paneTitle("Pattern", width), m.renderPanel(width))
	case favorites.ModeLoading:
		sections = append(sections, m.paneTitle("Pattern", width), m.spinner.View()+" Loading favourites...")
	}
	sections = append(sections, "", m.paneTitle("Document", width), m.renderDocument(width))
	return lipgloss.NewStyle().PaddingLeft(1).Width(width).Render(strings.Join(sections, "\n"))
}

// renderPanel draws the coordinator's content panel.
func (m Model) renderPanel(width int) string {
	styles := m.theme.Styles()
	p := m.coordinator.Panel()
	emph := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Background)).Background(lipgloss.Color(m.theme.Warning))
	label := func(name, hint string) string {
		return styles.MutedText.Render(name) + " " + styles.FaintText.Render("["+hint+"]")
	}

	var lines []string
	if p.Description != "" {
		lines = append(lines, wordwrap.String(html.UnescapeString(p.Description), width))
	}
	lines = append(lines, styles.FaintText.Render("by "+html.UnescapeString(p.Author)), "")
	lines = append(lines, label("Expression", "x"), styles.AccentText.Render(wordwrap.String(html.UnescapeString(p.Expression), width)))
	if p.PreviewVisible {
		lines = append(lines, label("Preview", "s"), wordwrap.String(renderMarkup(p.Preview, styles.Text, emph), width))
	}
	if p.SubstitutionVisible {
		lines = append(lines, label("Substitution", "r"), styles.InfoText.Render(html.UnescapeString(p.Substitution)))
	}

	heart := styles.MutedText.Render("♡")
	if p.Favorite == favorites.ClassFull {
		heart = styles.StatusStyle("favorite").Render("♥")
	}
	if m.hovering {
		heart += styles.FaintText.Render(" (preview)")
	}
	lines = append(lines, "",
		styles.WarningText.Render(m.rating.stars())+" "+styles.FaintText.Render("[0-5]")+"   "+heart+" "+styles.FaintText.Render("[f]"))
	return strings.Join(lines, "\n")
}

// renderDocument draws the loaded document with matches emphasised and
// the substitution result when the section is visible.
func (m Model) renderDocument(width int) string {
	styles := m.theme.Styles()
	snap := m.document.Snapshot()
	if snap.Empty() {
		return styles.FaintText.Render("Nothing loaded. Press enter on a favourite.")
	}
	emph := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Background)).Background(lipgloss.Color(m.theme.Accent))

	lines := []string{styles.AccentText.Render(highlight.StripControls(snap.Pattern().String()))}
	lines = append(lines, wordwrap.String(renderMarkup(highlight.Highlight(snap.Text, snap.Pattern(), 0), styles.Text, emph), width))
	if snap.SubstitutionVisible {
		lines = append(lines, "", styles.MutedText.Render("Substitution ")+styles.InfoText.Render(highlight.StripControls(snap.Substitution)))
		result, err := substitute(snap)
		if err != nil {
			lines = append(lines, styles.StatusStyle("error").Render(highlight.StripControls(err.Error())))
		} else {
			lines = append(lines, wordwrap.String(styles.Text.Render(highlight.StripControls(result)), width))
		}
	}
	return strings.Join(lines, "\n")
}

// renderMarkup styles highlighted markup for the terminal.
func renderMarkup(markup string, base, emph lipgloss.Style) string {
	var b strings.Builder
	for _, seg := range highlight.Segments(markup) {
		if seg.Emphasis {
			b.WriteString(emph.Render(seg.Text))
		} else {
			b.WriteString(base.Render(seg.Text))
		}
	}
	return b.String()
}

// substitute applies the document's substitution template. Without the g
// flag only the first match is replaced.
func substitute(snap state.Snapshot) (string, error) {
	re, err := pattern.Compile(snap.Pattern())
	if err != nil {
		return "", err
	}
	count := 1
	if strings.ContainsRune(snap.Flags, 'g') {
		count = -1
	}
	out, err := re.Replace(snap.Text, snap.Substitution, -1, count)
	if err != nil {
		return "", fmt.Errorf("substitute: %w", err)
	}
	return out, nil
}

func (m Model) renderLogs() string {
	title := "Log"
	if m.logFile == "" {
		title = "Log (file logging disabled; set log_file in config)"
	}
	return m.paneTitle(title, m.width) + "\n" + m.logViewport.View()
}

func (m Model) renderLogLines(lines []string) string {
	styles := m.theme.Styles()
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		entry := logtail.Parse(line)
		style := styles.Text
		switch entry.Level {
		case zerolog.DebugLevel, zerolog.TraceLevel:
			style = styles.FaintText
		case zerolog.WarnLevel:
			style = styles.WarningText
		case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
			style = styles.DangerText
		}
		out = append(out, style.Render(highlight.StripControls(entry.Format())))
	}
	return strings.Join(out, "\n")
}
