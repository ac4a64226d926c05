// Package highlight renders untrusted text as HTML-safe markup with pattern
// matches wrapped in emphasis tags.
package highlight

import (
	"html"
	"strings"
	"unicode"

	"github.com/dlclark/regexp2"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/five82/regexfav/internal/pattern"
)

// Emphasis tags emitted around matches.
const (
	EmphasisOpen  = "<em>"
	EmphasisClose = "</em>"
)

// Ellipsis terminates shortened text.
const Ellipsis = "…"

// Sentinels are Unicode noncharacters: they never appear in interchange text
// and html.EscapeString passes them through unchanged.
const (
	sentinelOpen  = "\uFDD0"
	sentinelClose = "\uFDD1"
)

var (
	stripSentinels  = strings.NewReplacer(sentinelOpen, "", sentinelClose, "")
	restoreEmphasis = strings.NewReplacer(sentinelOpen, EmphasisOpen, sentinelClose, EmphasisClose)
)

// Highlight strips control characters, shortens text to maxLen cells, escapes it for HTML and wraps every
// match of p in <em> tags. When p is empty or does not compile the escaped
// text is returned without emphasis.
func Highlight(text string, p pattern.Parsed, maxLen int) string {
	short := stripSentinels.Replace(Shorten(text, maxLen))

	re, err := pattern.Compile(p)
	if err != nil {
		return html.EscapeString(short)
	}
	marked, err := mark(re, short)
	if err != nil {
		return html.EscapeString(short)
	}
	return restoreEmphasis.Replace(html.EscapeString(marked))
}

func mark(re *regexp2.Regexp, text string) (string, error) {
	return re.ReplaceFunc(text, func(m regexp2.Match) string {
		return sentinelOpen + m.String() + sentinelClose
	}, -1, -1)
}

// StripControls removes C0 and C1 control characters other than newline and
// tab, so untrusted text cannot carry terminal escape sequences.
func StripControls(text string) string {
	if !strings.ContainsFunc(text, isStrippedControl) {
		return text
	}
	return strings.Map(func(r rune) rune {
		if isStrippedControl(r) {
			return -1
		}
		return r
	}, text)
}

func isStrippedControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t'
}

// Shorten strips control characters and truncates text to maxLen display
// cells, ending it with an ellipsis when anything was cut. A maxLen of zero
// or less disables truncation.
func Shorten(text string, maxLen int) string {
	text = StripControls(text)
	if maxLen <= 0 || ansi.PrintableRuneWidth(text) <= maxLen {
		return text
	}
	cut := truncate.StringWithTail(text, uint(maxLen), Ellipsis)
	body := strings.TrimRight(strings.TrimSuffix(cut, Ellipsis), " \t\r\n")
	return body + Ellipsis
}
