package highlight

import (
	"html"
	"strings"
)

// Segment is a run of plain text inside highlighted markup.
type Segment struct {
	Text     string
	Emphasis bool
}

// Segments splits markup produced by Highlight back into unescaped runs so
// non-HTML renderers can style the emphasised parts themselves. Adjacent
// runs never share the same Emphasis value and empty runs are dropped.
func Segments(markup string) []Segment {
	var out []Segment
	emphasis := false
	for markup != "" {
		tag := EmphasisOpen
		if emphasis {
			tag = EmphasisClose
		}
		idx := strings.Index(markup, tag)
		if idx < 0 {
			out = appendSegment(out, markup, emphasis)
			break
		}
		out = appendSegment(out, markup[:idx], emphasis)
		markup = markup[idx+len(tag):]
		emphasis = !emphasis
	}
	return out
}

func appendSegment(out []Segment, raw string, emphasis bool) []Segment {
	if raw == "" {
		return out
	}
	text := html.UnescapeString(raw)
	if n := len(out); n > 0 && out[n-1].Emphasis == emphasis {
		out[n-1].Text += text
		return out
	}
	return append(out, Segment{Text: text, Emphasis: emphasis})
}
