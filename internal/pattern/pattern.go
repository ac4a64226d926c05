// Package pattern parses stored community patterns and compiles them into
// matching engines.
package pattern

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

const delimiter = '/'

// MatchTimeout bounds a single match call on a compiled pattern.
const MatchTimeout = 250 * time.Millisecond

// Parsed is a stored pattern split into its expression and flag letters.
type Parsed struct {
	Expression string
	Flags      string
}

// Empty reports whether the pattern has no expression to match with.
func (p Parsed) Empty() bool {
	return p.Expression == ""
}

// String re-serializes the pattern in delimiter form.
func (p Parsed) String() string {
	if p.Empty() {
		return ""
	}
	return string(delimiter) + p.Expression + string(delimiter) + p.Flags
}

// Parse splits a "/expression/flags" string. Malformed input yields the zero
// Parsed rather than an error; callers use it for display only.
func Parse(serialized string) Parsed {
	s := strings.TrimSpace(serialized)
	if len(s) < 3 || s[0] != delimiter {
		return Parsed{}
	}
	end := strings.LastIndexByte(s, delimiter)
	if end <= 1 {
		return Parsed{}
	}
	flags := s[end+1:]
	for _, r := range flags {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return Parsed{}
		}
	}
	return Parsed{Expression: s[1:end], Flags: flags}
}

// Compile builds an ECMAScript-compatible engine for p. The g, y, d and u
// flags are accepted and ignored; unknown flags are an error.
func Compile(p Parsed) (*regexp2.Regexp, error) {
	if p.Empty() {
		return nil, fmt.Errorf("empty expression")
	}
	var opts regexp2.RegexOptions = regexp2.ECMAScript
	expr := p.Expression
	for _, f := range p.Flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			// regexp2 ignores Singleline for '.' in ECMAScript mode.
			expr = dotAll(expr)
		case 'g', 'y', 'd', 'u':
		default:
			return nil, fmt.Errorf("unsupported flag %q", f)
		}
	}
	re, err := regexp2.Compile(expr, opts)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", p, err)
	}
	re.MatchTimeout = MatchTimeout
	return re, nil
}

// dotAll rewrites every unescaped '.' outside a character class to a class
// matching any character, including line terminators.
func dotAll(expr string) string {
	var b strings.Builder
	b.Grow(len(expr))
	inClass, escaped := false, false
	for _, r := range expr {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case inClass:
			inClass = r != ']'
		case r == '[':
			inClass = true
		case r == '.':
			b.WriteString(`[\s\S]`)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
