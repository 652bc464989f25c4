package patch

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// MatchTimeout bounds a single ECMAScript match so a pathological pattern
// cannot hang a script.
const MatchTimeout = 10 * time.Second

// Span is one match in the original text. Start and End are byte offsets.
// Groups[0] is the whole match; unmatched groups are empty.
type Span struct {
	Start  int
	End    int
	Groups []string
}

// Match returns the full matched text.
func (s Span) Match() string {
	if len(s.Groups) == 0 {
		return ""
	}
	return s.Groups[0]
}

// Matcher finds every non-overlapping match in text, left to right.
type Matcher interface {
	FindAll(text string) ([]Span, error)
	String() string
}

// EscapePattern escapes pattern metacharacters so s matches literally.
// The result is valid in both RE2 and ECMAScript syntax.
func EscapePattern(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(`-/\^$*+?.()|[]{}`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

type literalMatcher struct {
	literal string
	re      *regexp.Regexp
}

// Literal matches s exactly.
func Literal(s string) Matcher {
	return &literalMatcher{literal: s, re: regexp.MustCompile(EscapePattern(s))}
}

func (m *literalMatcher) FindAll(text string) ([]Span, error) {
	return findAllRE2(m.re, text), nil
}

func (m *literalMatcher) String() string {
	return fmt.Sprintf("%q", m.literal)
}

type re2Matcher struct {
	re *regexp.Regexp
}

// Regexp matches a compiled Go regular expression.
func Regexp(re *regexp.Regexp) Matcher {
	return &re2Matcher{re: re}
}

func (m *re2Matcher) FindAll(text string) ([]Span, error) {
	if m.re == nil {
		return nil, fmt.Errorf("%w: nil regexp", ErrInvalidPattern)
	}
	return findAllRE2(m.re, text), nil
}

func (m *re2Matcher) String() string {
	if m.re == nil {
		return "<nil>"
	}
	return "/" + m.re.String() + "/"
}

func findAllRE2(re *regexp.Regexp, text string) []Span {
	locs := re.FindAllStringSubmatchIndex(text, -1)
	spans := make([]Span, 0, len(locs))
	for _, loc := range locs {
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if start, end := loc[2*i], loc[2*i+1]; start >= 0 {
				groups[i] = text[start:end]
			}
		}
		spans = append(spans, Span{Start: loc[0], End: loc[1], Groups: groups})
	}
	return spans
}

type ecmaMatcher struct {
	expr string
	re   *regexp2.Regexp
}

// ECMAScript compiles expr with JavaScript regular expression semantics,
// including look-around and backreferences.
func ECMAScript(expr string) (Matcher, error) {
	re, err := regexp2.Compile(expr, regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, expr, err)
	}
	re.MatchTimeout = MatchTimeout
	return &ecmaMatcher{expr: expr, re: re}, nil
}

// MustECMAScript is like ECMAScript but panics if expr does not compile.
func MustECMAScript(expr string) Matcher {
	m, err := ECMAScript(expr)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *ecmaMatcher) FindAll(text string) ([]Span, error) {
	// regexp2 reports rune offsets.
	offsets := runeOffsets(text)

	var spans []Span
	match, err := m.re.FindStringMatch(text)
	for match != nil && err == nil {
		groups := match.Groups()
		spanGroups := make([]string, len(groups))
		for i, g := range groups {
			if len(g.Captures) > 0 {
				spanGroups[i] = g.String()
			}
		}
		spans = append(spans, Span{
			Start:  offsets[match.Index],
			End:    offsets[match.Index+match.Length],
			Groups: spanGroups,
		})
		match, err = m.re.FindNextMatch(match)
	}
	if err != nil {
		return nil, fmt.Errorf("match /%s/: %w", m.expr, err)
	}
	return spans, nil
}

func (m *ecmaMatcher) String() string {
	return "/" + m.expr + "/"
}

// runeOffsets maps each rune index of text to its byte offset, with one
// extra entry for the end of text.
func runeOffsets(text string) []int {
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}
