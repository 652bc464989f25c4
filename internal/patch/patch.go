// Package patch rewrites text files with verified find-and-replace.
//
// ReplaceInFile refuses to write anything unless the pattern matched the
// expected number of times, so a script that patches a file it has not
// seen before fails loudly instead of producing a silently wrong result.
package patch

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/klauern/scriptutils/internal/fsutil"
	"github.com/klauern/scriptutils/internal/logging"
	"github.com/klauern/scriptutils/internal/report"
	"github.com/klauern/scriptutils/internal/ui"
)

// DefaultCount is the number of matches expected when none is given.
const DefaultCount = 1

// Expectation is the number of matches ReplaceInFile requires.
// The zero value expects DefaultCount.
type Expectation struct {
	n   int
	set bool
	any bool
}

// Count expects exactly n matches.
func Count(n int) Expectation {
	return Expectation{n: n, set: true}
}

// AnyCount accepts any number of matches, including none.
func AnyCount() Expectation {
	return Expectation{any: true}
}

// Verified reports whether the match count is checked.
func (e Expectation) Verified() bool {
	return !e.any
}

// Want returns the expected count. It is meaningless when Verified is false.
func (e Expectation) Want() int {
	if !e.set {
		return DefaultCount
	}
	return e.n
}

// Validate rejects a negative expected count.
func (e Expectation) Validate() error {
	if e.Verified() && e.Want() < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCount, e.Want())
	}
	return nil
}

func (e Expectation) String() string {
	if e.any {
		return "any number of"
	}
	return fmt.Sprintf("%d", e.Want())
}

// Replacer computes the replacement for one match.
type Replacer func(m Span) string

// With replaces every match with s, taken literally.
func With(s string) Replacer {
	return func(Span) string { return s }
}

// Upper replaces each match with its upper-cased text. Full Unicode case
// mapping applies, so "ß" becomes "SS".
func Upper(m Span) string {
	return cases.Upper(language.Und).String(m.Match())
}

// Lower replaces each match with its lower-cased text.
func Lower(m Span) string {
	return cases.Lower(language.Und).String(m.Match())
}

// Title replaces each match with its words title-cased.
func Title(m Span) string {
	return cases.Title(language.Und).String(m.Match())
}

// CaseReplacer returns Upper, Lower or Title by name.
func CaseReplacer(name string) (Replacer, error) {
	switch strings.ToLower(name) {
	case "upper":
		return Upper, nil
	case "lower":
		return Lower, nil
	case "title":
		return Title, nil
	default:
		return nil, fmt.Errorf("unknown case %q (valid: upper, lower, title)", name)
	}
}

// ReplaceOptions describes a ReplaceInFile call.
type ReplaceOptions struct {
	Src  string
	Dest string
	Find Matcher
	// Replace computes each replacement. Nil deletes every match.
	Replace Replacer
	Count   Expectation
}

// Engine runs patch operations against a filesystem.
type Engine struct {
	tasks    *fsutil.Tasks
	reporter report.Reporter
}

// NewEngine creates a patch engine. A nil reporter discards output.
func NewEngine(fsys *fsutil.FS, reporter report.Reporter) *Engine {
	reporter = report.OrNop(reporter)
	return &Engine{tasks: fsutil.NewTasks(fsys, reporter), reporter: reporter}
}

// ReplaceInFile reads Src, replaces every match of Find and writes the
// result to Dest, which must not exist. If the number of matches differs
// from Count, nothing is written and a *CountMismatchError is returned.
func (e *Engine) ReplaceInFile(opts ReplaceOptions) error {
	e.reporter.Task(fmt.Sprintf("Replace in %s\n  to %s\n  replacing %s %s times",
		ui.Quote(opts.Src), ui.Quote(opts.Dest), describe(opts.Find), opts.Count))

	if opts.Find == nil {
		return report.Failure(e.reporter, "replace_in_file", "No find pattern given",
			fmt.Errorf("%w: no matcher", ErrInvalidPattern))
	}
	if err := opts.Count.Validate(); err != nil {
		return report.Failure(e.reporter, "replace_in_file",
			fmt.Sprintf("Expected count must not be negative, got %d", opts.Count.Want()), err)
	}

	text, err := e.tasks.ReadFile(opts.Src)
	if err != nil {
		return report.Failure(e.reporter, "replace_in_file", err.Error(), err)
	}

	spans, err := opts.Find.FindAll(text)
	if err != nil {
		return report.Failure(e.reporter, "replace_in_file", err.Error(), err)
	}

	if opts.Count.Verified() && opts.Count.Want() != len(spans) {
		err := &CountMismatchError{Path: opts.Src, Expected: opts.Count.Want(), Actual: len(spans)}
		return report.Failure(e.reporter, "replace_in_file",
			fmt.Sprintf("Expected %d replacement(s) but got %d", err.Expected, err.Actual), err)
	}

	replaced := Splice(text, spans, opts.Replace)
	logging.Debug("replaced matches",
		logging.Src(opts.Src),
		logging.Dest(opts.Dest),
		logging.Count(len(spans)),
	)

	if err := e.tasks.WriteFile(opts.Dest, replaced, fsutil.Silent()); err != nil {
		return err
	}
	e.reporter.Pass("Completed")
	return nil
}

// ProcessFile reads src, applies transform once and writes the result to
// dest, which must not exist.
func (e *Engine) ProcessFile(src, dest string, transform func(string) string) error {
	e.reporter.Task(fmt.Sprintf("Process\n  src: %s\n  dest: %s", ui.Quote(src), ui.Quote(dest)))

	text, err := e.tasks.ReadFile(src)
	if err != nil {
		return report.Failure(e.reporter, "process_file", err.Error(), err)
	}
	if transform != nil {
		text = transform(text)
	}

	if err := e.tasks.WriteFile(dest, text, fsutil.Silent()); err != nil {
		return err
	}
	e.reporter.Pass("Completed")
	return nil
}

// Splice rebuilds text with each span replaced by replace(span). Spans must
// be ordered and non-overlapping offsets into text. Text between spans is
// copied verbatim. A nil replace deletes every span.
func Splice(text string, spans []Span, replace Replacer) string {
	if replace == nil {
		replace = With("")
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, s := range spans {
		b.WriteString(text[last:s.Start])
		b.WriteString(replace(s))
		last = s.End
	}
	b.WriteString(text[last:])
	return b.String()
}

func describe(m Matcher) string {
	if m == nil {
		return ui.Quote("")
	}
	return ui.Highlight(m.String())
}
