// Package diff compares two texts and renders the difference as a unified
// diff. Line matching is done by diffmatchpatch in line mode; rendering into
// hunks with context is done here.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/klauern/scriptutils/internal/fsutil"
	"github.com/klauern/scriptutils/internal/logging"
	"github.com/klauern/scriptutils/internal/ui"
)

// DefaultContext is the number of unchanged lines shown around each change.
const DefaultContext = 3

// noNewline marks a line that is the last line of its text and lacks a newline.
const noNewline = `\ No newline at end of file`

// Options configures rendering.
type Options struct {
	// Context is the number of unchanged lines kept around each change.
	// Negative values are treated as zero.
	Context int
	// FromLabel names the first text in the --- header.
	FromLabel string
	// ToLabel names the second text in the +++ header.
	ToLabel string
}

// DefaultOptions returns options with DefaultContext lines of context.
func DefaultOptions() Options {
	return Options{Context: DefaultContext, FromLabel: "a", ToLabel: "b"}
}

// Result is the outcome of comparing two texts.
type Result struct {
	// Identical is true when both texts are byte-for-byte equal.
	Identical bool
	// Text is the unified diff. Empty when Identical.
	Text string
	// Added is the number of lines only present in the second text.
	Added int
	// Removed is the number of lines only present in the first text.
	Removed int
}

// Summary returns a short description such as "+2/-1 lines".
func (r Result) Summary() string {
	if r.Identical {
		return "identical"
	}
	return fmt.Sprintf("+%d/-%d lines", r.Added, r.Removed)
}

// Files reads a and b and compares them. Labels default to the paths.
func Files(fsys *fsutil.FS, a, b string, opts Options) (Result, error) {
	aText, err := fsys.ReadText(a)
	if err != nil {
		return Result{}, err
	}
	bText, err := fsys.ReadText(b)
	if err != nil {
		return Result{}, err
	}
	if opts.FromLabel == "" {
		opts.FromLabel = a
	}
	if opts.ToLabel == "" {
		opts.ToLabel = b
	}

	result := Strings(aText, bText, opts)
	logging.Debug("compared files",
		logging.Src(a),
		logging.Dest(b),
		logging.Operation("diff"),
	)
	return result, nil
}

// Strings compares two texts.
func Strings(a, b string, opts Options) Result {
	if a == b {
		return Result{Identical: true}
	}
	if opts.Context < 0 {
		opts.Context = 0
	}

	lines := lineDiff(a, b)
	result := Result{}
	for _, l := range lines {
		switch l.op {
		case opAdded:
			result.Added++
		case opRemoved:
			result.Removed++
		}
	}
	result.Text = render(lines, opts)
	return result
}

// Colorize colors added and removed lines of a rendered diff.
func Colorize(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = ui.Bold(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = ui.Info(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = ui.Added(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = ui.Removed(line)
		}
	}
	return strings.Join(lines, "\n")
}

type op byte

const (
	opContext op = ' '
	opAdded   op = '+'
	opRemoved op = '-'
)

type line struct {
	op   op
	text string // without the trailing newline
	eol  bool   // whether the line ended with a newline
}

// lineDiff returns one entry per line of a and b, in unified order.
func lineDiff(a, b string) []line {
	dmp := diffmatchpatch.New()
	aChars, bChars, lineArray := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(aChars, bChars, false), lineArray)

	var out []line
	for _, d := range diffs {
		var o op
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			o = opContext
		case diffmatchpatch.DiffInsert:
			o = opAdded
		case diffmatchpatch.DiffDelete:
			o = opRemoved
		}
		for _, text := range splitLines(d.Text) {
			out = append(out, line{
				op:   o,
				text: strings.TrimSuffix(text, "\n"),
				eol:  strings.HasSuffix(text, "\n"),
			})
		}
	}
	return out
}

// splitLines splits s after each newline, keeping the newlines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.SplitAfter(s, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// hunkRange is a half-open range of indices into the line slice.
type hunkRange struct {
	start, end int
}

// hunks groups changed lines with up to context unchanged lines around them,
// merging groups whose context would overlap.
func hunks(lines []line, context int) []hunkRange {
	var ranges []hunkRange
	for i, l := range lines {
		if l.op == opContext {
			continue
		}
		start := max(0, i-context)
		end := min(len(lines), i+context+1)
		if n := len(ranges); n > 0 && start <= ranges[n-1].end {
			ranges[n-1].end = max(ranges[n-1].end, end)
			continue
		}
		ranges = append(ranges, hunkRange{start: start, end: end})
	}
	return ranges
}

func render(lines []line, opts Options) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", opts.FromLabel, opts.ToLabel)

	// aBefore[i] and bBefore[i] count the lines of each text preceding lines[i].
	aBefore := make([]int, len(lines)+1)
	bBefore := make([]int, len(lines)+1)
	for i, l := range lines {
		aBefore[i+1] = aBefore[i]
		bBefore[i+1] = bBefore[i]
		if l.op != opAdded {
			aBefore[i+1]++
		}
		if l.op != opRemoved {
			bBefore[i+1]++
		}
	}

	for _, h := range hunks(lines, opts.Context) {
		aCount := aBefore[h.end] - aBefore[h.start]
		bCount := bBefore[h.end] - bBefore[h.start]
		fmt.Fprintf(&sb, "@@ -%s +%s @@\n",
			hunkPos(aBefore[h.start], aCount),
			hunkPos(bBefore[h.start], bCount))

		for _, l := range lines[h.start:h.end] {
			sb.WriteByte(byte(l.op))
			sb.WriteString(l.text)
			sb.WriteByte('\n')
			if !l.eol {
				sb.WriteString(noNewline)
				sb.WriteByte('\n')
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// hunkPos formats a hunk position. before is the number of lines preceding
// the hunk; an empty range points at the line before it.
func hunkPos(before, count int) string {
	start := before + 1
	if count == 0 {
		start = before
	}
	if count == 1 {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d,%d", start, count)
}
