// Package report carries the human-readable progress of a script run.
//
// Every engine in scriptutils takes a Reporter instead of writing to a
// process-wide logger, so a single run can be rendered to a terminal,
// collected for assertions, or discarded without changing behavior.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/klauern/scriptutils/internal/ui"
)

// Reporter receives task lifecycle events. Implementations must not affect
// control flow.
type Reporter interface {
	// Title announces the start of a script.
	Title(text string)
	// Heading starts a named section.
	Heading(text string)
	// Task announces a single operation.
	Task(text string)
	// Pass reports a task that completed.
	Pass(text string)
	// Skip reports a task that completed without doing anything.
	Skip(text string)
	// Fail reports a task failure. The caller still returns the error.
	Fail(text string)
	// Message prints free-form output such as a diff.
	Message(text string)
	// Alert prints something the operator must notice.
	Alert(text string)
}

// Kind identifies a reporter event.
type Kind string

const (
	KindTitle   Kind = "title"
	KindHeading Kind = "heading"
	KindTask    Kind = "task"
	KindPass    Kind = "pass"
	KindSkip    Kind = "skip"
	KindFail    Kind = "fail"
	KindMessage Kind = "message"
	KindAlert   Kind = "alert"
)

// Console writes styled events to a writer.
type Console struct {
	w io.Writer
}

// NewConsole creates a console reporter writing to w, or os.Stdout when w is nil.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{w: w}
}

func (c *Console) Title(text string) {
	_, _ = fmt.Fprintf(c.w, "\n%s\n\n", ui.Title(text))
}

func (c *Console) Heading(text string) {
	_, _ = fmt.Fprintf(c.w, "\n%s\n\n", ui.Heading(text))
}

func (c *Console) Task(text string) {
	_, _ = fmt.Fprintln(c.w, ui.StatusTask(text))
}

func (c *Console) Pass(text string) {
	_, _ = fmt.Fprintf(c.w, "  %s\n\n", ui.StatusSuccess(text))
}

func (c *Console) Skip(text string) {
	_, _ = fmt.Fprintf(c.w, "  %s\n\n", ui.StatusSkipped(text))
}

func (c *Console) Fail(text string) {
	_, _ = fmt.Fprintf(c.w, "  %s\n\n", ui.StatusError(text))
}

func (c *Console) Message(text string) {
	_, _ = fmt.Fprintf(c.w, "  %s\n\n", indent(text))
}

func (c *Console) Alert(text string) {
	_, _ = fmt.Fprintf(c.w, "%s %s\n\n", ui.SymbolAlert, ui.Alert(indent(text)))
}

// indent aligns continuation lines with the first line of an event.
func indent(text string) string {
	return strings.ReplaceAll(text, "\n", "\n  ")
}

// Nop discards every event.
type Nop struct{}

func (Nop) Title(string)   {}
func (Nop) Heading(string) {}
func (Nop) Task(string)    {}
func (Nop) Pass(string)    {}
func (Nop) Skip(string)    {}
func (Nop) Fail(string)    {}
func (Nop) Message(string) {}
func (Nop) Alert(string)   {}

// Entry is a single recorded event.
type Entry struct {
	Kind Kind
	Text string
}

// Recorder collects events in order. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(kind Kind, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Kind: kind, Text: text})
}

func (r *Recorder) Title(text string)   { r.add(KindTitle, text) }
func (r *Recorder) Heading(text string) { r.add(KindHeading, text) }
func (r *Recorder) Task(text string)    { r.add(KindTask, text) }
func (r *Recorder) Pass(text string)    { r.add(KindPass, text) }
func (r *Recorder) Skip(text string)    { r.add(KindSkip, text) }
func (r *Recorder) Fail(text string)    { r.add(KindFail, text) }
func (r *Recorder) Message(text string) { r.add(KindMessage, text) }
func (r *Recorder) Alert(text string)   { r.add(KindAlert, text) }

// Entries returns a copy of the recorded events.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Kinds returns the kind of each recorded event, in order.
func (r *Recorder) Kinds() []Kind {
	entries := r.Entries()
	kinds := make([]Kind, len(entries))
	for i, e := range entries {
		kinds[i] = e.Kind
	}
	return kinds
}

// Reset discards all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}

// OrNop returns r, or Nop when r is nil.
func OrNop(r Reporter) Reporter {
	if r == nil {
		return Nop{}
	}
	return r
}
