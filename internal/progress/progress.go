// Package progress provides progress indicators for long-running copies.
package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/klauern/scriptutils/internal/logging"
	"github.com/klauern/scriptutils/internal/ui"
)

// Bar wraps progressbar so callers never need to check whether it is shown.
type Bar struct {
	bar     *progressbar.ProgressBar
	enabled bool
	desc    string
	count   int64
}

// Options configures the progress bar behavior.
type Options struct {
	// Max is the total number of steps.
	Max int64
	// Description is the prefix text shown before the progress bar.
	Description string
	// Writer is the output destination. Defaults to os.Stderr.
	Writer io.Writer
	// Force shows the bar even when Writer is not a terminal.
	Force bool
}

// DefaultOptions returns sensible defaults for CLI progress bars.
func DefaultOptions() Options {
	return Options{
		Max:         100,
		Description: "Processing",
		Writer:      os.Stderr,
	}
}

// New creates a new progress bar with the given options.
// Unless Force is set, the bar is only shown if:
//   - Colors are enabled (respects NO_COLOR and --no-color)
//   - Output is a terminal
//   - Not in debug mode (to avoid interfering with logs)
func New(opts Options) *Bar {
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}

	b := &Bar{
		enabled: opts.Force || shouldShowProgress(opts.Writer),
		desc:    opts.Description,
	}

	if !b.enabled {
		logging.Debug(fmt.Sprintf("%s started", opts.Description),
			logging.Count(int(opts.Max)))
		return b
	}

	b.bar = progressbar.NewOptions64(
		opts.Max,
		progressbar.OptionSetDescription(opts.Description),
		progressbar.OptionSetWriter(opts.Writer),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(15),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprint(opts.Writer, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionEnableColorCodes(ui.IsColorEnabled()),
	)

	return b
}

// Add increments the progress bar by n steps.
func (b *Bar) Add(n int) error {
	b.count += int64(n)
	if !b.enabled {
		return nil
	}
	return b.bar.Add(n)
}

// Count returns the number of steps added so far.
func (b *Bar) Count() int64 {
	return b.count
}

// Describe updates the progress bar description.
func (b *Bar) Describe(desc string) {
	b.desc = desc
	if !b.enabled {
		return
	}
	b.bar.Describe(desc)
}

// Finish completes the progress bar and logs completion.
func (b *Bar) Finish() error {
	if !b.enabled {
		logging.Debug(fmt.Sprintf("%s completed", b.desc), logging.Count(int(b.count)))
		return nil
	}
	return b.bar.Finish()
}

// Clear removes the progress bar from the terminal, used when a copy fails midway.
func (b *Bar) Clear() error {
	if !b.enabled {
		return nil
	}
	return b.bar.Clear()
}

// Enabled reports whether the bar renders anything.
func (b *Bar) Enabled() bool {
	return b.enabled
}

// shouldShowProgress determines if progress bars should be displayed.
func shouldShowProgress(w io.Writer) bool {
	if !ui.IsColorEnabled() {
		return false
	}
	if !ui.IsTerminal(w) {
		return false
	}
	if logging.Default().Enabled(context.Background(), logging.LevelDebug) {
		return false
	}
	return true
}
