package sync

import (
	"fmt"

	"github.com/klauern/scriptutils/internal/diff"
	"github.com/klauern/scriptutils/internal/fsutil"
	"github.com/klauern/scriptutils/internal/logging"
	"github.com/klauern/scriptutils/internal/prompt"
	"github.com/klauern/scriptutils/internal/report"
)

// OverwriteQuestion is the question asked for DecisionAsk when the files differ.
const OverwriteQuestion = "Overwrite the existing file? [y/n] "

// Resolver decides what happens when a copy destination already exists.
type Resolver struct {
	fs       *fsutil.FS
	reporter report.Reporter
	ask      prompt.Func
	diffOpts diff.Options
}

// NewResolver creates a resolver. A nil ask is only an error once
// DecisionAsk meets a differing destination.
func NewResolver(fsys *fsutil.FS, reporter report.Reporter, ask prompt.Func, diffOpts diff.Options) *Resolver {
	return &Resolver{
		fs:       fsys,
		reporter: report.OrNop(reporter),
		ask:      ask,
		diffOpts: diffOpts,
	}
}

// Resolve applies decision to an existing dest. The caller has already
// established that dest exists.
func (r *Resolver) Resolve(src, dest string, decision Decision) (Outcome, error) {
	logging.Debug("resolving existing destination",
		logging.Src(src),
		logging.Dest(dest),
		logging.Decision(decision.String()),
	)

	switch decision {
	case DecisionFail:
		return "", report.Failure(r.reporter, "copy_file",
			"Copy failed because dest path exists",
			fmt.Errorf("copy %q to %q: %w", src, dest, ErrDestinationExists))

	case DecisionSkip:
		r.reporter.Skip("File exists. Skipped it (ok to skip this file)")
		return OutcomeSkipped, nil

	case DecisionOverwrite:
		if err := r.fs.CopyBytes(src, dest); err != nil {
			return "", report.Failure(r.reporter, "copy_file", err.Error(), err)
		}
		r.reporter.Pass("File exists. Overwriting it")
		return OutcomeOverwritten, nil

	case DecisionAsk:
		return r.resolveAsk(src, dest)

	default:
		return "", report.Failure(r.reporter, "copy_file",
			fmt.Sprintf("Unknown conflict decision %q", decision),
			fmt.Errorf("%w: %q", ErrInvalidDecision, decision))
	}
}

func (r *Resolver) resolveAsk(src, dest string) (Outcome, error) {
	result, err := diff.Files(r.fs, src, dest, r.diffOpts)
	if err != nil {
		return "", report.Failure(r.reporter, "copy_file", err.Error(), err)
	}
	if result.Identical {
		r.reporter.Skip("File exists but they match so leave it alone")
		return OutcomeUnchanged, nil
	}

	r.reporter.Message("Destination exists. Showing diff.")
	r.reporter.Message(diff.Colorize(result.Text))

	if r.ask == nil {
		err := fmt.Errorf("copy %q to %q: no prompt available: %w", src, dest, ErrDestinationExists)
		return "", report.Failure(r.reporter, "copy_file", "Cannot ask without an interactive prompt", err)
	}

	answer, err := r.ask(OverwriteQuestion)
	if err != nil {
		return "", report.Failure(r.reporter, "copy_file", err.Error(), err)
	}
	logging.Debug("overwrite answer", logging.Dest(dest), logging.Operation("prompt"))

	switch answer {
	case "y":
		if err := r.fs.CopyBytes(src, dest); err != nil {
			return "", report.Failure(r.reporter, "copy_file", err.Error(), err)
		}
		r.reporter.Pass("Overwriting")
		return OutcomeOverwritten, nil
	case "n":
		r.reporter.Skip("Skipping")
		return OutcomeSkipped, nil
	default:
		return "", report.Failure(r.reporter, "copy_file", "Did not answer y or n",
			fmt.Errorf("%w: got %q", ErrInvalidAnswer, answer))
	}
}
