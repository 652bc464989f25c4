package sync

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/klauern/scriptutils/internal/diff"
	"github.com/klauern/scriptutils/internal/fsutil"
	"github.com/klauern/scriptutils/internal/logging"
	"github.com/klauern/scriptutils/internal/progress"
	"github.com/klauern/scriptutils/internal/prompt"
	"github.com/klauern/scriptutils/internal/report"
	"github.com/klauern/scriptutils/internal/ui"
)

// Engine copies files and directory trees without silently clobbering data.
type Engine struct {
	fs          *fsutil.FS
	reporter    report.Reporter
	resolver    *Resolver
	progressOut io.Writer
}

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	ask         prompt.Func
	askSet      bool
	diffOpts    diff.Options
	progressOut io.Writer
}

// WithPrompt sets the prompt used for DecisionAsk. Passing nil disables
// prompting, so DecisionAsk fails on differing files.
func WithPrompt(ask prompt.Func) Option {
	return func(c *engineConfig) {
		c.ask = ask
		c.askSet = true
	}
}

// WithDiffOptions sets how diffs are rendered for DecisionAsk.
func WithDiffOptions(opts diff.Options) Option {
	return func(c *engineConfig) { c.diffOpts = opts }
}

// WithProgress shows a progress bar on w during CopyDir when w is a terminal.
func WithProgress(w io.Writer) Option {
	return func(c *engineConfig) { c.progressOut = w }
}

// NewEngine creates a copy engine. Without WithPrompt, DecisionAsk reads
// answers from standard input.
func NewEngine(fsys *fsutil.FS, reporter report.Reporter, opts ...Option) *Engine {
	cfg := engineConfig{diffOpts: diff.Options{Context: diff.DefaultContext}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.askSet {
		cfg.ask = prompt.Stdin(os.Stdin, os.Stdout)
	}
	if fsys == nil {
		fsys = fsutil.OS()
	}
	reporter = report.OrNop(reporter)

	return &Engine{
		fs:          fsys,
		reporter:    reporter,
		resolver:    NewResolver(fsys, reporter, cfg.ask, cfg.diffOpts),
		progressOut: cfg.progressOut,
	}
}

// CopyOption configures a single CopyFile call.
type CopyOption func(*copyConfig)

type copyConfig struct {
	decision Decision
	silent   bool
}

// WithDecision chooses how an existing destination is handled.
func WithDecision(d Decision) CopyOption {
	return func(c *copyConfig) { c.decision = d }
}

// Silent suppresses the task and completion lines of a fresh copy.
// Conflict handling is always reported.
func Silent() CopyOption {
	return func(c *copyConfig) { c.silent = true }
}

// CopyFile copies src to dest, creating dest's parent directories. When dest
// already exists the decision (DecisionFail unless set) determines what
// happens. src is never modified.
func (e *Engine) CopyFile(src, dest string, opts ...CopyOption) (Outcome, error) {
	cfg := copyConfig{decision: DecisionFail}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.decision == "" {
		cfg.decision = DecisionFail
	}

	if !cfg.silent {
		e.reporter.Task(fmt.Sprintf("Copy file %s\n  to %s", ui.Quote(src), ui.Quote(dest)))
	}
	if !cfg.decision.IsValid() {
		return "", report.Failure(e.reporter, "copy_file",
			fmt.Sprintf("Unknown conflict decision %q", cfg.decision),
			fmt.Errorf("%w: %q", ErrInvalidDecision, cfg.decision))
	}
	logging.Debug("copy file",
		logging.Src(src),
		logging.Dest(dest),
		logging.Decision(cfg.decision.String()),
	)

	if err := e.fs.EnsureDir(filepath.Dir(dest)); err != nil {
		return "", report.Failure(e.reporter, "copy_file", err.Error(), err)
	}

	exists, err := e.fs.Exists(dest)
	if err != nil {
		return "", report.Failure(e.reporter, "copy_file", err.Error(), err)
	}
	if exists {
		return e.resolver.Resolve(src, dest, cfg.decision)
	}

	if err := e.fs.CopyBytes(src, dest); err != nil {
		return "", report.Failure(e.reporter, "copy_file", err.Error(), err)
	}
	if !cfg.silent {
		e.reporter.Pass("Completed")
	}
	return OutcomeCreated, nil
}

// CopyDir copies the tree at src to dest, creating dest's parent directories.
// Existing directories are merged into, but any file that already exists in
// the destination tree aborts the copy with a *TreeConflictError. Files
// copied before the conflict is found are not rolled back.
func (e *Engine) CopyDir(src, dest string) error {
	e.reporter.Task(fmt.Sprintf("Copy dir %s\n  to %s", ui.Quote(src), ui.Quote(dest)))

	if err := e.copyDir(src, dest); err != nil {
		return report.Failure(e.reporter, "copy_dir", err.Error(), err)
	}
	e.reporter.Pass("Completed")
	return nil
}

func (e *Engine) copyDir(src, dest string) error {
	if err := checkNotInside(src, dest); err != nil {
		return err
	}
	if err := e.fs.EnsureDir(filepath.Dir(dest)); err != nil {
		return err
	}

	afs := e.fs.Afero()
	if _, err := afs.Stat(src); err != nil {
		return fmt.Errorf("failed to stat source %q: %w", src, err)
	}

	var bar *progress.Bar
	if e.progressOut != nil {
		total, err := countFiles(afs, src)
		if err != nil {
			return err
		}
		opts := progress.DefaultOptions()
		opts.Max = int64(total)
		opts.Description = "Copying files"
		opts.Writer = e.progressOut
		bar = progress.New(opts)
	}

	copied := 0
	err := afero.Walk(afs, src, func(path string, info fs.FileInfo, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("failed to walk %q: %w", path, walkErr)
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("failed to relativize %q: %w", path, err)
		}
		target := filepath.Join(dest, rel)

		if info.IsDir() {
			if err := e.checkDirTarget(target, path); err != nil {
				return err
			}
			if bar != nil && rel != "." {
				bar.Describe(fmt.Sprintf("Copying %s", filepath.ToSlash(rel)))
			}
			return e.fs.EnsureDir(target)
		}

		exists, err := e.fs.Exists(target)
		if err != nil {
			return err
		}
		if !exists {
			exists, err = lexists(afs, target)
			if err != nil {
				return err
			}
		}
		if exists {
			return &TreeConflictError{Path: target, Source: path}
		}

		if info.Mode()&os.ModeSymlink != 0 {
			if err := copySymlink(afs, path, target); err != nil {
				return err
			}
		} else if err := e.fs.CopyBytes(path, target); err != nil {
			return err
		}

		copied++
		if bar != nil {
			_ = bar.Add(1)
		}
		return nil
	})

	if bar != nil {
		if err != nil {
			_ = bar.Clear()
		} else {
			_ = bar.Finish()
		}
	}
	if err != nil {
		logging.Debug("copy dir stopped",
			logging.Src(src),
			logging.Dest(dest),
			logging.Count(copied),
			logging.Err(err),
		)
		return err
	}

	logging.Debug("copied directory",
		logging.Src(src),
		logging.Dest(dest),
		logging.Count(copied),
	)
	return nil
}

// checkDirTarget fails when something other than a directory already sits
// where a source directory is about to be created.
func (e *Engine) checkDirTarget(target, src string) error {
	isDir, err := e.fs.IsDirectory(target)
	if err != nil || isDir {
		return err
	}
	exists, err := e.fs.Exists(target)
	if err != nil {
		return err
	}
	if !exists {
		if exists, err = lexists(e.fs.Afero(), target); err != nil {
			return err
		}
	}
	if exists {
		return &TreeConflictError{Path: target, Source: src}
	}
	return nil
}

// checkNotInside rejects copying a directory into one of its own descendants.
func checkNotInside(src, dest string) error {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", src, err)
	}
	absDest, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", dest, err)
	}
	rel, err := filepath.Rel(absSrc, absDest)
	if err != nil {
		return nil
	}
	if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
		return fmt.Errorf("copy %q to %q: %w", src, dest, ErrCopyIntoSelf)
	}
	return nil
}

// countFiles returns the number of non-directory entries under root.
func countFiles(afs afero.Fs, root string) (int, error) {
	total := 0
	err := afero.Walk(afs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %q: %w", path, err)
		}
		if !info.IsDir() {
			total++
		}
		return nil
	})
	return total, err
}

// lexists catches dangling symlinks, which Stat reports as missing.
func lexists(afs afero.Fs, path string) (bool, error) {
	lstater, ok := afs.(afero.Lstater)
	if !ok {
		return false, nil
	}
	_, _, err := lstater.LstatIfPossible(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to lstat %q: %w", path, err)
}

// copySymlink recreates the link at src as dest, pointing at the same target.
func copySymlink(afs afero.Fs, src, dest string) error {
	reader, ok := afs.(afero.LinkReader)
	if !ok {
		return fmt.Errorf("cannot read symlink %q on this filesystem", src)
	}
	linker, ok := afs.(afero.Linker)
	if !ok {
		return fmt.Errorf("cannot create symlink %q on this filesystem", dest)
	}
	target, err := reader.ReadlinkIfPossible(src)
	if err != nil {
		return fmt.Errorf("failed to read symlink %q: %w", src, err)
	}
	if err := linker.SymlinkIfPossible(target, dest); err != nil {
		return fmt.Errorf("failed to create symlink %q: %w", dest, err)
	}
	logging.Debug("copied symlink", logging.Src(src), logging.Dest(dest))
	return nil
}
