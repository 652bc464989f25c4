package fsutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/klauern/scriptutils/internal/logging"
	"github.com/klauern/scriptutils/internal/report"
	"github.com/klauern/scriptutils/internal/ui"
)

// Tasks runs reported file operations against an FS.
type Tasks struct {
	fs       *FS
	reporter report.Reporter
}

// NewTasks creates a task runner. A nil reporter discards output.
func NewTasks(fsys *FS, reporter report.Reporter) *Tasks {
	if fsys == nil {
		fsys = OS()
	}
	return &Tasks{fs: fsys, reporter: report.OrNop(reporter)}
}

// FS returns the filesystem tasks run against.
func (t *Tasks) FS() *FS {
	return t.fs
}

// Reporter returns the reporter tasks emit to.
func (t *Tasks) Reporter() report.Reporter {
	return t.reporter
}

// WriteOption configures WriteFile.
type WriteOption func(*writeConfig)

type writeConfig struct {
	silent bool
}

// Silent suppresses the task and pass lines. Failures are still reported.
func Silent() WriteOption {
	return func(c *writeConfig) { c.silent = true }
}

// ReadFile reads path as text.
func (t *Tasks) ReadFile(path string) (string, error) {
	return t.fs.ReadText(path)
}

// WriteFile creates path with text, creating parent directories as needed.
// It fails with ErrDestinationExists if anything is already at path.
func (t *Tasks) WriteFile(path, text string, opts ...WriteOption) error {
	var cfg writeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if !cfg.silent {
		t.reporter.Task(fmt.Sprintf("Write file %s", ui.Quote(path)))
	}
	if err := t.fs.EnsureDir(filepath.Dir(path)); err != nil {
		return report.Failure(t.reporter, "write_file", err.Error(), err)
	}

	exists, err := t.fs.Exists(path)
	if err != nil {
		return report.Failure(t.reporter, "write_file", err.Error(), err)
	}
	if exists {
		return report.Failure(t.reporter, "write_file",
			"Failed because file exists",
			fmt.Errorf("write %q: %w", path, ErrDestinationExists))
	}

	if err := t.fs.WriteBytes(path, []byte(text)); err != nil {
		return report.Failure(t.reporter, "write_file", err.Error(), err)
	}

	logging.Debug("wrote file", logging.Path(path), logging.Count(len(text)))
	if !cfg.silent {
		t.reporter.Pass("Completed")
	}
	return nil
}

// RemoveFileIfExists removes the file at path. A missing path passes; a
// directory at path fails with ErrNotAFile.
func (t *Tasks) RemoveFileIfExists(path string) error {
	t.reporter.Task(fmt.Sprintf("Remove file %s", ui.Quote(path)))

	exists, err := t.fs.Exists(path)
	if err != nil {
		return report.Failure(t.reporter, "remove_file", err.Error(), err)
	}
	if !exists {
		t.reporter.Pass("File does not exist. Okay to continue.")
		return nil
	}

	if err := t.fs.RemoveFile(path); err != nil {
		if errors.Is(err, ErrNotAFile) {
			return report.Failure(t.reporter, "remove_file",
				fmt.Sprintf("Path %s exists but is not a file", ui.Quote(path)), err)
		}
		return report.Failure(t.reporter, "remove_file", err.Error(), err)
	}

	logging.Debug("removed file", logging.Path(path))
	t.reporter.Pass("Removed")
	return nil
}

// EnsureFileExists fails unless a file or directory exists at path.
func (t *Tasks) EnsureFileExists(path string) error {
	t.reporter.Task(fmt.Sprintf("Ensure file exists %s", ui.Quote(path)))

	exists, err := t.fs.Exists(path)
	if err != nil {
		return report.Failure(t.reporter, "ensure_file_exists", err.Error(), err)
	}
	if !exists {
		return report.Failure(t.reporter, "ensure_file_exists", "File does not exist!",
			fmt.Errorf("file %q does not exist: %w", path, ErrCheckFailed))
	}
	t.reporter.Pass("Confirmed")
	return nil
}

// EnsureEmpty fails unless IsEmpty(path) holds.
func (t *Tasks) EnsureEmpty(path string) error {
	t.reporter.Task(fmt.Sprintf("Ensure path %s is empty", ui.Quote(path)))

	empty, err := t.fs.IsEmpty(path)
	if err != nil {
		return report.Failure(t.reporter, "ensure_empty", err.Error(), err)
	}
	if !empty {
		return report.Failure(t.reporter, "ensure_empty", "Path is not empty",
			fmt.Errorf("path %q is not empty: %w", path, ErrCheckFailed))
	}
	t.reporter.Pass("Confirmed")
	return nil
}

// EnsureFileContains fails unless the file at path contains needle.
func (t *Tasks) EnsureFileContains(path, needle string) error {
	t.reporter.Task(fmt.Sprintf("Confirm file %s\n  contains %s", ui.Quote(path), ui.Quote(needle)))
	return t.ensureContains(path, func(text string) bool {
		return strings.Contains(text, needle)
	})
}

// EnsureFileMatches fails unless the file at path matches re.
func (t *Tasks) EnsureFileMatches(path string, re *regexp.Regexp) error {
	t.reporter.Task(fmt.Sprintf("Confirm file %s\n  contains %s", ui.Quote(path), ui.Highlight(re.String())))
	return t.ensureContains(path, re.MatchString)
}

func (t *Tasks) ensureContains(path string, match func(string) bool) error {
	text, err := t.fs.ReadText(path)
	if err != nil {
		return report.Failure(t.reporter, "ensure_file_contains", err.Error(), err)
	}
	if !match(text) {
		return report.Failure(t.reporter, "ensure_file_contains", "File does not contain text!",
			fmt.Errorf("file %q does not contain text: %w", path, ErrCheckFailed))
	}
	t.reporter.Pass("Confirmed")
	return nil
}

// EmptyDir removes every entry inside dir, creating dir if it is missing.
// Home-relative, absolute, empty and working-directory paths are refused.
func (t *Tasks) EmptyDir(dir string) error {
	t.reporter.Task(fmt.Sprintf("Empty dir %s", ui.Quote(dir)))

	if isUnsafeDir(dir) {
		return report.Failure(t.reporter, "empty_dir",
			fmt.Sprintf("You cannot empty the dir %s because it's dangerous. "+
				`Empty "~", "/", "" and "./" directories manually if you need to.`, ui.Quote(dir)),
			fmt.Errorf("empty %q: %w", dir, ErrUnsafePath))
	}

	if err := t.fs.EnsureDir(dir); err != nil {
		return report.Failure(t.reporter, "empty_dir", err.Error(), err)
	}
	children, err := t.fs.ListChildren(dir)
	if err != nil {
		return report.Failure(t.reporter, "empty_dir", err.Error(), err)
	}
	for _, name := range children {
		if err := t.fs.RemoveAll(filepath.Join(dir, name)); err != nil {
			return report.Failure(t.reporter, "empty_dir", err.Error(), err)
		}
	}

	logging.Debug("emptied directory", logging.Path(dir), logging.Count(len(children)))
	t.reporter.Pass("Completed")
	return nil
}

func isUnsafeDir(dir string) bool {
	if strings.HasPrefix(dir, "~") || strings.HasPrefix(dir, "/") || filepath.IsAbs(dir) {
		return true
	}
	return filepath.Clean(dir) == "."
}
