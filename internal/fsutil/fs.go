// Package fsutil wraps the filesystem used by scriptutils.
//
// FS exposes the small set of verbs the engines need on top of an afero.Fs,
// so production code runs against the OS while tests can use an in-memory
// filesystem. Errors from the underlying filesystem are wrapped, never
// swallowed, so errors.Is(err, fs.ErrNotExist) keeps working.
package fsutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"

	"github.com/spf13/afero"

	"github.com/klauern/scriptutils/internal/logging"
)

const dirPerm = 0o750

// FS is the filesystem collaborator shared by every engine.
type FS struct {
	fs afero.Fs
}

// New wraps an afero filesystem.
func New(fsys afero.Fs) *FS {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &FS{fs: fsys}
}

// OS returns an FS backed by the host filesystem.
func OS() *FS {
	return New(afero.NewOsFs())
}

// Afero returns the underlying afero filesystem.
func (f *FS) Afero() afero.Fs {
	return f.fs
}

// ReadText reads the file at path as text.
func (f *FS) ReadText(path string) (string, error) {
	info, err := f.fs.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("failed to read %q: %w", path, ErrNotAFile)
	}
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", path, err)
	}
	return string(data), nil
}

// WriteBytes creates or truncates path and writes data to it.
func (f *FS) WriteBytes(path string, data []byte) error {
	if err := afero.WriteFile(f.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}

// Exists reports whether a file or directory is present at path.
func (f *FS) Exists(path string) (bool, error) {
	_, err := f.fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %q: %w", path, err)
}

// IsDirectory reports whether path is an existing directory.
func (f *FS) IsDirectory(path string) (bool, error) {
	info, err := f.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	return info.IsDir(), nil
}

// ListChildren returns the sorted names of the entries in dir.
func (f *FS) ListChildren(dir string) ([]string, error) {
	d, err := f.fs.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %q: %w", dir, err)
	}
	defer func() { _ = d.Close() }()

	names, err := d.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %q: %w", dir, err)
	}
	sort.Strings(names)
	return names, nil
}

// EnsureDir creates path and any missing parents. Existing directories are fine.
func (f *FS) EnsureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	if err := f.fs.MkdirAll(path, dirPerm); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", path, err)
	}
	return nil
}

// CopyBytes copies src to dest, preserving the source permissions.
// dest is created or truncated.
func (f *FS) CopyBytes(src, dest string) error {
	srcInfo, err := f.fs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source %q: %w", src, err)
	}
	if srcInfo.IsDir() {
		return fmt.Errorf("source %q: %w", src, ErrNotAFile)
	}

	srcFile, err := f.fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source %q: %w", src, err)
	}
	defer func() { _ = srcFile.Close() }()

	dstFile, err := f.fs.OpenFile(dest, os.O_RDWR|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination %q: %w", dest, err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return fmt.Errorf("failed to copy content to %q: %w", dest, err)
	}
	if err := dstFile.Close(); err != nil {
		return fmt.Errorf("failed to close destination %q: %w", dest, err)
	}

	logging.Debug("copied bytes", logging.Src(src), logging.Dest(dest))
	return nil
}

// RemoveFile removes the file at path. Directories are rejected with ErrNotAFile.
func (f *FS) RemoveFile(path string) error {
	info, err := f.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("path %q %w", path, ErrNotAFile)
	}
	if err := f.fs.Remove(path); err != nil {
		return fmt.Errorf("failed to remove %q: %w", path, err)
	}
	return nil
}

// RemoveAll removes path and everything below it.
func (f *FS) RemoveAll(path string) error {
	if err := f.fs.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove %q: %w", path, err)
	}
	return nil
}
