package fsutil

import "fmt"

// IsEmpty reports whether nothing has been placed at path yet: either no
// entry exists, or a directory with no children exists. A regular file at
// path is never empty, whatever its size.
func (f *FS) IsEmpty(path string) (bool, error) {
	exists, err := f.Exists(path)
	if err != nil {
		return false, err
	}
	if !exists {
		return true, nil
	}

	isDir, err := f.IsDirectory(path)
	if err != nil {
		return false, err
	}
	if !isDir {
		return false, nil
	}

	children, err := f.ListChildren(path)
	if err != nil {
		return false, err
	}
	return len(children) == 0, nil
}

// FileExists reports whether a regular file exists at path. A directory at
// path yields ErrNotAFile.
func (f *FS) FileExists(path string) (bool, error) {
	exists, err := f.Exists(path)
	if err != nil || !exists {
		return false, err
	}
	isDir, err := f.IsDirectory(path)
	if err != nil {
		return false, err
	}
	if isDir {
		return false, fmt.Errorf("path %q %w", path, ErrNotAFile)
	}
	return true, nil
}
