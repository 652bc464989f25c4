package fsutil

import "errors"

var (
	// ErrDestinationExists is returned when a write-once or fail-on-conflict
	// operation finds something already at the destination.
	ErrDestinationExists = errors.New("dest path exists")

	// ErrNotAFile is returned when a directory is found where a file was expected.
	ErrNotAFile = errors.New("exists but is not a file")

	// ErrUnsafePath is returned by EmptyDir for home, root, absolute and
	// working-directory paths.
	ErrUnsafePath = errors.New("refusing to empty an unsafe directory")

	// ErrCheckFailed is returned when an Ensure* assertion does not hold.
	ErrCheckFailed = errors.New("check failed")
)
