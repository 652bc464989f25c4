package sync

import (
	"errors"
	"fmt"

	"github.com/klauern/scriptutils/internal/fsutil"
)

var (
	// ErrDestinationExists is returned by CopyFile with DecisionFail when the
	// destination already exists.
	ErrDestinationExists = fsutil.ErrDestinationExists

	// ErrDestinationTreeConflict is matched by every *TreeConflictError.
	ErrDestinationTreeConflict = errors.New("destination tree has a conflicting file")

	// ErrInvalidAnswer is returned when the overwrite question is answered
	// with something other than y or n.
	ErrInvalidAnswer = errors.New("did not answer y or n")

	// ErrInvalidDecision is returned for decision values outside the known set.
	ErrInvalidDecision = errors.New("invalid conflict decision")

	// ErrCopyIntoSelf is returned when a directory would be copied into itself.
	ErrCopyIntoSelf = errors.New("cannot copy a directory into itself")
)

// TreeConflictError names the first destination file that collided during
// CopyDir. Files copied before the collision are left in place.
type TreeConflictError struct {
	// Path is the destination path that already existed.
	Path string
	// Source is the source file that would have been copied there.
	Source string
}

func (e *TreeConflictError) Error() string {
	return fmt.Sprintf("%s: %s already exists (copying %s)", ErrDestinationTreeConflict, e.Path, e.Source)
}

// Unwrap allows errors.Is(err, ErrDestinationTreeConflict).
func (e *TreeConflictError) Unwrap() error {
	return ErrDestinationTreeConflict
}
