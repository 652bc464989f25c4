package patch

import (
	"errors"
	"fmt"
)

var (
	// ErrReplacementCountMismatch is returned when the number of matches
	// differs from the expected count. Nothing is written in that case.
	ErrReplacementCountMismatch = errors.New("replacement count mismatch")

	// ErrInvalidPattern is returned when a find pattern is missing or does not compile.
	ErrInvalidPattern = errors.New("invalid find pattern")

	// ErrInvalidCount is returned when the expected match count is negative.
	ErrInvalidCount = errors.New("invalid expected count")
)

// CountMismatchError reports how many matches were expected and found.
type CountMismatchError struct {
	Path     string
	Expected int
	Actual   int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %d replacement(s) but got %d", e.Path, e.Expected, e.Actual)
}

// Unwrap lets errors.Is match ErrReplacementCountMismatch.
func (e *CountMismatchError) Unwrap() error {
	return ErrReplacementCountMismatch
}
