package sync

// Outcome describes what CopyFile did to the destination.
type Outcome string

const (
	// OutcomeCreated indicates the destination did not exist and was written.
	OutcomeCreated Outcome = "created"

	// OutcomeOverwritten indicates an existing destination was replaced.
	OutcomeOverwritten Outcome = "overwritten"

	// OutcomeSkipped indicates an existing destination was left alone by choice.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeUnchanged indicates the destination already matched the source.
	OutcomeUnchanged Outcome = "unchanged"
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	return string(o)
}

// Wrote reports whether the destination bytes were written.
func (o Outcome) Wrote() bool {
	return o == OutcomeCreated || o == OutcomeOverwritten
}
