package sync

import (
	"fmt"
	"strings"
)

// Decision defines how CopyFile handles a destination that already exists.
type Decision string

const (
	// DecisionFail refuses to touch an existing destination. It is the default.
	DecisionFail Decision = "fail"

	// DecisionSkip leaves an existing destination alone and reports success.
	DecisionSkip Decision = "skip"

	// DecisionOverwrite replaces an existing destination unconditionally.
	DecisionOverwrite Decision = "overwrite"

	// DecisionAsk shows a diff and asks before replacing a differing destination.
	DecisionAsk Decision = "ask"
)

// IsValid returns true if the decision is recognized.
func (d Decision) IsValid() bool {
	switch d {
	case DecisionFail, DecisionSkip, DecisionOverwrite, DecisionAsk:
		return true
	default:
		return false
	}
}

// AllDecisions returns all supported decisions.
func AllDecisions() []Decision {
	return []Decision{DecisionFail, DecisionSkip, DecisionOverwrite, DecisionAsk}
}

// String returns the string representation of the decision.
func (d Decision) String() string {
	return string(d)
}

// Description returns a human-readable description of the decision.
func (d Decision) Description() string {
	switch d {
	case DecisionFail:
		return "Fail if the destination exists"
	case DecisionSkip:
		return "Leave an existing destination alone"
	case DecisionOverwrite:
		return "Replace an existing destination unconditionally"
	case DecisionAsk:
		return "Show a diff and ask before replacing a differing destination"
	default:
		return "Unknown decision"
	}
}

// ParseDecision converts user input into a Decision. The empty string
// yields DecisionFail.
func ParseDecision(s string) (Decision, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DecisionFail, nil
	}
	d := Decision(s)
	if !d.IsValid() {
		return "", fmt.Errorf("%w: %q (valid: fail, skip, overwrite, ask)", ErrInvalidDecision, s)
	}
	return d, nil
}
