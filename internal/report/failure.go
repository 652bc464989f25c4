package report

import (
	"github.com/klauern/scriptutils/internal/logging"
)

// Failure emits text as a failed task, records err in the structured log and
// returns err unchanged so callers can write `return report.Failure(...)`.
func Failure(r Reporter, op, text string, err error) error {
	logging.Error("task failed",
		logging.Operation(op),
		logging.Err(err),
	)
	OrNop(r).Fail(text)
	return err
}
