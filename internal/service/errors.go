package service

import (
	"errors"
	"fmt"

	"solarbookers.com/relay/internal/model"
)

var (
	// ErrCompanyNotFound is the normal negative result for an unknown
	// slug. Distinct from store connectivity failures, which surface as
	// store.ErrUnavailable and must be retried, not treated as absent.
	ErrCompanyNotFound = errors.New("no demo found for this company")

	// ErrMissingAssistant is returned when a chat turn names neither an
	// assistant ID nor a company slug to resolve one from.
	ErrMissingAssistant = errors.New("assistant id or company slug required")

	// ErrRunFailed marks a run that reached a terminal failure status
	// (failed, cancelled, expired).
	ErrRunFailed = errors.New("assistant run failed")

	// ErrRunTimedOut marks a run that did not reach a terminal status
	// within the polling budget.
	ErrRunTimedOut = errors.New("assistant run did not complete in time")
)

// RunError carries the thread/run identifiers and last known status of
// a chat turn that could not produce a reply, so the caller can retry
// on the same thread. Unwraps to ErrRunFailed, ErrRunTimedOut, or the
// upstream error.
type RunError struct {
	ThreadID string
	RunID    string
	Status   model.RunStatus
	Err      error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%v (thread=%s run=%s status=%s)", e.Err, e.ThreadID, e.RunID, e.Status)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
