package model

import "time"

// RunStatus mirrors the upstream run lifecycle. Runs are ephemeral:
// polled to a terminal status and discarded, never persisted locally.
type RunStatus string

const (
	RunStatusQueued     RunStatus = "queued"
	RunStatusInProgress RunStatus = "in_progress"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusFailed     RunStatus = "failed"
	RunStatusCancelled  RunStatus = "cancelled"
	RunStatusExpired    RunStatus = "expired"
)

// Terminal reports whether the run has finished, successfully or not.
func (s RunStatus) Terminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusFailed, RunStatusCancelled, RunStatusExpired:
		return true
	}
	return false
}

// Run is the handle for one in-flight assistant computation on a thread.
type Run struct {
	ID        string
	ThreadID  string
	Status    RunStatus
	CreatedAt time.Time
	LastError string
}

// Reply is the outcome of a successful chat turn. ThreadID must be
// carried forward by the caller; the relay holds no session state
// between requests.
type Reply struct {
	Text     string
	ThreadID string
	RunID    string
}
