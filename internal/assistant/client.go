// Package assistant wraps the upstream assistants API (personas,
// conversation threads, runs). The upstream service is the system of
// record for threads and messages; this package only moves data and
// never caches conversation state.
package assistant

import (
	"context"
	"errors"
	"time"

	"solarbookers.com/relay/internal/model"
)

var (
	// ErrNonTextReply is returned when the newest assistant message
	// carries no text-typed content block (e.g. an image or file).
	// Callers must not misinterpret structured content as plain text.
	ErrNonTextReply = errors.New("assistant reply is not text")

	// ErrNoReply is returned when a completed run produced no assistant
	// message newer than the run itself.
	ErrNoReply = errors.New("no assistant reply found after run")
)

// Config holds upstream API client configuration.
type Config struct {
	APIKey  string
	BaseURL string // Optional: custom API endpoint
	Model   string // Model assistants are created with
}

// CreateAssistantRequest describes a persona to provision.
type CreateAssistantRequest struct {
	Name         string
	Instructions string
}

// Client is the narrow surface of the upstream API the relay depends
// on. Handlers and services consume this interface so tests can swap in
// function-field mocks.
type Client interface {
	// CreateAssistant provisions a persona and returns its opaque ID.
	CreateAssistant(ctx context.Context, req CreateAssistantRequest) (string, error)
	// DeleteAssistant removes a previously provisioned persona.
	DeleteAssistant(ctx context.Context, assistantID string) error
	// CreateThread starts a new conversation container and returns its ID.
	CreateThread(ctx context.Context) (string, error)
	// AddUserMessage appends a user turn to the thread.
	AddUserMessage(ctx context.Context, threadID, text string) error
	// CreateRun asks the assistant to compute its next reply on the thread.
	CreateRun(ctx context.Context, threadID, assistantID string) (*model.Run, error)
	// GetRun fetches the current status of an in-flight run.
	GetRun(ctx context.Context, threadID, runID string) (*model.Run, error)
	// LatestAssistantReply returns the text of the newest
	// assistant-authored message created at or after the given time.
	// The time guard prevents returning a stale reply from an earlier
	// turn when a run completes without producing output.
	LatestAssistantReply(ctx context.Context, threadID string, after time.Time) (string, error)
}
