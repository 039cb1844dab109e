package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"solarbookers.com/relay/common/backoff"
	"solarbookers.com/relay/common/logger"
	"solarbookers.com/relay/internal/assistant"
	"solarbookers.com/relay/internal/model"
)

// InitializeMessage is the distinguished message a client sends to
// elicit the assistant's scripted opening line. No user turn is
// appended to the thread; a run is simply triggered on the fresh
// thread. An empty message is treated the same way.
const InitializeMessage = "START_CONVERSATION"

// ChatRequest is one chat turn. Exactly one of AssistantID or
// CompanySlug must be set; ThreadID is empty on the first turn of a
// session and carried forward by the caller afterwards.
type ChatRequest struct {
	Message     string
	AssistantID string
	CompanySlug string
	ThreadID    string
}

// RelayService forwards chat turns to the upstream assistant and waits
// for the asynchronous run to finish.
type RelayService interface {
	Send(ctx context.Context, req ChatRequest) (*model.Reply, error)
}

type relayService struct {
	api       assistant.Client
	directory DirectoryService
	poll      backoff.Policy
}

func NewRelayService(api assistant.Client, directory DirectoryService, poll backoff.Policy) RelayService {
	return &relayService{
		api:       api,
		directory: directory,
		poll:      poll,
	}
}

// Send drives one turn through the full lifecycle: resolve assistant,
// ensure thread, append message (unless initializing), create run, poll
// to a terminal status, extract the newest reply. Every error carries
// the threadID so the caller can retry on the same thread; a reply is
// never fabricated on error.
func (s *relayService) Send(ctx context.Context, req ChatRequest) (*model.Reply, error) {
	sc := logger.StartSpan(ctx, "relay.chat_turn")
	defer sc.End()
	ctx = logger.WithLogFields(sc.Context(), logger.LogFields{Component: "relay.chat"})

	assistantID, err := s.resolveAssistant(ctx, req)
	if err != nil {
		sc.RecordError(err)
		return nil, err
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{AssistantID: logger.Ptr(assistantID)})

	threadID := req.ThreadID
	if threadID == "" {
		threadID, err = s.api.CreateThread(ctx)
		if err != nil {
			sc.RecordError(err)
			return nil, err
		}
		slog.DebugContext(ctx, "thread created", "thread_id", threadID)
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{ThreadID: logger.Ptr(threadID)})

	if !isInitialize(req.Message) {
		if err := s.api.AddUserMessage(ctx, threadID, req.Message); err != nil {
			sc.RecordError(err)
			return nil, fmt.Errorf("thread %s: %w", threadID, err)
		}
	}

	run, err := s.api.CreateRun(ctx, threadID, assistantID)
	if err != nil {
		sc.RecordError(err)
		return nil, fmt.Errorf("thread %s: %w", threadID, err)
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{RunID: logger.Ptr(run.ID)})

	if err := s.awaitRun(ctx, run); err != nil {
		sc.RecordError(err)
		return nil, err
	}

	text, err := s.api.LatestAssistantReply(ctx, threadID, run.CreatedAt)
	if err != nil {
		sc.RecordError(err)
		return nil, fmt.Errorf("thread %s: %w", threadID, err)
	}

	slog.InfoContext(ctx, "chat turn completed",
		"initialize", isInitialize(req.Message),
		"reply_preview", logger.Truncate(text, 80),
	)

	return &model.Reply{
		Text:     text,
		ThreadID: threadID,
		RunID:    run.ID,
	}, nil
}

func (s *relayService) resolveAssistant(ctx context.Context, req ChatRequest) (string, error) {
	if req.AssistantID != "" {
		return req.AssistantID, nil
	}
	if req.CompanySlug == "" {
		return "", ErrMissingAssistant
	}

	company, err := s.directory.Resolve(ctx, req.CompanySlug)
	if err != nil {
		return "", err
	}
	return company.AssistantID, nil
}

// awaitRun polls the run to a terminal status under the backoff policy.
// The poll waits are the only suspension points of a chat turn, and the
// policy's budget is the hard upper bound on how long a hung remote run
// can block the request.
func (s *relayService) awaitRun(ctx context.Context, run *model.Run) error {
	start := time.Now()
	attempts := 0
	last := run.Status

	err := backoff.Poll(ctx, s.poll, func(ctx context.Context) (bool, error) {
		attempts++
		current, err := s.api.GetRun(ctx, run.ThreadID, run.ID)
		if err != nil {
			return false, &RunError{ThreadID: run.ThreadID, RunID: run.ID, Status: last, Err: err}
		}
		last = current.Status

		switch current.Status {
		case model.RunStatusCompleted:
			return true, nil
		case model.RunStatusQueued, model.RunStatusInProgress, "cancelling":
			return false, nil
		default:
			// failed, cancelled, expired — plus statuses this relay
			// never provokes (requires_action, incomplete), which are
			// equally unrecoverable here.
			slog.WarnContext(ctx, "run ended without reply",
				"status", current.Status,
				"last_error", current.LastError,
			)
			return false, &RunError{ThreadID: run.ThreadID, RunID: run.ID, Status: current.Status, Err: ErrRunFailed}
		}
	})

	if errors.Is(err, backoff.ErrBudgetExhausted) || errors.Is(err, context.DeadlineExceeded) {
		slog.WarnContext(ctx, "run polling budget exhausted",
			"attempts", attempts,
			"elapsed_ms", time.Since(start).Milliseconds(),
			"last_status", last,
		)
		return &RunError{ThreadID: run.ThreadID, RunID: run.ID, Status: last, Err: ErrRunTimedOut}
	}
	if errors.Is(err, context.Canceled) {
		// Caller disconnected mid-poll. The run keeps going upstream,
		// so hand back the identifiers like every other exit path.
		return &RunError{ThreadID: run.ThreadID, RunID: run.ID, Status: last, Err: err}
	}
	if err != nil {
		return err
	}

	slog.DebugContext(ctx, "run completed",
		"attempts", attempts,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

func isInitialize(message string) bool {
	return message == "" || message == InitializeMessage
}
