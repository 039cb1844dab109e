package dto

import "solarbookers.com/relay/internal/model"

// ChatRequest is one chat turn from the demo UI. Message may be empty
// or the designated initialize marker to elicit the opening line. One
// of assistantId or companySlug must be set; threadId is omitted on the
// first turn and echoed back by the client afterwards.
type ChatRequest struct {
	Message     string `json:"message"`
	AssistantID string `json:"assistantId,omitempty"`
	CompanySlug string `json:"companySlug,omitempty"`
	ThreadID    string `json:"threadId,omitempty"`
}

type ChatResponse struct {
	Reply    string `json:"reply"`
	ThreadID string `json:"threadId"`
	RunID    string `json:"runId,omitempty"`
}

func ToChatResponse(reply *model.Reply) ChatResponse {
	return ChatResponse{
		Reply:    reply.Text,
		ThreadID: reply.ThreadID,
		RunID:    reply.RunID,
	}
}

// ChatErrorResponse keeps the UI talking on failure: reply carries a
// generic apology the chat bubble can render, threadId lets the client
// retry on the same conversation.
type ChatErrorResponse struct {
	Error    string `json:"error"`
	Reply    string `json:"reply"`
	ThreadID string `json:"threadId,omitempty"`
	RunID    string `json:"runId,omitempty"`
}
