package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"solarbookers.com/relay/internal/assistant"
	"solarbookers.com/relay/internal/http/dto"
	"solarbookers.com/relay/internal/service"
	"solarbookers.com/relay/internal/store"
)

// fallbackReply is what the chat bubble shows when a turn fails. The
// distinguishing error kind goes to the logs, not the prospect.
const fallbackReply = "Sorry, I'm having a little trouble on my end. Give me a moment and try again?"

type ChatHandler struct {
	relay service.RelayService
}

func NewChatHandler(relay service.RelayService) *ChatHandler {
	return &ChatHandler{relay: relay}
}

// Send relays one chat turn and blocks until the assistant's reply is
// ready or the polling budget runs out.
func (h *ChatHandler) Send(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.AssistantID == "" && req.CompanySlug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assistantId or companySlug is required"})
		return
	}

	reply, err := h.relay.Send(ctx, service.ChatRequest{
		Message:     req.Message,
		AssistantID: req.AssistantID,
		CompanySlug: req.CompanySlug,
		ThreadID:    req.ThreadID,
	})
	if err != nil {
		h.respondError(c, req, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToChatResponse(reply))
}

func (h *ChatHandler) respondError(c *gin.Context, req dto.ChatRequest, err error) {
	ctx := c.Request.Context()

	resp := dto.ChatErrorResponse{
		Reply:    fallbackReply,
		ThreadID: req.ThreadID,
	}

	var runErr *service.RunError
	if errors.As(err, &runErr) {
		// Echo the identifiers back so the client can retry on the
		// same thread.
		resp.ThreadID = runErr.ThreadID
		resp.RunID = runErr.RunID
	}

	switch {
	case errors.Is(err, service.ErrCompanyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no assistant found for this company"})
	case errors.Is(err, service.ErrMissingAssistant):
		c.JSON(http.StatusBadRequest, gin.H{"error": "assistantId or companySlug is required"})
	case errors.Is(err, service.ErrRunTimedOut):
		slog.ErrorContext(ctx, "chat turn timed out", "error", err)
		resp.Error = "assistant did not reply in time"
		c.JSON(http.StatusGatewayTimeout, resp)
	case errors.Is(err, service.ErrRunFailed):
		slog.ErrorContext(ctx, "chat turn failed", "error", err)
		resp.Error = "assistant run failed"
		c.JSON(http.StatusBadGateway, resp)
	case errors.Is(err, assistant.ErrNonTextReply):
		slog.ErrorContext(ctx, "chat turn produced non-text content", "error", err)
		resp.Error = "assistant reply was not text"
		c.JSON(http.StatusBadGateway, resp)
	case errors.Is(err, store.ErrUnavailable):
		slog.ErrorContext(ctx, "directory store unavailable during chat", "error", err)
		resp.Error = "directory store unavailable"
		c.JSON(http.StatusServiceUnavailable, resp)
	default:
		slog.ErrorContext(ctx, "chat turn error", "error", err)
		resp.Error = "failed to send message"
		c.JSON(http.StatusInternalServerError, resp)
	}
}
