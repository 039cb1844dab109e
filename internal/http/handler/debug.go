package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"solarbookers.com/relay/internal/assistant"
	"solarbookers.com/relay/internal/service"
	"solarbookers.com/relay/internal/store"
)

// DebugInfo is the static environment summary the debug endpoints
// report alongside live checks. Secrets themselves never leave the
// process, only whether they are present.
type DebugInfo struct {
	Env              string
	DemoBaseURL      string
	OpenAIConfigured bool
	RedisConfigured  bool
}

// DebugHandler powers the integration-debugging endpoints used when a
// demo misbehaves in a fresh deployment: is config present, is the
// store reachable, does the upstream API accept us, and where exactly
// does a chat turn break.
type DebugHandler struct {
	companies store.CompanyStore
	api       assistant.Client
	info      DebugInfo
}

func NewDebugHandler(companies store.CompanyStore, api assistant.Client, info DebugInfo) *DebugHandler {
	return &DebugHandler{
		companies: companies,
		api:       api,
		info:      info,
	}
}

type debugCheck struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Detail any    `json:"detail,omitempty"`
}

func okCheck(detail any) debugCheck {
	return debugCheck{Status: "success", Detail: detail}
}

func failedCheck(err error) debugCheck {
	return debugCheck{Status: "failed", Error: err.Error()}
}

// Status runs the infrastructure checks: config presence, directory
// store connectivity, and a thread-creation round trip upstream.
func (h *DebugHandler) Status(c *gin.Context) {
	ctx := c.Request.Context()
	checks := gin.H{}

	checks["openai_key"] = debugCheck{
		Status: boolStatus(h.info.OpenAIConfigured),
	}
	checks["redis_url"] = debugCheck{
		Status: boolStatus(h.info.RedisConfigured),
	}

	if err := h.companies.Ping(ctx); err != nil {
		checks["directory"] = failedCheck(err)
	} else if slugs, err := h.companies.ListSlugs(ctx); err != nil {
		checks["directory"] = failedCheck(err)
	} else {
		checks["directory"] = okCheck(gin.H{"companies": len(slugs)})
	}

	if threadID, err := h.api.CreateThread(ctx); err != nil {
		checks["thread_creation"] = failedCheck(err)
	} else {
		checks["thread_creation"] = okCheck(gin.H{"threadId": threadID})
	}

	c.JSON(http.StatusOK, gin.H{
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.info.Env,
		"demoBaseUrl": h.info.DemoBaseURL,
		"requestHost": c.Request.Host,
		"checks":      checks,
	})
}

type debugTraceRequest struct {
	AssistantID string `json:"assistantId" binding:"required"`
	Message     string `json:"message"`
	ThreadID    string `json:"threadId,omitempty"`
}

type debugStep struct {
	Step   string `json:"step"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Detail any    `json:"detail,omitempty"`
}

// Trace walks one chat turn step by step and reports where it breaks.
// Unlike the real chat endpoint it polls the run status exactly once,
// so the response comes back immediately.
func (h *DebugHandler) Trace(c *gin.Context) {
	ctx := c.Request.Context()

	var req debugTraceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assistantId is required"})
		return
	}

	var steps []debugStep
	fail := func(step string, err error) {
		steps = append(steps, debugStep{Step: step, Status: "failed", Error: err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"steps": steps})
	}
	pass := func(step string, detail any) {
		steps = append(steps, debugStep{Step: step, Status: "success", Detail: detail})
	}

	threadID := req.ThreadID
	if threadID == "" {
		created, err := h.api.CreateThread(ctx)
		if err != nil {
			fail("thread_creation", err)
			return
		}
		threadID = created
		pass("thread_creation", gin.H{"threadId": threadID})
	} else {
		pass("thread_reuse", gin.H{"threadId": threadID})
	}

	if req.Message != "" && req.Message != service.InitializeMessage {
		if err := h.api.AddUserMessage(ctx, threadID, req.Message); err != nil {
			fail("message_added", err)
			return
		}
		pass("message_added", nil)
	} else {
		pass("message_skipped", gin.H{"reason": "initialize turn"})
	}

	run, err := h.api.CreateRun(ctx, threadID, req.AssistantID)
	if err != nil {
		fail("run_created", err)
		return
	}
	pass("run_created", gin.H{"runId": run.ID})

	current, err := h.api.GetRun(ctx, threadID, run.ID)
	if err != nil {
		fail("run_status_check", err)
		return
	}
	pass("run_status_check", gin.H{"status": current.Status})

	c.JSON(http.StatusOK, gin.H{"steps": steps, "threadId": threadID})
}

func boolStatus(ok bool) string {
	if ok {
		return "configured"
	}
	return "missing"
}
