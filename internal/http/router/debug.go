package router

import (
	"github.com/gin-gonic/gin"

	"solarbookers.com/relay/internal/http/handler"
)

// DebugRouter sets up the integration-debugging routes
// - GET  /debug runs the infrastructure checks
// - POST /debug traces a single chat turn step by step
func DebugRouter(rg *gin.RouterGroup, h *handler.DebugHandler) {
	rg.GET("", h.Status)
	rg.POST("", h.Trace)
}
