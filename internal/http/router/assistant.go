package router

import (
	"github.com/gin-gonic/gin"

	"solarbookers.com/relay/internal/http/handler"
)

// AssistantRouter sets up the provisioning routes
// - POST   /assistants     provisions a company demo assistant
// - GET    /assistants     looks up the assistant for ?company=<slug>
// - DELETE /assistants     removes the slug mapping for ?company=<slug>
// - GET    /assistants/all lists every registered slug
func AssistantRouter(rg *gin.RouterGroup, h *handler.AssistantHandler) {
	rg.POST("", h.Create)
	rg.GET("", h.Lookup)
	rg.DELETE("", h.Delete)
	rg.GET("/all", h.List)
}
