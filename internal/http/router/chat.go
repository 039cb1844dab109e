package router

import (
	"github.com/gin-gonic/gin"

	"solarbookers.com/relay/internal/http/handler"
)

func ChatRouter(rg *gin.RouterGroup, h *handler.ChatHandler) {
	rg.POST("", h.Send)
}
