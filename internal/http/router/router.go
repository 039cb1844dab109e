package router

import (
	"github.com/gin-gonic/gin"

	"solarbookers.com/relay/internal/assistant"
	"solarbookers.com/relay/internal/http/handler"
	"solarbookers.com/relay/internal/service"
	"solarbookers.com/relay/internal/store"
)

type RouterConfig struct {
	Env              string
	DemoBaseURL      string
	OpenAIConfigured bool
	RedisConfigured  bool
}

func SetupRoutes(router *gin.Engine, services *service.Services, stores *store.Stores, api assistant.Client, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	assistantHandler := handler.NewAssistantHandler(services.Demo(), services.Directory())
	AssistantRouter(router.Group("/assistants"), assistantHandler)

	chatHandler := handler.NewChatHandler(services.Relay())
	ChatRouter(router.Group("/chat"), chatHandler)

	debugHandler := handler.NewDebugHandler(stores.Companies(), api, handler.DebugInfo{
		Env:              cfg.Env,
		DemoBaseURL:      cfg.DemoBaseURL,
		OpenAIConfigured: cfg.OpenAIConfigured,
		RedisConfigured:  cfg.RedisConfigured,
	})
	DebugRouter(router.Group("/debug"), debugHandler)
}
