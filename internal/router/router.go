// Package router 组装后端 API 的 Gin 引擎与路由表。
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"lucai-go/internal/config"
	"lucai-go/internal/handler"
	"lucai-go/internal/middleware"
	"lucai-go/internal/service"
)

// New 创建后端的 Gin 引擎。所有依赖由调用方构造后注入。
func New(cfg config.ServerConfig, userService service.UserService, chatService service.ChatService, startedAt time.Time) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Recovery(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.AllowOrigins()),
	)

	healthHandler := handler.NewHealthHandler(startedAt)
	userHandler := handler.NewUserHandler(userService)
	chatHandler := handler.NewChatHandler(chatService)

	r.GET("/healthz", healthHandler.Healthz)

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/status", healthHandler.Status)

		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
		}

		api.POST("/chat", chatHandler.Ask)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not-found"})
	})

	return r
}
