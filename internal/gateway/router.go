package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"lucai-go/internal/middleware"
)

// NewRouter 创建网关的 Gin 引擎。
func NewRouter(handler *Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(), middleware.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/api/chat", handler.Chat)
	r.GET("/ws/chat", handler.WebSocket)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not-found"})
	})
	return r
}
