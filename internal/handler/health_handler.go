package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler 提供存活检查与进程状态接口，不检查任何依赖。
type HealthHandler struct {
	startedAt time.Time
	now       func() time.Time
}

// NewHealthHandler 创建一个新的 HealthHandler，startedAt 为进程启动时间。
func NewHealthHandler(startedAt time.Time) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, now: time.Now}
}

// Healthz 始终返回固定的 {"status":"ok"}。
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Status 返回进程运行时长（秒）与当前时间戳（Unix 毫秒）。
func (h *HealthHandler) Status(c *gin.Context) {
	now := h.now()
	c.JSON(http.StatusOK, gin.H{
		"uptime":    now.Sub(h.startedAt).Seconds(),
		"timestamp": now.UnixMilli(),
	})
}
