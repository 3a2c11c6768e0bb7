// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"lucai-go/internal/service"
	"lucai-go/pkg/askservice"
	"lucai-go/pkg/log"
)

// respondError 是错误到 HTTP 响应的唯一转换点。
// 内部错误只记录日志，客户端始终只看到 internal-error。
func respondError(c *gin.Context, err error) {
	var (
		validationErr *service.ValidationError
		notFoundErr   *service.NotFoundError
		statusErr     *askservice.StatusError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Message})
	case errors.As(err, &statusErr):
		log.Warnf("[chat] ask-service returned status %d", statusErr.StatusCode)
		c.JSON(statusErr.StatusCode, gin.H{"error": "ask-service-error", "detail": statusErr.Detail})
	case errors.Is(err, askservice.ErrUnreachable):
		log.Error("[chat] ask service request failed", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "ask-service-unreachable"})
	default:
		_ = c.Error(err)
		log.Error("[backend] unexpected error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal-error"})
	}
}
