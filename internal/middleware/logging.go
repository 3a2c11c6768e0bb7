// Package middleware 存放 Gin 框架的中间件。
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"lucai-go/pkg/log"
)

// RequestLogger 是一个 Gin 中间件，记录每个请求的访问日志。
// 只记录请求与响应的大小，不记录内容：聊天问题与回答不会落到任何存储中，包括日志。
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		fields := []interface{}{
			"statusCode", c.Writer.Status(),
			"latency", time.Since(startTime).String(),
			"clientIP", c.ClientIP(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"requestID", c.GetString(RequestIDKey),
			"requestBytes", c.Request.ContentLength,
			"responseBytes", c.Writer.Size(),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}
		log.Infow("HTTP Request Log", fields...)
	}
}
