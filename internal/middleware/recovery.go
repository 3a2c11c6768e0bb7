package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"lucai-go/pkg/log"
)

// Recovery 捕获处理器中的 panic，记录原始错误，只向客户端返回不透明的 500。
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Errorw("unexpected panic in handler",
			"panic", fmt.Sprint(recovered),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"requestID", c.GetString(RequestIDKey),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal-error"})
	})
}
