package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"lucai-go/pkg/log"
)

// CORS 根据允许列表构建跨域中间件。
// 列表非空时，不在列表中的 Origin 被直接拒绝（403），而不只是省略 CORS 响应头。
// 列表为空时允许所有来源（反射 Origin 并允许凭证）。这是一个与安全相关的默认值，生产环境应显式配置列表。
func CORS(allowOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowOrigins) > 0 {
		cfg.AllowOrigins = allowOrigins
	} else {
		log.Warnf("CORS 允许列表为空，所有来源均被允许")
		cfg.AllowOriginFunc = func(string) bool { return true }
	}
	return cors.New(cfg)
}
