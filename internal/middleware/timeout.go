package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout 给请求上下文加上截止时间，下游的数据库调用随之取消
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
