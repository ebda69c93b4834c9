package observability

import (
	"go-gamepedia/internal/logging"

	"github.com/gin-gonic/gin"
)

// LoggerContextMiddleware 将 trace_id / user_id 注入 logger，并放入请求 context
// handler 通过 logging.FromContext(c.Request.Context()) 直接获取带字段 logger
func LoggerContextMiddleware(base *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if v, ok := c.Get(TraceIDKey); ok {
			if s, ok2 := v.(string); ok2 && s != "" {
				ctx = logging.WithTraceID(ctx, s)
			}
		}
		if uid := c.GetInt64("user_id"); uid > 0 {
			ctx = logging.WithUserID(ctx, uid)
		}
		ctx = logging.IntoContext(ctx, base.WithContext(ctx))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
