package security

import (
	"strings"

	"go-gamepedia/internal/logging"
	"go-gamepedia/internal/metrics"
	"go-gamepedia/internal/security/jwt"
	"go-gamepedia/internal/service"
	"go-gamepedia/internal/util/retcode"
	"go-gamepedia/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Auth 认证网关：Bearer token -> 校验签名与过期 -> 校验 JTI 未注销
// 通过后把 user_id / role_code / jti 放入上下文；所有失败对外一律 AUTH_ERROR，
// 仅 JTI 已注销用 ACCESS_TOKEN_TIMEOUT 提示前端重新登录。
func Auth(j *jwt.Manager, authSvc *service.AuthService, lg *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			metrics.AuthRejectTotal.WithLabelValues("not_authenticated").Inc()
			response.Error(c, retcode.AUTH_ERROR, "missing token")
			c.Abort()
			return
		}
		token := strings.TrimSpace(header[7:])
		claims, err := j.Verify(token)
		if err != nil {
			// 过期/篡改/格式错误不对外区分
			metrics.AuthRejectTotal.WithLabelValues("not_authenticated").Inc()
			lg.Debug("token verify failed", zap.Error(err))
			response.Error(c, retcode.AUTH_ERROR, "invalid token")
			c.Abort()
			return
		}
		if authSvc != nil && !authSvc.JTIAlive(c.Request.Context(), claims.JTI) {
			metrics.AuthRejectTotal.WithLabelValues("not_authenticated").Inc()
			response.Error(c, retcode.ACCESS_TOKEN_TIMEOUT, "token revoked")
			c.Abort()
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("role_code", claims.RoleCode)
		c.Set("jti", claims.JTI)
		c.Next()
	}
}
