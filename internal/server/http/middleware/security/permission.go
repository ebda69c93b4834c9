package security

import (
	"go-gamepedia/internal/domain/model"
	"go-gamepedia/internal/metrics"
	"go-gamepedia/internal/security/rbac"
	"go-gamepedia/internal/service"
	"go-gamepedia/internal/util/retcode"
	"go-gamepedia/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequirePerm 权限网关：传入的权限码满足任意一个即放行（OR 语义）
// 权限集合每次请求重新解析（短 TTL 缓存兜底），授权变更无需重新登录
// 认证失败 AUTH_ERROR（重登可解），鉴权失败 FORBIDDEN（重试无意义），必须区分
func RequirePerm(permSvc *service.PermissionService, codes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetInt64("user_id")
		if uid <= 0 {
			metrics.AuthRejectTotal.WithLabelValues("not_authenticated").Inc()
			response.Error(c, retcode.AUTH_ERROR, "unauthorized")
			c.Abort()
			return
		}
		if uid == model.SuperAdminID { // 超级管理员越过一切权限校验
			c.Next()
			return
		}
		if !permSvc.HasAny(c.Request.Context(), uid, codes...) {
			metrics.AuthRejectTotal.WithLabelValues("not_authorized").Inc()
			response.Error(c, retcode.FORBIDDEN, "forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole 角色网关：当前角色属于给定枚举之一即放行；未知 code 落到 RoleUnknown 永不放行
func RequireRole(kinds ...rbac.RoleKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetInt64("user_id")
		if uid <= 0 {
			metrics.AuthRejectTotal.WithLabelValues("not_authenticated").Inc()
			response.Error(c, retcode.AUTH_ERROR, "unauthorized")
			c.Abort()
			return
		}
		if uid == model.SuperAdminID {
			c.Next()
			return
		}
		kind := rbac.KindOf(c.GetString("role_code"))
		for _, k := range kinds {
			if kind == k {
				c.Next()
				return
			}
		}
		metrics.AuthRejectTotal.WithLabelValues("role_not_permitted").Inc()
		response.Error(c, retcode.FORBIDDEN, "forbidden")
		c.Abort()
	}
}
