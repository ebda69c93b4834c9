package http

import (
	"context"
	"time"

	"go-gamepedia/internal/config"
	"go-gamepedia/internal/discovery/etcd"
	"go-gamepedia/internal/logging"
	"go-gamepedia/internal/mq/kafka"
	redisrepo "go-gamepedia/internal/repository/redis"
	"go-gamepedia/internal/security/jwt"
	"go-gamepedia/internal/security/rbac"
	handlerset "go-gamepedia/internal/server/http/handler"
	adm "go-gamepedia/internal/server/http/handler/admin"
	debugh "go-gamepedia/internal/server/http/handler/debug"
	publich "go-gamepedia/internal/server/http/handler/public"
	"go-gamepedia/internal/server/http/middleware"
	obs "go-gamepedia/internal/server/http/middleware/observability"
	sec "go-gamepedia/internal/server/http/middleware/security"
	"go-gamepedia/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// NewRouter 仅负责分组与中间件装配，具体业务放在 handler 层
func NewRouter(jwtm *jwt.Manager, logger *logging.Logger, producer *kafka.Producer, opSender *kafka.AsyncSender, db *gorm.DB, redis *redisrepo.Client, authSvc *service.AuthService, userSvc *service.UserService, permSvc *service.PermissionService, menuSvc *service.MenuService, roleSvc *service.RoleService, heroSvc *service.HeroService, equipSvc *service.EquipmentService, hexSvc *service.HexService, logSvc *service.LogService, etcdCli *etcd.Client, cfg *config.Config) *gin.Engine {
	r := gin.New()
	// ConfigInjector 放最前确保后续中间件可读取 app_config
	r.Use(middleware.ConfigInjector(cfg), gin.Recovery(), middleware.CORS(), obs.TraceMiddleware(), obs.LoggerContextMiddleware(logger), obs.Metrics())

	// 健康检查
	hc := NewHealthChecker(db, redis, producer, etcdCli)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, hc.Liveness()) })
	r.GET("/readyz", func(c *gin.Context) {
		if c.Query("refresh") == "1" {
			hc.cacheMu.Lock()
			hc.cacheExpiry = time.Time{}
			hc.cacheMu.Unlock()
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()
		res, code := hc.Readiness(ctx)
		c.JSON(code, res)
	})
	// Prometheus
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 依赖注入给 handler 构造器 (拆分 admin / public 子包依赖)
	ad := adm.Dependencies{
		Auth: authSvc, User: userSvc, Perm: permSvc, Menu: menuSvc, Role: roleSvc,
		Hero: heroSvc, Equipment: equipSvc, Hex: hexSvc, Log: logSvc,
		JWT: jwtm, Logger: logger, Producer: producer, Config: cfg, Cache: menuSvc.Cache,
	}
	pd := publich.Dependencies{Hero: heroSvc, Equipment: equipSvc, Hex: hexSvc, Config: cfg, Logger: logger}
	h := handlerset.NewHandlerSet(ad, pd, debugh.Dependencies{Config: cfg, Logger: logger})

	authed := sec.Auth(jwtm, authSvc, logger)

	// 登录/会话接口，不含 OperationLog
	v1 := r.Group("/admin")
	{
		v1.POST("/Login/index", h.Auth.Login)
		v1.GET("/Login/getUserInfo", authed, h.Auth.GetUserInfo)
		v1.GET("/Login/getAccessMenu", authed, h.Auth.GetAccessMenu)
		v1.POST("/Login/logout", authed, h.Auth.Logout)
	}

	// 需认证 + 操作日志的 admin 主业务分组；逐路由叠加 RequirePerm
	adminGrp := r.Group("/admin", authed, obs.OperationLog(opSender))
	{
		userGroup := adminGrp.Group("/User")
		{
			userGroup.GET("/index", sec.RequirePerm(permSvc, "user:list"), h.User.List)
			userGroup.POST("/add", sec.RequirePerm(permSvc, "user:add"), h.User.Add)
			userGroup.POST("/edit", sec.RequirePerm(permSvc, "user:edit"), h.User.Edit)
			userGroup.GET("/changeStatus", sec.RequirePerm(permSvc, "user:edit"), h.User.ChangeStatus)
			userGroup.GET("/del", sec.RequirePerm(permSvc, "user:delete"), h.User.Delete)
			// 改自己的口令只要求登录态
			userGroup.POST("/changePassword", h.User.ChangePassword)
			userGroup.POST("/resetPassword", sec.RequirePerm(permSvc, "user:edit"), h.User.ResetPassword)
		}
		menuGroup := adminGrp.Group("/Menu")
		{
			menuGroup.GET("/index", sec.RequirePerm(permSvc, "menu:list"), h.Menu.Index)
			menuGroup.POST("/add", sec.RequirePerm(permSvc, "menu:add"), h.Menu.Add)
			menuGroup.POST("/edit", sec.RequirePerm(permSvc, "menu:edit"), h.Menu.Edit)
			menuGroup.GET("/changeStatus", sec.RequirePerm(permSvc, "menu:edit"), h.Menu.ChangeStatus)
			menuGroup.GET("/del", sec.RequirePerm(permSvc, "menu:delete"), h.Menu.Delete)
		}
		roleGroup := adminGrp.Group("/Role")
		{
			roleGroup.GET("/index", sec.RequirePerm(permSvc, "role:list"), h.Role.Index)
			roleGroup.POST("/add", sec.RequirePerm(permSvc, "role:add"), h.Role.Add)
			roleGroup.POST("/edit", sec.RequirePerm(permSvc, "role:edit"), h.Role.Edit)
			roleGroup.GET("/del", sec.RequirePerm(permSvc, "role:delete"), h.Role.Delete)
			roleGroup.GET("/getMenus", sec.RequirePerm(permSvc, "role:list"), h.Role.GetMenus)
			// 授权矩阵只许管理员角色触碰
			roleGroup.POST("/grantMenus", sec.RequireRole(rbac.RoleAdmin, rbac.RoleContentAdmin), h.Role.GrantMenus)
		}
		heroGroup := adminGrp.Group("/Hero")
		{
			heroGroup.GET("/index", sec.RequirePerm(permSvc, "hero:list"), h.Hero.List)
			heroGroup.GET("/detail", sec.RequirePerm(permSvc, "hero:list"), h.Hero.Detail)
			heroGroup.POST("/add", sec.RequirePerm(permSvc, "hero:add"), h.Hero.Add)
			heroGroup.POST("/edit", sec.RequirePerm(permSvc, "hero:edit"), h.Hero.Edit)
			heroGroup.GET("/changeStatus", sec.RequirePerm(permSvc, "hero:edit"), h.Hero.ChangeStatus)
			heroGroup.GET("/del", sec.RequirePerm(permSvc, "hero:delete"), h.Hero.Delete)
			heroGroup.POST("/setBuild", sec.RequirePerm(permSvc, "hero:edit", "build:edit"), h.Hero.SetBuild)
		}
		equipGroup := adminGrp.Group("/Equipment")
		{
			equipGroup.GET("/index", sec.RequirePerm(permSvc, "equipment:list"), h.Equipment.List)
			equipGroup.GET("/detail", sec.RequirePerm(permSvc, "equipment:list"), h.Equipment.Detail)
			equipGroup.POST("/add", sec.RequirePerm(permSvc, "equipment:add"), h.Equipment.Add)
			equipGroup.POST("/edit", sec.RequirePerm(permSvc, "equipment:edit"), h.Equipment.Edit)
			equipGroup.GET("/changeStatus", sec.RequirePerm(permSvc, "equipment:edit"), h.Equipment.ChangeStatus)
			equipGroup.GET("/del", sec.RequirePerm(permSvc, "equipment:delete"), h.Equipment.Delete)
		}
		hexGroup := adminGrp.Group("/Hex")
		{
			hexGroup.GET("/index", sec.RequirePerm(permSvc, "hex:list"), h.Hex.List)
			hexGroup.GET("/detail", sec.RequirePerm(permSvc, "hex:list"), h.Hex.Detail)
			hexGroup.POST("/add", sec.RequirePerm(permSvc, "hex:add"), h.Hex.Add)
			hexGroup.POST("/edit", sec.RequirePerm(permSvc, "hex:edit"), h.Hex.Edit)
			hexGroup.GET("/changeStatus", sec.RequirePerm(permSvc, "hex:edit"), h.Hex.ChangeStatus)
			hexGroup.GET("/del", sec.RequirePerm(permSvc, "hex:delete"), h.Hex.Delete)
		}
		logGroup := adminGrp.Group("/Log")
		{
			logGroup.GET("/index", sec.RequirePerm(permSvc, "log:list"), h.Log.List)
			logGroup.GET("/del", sec.RequirePerm(permSvc, "log:delete"), h.Log.Delete)
		}
		cacheGroup := adminGrp.Group("/Cache")
		{
			cacheGroup.GET("/metrics", h.Cache.Metrics)
			cacheGroup.GET("/reset", h.Cache.Reset)
		}
	}

	// 公开站点接口：无需登录，只读，只见启用数据
	api := r.Group("/api")
	{
		api.GET("/hero/list", h.Public.HeroList)
		api.GET("/hero/detail", h.Public.HeroDetail)
		api.GET("/equipment/list", h.Public.EquipmentList)
		api.GET("/hex/list", h.Public.HexList)
	}

	// 调试接口（仅非生产环境挂载）
	if cfg != nil && cfg.AppMeta.Env != "prod" {
		r.GET("/debug/oplog/peek/:Second", h.Debug.PeekOpLog)
	}

	// 统一 404
	r.NoRoute(func(c *gin.Context) {
		c.JSON(200, gin.H{"code": -8, "msg": "不存在", "data": gin.H{}})
	})
	return r
}
