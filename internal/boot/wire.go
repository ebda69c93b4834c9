package boot

import (
	"time"

	"go-gamepedia/internal/config"
	"go-gamepedia/internal/discovery/etcd"
	"go-gamepedia/internal/logging"
	"go-gamepedia/internal/mq/kafka"
	"go-gamepedia/internal/pkg/cache"
	"go-gamepedia/internal/repository/dao"
	redisrepo "go-gamepedia/internal/repository/redis"
	jwtsec "go-gamepedia/internal/security/jwt"
	httpSrv "go-gamepedia/internal/server/http"
	"go-gamepedia/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"gorm.io/gorm"
)

// ProvideConfig wraps config.Load for wire with external path param
func ProvideConfig(path string) (*config.Config, error) { return config.Load(path) }

// ProvideOpLogSender 操作日志的异步批量发送器
func ProvideOpLogSender(p *kafka.Producer, l *logging.Logger) *kafka.AsyncSender {
	s := kafka.NewAsyncSender(p, l, 2048, 1, 64, 200*time.Millisecond)
	s.Start()
	return s
}

// ProvideRouter 装配路由；这里为注入后的 service 提供。
func ProvideRouter(j *jwtsec.Manager, l *logging.Logger, p *kafka.Producer, sender *kafka.AsyncSender, db *gorm.DB, r *redisrepo.Client, a *service.AuthService, u *service.UserService, perm *service.PermissionService, menu *service.MenuService, role *service.RoleService, hero *service.HeroService, equip *service.EquipmentService, hex *service.HexService, logSvc *service.LogService, e *etcd.Client, c *config.Config) *gin.Engine {
	return httpSrv.NewRouter(j, l, p, sender, db, r, a, u, perm, menu, role, hero, equip, hex, logSvc, e, c)
}

func ProvideApp(c *config.Config, l *logging.Logger, db *gorm.DB, r *redisrepo.Client, k *kafka.Producer, e *etcd.Client, j *jwtsec.Manager, engine *gin.Engine, sender *kafka.AsyncSender) *App {
	app := NewApp(c, l, db, r, k, e, j, engine)
	app.OpLogSender = sender
	return app
}

// ProvideLayeredCache 构建通用 LayeredCache（L1 本地 60s, L2 Redis）
func ProvideLayeredCache(r *redisrepo.Client) cache.Cache {
	l1 := cache.New(60 * time.Second)
	l2 := cache.NewRedisAdapter(r)
	return cache.NewLayered(l1, l2)
}

var ProviderSet = wire.NewSet(
	ProvideConfig,
	NewLogger,
	NewPostgres,
	NewRedis,
	NewKafkaProducer,
	NewEtcd,
	NewJWTManager,
	ProvideLayeredCache,
	ProvideOpLogSender,
	// DAO
	dao.NewUserDAO,
	dao.NewRoleDAO,
	dao.NewMenuDAO,
	dao.NewHeroDAO,
	dao.NewHeroBuildDAO,
	dao.NewEquipmentDAO,
	dao.NewHexDAO,
	dao.NewUserActionDAO,
	// Service
	NewAuthServiceWithJTI,
	service.NewPermissionService,
	service.NewMenuService,
	service.NewRoleService,
	service.NewUserService,
	service.NewHeroService,
	service.NewEquipmentService,
	service.NewHexService,
	service.NewLogService,
	ProvideRouter,
	ProvideApp,
)

// NewAuthServiceWithJTI JTI 前缀来自配置
func NewAuthServiceWithJTI(u *dao.UserDAO, r *dao.RoleDAO, j *jwtsec.Manager, rd *redisrepo.Client, c *config.Config) *service.AuthService {
	return service.NewAuthService(u, r, j, rd, c.Redis.JTIPrefix)
}
