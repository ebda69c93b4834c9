package admin

import (
	"go-gamepedia/internal/config"
	"go-gamepedia/internal/logging"
	"go-gamepedia/internal/mq/kafka"
	"go-gamepedia/internal/pkg/cache"
	"go-gamepedia/internal/security/jwt"
	"go-gamepedia/internal/service"
)

// Dependencies admin 子包依赖集合
type Dependencies struct {
	Auth      *service.AuthService
	User      *service.UserService
	Perm      *service.PermissionService
	Menu      *service.MenuService
	Role      *service.RoleService
	Hero      *service.HeroService
	Equipment *service.EquipmentService
	Hex       *service.HexService
	Log       *service.LogService
	JWT       *jwt.Manager
	Config    *config.Config
	Cache     cache.Cache
	Producer  *kafka.Producer
	Logger    *logging.Logger
}
