package public

import (
	"go-gamepedia/internal/config"
	"go-gamepedia/internal/logging"
	"go-gamepedia/internal/service"
)

// Dependencies 公开站点子包最小依赖集合
type Dependencies struct {
	Hero      *service.HeroService
	Equipment *service.EquipmentService
	Hex       *service.HexService
	Config    *config.Config
	Logger    *logging.Logger
}
