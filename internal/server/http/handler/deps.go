package handler

import (
	adminh "go-gamepedia/internal/server/http/handler/admin"
	debugh "go-gamepedia/internal/server/http/handler/debug"
	publich "go-gamepedia/internal/server/http/handler/public"
)

// HandlerSet 聚合 admin 与 public 子包的 handler，供 router 使用
// 只暴露业务 handler，不再直接暴露依赖。
type HandlerSet struct {
	Auth      *adminh.AuthHandler
	User      *adminh.UserHandler
	Menu      *adminh.MenuHandler
	Role      *adminh.RoleHandler
	Hero      *adminh.HeroHandler
	Equipment *adminh.EquipmentHandler
	Hex       *adminh.HexHandler
	Log       *adminh.LogHandler
	Cache     *adminh.CacheHandler
	Public    *publich.Handler
	Debug     *debugh.Handler
}

// NewHandlerSet 创建聚合。参数为子包依赖（各自最小依赖集）。
func NewHandlerSet(ad adminh.Dependencies, pd publich.Dependencies, dbg debugh.Dependencies) *HandlerSet {
	return &HandlerSet{
		Auth:      adminh.NewAuthHandler(ad),
		User:      adminh.NewUserHandler(ad),
		Menu:      adminh.NewMenuHandler(ad),
		Role:      adminh.NewRoleHandler(ad),
		Hero:      adminh.NewHeroHandler(ad),
		Equipment: adminh.NewEquipmentHandler(ad),
		Hex:       adminh.NewHexHandler(ad),
		Log:       adminh.NewLogHandler(ad),
		Cache:     adminh.NewCacheHandler(ad),
		Public:    publich.NewHandler(pd),
		Debug:     debugh.New(dbg),
	}
}
