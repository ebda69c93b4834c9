package model

// Role 角色表
// code 为稳定角色标识（admin / content_admin / editor / user ...），唯一且跨改名不变

type Role struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50" json:"name"`
	Code        string `gorm:"size:50;uniqueIndex:uk_role_code" json:"code"`
	Description string `gorm:"type:text" json:"description"`
}

func (Role) TableName() string { return "role" }

// RoleMenu 角色与菜单节点多对多关系
type RoleMenu struct {
	ID     int64 `gorm:"primaryKey" json:"id"`
	RoleID int64 `gorm:"column:role_id;index" json:"role_id"`
	MenuID int64 `gorm:"column:menu_id;index" json:"menu_id"`
}

func (RoleMenu) TableName() string { return "role_menu" }
