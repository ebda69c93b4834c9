package model

// Menu 菜单/权限节点表（目录、页面菜单、按钮三种）
// parent_id = 0 表示顶级；perm_code 形如 "hero:edit"，主要挂在按钮节点上

const MenuRootParentID int64 = 0

// 节点类型
const (
	MenuKindDirectory int8 = 1
	MenuKindMenu      int8 = 2
	MenuKindButton    int8 = 3
)

type Menu struct {
	ID       int64  `gorm:"primaryKey;column:id" json:"id"`
	ParentID int64  `gorm:"column:parent_id;index" json:"parent_id"`
	Name     string `gorm:"column:name;size:50" json:"name"`
	Path     string `gorm:"column:path;size:100" json:"path"` // 前端路由，按钮节点可为空
	Icon     string `gorm:"column:icon;size:50" json:"icon"`
	Kind     int8   `gorm:"column:kind" json:"kind"`
	PermCode string `gorm:"column:perm_code;size:100" json:"perm_code"`
	Sort     int    `gorm:"column:sort" json:"sort"`
	Enabled  int8   `gorm:"column:enabled" json:"enabled"` // 1 启用 0 禁用
}

func (Menu) TableName() string { return "menu" }
