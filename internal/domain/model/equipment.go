package model

// Equipment 装备表；attributes 为 JSON 文本（攻击力、冷却缩减等词条）

type Equipment struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;index" json:"name"`
	Icon        string `gorm:"size:255" json:"icon"`
	Price       int    `gorm:"column:price" json:"price"`
	Tier        int8   `gorm:"column:tier" json:"tier"` // 1 基础 2 中级 3 高级
	Description string `gorm:"type:text" json:"description"`
	Attributes  string `gorm:"column:attributes;type:text" json:"attributes"`
	Enabled     int8   `gorm:"column:enabled" json:"enabled"`
	CreateTime  int64  `gorm:"column:create_time" json:"create_time"`
	UpdateTime  int64  `gorm:"column:update_time" json:"update_time"`
}

func (Equipment) TableName() string { return "equipment" }
