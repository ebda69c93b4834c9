package model

// Hex 海克斯/符文表

type Hex struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:50;index" json:"name"`
	Icon        string `gorm:"size:255" json:"icon"`
	Category    string `gorm:"size:50" json:"category"` // 如 强化 / 辅助 / 经济
	Description string `gorm:"type:text" json:"description"`
	Enabled     int8   `gorm:"column:enabled" json:"enabled"`
	CreateTime  int64  `gorm:"column:create_time" json:"create_time"`
	UpdateTime  int64  `gorm:"column:update_time" json:"update_time"`
}

func (Hex) TableName() string { return "hex" }
