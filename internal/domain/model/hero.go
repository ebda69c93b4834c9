package model

// Hero 英雄表；skills 以 JSON 文本存储，结构由前端约定

type Hero struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"size:50;index" json:"name"`
	Title      string `gorm:"size:100" json:"title"` // 称号
	Faction    string `gorm:"size:50" json:"faction"`
	Avatar     string `gorm:"size:255" json:"avatar"`
	Story      string `gorm:"type:text" json:"story"`
	Attack     int    `gorm:"column:attack" json:"attack"`
	Defense    int    `gorm:"column:defense" json:"defense"`
	Magic      int    `gorm:"column:magic" json:"magic"`
	Difficulty int    `gorm:"column:difficulty" json:"difficulty"`
	Skills     string `gorm:"column:skills;type:text" json:"skills"`
	Enabled    int8   `gorm:"column:enabled" json:"enabled"`
	CreateTime int64  `gorm:"column:create_time" json:"create_time"`
	UpdateTime int64  `gorm:"column:update_time" json:"update_time"`
}

func (Hero) TableName() string { return "hero" }
