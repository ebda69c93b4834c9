package model

// 英雄推荐出装与海克斯搭配
// 删除英雄时随事务级联清理；装备/海克斯被引用时拒绝删除（写侧保证完整性）

// HeroEquipment 英雄-装备关系，slot 为出装顺序（1 起）
type HeroEquipment struct {
	ID          int64 `gorm:"primaryKey" json:"id"`
	HeroID      int64 `gorm:"column:hero_id;index" json:"hero_id"`
	EquipmentID int64 `gorm:"column:equipment_id;index" json:"equipment_id"`
	Slot        int   `gorm:"column:slot" json:"slot"`
}

func (HeroEquipment) TableName() string { return "hero_equipment" }

// HeroHex 英雄-海克斯关系
type HeroHex struct {
	ID     int64 `gorm:"primaryKey" json:"id"`
	HeroID int64 `gorm:"column:hero_id;index" json:"hero_id"`
	HexID  int64 `gorm:"column:hex_id;index" json:"hex_id"`
}

func (HeroHex) TableName() string { return "hero_hex" }
