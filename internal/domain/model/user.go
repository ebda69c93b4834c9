package model

import "time"

// User 账号表
// role_id 可空：一个用户至多绑定一个角色；password 存 bcrypt（兼容旧库 MD5，登录时升级）

type User struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username   string    `gorm:"size:64;uniqueIndex:uk_username" json:"username"`
	Nickname   string    `gorm:"size:64" json:"nickname"`
	Password   string    `gorm:"size:64" json:"-"`
	Email      string    `gorm:"size:100" json:"email"`
	Avatar     string    `gorm:"size:255" json:"avatar"`
	RoleID     *int64    `gorm:"column:role_id;index" json:"role_id,omitempty"`
	Status     int8      `gorm:"column:status" json:"status"` // 1 启用 0 禁用
	CreateTime int64     `gorm:"column:create_time;index" json:"create_time"`
	UpdateTime int64     `gorm:"column:update_time" json:"update_time"`
	CreatedAt  time.Time `gorm:"->:false;<-:false" json:"-"`
	UpdatedAt  time.Time `gorm:"->:false;<-:false" json:"-"`
}

func (User) TableName() string { return "user" }

// SuperAdminID 超级管理员（非数据库角色，越过一切权限校验）
const SuperAdminID int64 = 1
