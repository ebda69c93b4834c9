package dao

import (
	"context"
	"errors"

	"go-gamepedia/internal/domain/model"

	"gorm.io/gorm"
)

type UserDAO struct{ DB *gorm.DB }

func NewUserDAO(db *gorm.DB) *UserDAO { return &UserDAO{DB: db} }

func (d *UserDAO) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := d.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := d.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (d *UserDAO) Create(ctx context.Context, u *model.User) error {
	return d.DB.WithContext(ctx).Create(u).Error
}

func (d *UserDAO) Delete(ctx context.Context, id int64) error {
	return d.DB.WithContext(ctx).Delete(&model.User{}, id).Error
}

// Update 更新可编辑字段（密码单独处理）
func (d *UserDAO) Update(ctx context.Context, u *model.User) error {
	return d.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
		"nickname":    u.Nickname,
		"email":       u.Email,
		"avatar":      u.Avatar,
		"role_id":     u.RoleID,
		"status":      u.Status,
		"update_time": u.UpdateTime,
	}).Error
}

func (d *UserDAO) UpdatePassword(ctx context.Context, id int64, newPwd string) error {
	return d.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("password", newPwd).Error
}

func (d *UserDAO) UpdateStatus(ctx context.Context, id int64, status int8) error {
	return d.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("status", status).Error
}

// CountByRole 引用该角色的用户数（角色删除前完整性检查用）
func (d *UserDAO) CountByRole(ctx context.Context, roleID int64) (int64, error) {
	var n int64
	if err := d.DB.WithContext(ctx).Model(&model.User{}).Where("role_id = ?", roleID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// ListIDsByRole 引用该角色的用户 id（角色变更后精确失效权限缓存用）
func (d *UserDAO) ListIDsByRole(ctx context.Context, roleID int64) ([]int64, error) {
	var ids []int64
	if err := d.DB.WithContext(ctx).Model(&model.User{}).Where("role_id = ?", roleID).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// List 可选过滤 + 分页；limit<=0 时默认上限 500
func (d *UserDAO) List(ctx context.Context, username string, status *int8, offset, limit int) ([]model.User, int64, error) {
	q := d.DB.WithContext(ctx).Model(&model.User{})
	if username != "" {
		q = q.Where("username ILIKE ?", "%"+username+"%")
	}
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 500
	}
	var list []model.User
	if err := q.Offset(offset).Limit(limit).Order("id DESC").Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
