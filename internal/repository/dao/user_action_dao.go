package dao

import (
	"context"

	"go-gamepedia/internal/domain/model"

	"gorm.io/gorm"
)

type UserActionDAO struct{ DB *gorm.DB }

func NewUserActionDAO(db *gorm.DB) *UserActionDAO { return &UserActionDAO{DB: db} }

func (d *UserActionDAO) List(ctx context.Context, typ int, keywords string, page, limit int) ([]model.UserAction, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	q := d.DB.WithContext(ctx).Model(&model.UserAction{})
	if typ > 0 && keywords != "" {
		switch typ { // 1=url,2=nickname,3=uid
		case 1:
			q = q.Where("url ILIKE ?", "%"+keywords+"%")
		case 2:
			q = q.Where("nickname ILIKE ?", "%"+keywords+"%")
		case 3:
			q = q.Where("uid = ?", keywords)
		}
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.UserAction
	if err := q.Order("add_time DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (d *UserActionDAO) Create(ctx context.Context, a *model.UserAction) error {
	return d.DB.WithContext(ctx).Create(a).Error
}

func (d *UserActionDAO) Delete(ctx context.Context, id int64) error {
	return d.DB.WithContext(ctx).Delete(&model.UserAction{}, id).Error
}
