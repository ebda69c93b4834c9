package dao

import (
	"context"
	"fmt"

	"go-gamepedia/internal/domain/model"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

type MenuDAO struct{ DB *gorm.DB }

func NewMenuDAO(db *gorm.DB) *MenuDAO { return &MenuDAO{DB: db} }

func (d *MenuDAO) tracer() trace.Tracer { return otel.Tracer("dao.menu") }

// List 获取菜单，可按名称模糊；keywords 为空时返回全部，按 sort/id 稳定排序
func (d *MenuDAO) List(ctx context.Context, keywords string) ([]model.Menu, error) {
	ctx, span := d.tracer().Start(ctx, "MenuDAO.List")
	defer span.End()
	q := d.DB.WithContext(ctx).Model(&model.Menu{})
	if keywords != "" {
		q = q.Where("name ILIKE ?", "%"+keywords+"%")
	}
	var list []model.Menu
	if err := q.Order("sort ASC").Order("id ASC").Find(&list).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list menus: %w", err)
	}
	return list, nil
}

func (d *MenuDAO) FindByID(ctx context.Context, id int64) (*model.Menu, error) {
	ctx, span := d.tracer().Start(ctx, "MenuDAO.FindByID")
	defer span.End()
	var m model.Menu
	if err := d.DB.WithContext(ctx).First(&m, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("find menu id=%d: %w", id, err)
	}
	return &m, nil
}

// FindByIDs 批量查询，返回 id -> Menu
func (d *MenuDAO) FindByIDs(ctx context.Context, ids []int64) (map[int64]model.Menu, error) {
	ctx, span := d.tracer().Start(ctx, "MenuDAO.FindByIDs")
	defer span.End()
	res := make(map[int64]model.Menu, len(ids))
	if len(ids) == 0 {
		return res, nil
	}
	var list []model.Menu
	if err := d.DB.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("find menus by ids: %w", err)
	}
	for _, m := range list {
		res[m.ID] = m
	}
	return res, nil
}

// CountChildren 子节点数量（删除前完整性检查用）
func (d *MenuDAO) CountChildren(ctx context.Context, id int64) (int64, error) {
	ctx, span := d.tracer().Start(ctx, "MenuDAO.CountChildren")
	defer span.End()
	var n int64
	if err := d.DB.WithContext(ctx).Model(&model.Menu{}).Where("parent_id = ?", id).Count(&n).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, fmt.Errorf("count children of menu id=%d: %w", id, err)
	}
	return n, nil
}

func (d *MenuDAO) Create(ctx context.Context, m *model.Menu) error {
	ctx, span := d.tracer().Start(ctx, "MenuDAO.Create")
	defer span.End()
	if err := d.DB.WithContext(ctx).Create(m).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("create menu: %w", err)
	}
	return nil
}

func (d *MenuDAO) Update(ctx context.Context, m *model.Menu) error {
	ctx, span := d.tracer().Start(ctx, "MenuDAO.Update")
	defer span.End()
	if err := d.DB.WithContext(ctx).Model(&model.Menu{}).Where("id=?", m.ID).Updates(map[string]interface{}{
		"parent_id": m.ParentID,
		"name":      m.Name,
		"path":      m.Path,
		"icon":      m.Icon,
		"kind":      m.Kind,
		"perm_code": m.PermCode,
		"sort":      m.Sort,
		"enabled":   m.Enabled,
	}).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("update menu id=%d: %w", m.ID, err)
	}
	return nil
}

func (d *MenuDAO) UpdateEnabled(ctx context.Context, id int64, enabled int8) error {
	ctx, span := d.tracer().Start(ctx, "MenuDAO.UpdateEnabled")
	defer span.End()
	if err := d.DB.WithContext(ctx).Model(&model.Menu{}).Where("id=?", id).Update("enabled", enabled).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("update enabled id=%d: %w", id, err)
	}
	return nil
}

// DeleteWithAssociations 删除节点并清理角色关联（同一事务）
func (d *MenuDAO) DeleteWithAssociations(ctx context.Context, id int64) error {
	ctx, span := d.tracer().Start(ctx, "MenuDAO.DeleteWithAssociations")
	defer span.End()
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Menu{}, id).Error; err != nil {
			return err
		}
		return tx.Where("menu_id = ?", id).Delete(&model.RoleMenu{}).Error
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("delete menu id=%d: %w", id, err)
	}
	return nil
}
