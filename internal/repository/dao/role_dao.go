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

type RoleDAO struct{ DB *gorm.DB }

func NewRoleDAO(db *gorm.DB) *RoleDAO { return &RoleDAO{DB: db} }

func (d *RoleDAO) tracer() trace.Tracer { return otel.Tracer("dao.role") }

func (d *RoleDAO) List(ctx context.Context) ([]model.Role, error) {
	ctx, span := d.tracer().Start(ctx, "RoleDAO.List")
	defer span.End()
	var list []model.Role
	if err := d.DB.WithContext(ctx).Order("id ASC").Find(&list).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return list, nil
}

func (d *RoleDAO) FindByID(ctx context.Context, id int64) (*model.Role, error) {
	ctx, span := d.tracer().Start(ctx, "RoleDAO.FindByID")
	defer span.End()
	var r model.Role
	if err := d.DB.WithContext(ctx).First(&r, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("find role id=%d: %w", id, err)
	}
	return &r, nil
}

func (d *RoleDAO) FindByCode(ctx context.Context, code string) (*model.Role, error) {
	ctx, span := d.tracer().Start(ctx, "RoleDAO.FindByCode")
	defer span.End()
	var r model.Role
	if err := d.DB.WithContext(ctx).Where("code = ?", code).First(&r).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("find role code=%s: %w", code, err)
	}
	return &r, nil
}

func (d *RoleDAO) Create(ctx context.Context, r *model.Role) error {
	ctx, span := d.tracer().Start(ctx, "RoleDAO.Create")
	defer span.End()
	if err := d.DB.WithContext(ctx).Create(r).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("create role: %w", err)
	}
	return nil
}

func (d *RoleDAO) Update(ctx context.Context, r *model.Role) error {
	ctx, span := d.tracer().Start(ctx, "RoleDAO.Update")
	defer span.End()
	if err := d.DB.WithContext(ctx).Model(&model.Role{}).Where("id=?", r.ID).Updates(map[string]interface{}{
		"name":        r.Name,
		"code":        r.Code,
		"description": r.Description,
	}).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("update role id=%d: %w", r.ID, err)
	}
	return nil
}

// DeleteWithAssociations 删除角色并清理菜单关联（同一事务）
func (d *RoleDAO) DeleteWithAssociations(ctx context.Context, id int64) error {
	ctx, span := d.tracer().Start(ctx, "RoleDAO.DeleteWithAssociations")
	defer span.End()
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Role{}, id).Error; err != nil {
			return err
		}
		return tx.Where("role_id = ?", id).Delete(&model.RoleMenu{}).Error
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("delete role id=%d: %w", id, err)
	}
	return nil
}

// ListMenuIDs 角色关联的菜单 id 列表
func (d *RoleDAO) ListMenuIDs(ctx context.Context, roleID int64) ([]int64, error) {
	ctx, span := d.tracer().Start(ctx, "RoleDAO.ListMenuIDs")
	defer span.End()
	var ids []int64
	if err := d.DB.WithContext(ctx).Model(&model.RoleMenu{}).Where("role_id = ?", roleID).Pluck("menu_id", &ids).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list menu ids of role id=%d: %w", roleID, err)
	}
	return ids, nil
}

// ReplaceMenus 整体替换角色的菜单集合：删旧插新，单事务保证不残留半套关联
func (d *RoleDAO) ReplaceMenus(ctx context.Context, roleID int64, menuIDs []int64) error {
	ctx, span := d.tracer().Start(ctx, "RoleDAO.ReplaceMenus")
	defer span.End()
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&model.RoleMenu{}).Error; err != nil {
			return err
		}
		if len(menuIDs) == 0 {
			return nil
		}
		rows := make([]model.RoleMenu, 0, len(menuIDs))
		for _, mid := range menuIDs {
			rows = append(rows, model.RoleMenu{RoleID: roleID, MenuID: mid})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("replace menus of role id=%d: %w", roleID, err)
	}
	return nil
}

// ListMenusByRole 角色可见的菜单记录（权限推导用）
func (d *RoleDAO) ListMenusByRole(ctx context.Context, roleID int64) ([]model.Menu, error) {
	ctx, span := d.tracer().Start(ctx, "RoleDAO.ListMenusByRole")
	defer span.End()
	var list []model.Menu
	err := d.DB.WithContext(ctx).
		Joins("JOIN role_menu rm ON rm.menu_id = menu.id").
		Where("rm.role_id = ?", roleID).
		Order("menu.sort ASC").Order("menu.id ASC").
		Find(&list).Error
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list menus of role id=%d: %w", roleID, err)
	}
	return list, nil
}
