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

type EquipmentDAO struct{ DB *gorm.DB }

func NewEquipmentDAO(db *gorm.DB) *EquipmentDAO { return &EquipmentDAO{DB: db} }

func (d *EquipmentDAO) tracer() trace.Tracer { return otel.Tracer("dao.equipment") }

func (d *EquipmentDAO) List(ctx context.Context, keywords string, enabledOnly bool) ([]model.Equipment, error) {
	ctx, span := d.tracer().Start(ctx, "EquipmentDAO.List")
	defer span.End()
	q := d.DB.WithContext(ctx).Model(&model.Equipment{})
	if keywords != "" {
		q = q.Where("name ILIKE ?", "%"+keywords+"%")
	}
	if enabledOnly {
		q = q.Where("enabled = 1")
	}
	var list []model.Equipment
	if err := q.Order("tier ASC").Order("price ASC").Order("id ASC").Find(&list).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	return list, nil
}

func (d *EquipmentDAO) FindByID(ctx context.Context, id int64) (*model.Equipment, error) {
	ctx, span := d.tracer().Start(ctx, "EquipmentDAO.FindByID")
	defer span.End()
	var e model.Equipment
	if err := d.DB.WithContext(ctx).First(&e, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("find equipment id=%d: %w", id, err)
	}
	return &e, nil
}

func (d *EquipmentDAO) FindByIDs(ctx context.Context, ids []int64) (map[int64]model.Equipment, error) {
	ctx, span := d.tracer().Start(ctx, "EquipmentDAO.FindByIDs")
	defer span.End()
	res := make(map[int64]model.Equipment, len(ids))
	if len(ids) == 0 {
		return res, nil
	}
	var list []model.Equipment
	if err := d.DB.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("find equipment by ids: %w", err)
	}
	for _, e := range list {
		res[e.ID] = e
	}
	return res, nil
}

func (d *EquipmentDAO) Create(ctx context.Context, e *model.Equipment) error {
	ctx, span := d.tracer().Start(ctx, "EquipmentDAO.Create")
	defer span.End()
	if err := d.DB.WithContext(ctx).Create(e).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("create equipment: %w", err)
	}
	return nil
}

func (d *EquipmentDAO) Update(ctx context.Context, e *model.Equipment) error {
	ctx, span := d.tracer().Start(ctx, "EquipmentDAO.Update")
	defer span.End()
	if err := d.DB.WithContext(ctx).Model(&model.Equipment{}).Where("id=?", e.ID).Updates(map[string]interface{}{
		"name": e.Name, "icon": e.Icon, "price": e.Price, "tier": e.Tier,
		"description": e.Description, "attributes": e.Attributes, "enabled": e.Enabled,
		"update_time": e.UpdateTime,
	}).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("update equipment id=%d: %w", e.ID, err)
	}
	return nil
}

func (d *EquipmentDAO) UpdateEnabled(ctx context.Context, id int64, enabled int8) error {
	ctx, span := d.tracer().Start(ctx, "EquipmentDAO.UpdateEnabled")
	defer span.End()
	if err := d.DB.WithContext(ctx).Model(&model.Equipment{}).Where("id=?", id).Update("enabled", enabled).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("update equipment enabled id=%d: %w", id, err)
	}
	return nil
}

func (d *EquipmentDAO) Delete(ctx context.Context, id int64) error {
	ctx, span := d.tracer().Start(ctx, "EquipmentDAO.Delete")
	defer span.End()
	if err := d.DB.WithContext(ctx).Delete(&model.Equipment{}, id).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("delete equipment id=%d: %w", id, err)
	}
	return nil
}

// CountBuildRefs 出装表对该装备的引用数（删除前完整性检查）
func (d *EquipmentDAO) CountBuildRefs(ctx context.Context, id int64) (int64, error) {
	ctx, span := d.tracer().Start(ctx, "EquipmentDAO.CountBuildRefs")
	defer span.End()
	var n int64
	if err := d.DB.WithContext(ctx).Model(&model.HeroEquipment{}).Where("equipment_id = ?", id).Count(&n).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, fmt.Errorf("count build refs of equipment id=%d: %w", id, err)
	}
	return n, nil
}
