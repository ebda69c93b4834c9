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

type HexDAO struct{ DB *gorm.DB }

func NewHexDAO(db *gorm.DB) *HexDAO { return &HexDAO{DB: db} }

func (d *HexDAO) tracer() trace.Tracer { return otel.Tracer("dao.hex") }

func (d *HexDAO) List(ctx context.Context, category string, enabledOnly bool) ([]model.Hex, error) {
	ctx, span := d.tracer().Start(ctx, "HexDAO.List")
	defer span.End()
	q := d.DB.WithContext(ctx).Model(&model.Hex{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if enabledOnly {
		q = q.Where("enabled = 1")
	}
	var list []model.Hex
	if err := q.Order("id ASC").Find(&list).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list hexes: %w", err)
	}
	return list, nil
}

func (d *HexDAO) FindByID(ctx context.Context, id int64) (*model.Hex, error) {
	ctx, span := d.tracer().Start(ctx, "HexDAO.FindByID")
	defer span.End()
	var h model.Hex
	if err := d.DB.WithContext(ctx).First(&h, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("find hex id=%d: %w", id, err)
	}
	return &h, nil
}

func (d *HexDAO) FindByIDs(ctx context.Context, ids []int64) (map[int64]model.Hex, error) {
	ctx, span := d.tracer().Start(ctx, "HexDAO.FindByIDs")
	defer span.End()
	res := make(map[int64]model.Hex, len(ids))
	if len(ids) == 0 {
		return res, nil
	}
	var list []model.Hex
	if err := d.DB.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("find hexes by ids: %w", err)
	}
	for _, h := range list {
		res[h.ID] = h
	}
	return res, nil
}

func (d *HexDAO) Create(ctx context.Context, h *model.Hex) error {
	ctx, span := d.tracer().Start(ctx, "HexDAO.Create")
	defer span.End()
	if err := d.DB.WithContext(ctx).Create(h).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("create hex: %w", err)
	}
	return nil
}

func (d *HexDAO) Update(ctx context.Context, h *model.Hex) error {
	ctx, span := d.tracer().Start(ctx, "HexDAO.Update")
	defer span.End()
	if err := d.DB.WithContext(ctx).Model(&model.Hex{}).Where("id=?", h.ID).Updates(map[string]interface{}{
		"name": h.Name, "icon": h.Icon, "category": h.Category,
		"description": h.Description, "enabled": h.Enabled, "update_time": h.UpdateTime,
	}).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("update hex id=%d: %w", h.ID, err)
	}
	return nil
}

func (d *HexDAO) UpdateEnabled(ctx context.Context, id int64, enabled int8) error {
	ctx, span := d.tracer().Start(ctx, "HexDAO.UpdateEnabled")
	defer span.End()
	if err := d.DB.WithContext(ctx).Model(&model.Hex{}).Where("id=?", id).Update("enabled", enabled).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("update hex enabled id=%d: %w", id, err)
	}
	return nil
}

func (d *HexDAO) Delete(ctx context.Context, id int64) error {
	ctx, span := d.tracer().Start(ctx, "HexDAO.Delete")
	defer span.End()
	if err := d.DB.WithContext(ctx).Delete(&model.Hex{}, id).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("delete hex id=%d: %w", id, err)
	}
	return nil
}

// CountBuildRefs 英雄搭配对该海克斯的引用数（删除前完整性检查）
func (d *HexDAO) CountBuildRefs(ctx context.Context, id int64) (int64, error) {
	ctx, span := d.tracer().Start(ctx, "HexDAO.CountBuildRefs")
	defer span.End()
	var n int64
	if err := d.DB.WithContext(ctx).Model(&model.HeroHex{}).Where("hex_id = ?", id).Count(&n).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, fmt.Errorf("count build refs of hex id=%d: %w", id, err)
	}
	return n, nil
}
