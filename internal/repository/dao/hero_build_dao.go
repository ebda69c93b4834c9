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

type HeroBuildDAO struct{ DB *gorm.DB }

func NewHeroBuildDAO(db *gorm.DB) *HeroBuildDAO { return &HeroBuildDAO{DB: db} }

func (d *HeroBuildDAO) tracer() trace.Tracer { return otel.Tracer("dao.hero_build") }

// ListEquipment 出装列表，按 slot 升序
func (d *HeroBuildDAO) ListEquipment(ctx context.Context, heroID int64) ([]model.HeroEquipment, error) {
	ctx, span := d.tracer().Start(ctx, "HeroBuildDAO.ListEquipment")
	defer span.End()
	var list []model.HeroEquipment
	if err := d.DB.WithContext(ctx).Where("hero_id = ?", heroID).Order("slot ASC").Find(&list).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list build equipment hero_id=%d: %w", heroID, err)
	}
	return list, nil
}

func (d *HeroBuildDAO) ListHexes(ctx context.Context, heroID int64) ([]model.HeroHex, error) {
	ctx, span := d.tracer().Start(ctx, "HeroBuildDAO.ListHexes")
	defer span.End()
	var list []model.HeroHex
	if err := d.DB.WithContext(ctx).Where("hero_id = ?", heroID).Order("id ASC").Find(&list).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list build hexes hero_id=%d: %w", heroID, err)
	}
	return list, nil
}

// Replace 整体替换英雄的出装与海克斯，单事务
func (d *HeroBuildDAO) Replace(ctx context.Context, heroID int64, equipmentIDs, hexIDs []int64) error {
	ctx, span := d.tracer().Start(ctx, "HeroBuildDAO.Replace")
	defer span.End()
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hero_id = ?", heroID).Delete(&model.HeroEquipment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hero_id = ?", heroID).Delete(&model.HeroHex{}).Error; err != nil {
			return err
		}
		if len(equipmentIDs) > 0 {
			rows := make([]model.HeroEquipment, 0, len(equipmentIDs))
			for i, eid := range equipmentIDs {
				rows = append(rows, model.HeroEquipment{HeroID: heroID, EquipmentID: eid, Slot: i + 1})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		if len(hexIDs) > 0 {
			rows := make([]model.HeroHex, 0, len(hexIDs))
			for _, hid := range hexIDs {
				rows = append(rows, model.HeroHex{HeroID: heroID, HexID: hid})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("replace build hero_id=%d: %w", heroID, err)
	}
	return nil
}
