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

type HeroDAO struct{ DB *gorm.DB }

func NewHeroDAO(db *gorm.DB) *HeroDAO { return &HeroDAO{DB: db} }

func (d *HeroDAO) tracer() trace.Tracer { return otel.Tracer("dao.hero") }

type ListHeroFilter struct {
	Keywords    string
	Faction     string
	EnabledOnly bool
	Offset      int
	Limit       int
}

func (d *HeroDAO) List(ctx context.Context, f ListHeroFilter) ([]model.Hero, int64, error) {
	ctx, span := d.tracer().Start(ctx, "HeroDAO.List")
	defer span.End()
	q := d.DB.WithContext(ctx).Model(&model.Hero{})
	if f.Keywords != "" {
		q = q.Where("name ILIKE ? OR title ILIKE ?", "%"+f.Keywords+"%", "%"+f.Keywords+"%")
	}
	if f.Faction != "" {
		q = q.Where("faction = ?", f.Faction)
	}
	if f.EnabledOnly {
		q = q.Where("enabled = 1")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, fmt.Errorf("count heroes: %w", err)
	}
	if f.Limit <= 0 {
		f.Limit = 500
	}
	var list []model.Hero
	if err := q.Offset(f.Offset).Limit(f.Limit).Order("id ASC").Find(&list).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, 0, fmt.Errorf("list heroes: %w", err)
	}
	return list, total, nil
}

func (d *HeroDAO) FindByID(ctx context.Context, id int64) (*model.Hero, error) {
	ctx, span := d.tracer().Start(ctx, "HeroDAO.FindByID")
	defer span.End()
	var h model.Hero
	if err := d.DB.WithContext(ctx).First(&h, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("find hero id=%d: %w", id, err)
	}
	return &h, nil
}

func (d *HeroDAO) Create(ctx context.Context, h *model.Hero) error {
	ctx, span := d.tracer().Start(ctx, "HeroDAO.Create")
	defer span.End()
	if err := d.DB.WithContext(ctx).Create(h).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("create hero: %w", err)
	}
	return nil
}

func (d *HeroDAO) Update(ctx context.Context, h *model.Hero) error {
	ctx, span := d.tracer().Start(ctx, "HeroDAO.Update")
	defer span.End()
	if err := d.DB.WithContext(ctx).Model(&model.Hero{}).Where("id=?", h.ID).Updates(map[string]interface{}{
		"name": h.Name, "title": h.Title, "faction": h.Faction, "avatar": h.Avatar,
		"story": h.Story, "attack": h.Attack, "defense": h.Defense, "magic": h.Magic,
		"difficulty": h.Difficulty, "skills": h.Skills, "enabled": h.Enabled,
		"update_time": h.UpdateTime,
	}).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("update hero id=%d: %w", h.ID, err)
	}
	return nil
}

func (d *HeroDAO) UpdateEnabled(ctx context.Context, id int64, enabled int8) error {
	ctx, span := d.tracer().Start(ctx, "HeroDAO.UpdateEnabled")
	defer span.End()
	if err := d.DB.WithContext(ctx).Model(&model.Hero{}).Where("id=?", id).Update("enabled", enabled).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("update hero enabled id=%d: %w", id, err)
	}
	return nil
}

// DeleteWithBuild 删除英雄并在同一事务内级联清理出装/海克斯关联
func (d *HeroDAO) DeleteWithBuild(ctx context.Context, id int64) error {
	ctx, span := d.tracer().Start(ctx, "HeroDAO.DeleteWithBuild")
	defer span.End()
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Hero{}, id).Error; err != nil {
			return err
		}
		if err := tx.Where("hero_id = ?", id).Delete(&model.HeroEquipment{}).Error; err != nil {
			return err
		}
		return tx.Where("hero_id = ?", id).Delete(&model.HeroHex{}).Error
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("delete hero id=%d: %w", id, err)
	}
	return nil
}
