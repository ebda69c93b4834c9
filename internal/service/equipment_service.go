package service

import (
	"context"
	"encoding/json"
	"time"

	"go-gamepedia/internal/domain/model"
	"go-gamepedia/internal/pkg/cache"
	"go-gamepedia/internal/repository/dao"
)

const equipmentListCacheKey = "equipment:list"

// EquipmentService 装备管理；公开列表整表缓存，写操作后失效
// 被英雄出装引用的装备不允许删（软下架用 ChangeEnabled）
type EquipmentService struct {
	DAO   *dao.EquipmentDAO
	Cache cache.Cache
}

func NewEquipmentService(d *dao.EquipmentDAO, c cache.Cache) *EquipmentService {
	return &EquipmentService{DAO: d, Cache: c}
}

// PublicList 站点侧：仅启用装备，走缓存
func (s *EquipmentService) PublicList(ctx context.Context) ([]model.Equipment, error) {
	if s.Cache != nil {
		if v, _ := s.Cache.Get(ctx, equipmentListCacheKey); v != "" {
			var list []model.Equipment
			if json.Unmarshal([]byte(v), &list) == nil {
				return list, nil
			}
		}
	}
	list, err := s.DAO.List(ctx, "", true)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		if b, err := json.Marshal(list); err == nil {
			_ = s.Cache.SetEX(ctx, equipmentListCacheKey, string(b), cache.JitterTTL(5*time.Minute))
		}
	}
	return list, nil
}

func (s *EquipmentService) List(ctx context.Context, keywords string) ([]model.Equipment, error) {
	return s.DAO.List(ctx, keywords, false)
}

func (s *EquipmentService) Detail(ctx context.Context, id int64) (*model.Equipment, error) {
	e, err := s.DAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	return e, nil
}

type SaveEquipmentParams struct {
	Name        string
	Icon        string
	Price       int
	Tier        int8
	Description string
	Attributes  string
	Enabled     int8
}

func (s *EquipmentService) Add(ctx context.Context, p SaveEquipmentParams) (int64, error) {
	if p.Name == "" {
		return 0, ErrBadParam
	}
	now := time.Now().Unix()
	e := &model.Equipment{
		Name: p.Name, Icon: p.Icon, Price: p.Price, Tier: p.Tier,
		Description: p.Description, Attributes: p.Attributes, Enabled: p.Enabled,
		CreateTime: now, UpdateTime: now,
	}
	if err := s.DAO.Create(ctx, e); err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	return e.ID, nil
}

func (s *EquipmentService) Edit(ctx context.Context, id int64, p SaveEquipmentParams) error {
	cur, err := s.DAO.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrNotFound
	}
	cur.Name, cur.Icon, cur.Price, cur.Tier = p.Name, p.Icon, p.Price, p.Tier
	cur.Description, cur.Attributes, cur.Enabled = p.Description, p.Attributes, p.Enabled
	cur.UpdateTime = time.Now().Unix()
	if err := s.DAO.Update(ctx, cur); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *EquipmentService) ChangeEnabled(ctx context.Context, id int64, enabled int8) error {
	cur, err := s.DAO.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrNotFound
	}
	if err := s.DAO.UpdateEnabled(ctx, id, enabled); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *EquipmentService) Delete(ctx context.Context, id int64) error {
	cur, err := s.DAO.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrNotFound
	}
	n, err := s.DAO.CountBuildRefs(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrIntegrity
	}
	if err := s.DAO.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *EquipmentService) invalidate(ctx context.Context) {
	if s.Cache != nil {
		_ = s.Cache.Del(ctx, equipmentListCacheKey)
	}
}
