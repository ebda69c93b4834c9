package service

import (
	"context"
	"encoding/json"
	"time"

	"go-gamepedia/internal/domain/model"
	"go-gamepedia/internal/pkg/cache"
	"go-gamepedia/internal/repository/dao"
)

const hexListCacheKey = "hex:list"

// HexService 海克斯管理；语义与 EquipmentService 对齐
type HexService struct {
	DAO   *dao.HexDAO
	Cache cache.Cache
}

func NewHexService(d *dao.HexDAO, c cache.Cache) *HexService {
	return &HexService{DAO: d, Cache: c}
}

// PublicList 站点侧：仅启用，可按分类过滤；仅无分类的全量结果进缓存
func (s *HexService) PublicList(ctx context.Context, category string) ([]model.Hex, error) {
	if category == "" && s.Cache != nil {
		if v, _ := s.Cache.Get(ctx, hexListCacheKey); v != "" {
			var list []model.Hex
			if json.Unmarshal([]byte(v), &list) == nil {
				return list, nil
			}
		}
	}
	list, err := s.DAO.List(ctx, category, true)
	if err != nil {
		return nil, err
	}
	if category == "" && s.Cache != nil {
		if b, err := json.Marshal(list); err == nil {
			_ = s.Cache.SetEX(ctx, hexListCacheKey, string(b), cache.JitterTTL(5*time.Minute))
		}
	}
	return list, nil
}

func (s *HexService) List(ctx context.Context, category string) ([]model.Hex, error) {
	return s.DAO.List(ctx, category, false)
}

func (s *HexService) Detail(ctx context.Context, id int64) (*model.Hex, error) {
	h, err := s.DAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, ErrNotFound
	}
	return h, nil
}

type SaveHexParams struct {
	Name        string
	Icon        string
	Category    string
	Description string
	Enabled     int8
}

func (s *HexService) Add(ctx context.Context, p SaveHexParams) (int64, error) {
	if p.Name == "" {
		return 0, ErrBadParam
	}
	now := time.Now().Unix()
	h := &model.Hex{
		Name: p.Name, Icon: p.Icon, Category: p.Category,
		Description: p.Description, Enabled: p.Enabled,
		CreateTime: now, UpdateTime: now,
	}
	if err := s.DAO.Create(ctx, h); err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	return h.ID, nil
}

func (s *HexService) Edit(ctx context.Context, id int64, p SaveHexParams) error {
	cur, err := s.DAO.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrNotFound
	}
	cur.Name, cur.Icon, cur.Category = p.Name, p.Icon, p.Category
	cur.Description, cur.Enabled = p.Description, p.Enabled
	cur.UpdateTime = time.Now().Unix()
	if err := s.DAO.Update(ctx, cur); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *HexService) ChangeEnabled(ctx context.Context, id int64, enabled int8) error {
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

func (s *HexService) Delete(ctx context.Context, id int64) error {
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

func (s *HexService) invalidate(ctx context.Context) {
	if s.Cache != nil {
		_ = s.Cache.Del(ctx, hexListCacheKey)
	}
}
