package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go-gamepedia/internal/domain/model"
	"go-gamepedia/internal/metrics"
	"go-gamepedia/internal/pkg/cache"
	"go-gamepedia/internal/repository/dao"
)

// HeroService 英雄资料与推荐搭配
// 公开详情（含出装/海克斯）走缓存，写操作后精确失效；不存在的 id 写 nil sentinel 防穿透
type HeroService struct {
	DAO       *dao.HeroDAO
	Builds    *dao.HeroBuildDAO
	Equipment *dao.EquipmentDAO
	Hexes     *dao.HexDAO
	Cache     cache.Cache
}

func NewHeroService(d *dao.HeroDAO, b *dao.HeroBuildDAO, e *dao.EquipmentDAO, h *dao.HexDAO, c cache.Cache) *HeroService {
	return &HeroService{DAO: d, Builds: b, Equipment: e, Hexes: h, Cache: c}
}

type ListHeroParams struct {
	Keywords    string
	Faction     string
	EnabledOnly bool
	Page        int
	Limit       int
}

type ListHeroResult struct {
	List  []model.Hero `json:"list"`
	Total int64        `json:"count"`
}

func (s *HeroService) List(ctx context.Context, p ListHeroParams) (*ListHeroResult, error) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	list, total, err := s.DAO.List(ctx, dao.ListHeroFilter{
		Keywords:    p.Keywords,
		Faction:     p.Faction,
		EnabledOnly: p.EnabledOnly,
		Offset:      (p.Page - 1) * p.Limit,
		Limit:       p.Limit,
	})
	if err != nil {
		return nil, err
	}
	return &ListHeroResult{List: list, Total: total}, nil
}

// HeroDetail 公开详情：英雄 + 出装（按 slot 序）+ 海克斯
type HeroDetail struct {
	Hero      model.Hero        `json:"hero"`
	Equipment []model.Equipment `json:"equipment"`
	Hexes     []model.Hex       `json:"hexes"`
}

// Detail publicOnly 为 true 时（站点公开接口）隐藏未启用英雄
func (s *HeroService) Detail(ctx context.Context, id int64, publicOnly bool) (*HeroDetail, error) {
	key := s.detailKey(id)
	if publicOnly && s.Cache != nil {
		if v, _ := s.Cache.Get(ctx, key); v != "" {
			if cache.IsNilSentinel(v) {
				metrics.CacheNilHit.Inc()
				return nil, ErrNotFound
			}
			var d HeroDetail
			if json.Unmarshal([]byte(v), &d) == nil {
				return &d, nil
			}
		}
	}
	hero, err := s.DAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if hero == nil || (publicOnly && hero.Enabled != 1) {
		if publicOnly && s.Cache != nil {
			_ = s.Cache.SetEX(ctx, key, cache.WrapNil(true), cache.JitterTTL(30*time.Second))
		}
		return nil, ErrNotFound
	}
	d, err := s.assembleDetail(ctx, *hero)
	if err != nil {
		return nil, err
	}
	if publicOnly && s.Cache != nil {
		if b, err := json.Marshal(d); err == nil {
			_ = s.Cache.SetEX(ctx, key, string(b), cache.JitterTTL(5*time.Minute))
		}
	}
	return d, nil
}

func (s *HeroService) assembleDetail(ctx context.Context, hero model.Hero) (*HeroDetail, error) {
	eqRows, err := s.Builds.ListEquipment(ctx, hero.ID)
	if err != nil {
		return nil, err
	}
	hexRows, err := s.Builds.ListHexes(ctx, hero.ID)
	if err != nil {
		return nil, err
	}
	d := &HeroDetail{Hero: hero, Equipment: []model.Equipment{}, Hexes: []model.Hex{}}
	if len(eqRows) > 0 {
		ids := make([]int64, 0, len(eqRows))
		for _, r := range eqRows {
			ids = append(ids, r.EquipmentID)
		}
		found, err := s.Equipment.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, r := range eqRows { // 保持 slot 顺序
			if e, ok := found[r.EquipmentID]; ok {
				d.Equipment = append(d.Equipment, e)
			}
		}
	}
	if len(hexRows) > 0 {
		ids := make([]int64, 0, len(hexRows))
		for _, r := range hexRows {
			ids = append(ids, r.HexID)
		}
		found, err := s.Hexes.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, r := range hexRows {
			if h, ok := found[r.HexID]; ok {
				d.Hexes = append(d.Hexes, h)
			}
		}
	}
	return d, nil
}

type SaveHeroParams struct {
	Name       string
	Title      string
	Faction    string
	Avatar     string
	Story      string
	Attack     int
	Defense    int
	Magic      int
	Difficulty int
	Skills     string
	Enabled    int8
}

func (s *HeroService) Add(ctx context.Context, p SaveHeroParams) (int64, error) {
	if p.Name == "" {
		return 0, ErrBadParam
	}
	now := time.Now().Unix()
	h := &model.Hero{
		Name: p.Name, Title: p.Title, Faction: p.Faction, Avatar: p.Avatar, Story: p.Story,
		Attack: p.Attack, Defense: p.Defense, Magic: p.Magic, Difficulty: p.Difficulty,
		Skills: p.Skills, Enabled: p.Enabled, CreateTime: now, UpdateTime: now,
	}
	if err := s.DAO.Create(ctx, h); err != nil {
		return 0, err
	}
	return h.ID, nil
}

func (s *HeroService) Edit(ctx context.Context, id int64, p SaveHeroParams) error {
	cur, err := s.DAO.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrNotFound
	}
	cur.Name, cur.Title, cur.Faction = p.Name, p.Title, p.Faction
	cur.Avatar, cur.Story, cur.Skills = p.Avatar, p.Story, p.Skills
	cur.Attack, cur.Defense, cur.Magic, cur.Difficulty = p.Attack, p.Defense, p.Magic, p.Difficulty
	cur.Enabled = p.Enabled
	cur.UpdateTime = time.Now().Unix()
	if err := s.DAO.Update(ctx, cur); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *HeroService) ChangeEnabled(ctx context.Context, id int64, enabled int8) error {
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
	s.invalidate(ctx, id)
	return nil
}

// Delete 英雄与其出装/海克斯关联同事务清理
func (s *HeroService) Delete(ctx context.Context, id int64) error {
	cur, err := s.DAO.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrNotFound
	}
	if err := s.DAO.DeleteWithBuild(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// SetBuild 整体替换推荐出装与海克斯；引用的装备/海克斯必须全部存在
func (s *HeroService) SetBuild(ctx context.Context, heroID int64, equipmentIDs, hexIDs []int64) error {
	cur, err := s.DAO.FindByID(ctx, heroID)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrNotFound
	}
	if len(equipmentIDs) > 0 {
		found, err := s.Equipment.FindByIDs(ctx, equipmentIDs)
		if err != nil {
			return err
		}
		for _, id := range equipmentIDs {
			if _, ok := found[id]; !ok {
				return ErrIntegrity
			}
		}
	}
	if len(hexIDs) > 0 {
		found, err := s.Hexes.FindByIDs(ctx, hexIDs)
		if err != nil {
			return err
		}
		for _, id := range hexIDs {
			if _, ok := found[id]; !ok {
				return ErrIntegrity
			}
		}
	}
	if err := s.Builds.Replace(ctx, heroID, equipmentIDs, hexIDs); err != nil {
		return err
	}
	s.invalidate(ctx, heroID)
	return nil
}

func (s *HeroService) invalidate(ctx context.Context, id int64) {
	if s.Cache != nil {
		_ = s.Cache.Del(ctx, s.detailKey(id))
	}
}

func (s *HeroService) detailKey(id int64) string { return "hero:detail:" + strconv.FormatInt(id, 10) }
