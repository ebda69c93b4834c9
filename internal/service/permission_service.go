package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"go-gamepedia/internal/domain/model"
	"go-gamepedia/internal/metrics"
	"go-gamepedia/internal/pkg/cache"
	"go-gamepedia/internal/repository/dao"
	"go-gamepedia/internal/security/rbac"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// PermissionService 负责把用户解析为权限码集合并缓存（LayeredCache：本地 + Redis）
// 权限码来自角色可见、启用中的菜单节点 perm_code；令牌里不存权限，
// 每次请求都重新解析，角色/菜单变更在缓存 TTL 内生效，失效钩子则立即生效。

type PermissionService struct {
	Users *dao.UserDAO
	Roles *dao.RoleDAO
	Menus *dao.MenuDAO
	Cache cache.Cache

	ttl         time.Duration
	redisPrefix string

	// metrics
	metricHit    uint64 // 缓存命中
	metricDBLoad uint64 // DB 回源次数
}

func NewPermissionService(u *dao.UserDAO, r *dao.RoleDAO, m *dao.MenuDAO, c cache.Cache) *PermissionService {
	return &PermissionService{Users: u, Roles: r, Menus: m, Cache: c, ttl: 5 * time.Minute, redisPrefix: "perm:uid:"}
}

func (p *PermissionService) tracer() trace.Tracer { return otel.Tracer("service.permission") }

func (p *PermissionService) setCacheWithTTL(ctx context.Context, key, val string, ttl time.Duration) {
	if p.Cache != nil {
		_ = p.Cache.SetEX(ctx, key, val, cache.JitterTTL(ttl))
	}
}

// Resolve 返回用户权限集合
// 超级管理员基于全部启用菜单构建完整集合；普通用户走 角色->菜单->perm_code
func (p *PermissionService) Resolve(ctx context.Context, uid int64) (rbac.PermSet, error) {
	ctx, span := p.tracer().Start(ctx, "PermissionService.Resolve")
	defer span.End()
	key := p.redisKey(uid)
	if p.Cache != nil {
		if v, _ := p.Cache.Get(ctx, key); v != "" {
			if cache.IsNilSentinel(v) {
				atomic.AddUint64(&p.metricHit, 1)
				metrics.CacheNilHit.Inc()
				return rbac.PermSet{}, nil
			}
			var arr []string
			if json.Unmarshal([]byte(v), &arr) == nil {
				atomic.AddUint64(&p.metricHit, 1)
				return rbac.NewPermSet(arr), nil
			}
		}
	}
	codesArr, err := p.loadCodes(ctx, uid)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	atomic.AddUint64(&p.metricDBLoad, 1)
	if len(codesArr) == 0 { // 空 sentinel 防穿透
		p.setCacheWithTTL(ctx, key, cache.WrapNil(true), 15*time.Second)
		return rbac.PermSet{}, nil
	}
	if b, err := json.Marshal(codesArr); err == nil {
		p.setCacheWithTTL(ctx, key, string(b), p.ttl)
	}
	return rbac.NewPermSet(codesArr), nil
}

// loadCodes DB 回源：启用菜单里收集合法 perm_code（非法码在此被丢弃，不进集合）
func (p *PermissionService) loadCodes(ctx context.Context, uid int64) ([]string, error) {
	if uid == model.SuperAdminID {
		menus, err := p.Menus.List(ctx, "")
		if err != nil {
			return nil, fmt.Errorf("list all menus for super admin: %w", err)
		}
		return collectCodes(menus), nil
	}
	user, err := p.Users.FindByID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("find user for permission resolve: %w", err)
	}
	if user == nil || user.RoleID == nil {
		return nil, nil
	}
	menus, err := p.Roles.ListMenusByRole(ctx, *user.RoleID)
	if err != nil {
		return nil, fmt.Errorf("list menus of role: %w", err)
	}
	return collectCodes(menus), nil
}

func collectCodes(menus []model.Menu) []string {
	arr := make([]string, 0, len(menus))
	seen := make(map[string]struct{}, len(menus))
	for _, m := range menus {
		if m.Enabled != 1 || m.PermCode == "" {
			continue
		}
		c, ok := rbac.ParseCode(m.PermCode)
		if !ok {
			continue
		}
		s := c.String()
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		arr = append(arr, s)
	}
	return arr
}

// HasAny 任一权限码满足即放行（OR 语义）
func (p *PermissionService) HasAny(ctx context.Context, uid int64, required ...string) bool {
	ctx, span := p.tracer().Start(ctx, "PermissionService.HasAny")
	defer span.End()
	if uid == model.SuperAdminID {
		return true
	}
	set, err := p.Resolve(ctx, uid)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false
	}
	return set.HasAny(required...)
}

// Invalidate 清除单个用户缓存（用户角色变化后调用）
func (p *PermissionService) Invalidate(uid int64) {
	ctx, span := p.tracer().Start(context.Background(), "PermissionService.Invalidate")
	defer span.End()
	metrics.PermissionInvalidateTotal.WithLabelValues("single").Inc()
	if p.Cache != nil {
		_ = p.Cache.Del(ctx, p.redisKey(uid))
	}
}

// InvalidateRole 角色的菜单集合或菜单本身变化后，使其所有用户失效
func (p *PermissionService) InvalidateRole(ctx context.Context, roleID int64) {
	ctx, span := p.tracer().Start(ctx, "PermissionService.InvalidateRole")
	defer span.End()
	uids, err := p.Users.ListIDsByRole(ctx, roleID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	metrics.PermissionInvalidateTotal.WithLabelValues("role").Inc()
	if p.Cache == nil {
		return
	}
	for _, uid := range uids {
		_ = p.Cache.Del(context.Background(), p.redisKey(uid))
	}
}

// InvalidateAllRoles 菜单树变更影响面不可知时，对所有角色逐个失效
func (p *PermissionService) InvalidateAllRoles(ctx context.Context) {
	ctx, span := p.tracer().Start(ctx, "PermissionService.InvalidateAllRoles")
	defer span.End()
	metrics.PermissionInvalidateTotal.WithLabelValues("all").Inc()
	roles, err := p.Roles.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	for _, r := range roles {
		p.InvalidateRole(ctx, r.ID)
	}
	// 超级管理员缓存也要清
	if p.Cache != nil {
		_ = p.Cache.Del(ctx, p.redisKey(model.SuperAdminID))
	}
}

func (p *PermissionService) redisKey(uid int64) string {
	return p.redisPrefix + strconv.FormatInt(uid, 10)
}

// PermissionMetrics 指标快照；HitRate = hit / (hit + dbLoad)

type PermissionMetrics struct {
	Hit     uint64  `json:"hit"`
	DBLoad  uint64  `json:"db_load"`
	HitRate float64 `json:"hit_rate"`
}

func (p *PermissionService) SnapshotMetrics() PermissionMetrics {
	h := atomic.LoadUint64(&p.metricHit)
	db := atomic.LoadUint64(&p.metricDBLoad)
	rate := 0.0
	if h+db > 0 {
		rate = float64(h) / float64(h+db)
	}
	return PermissionMetrics{Hit: h, DBLoad: db, HitRate: rate}
}

func (p *PermissionService) ResetMetrics() {
	atomic.StoreUint64(&p.metricHit, 0)
	atomic.StoreUint64(&p.metricDBLoad, 0)
}
