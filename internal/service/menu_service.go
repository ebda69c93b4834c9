package service

import (
	"context"
	"encoding/json"
	"time"

	"go-gamepedia/internal/domain/menutree"
	"go-gamepedia/internal/domain/model"
	"go-gamepedia/internal/pkg/cache"
	"go-gamepedia/internal/repository/dao"
	"go-gamepedia/internal/security/rbac"
)

const menuTreeCacheKey = "menu:tree"

// MenuService 菜单节点管理 + 树构建
// 树缓存 key: menu:tree（全量、无关键字时）；任何写操作后整树失效并联动权限缓存
type MenuService struct {
	DAO   *dao.MenuDAO
	Roles *dao.RoleDAO
	Users *dao.UserDAO
	Cache cache.Cache
	Perms *PermissionService
}

func NewMenuService(d *dao.MenuDAO, r *dao.RoleDAO, u *dao.UserDAO, c cache.Cache, p *PermissionService) *MenuService {
	return &MenuService{DAO: d, Roles: r, Users: u, Cache: c, Perms: p}
}

// Tree 管理端菜单树；keywords 非空时返回扁平匹配列表（树形无意义）
func (s *MenuService) Tree(ctx context.Context, keywords string) ([]*menutree.Node, error) {
	if keywords == "" && s.Cache != nil {
		if v, _ := s.Cache.Get(ctx, menuTreeCacheKey); v != "" {
			var tree []*menutree.Node
			if json.Unmarshal([]byte(v), &tree) == nil {
				return tree, nil
			}
		}
	}
	menus, err := s.DAO.List(ctx, keywords)
	if err != nil {
		return nil, err
	}
	tree := menutree.Build(menus)
	if keywords == "" && s.Cache != nil {
		if b, err := json.Marshal(tree); err == nil {
			_ = s.Cache.SetEX(ctx, menuTreeCacheKey, string(b), cache.JitterTTL(2*time.Minute))
		}
	}
	return tree, nil
}

// AccessTree 用户侧菜单树：仅启用节点；普通用户再按角色可见集合过滤，按钮节点剔除
func (s *MenuService) AccessTree(ctx context.Context, uid int64) ([]*menutree.Node, error) {
	menus, err := s.visibleMenus(ctx, uid)
	if err != nil {
		return nil, err
	}
	visible := make([]model.Menu, 0, len(menus))
	for _, m := range menus {
		if m.Kind == model.MenuKindButton {
			continue
		}
		visible = append(visible, m)
	}
	return menutree.BuildEnabled(visible), nil
}

// Permissions 用户当前权限码列表（前端按钮显隐用）
func (s *MenuService) Permissions(ctx context.Context, uid int64) ([]string, error) {
	set, err := s.Perms.Resolve(ctx, uid)
	if err != nil {
		return nil, err
	}
	return set.Strings(), nil
}

func (s *MenuService) visibleMenus(ctx context.Context, uid int64) ([]model.Menu, error) {
	if uid == model.SuperAdminID {
		return s.DAO.List(ctx, "")
	}
	user, err := s.Users.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user == nil || user.RoleID == nil {
		return nil, nil
	}
	return s.Roles.ListMenusByRole(ctx, *user.RoleID)
}

type AddMenuParams struct {
	ParentID int64
	Name     string
	Path     string
	Icon     string
	Kind     int8
	PermCode string
	Sort     int
	Enabled  int8
}

func (s *MenuService) Add(ctx context.Context, p AddMenuParams) (int64, error) {
	if p.Name == "" || p.Kind < model.MenuKindDirectory || p.Kind > model.MenuKindButton {
		return 0, ErrBadParam
	}
	if p.PermCode != "" {
		if _, ok := rbac.ParseCode(p.PermCode); !ok {
			return 0, ErrBadParam
		}
	}
	if p.ParentID != model.MenuRootParentID {
		parent, err := s.DAO.FindByID(ctx, p.ParentID)
		if err != nil {
			return 0, err
		}
		if parent == nil {
			return 0, ErrParentNotFound
		}
	}
	m := &model.Menu{ParentID: p.ParentID, Name: p.Name, Path: p.Path, Icon: p.Icon, Kind: p.Kind, PermCode: p.PermCode, Sort: p.Sort, Enabled: p.Enabled}
	if err := s.DAO.Create(ctx, m); err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	return m.ID, nil
}

type EditMenuParams struct {
	ID       int64
	ParentID *int64
	Name     *string
	Path     *string
	Icon     *string
	Kind     *int8
	PermCode *string
	Sort     *int
	Enabled  *int8
}

func (s *MenuService) Edit(ctx context.Context, p EditMenuParams) error {
	if p.ID <= 0 {
		return ErrBadParam
	}
	cur, err := s.DAO.FindByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrNotFound
	}
	if p.ParentID != nil && *p.ParentID != cur.ParentID {
		if err := s.checkReparent(ctx, p.ID, *p.ParentID); err != nil {
			return err
		}
		cur.ParentID = *p.ParentID
	}
	if p.Name != nil {
		cur.Name = *p.Name
	}
	if p.Path != nil {
		cur.Path = *p.Path
	}
	if p.Icon != nil {
		cur.Icon = *p.Icon
	}
	if p.Kind != nil {
		if *p.Kind < model.MenuKindDirectory || *p.Kind > model.MenuKindButton {
			return ErrBadParam
		}
		cur.Kind = *p.Kind
	}
	if p.PermCode != nil {
		if *p.PermCode != "" {
			if _, ok := rbac.ParseCode(*p.PermCode); !ok {
				return ErrBadParam
			}
		}
		cur.PermCode = *p.PermCode
	}
	if p.Sort != nil {
		cur.Sort = *p.Sort
	}
	if p.Enabled != nil {
		cur.Enabled = *p.Enabled
	}
	if err := s.DAO.Update(ctx, cur); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// checkReparent 新父节点必须存在，且不能是自己或自己的后代（防环）
func (s *MenuService) checkReparent(ctx context.Context, id, newParent int64) error {
	if newParent == model.MenuRootParentID {
		return nil
	}
	if newParent == id {
		return ErrTreeCycle
	}
	parent, err := s.DAO.FindByID(ctx, newParent)
	if err != nil {
		return err
	}
	if parent == nil {
		return ErrParentNotFound
	}
	menus, err := s.DAO.List(ctx, "")
	if err != nil {
		return err
	}
	children := make(map[int64][]int64, len(menus))
	for _, m := range menus {
		children[m.ParentID] = append(children[m.ParentID], m.ID)
	}
	// BFS 从 id 向下，命中 newParent 即成环
	queue := []int64{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range children[cur] {
			if c == newParent {
				return ErrTreeCycle
			}
			queue = append(queue, c)
		}
	}
	return nil
}

func (s *MenuService) ChangeEnabled(ctx context.Context, id int64, enabled int8) error {
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

// Delete 有子节点的不允许删，先删叶子；删除与角色关联清理同一事务
func (s *MenuService) Delete(ctx context.Context, id int64) error {
	cur, err := s.DAO.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrNotFound
	}
	n, err := s.DAO.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrIntegrity
	}
	if err := s.DAO.DeleteWithAssociations(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// invalidate 树缓存 + 全角色权限缓存：菜单变更影响面覆盖所有角色
func (s *MenuService) invalidate(ctx context.Context) {
	if s.Cache != nil {
		_ = s.Cache.Del(ctx, menuTreeCacheKey)
	}
	if s.Perms != nil {
		s.Perms.InvalidateAllRoles(ctx)
	}
}
