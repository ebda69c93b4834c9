package service

import (
	"context"

	"go-gamepedia/internal/domain/model"
	"go-gamepedia/internal/repository/dao"
)

// RoleService 角色管理；code 唯一且建后不可改语义（可改 name/description）
type RoleService struct {
	DAO   *dao.RoleDAO
	Users *dao.UserDAO
	Menus *dao.MenuDAO
	Perms *PermissionService
}

func NewRoleService(d *dao.RoleDAO, u *dao.UserDAO, m *dao.MenuDAO, p *PermissionService) *RoleService {
	return &RoleService{DAO: d, Users: u, Menus: m, Perms: p}
}

type RoleItem struct {
	model.Role
	UserCount int64 `json:"user_count"`
}

func (s *RoleService) List(ctx context.Context) ([]RoleItem, error) {
	roles, err := s.DAO.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]RoleItem, 0, len(roles))
	for _, r := range roles {
		n, err := s.Users.CountByRole(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, RoleItem{Role: r, UserCount: n})
	}
	return items, nil
}

func (s *RoleService) Add(ctx context.Context, name, code, description string) (int64, error) {
	if name == "" || code == "" {
		return 0, ErrBadParam
	}
	exist, err := s.DAO.FindByCode(ctx, code)
	if err != nil {
		return 0, err
	}
	if exist != nil {
		return 0, ErrExists
	}
	r := &model.Role{Name: name, Code: code, Description: description}
	if err := s.DAO.Create(ctx, r); err != nil {
		return 0, err
	}
	return r.ID, nil
}

// Edit 只允许改 name/description；code 是稳定标识，令牌与网关都依赖它
func (s *RoleService) Edit(ctx context.Context, id int64, name, description *string) error {
	cur, err := s.DAO.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrNotFound
	}
	if name != nil {
		cur.Name = *name
	}
	if description != nil {
		cur.Description = *description
	}
	return s.DAO.Update(ctx, cur)
}

// Delete 还有用户挂在该角色上时拒绝
func (s *RoleService) Delete(ctx context.Context, id int64) error {
	cur, err := s.DAO.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrNotFound
	}
	n, err := s.Users.CountByRole(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrIntegrity
	}
	return s.DAO.DeleteWithAssociations(ctx, id)
}

func (s *RoleService) MenuIDs(ctx context.Context, roleID int64) ([]int64, error) {
	cur, err := s.DAO.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, ErrNotFound
	}
	return s.DAO.ListMenuIDs(ctx, roleID)
}

// GrantMenus 整体替换角色菜单集合；所有 menuID 必须存在，随后失效该角色用户的权限缓存
func (s *RoleService) GrantMenus(ctx context.Context, roleID int64, menuIDs []int64) error {
	cur, err := s.DAO.FindByID(ctx, roleID)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrNotFound
	}
	if len(menuIDs) > 0 {
		found, err := s.Menus.FindByIDs(ctx, menuIDs)
		if err != nil {
			return err
		}
		for _, id := range menuIDs {
			if _, ok := found[id]; !ok {
				return ErrIntegrity
			}
		}
	}
	if err := s.DAO.ReplaceMenus(ctx, roleID, menuIDs); err != nil {
		return err
	}
	if s.Perms != nil {
		s.Perms.InvalidateRole(ctx, roleID)
	}
	return nil
}
