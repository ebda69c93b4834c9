package service

import (
	"context"
	"time"

	"go-gamepedia/internal/domain/model"
	"go-gamepedia/internal/repository/dao"
	"go-gamepedia/pkg/crypto"
)

// UserService 账号管理；对当前账号的删除与禁用在服务层挡掉
type UserService struct {
	DAO   *dao.UserDAO
	Roles *dao.RoleDAO
	Perms *PermissionService
}

func NewUserService(d *dao.UserDAO, r *dao.RoleDAO, p *PermissionService) *UserService {
	return &UserService{DAO: d, Roles: r, Perms: p}
}

type ListUserParams struct {
	Username string
	Status   *int8
	Page     int
	Limit    int
}

type ListUserResult struct {
	List  []model.User `json:"list"`
	Total int64        `json:"count"`
}

func (s *UserService) List(ctx context.Context, p ListUserParams) (*ListUserResult, error) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 || p.Limit > 200 {
		p.Limit = 20
	}
	list, total, err := s.DAO.List(ctx, p.Username, p.Status, (p.Page-1)*p.Limit, p.Limit)
	if err != nil {
		return nil, err
	}
	return &ListUserResult{List: list, Total: total}, nil
}

type AddUserParams struct {
	Username string
	Nickname string
	Password string
	Email    string
	RoleID   *int64
}

func (s *UserService) Add(ctx context.Context, p AddUserParams) (int64, error) {
	if p.Username == "" || p.Password == "" {
		return 0, ErrBadParam
	}
	exist, err := s.DAO.FindByUsername(ctx, p.Username)
	if err != nil {
		return 0, err
	}
	if exist != nil {
		return 0, ErrExists
	}
	if err := s.checkRole(ctx, p.RoleID); err != nil {
		return 0, err
	}
	now := time.Now().Unix()
	u := &model.User{
		Username:   p.Username,
		Nickname:   p.Nickname,
		Password:   crypto.HashPassword(p.Password),
		Email:      p.Email,
		RoleID:     p.RoleID,
		Status:     1,
		CreateTime: now,
		UpdateTime: now,
	}
	if err := s.DAO.Create(ctx, u); err != nil {
		return 0, err
	}
	return u.ID, nil
}

type EditUserParams struct {
	ID       int64
	Nickname *string
	Email    *string
	Avatar   *string
	RoleID   *int64 // 指向 0 表示清空角色
}

func (s *UserService) Edit(ctx context.Context, p EditUserParams) error {
	cur, err := s.DAO.FindByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrNotFound
	}
	roleChanged := false
	if p.Nickname != nil {
		cur.Nickname = *p.Nickname
	}
	if p.Email != nil {
		cur.Email = *p.Email
	}
	if p.Avatar != nil {
		cur.Avatar = *p.Avatar
	}
	if p.RoleID != nil {
		if *p.RoleID == 0 {
			cur.RoleID = nil
		} else {
			if err := s.checkRole(ctx, p.RoleID); err != nil {
				return err
			}
			cur.RoleID = p.RoleID
		}
		roleChanged = true
	}
	cur.UpdateTime = time.Now().Unix()
	if err := s.DAO.Update(ctx, cur); err != nil {
		return err
	}
	if roleChanged && s.Perms != nil {
		s.Perms.Invalidate(p.ID)
	}
	return nil
}

// ChangeStatus 禁用自己会把自己锁在门外，拒绝
func (s *UserService) ChangeStatus(ctx context.Context, operatorID, id int64, status int8) error {
	if status == 0 && operatorID == id {
		return ErrSelfForbidden
	}
	cur, err := s.DAO.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrNotFound
	}
	return s.DAO.UpdateStatus(ctx, id, status)
}

func (s *UserService) Delete(ctx context.Context, operatorID, id int64) error {
	if operatorID == id || id == model.SuperAdminID {
		return ErrSelfForbidden
	}
	cur, err := s.DAO.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrNotFound
	}
	if err := s.DAO.Delete(ctx, id); err != nil {
		return err
	}
	if s.Perms != nil {
		s.Perms.Invalidate(id)
	}
	return nil
}

// ChangePassword 本人修改，需验证旧口令
func (s *UserService) ChangePassword(ctx context.Context, uid int64, oldPwd, newPwd string) error {
	if newPwd == "" {
		return ErrBadParam
	}
	cur, err := s.DAO.FindByID(ctx, uid)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrNotFound
	}
	if !crypto.VerifyPassword(oldPwd, cur.Password) {
		return ErrInvalidCredentials
	}
	return s.DAO.UpdatePassword(ctx, uid, crypto.HashPassword(newPwd))
}

// ResetPassword 管理员重置，不验旧口令
func (s *UserService) ResetPassword(ctx context.Context, id int64, newPwd string) error {
	if newPwd == "" {
		return ErrBadParam
	}
	cur, err := s.DAO.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if cur == nil {
		return ErrNotFound
	}
	return s.DAO.UpdatePassword(ctx, id, crypto.HashPassword(newPwd))
}

type UserProfile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
	RoleCode string `json:"role_code"`
	RoleName string `json:"role_name"`
}

// Profile 登录态用户信息；超级管理员没有数据库角色，role_code 固定 admin
func (s *UserService) Profile(ctx context.Context, uid int64) (*UserProfile, error) {
	u, err := s.DAO.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	p := &UserProfile{ID: u.ID, Username: u.Username, Nickname: u.Nickname, Email: u.Email, Avatar: u.Avatar}
	if u.ID == model.SuperAdminID {
		p.RoleCode = "admin"
		p.RoleName = "超级管理员"
		return p, nil
	}
	if u.RoleID != nil {
		role, err := s.Roles.FindByID(ctx, *u.RoleID)
		if err != nil {
			return nil, err
		}
		if role != nil {
			p.RoleCode = role.Code
			p.RoleName = role.Name
		}
	}
	return p, nil
}

func (s *UserService) checkRole(ctx context.Context, roleID *int64) error {
	if roleID == nil {
		return nil
	}
	role, err := s.Roles.FindByID(ctx, *roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return ErrIntegrity
	}
	return nil
}
