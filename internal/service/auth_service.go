package service

import (
	"context"

	"go-gamepedia/internal/repository/dao"
	redisrepo "go-gamepedia/internal/repository/redis"
	"go-gamepedia/internal/security/jwt"
	"go-gamepedia/pkg/crypto"

	"github.com/google/uuid"
)

// AuthService 提供用户认证服务
type AuthService struct {
	Users *dao.UserDAO
	Roles *dao.RoleDAO
	JWT   *jwt.Manager
	Redis *redisrepo.Client

	JTIPrefix string // 形如 "jwt:jti:"，登录时写入，注销时删除
}

// NewAuthService 创建一个新的 AuthService 实例
func NewAuthService(u *dao.UserDAO, r *dao.RoleDAO, j *jwt.Manager, rd *redisrepo.Client, jtiPrefix string) *AuthService {
	if jtiPrefix == "" {
		jtiPrefix = "jwt:jti:"
	}
	return &AuthService{Users: u, Roles: r, JWT: j, Redis: rd, JTIPrefix: jtiPrefix}
}

type LoginResult struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Nickname string `json:"nickname"`
	RoleCode string `json:"role_code"`
}

// Login 校验口令并签发令牌；令牌内只带稳定的 role code，权限每次请求重新解析
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.Users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !crypto.VerifyPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	if user.Status != 1 {
		return nil, ErrUserDisabled
	}
	// 如果是 legacy md5，异步升级为 bcrypt
	if crypto.IsLegacyMD5(user.Password) {
		go func(uid int64, plain string) {
			h := crypto.HashPassword(plain)
			_ = s.Users.UpdatePassword(context.Background(), uid, h)
		}(user.ID, password)
	}
	roleCode := ""
	if user.RoleID != nil {
		role, err := s.Roles.FindByID(ctx, *user.RoleID)
		if err != nil {
			return nil, err
		}
		if role != nil {
			roleCode = role.Code
		}
	}
	jti := uuid.NewString()
	token, err := s.JWT.Issue(user.ID, roleCode, jti)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		_ = s.Redis.SetTTL(ctx, s.JTIPrefix+jti, 1, s.JWT.ExpireDuration())
	}
	return &LoginResult{Token: token, UserID: user.ID, Username: user.Username, Nickname: user.Nickname, RoleCode: roleCode}, nil
}

// Logout 删除当前 JTI 使 token 立即失效（需在上层解析出 jti）
func (s *AuthService) Logout(ctx context.Context, jti string) error {
	if jti == "" || s.Redis == nil {
		return nil
	}
	return s.Redis.Client.Del(ctx, s.JTIPrefix+jti).Err()
}

// JTIAlive 检查 JTI 是否仍有效；Redis 不可用时放行，交由签名与过期时间兜底
func (s *AuthService) JTIAlive(ctx context.Context, jti string) bool {
	if s.Redis == nil {
		return true
	}
	n, err := s.Redis.Client.Exists(ctx, s.JTIPrefix+jti).Result()
	if err != nil {
		return true
	}
	return n > 0
}
