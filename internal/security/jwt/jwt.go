package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken 校验失败统一返回此错误：过期、篡改、格式错误不对外区分
var ErrInvalidToken = errors.New("invalid or expired token")

type Manager struct {
	secret []byte
	expire time.Duration
	issuer string
}

type Claims struct {
	UserID   int64  `json:"uid"`
	RoleCode string `json:"role"`
	JTI      string `json:"jti"`
	jwtlib.RegisteredClaims
}

// NewManager expireSeconds 为令牌有效期（默认配置 7 天）
func NewManager(secret string, expireSeconds int, issuer string) *Manager {
	return &Manager{secret: []byte(secret), expire: time.Duration(expireSeconds) * time.Second, issuer: issuer}
}

// Issue 签发令牌：身份 + 角色 code + jti；过期时间在签发时固定
func (m *Manager) Issue(userID int64, roleCode, jti string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		RoleCode: roleCode,
		JTI:      jti,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(m.expire)),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify 校验签名与有效期；任何失败都折叠为 ErrInvalidToken
func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (interface{}, error) {
		return m.secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Decode 不校验签名，仅做非安全场景的载荷展示；禁止用于鉴权判断
func (m *Manager) Decode(tokenStr string) (*Claims, error) {
	var claims Claims
	parser := jwtlib.NewParser()
	if _, _, err := parser.ParseUnverified(tokenStr, &claims); err != nil {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

func (m *Manager) ExpireDuration() time.Duration { return m.expire }
