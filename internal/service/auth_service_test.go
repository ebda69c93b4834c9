package service

import (
	"context"
	"testing"

	"go-gamepedia/internal/repository/dao"
	redisrepo "go-gamepedia/internal/repository/redis"
	"go-gamepedia/internal/security/jwt"
	"go-gamepedia/pkg/crypto"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, sqlmock.Sqlmock, *miniredis.Miniredis) {
	gdb, mock := newMockDB(t)
	mr := miniredis.RunT(t)
	rc := redisrepo.New(redisrepo.Config{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	mgr := jwt.NewManager("0123456789abcdef0123456789abcdef", 3600, "gamepedia-test")
	s := NewAuthService(dao.NewUserDAO(gdb), dao.NewRoleDAO(gdb), mgr, rc, "jwt:jti:")
	return s, mock, mr
}

func TestLoginIssuesTokenWithRoleCode(t *testing.T) {
	ctx := context.Background()
	s, mock, mr := newAuthService(t)

	hashed := crypto.HashPassword("secret")
	mock.ExpectQuery(`SELECT \* FROM "user"`).
		WithArgs("bob", 1).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(42, "bob", "Bob", hashed, "", "", 7, 1, 0, 0))
	mock.ExpectQuery(`SELECT \* FROM "role"`).
		WithArgs(int64(7), 1).
		WillReturnRows(sqlmock.NewRows(roleColumns()).AddRow(7, "编辑", "editor", ""))

	res, err := s.Login(ctx, "bob", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.UserID)
	assert.Equal(t, "editor", res.RoleCode)

	claims, err := s.JWT.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "editor", claims.RoleCode)

	// JTI 已落 Redis，注销后立即失效
	assert.True(t, s.JTIAlive(ctx, claims.JTI))
	require.NoError(t, s.Logout(ctx, claims.JTI))
	assert.False(t, s.JTIAlive(ctx, claims.JTI))
	assert.False(t, mr.Exists("jwt:jti:"+claims.JTI))
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	s, mock, _ := newAuthService(t)

	hashed := crypto.HashPassword("secret")
	mock.ExpectQuery(`SELECT \* FROM "user"`).
		WithArgs("bob", 1).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(42, "bob", "Bob", hashed, "", "", nil, 1, 0, 0))

	_, err := s.Login(ctx, "bob", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// 未知用户与密码错误不可区分
func TestLoginUnknownUser(t *testing.T) {
	ctx := context.Background()
	s, mock, _ := newAuthService(t)

	mock.ExpectQuery(`SELECT \* FROM "user"`).
		WithArgs("nobody", 1).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := s.Login(ctx, "nobody", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledUser(t *testing.T) {
	ctx := context.Background()
	s, mock, _ := newAuthService(t)

	hashed := crypto.HashPassword("secret")
	mock.ExpectQuery(`SELECT \* FROM "user"`).
		WithArgs("bob", 1).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(42, "bob", "Bob", hashed, "", "", nil, 0, 0, 0))

	_, err := s.Login(ctx, "bob", "secret")
	assert.ErrorIs(t, err, ErrUserDisabled)
}
