package service

import (
	"context"
	"testing"

	"go-gamepedia/pkg/crypto"

	"go-gamepedia/internal/repository/dao"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*UserService, sqlmock.Sqlmock) {
	gdb, mock := newMockDB(t)
	s := NewUserService(dao.NewUserDAO(gdb), dao.NewRoleDAO(gdb), nil)
	return s, mock
}

// 自己禁用/删除自己会把自己锁在门外，服务层直接拒绝
func TestUserSelfGuards(t *testing.T) {
	ctx := context.Background()
	s, _ := newUserService(t)

	err := s.ChangeStatus(ctx, 42, 42, 0)
	assert.ErrorIs(t, err, ErrSelfForbidden)

	err = s.Delete(ctx, 42, 42)
	assert.ErrorIs(t, err, ErrSelfForbidden)

	// 超级管理员账号任何人都不能删
	err = s.Delete(ctx, 42, 1)
	assert.ErrorIs(t, err, ErrSelfForbidden)
}

func TestUserAddDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s, mock := newUserService(t)

	mock.ExpectQuery(`SELECT \* FROM "user"`).
		WithArgs("bob", 1).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(42, "bob", "Bob", "x", "", "", nil, 1, 0, 0))

	_, err := s.Add(ctx, AddUserParams{Username: "bob", Password: "secret"})
	assert.ErrorIs(t, err, ErrExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

// 绑定不存在的角色被拒
func TestUserAddUnknownRole(t *testing.T) {
	ctx := context.Background()
	s, mock := newUserService(t)

	mock.ExpectQuery(`SELECT \* FROM "user"`).
		WithArgs("carol", 1).
		WillReturnRows(sqlmock.NewRows(userColumns()))
	mock.ExpectQuery(`SELECT \* FROM "role"`).
		WithArgs(int64(99), 1).
		WillReturnRows(sqlmock.NewRows(roleColumns()))

	rid := int64(99)
	_, err := s.Add(ctx, AddUserParams{Username: "carol", Password: "secret", RoleID: &rid})
	assert.ErrorIs(t, err, ErrIntegrity)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserChangePasswordWrongOld(t *testing.T) {
	ctx := context.Background()
	s, mock := newUserService(t)

	hashed := crypto.HashPassword("right-old")
	mock.ExpectQuery(`SELECT \* FROM "user"`).
		WithArgs(int64(42), 1).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(42, "bob", "Bob", hashed, "", "", nil, 1, 0, 0))

	err := s.ChangePassword(ctx, 42, "wrong-old", "new-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	require.NoError(t, mock.ExpectationsWereMet())
}
