package service

import (
	"context"
	"testing"

	"go-gamepedia/internal/repository/dao"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoleService(t *testing.T) (*RoleService, sqlmock.Sqlmock) {
	gdb, mock := newMockDB(t)
	s := NewRoleService(dao.NewRoleDAO(gdb), dao.NewUserDAO(gdb), dao.NewMenuDAO(gdb), nil)
	return s, mock
}

// code 唯一，重复创建被拒绝
func TestRoleAddDuplicateCode(t *testing.T) {
	ctx := context.Background()
	s, mock := newRoleService(t)

	mock.ExpectQuery(`SELECT \* FROM "role"`).
		WithArgs("editor", 1).
		WillReturnRows(sqlmock.NewRows(roleColumns()).AddRow(7, "编辑", "editor", ""))

	_, err := s.Add(ctx, "内容编辑", "editor", "")
	assert.ErrorIs(t, err, ErrExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

// 还有用户挂在角色上时不允许删
func TestRoleDeleteWithUsersRejected(t *testing.T) {
	ctx := context.Background()
	s, mock := newRoleService(t)

	mock.ExpectQuery(`SELECT \* FROM "role"`).
		WithArgs(int64(7), 1).
		WillReturnRows(sqlmock.NewRows(roleColumns()).AddRow(7, "编辑", "editor", ""))
	mock.ExpectQuery(`SELECT count`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	err := s.Delete(ctx, 7)
	assert.ErrorIs(t, err, ErrIntegrity)
	require.NoError(t, mock.ExpectationsWereMet())
}

// 授权集合里引用了不存在的菜单 -> 整体拒绝，不落半套关联
func TestRoleGrantMenusUnknownID(t *testing.T) {
	ctx := context.Background()
	s, mock := newRoleService(t)

	mock.ExpectQuery(`SELECT \* FROM "role"`).
		WithArgs(int64(7), 1).
		WillReturnRows(sqlmock.NewRows(roleColumns()).AddRow(7, "编辑", "editor", ""))
	mock.ExpectQuery(`SELECT \* FROM "menu"`).
		WillReturnRows(sqlmock.NewRows(menuColumns()).
			AddRow(10, 0, "英雄管理", "/hero", "", 2, "", 1, 1)) // 11 不存在

	err := s.GrantMenus(ctx, 7, []int64{10, 11})
	assert.ErrorIs(t, err, ErrIntegrity)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoleGrantMenusReplacesAtomically(t *testing.T) {
	ctx := context.Background()
	s, mock := newRoleService(t)

	mock.ExpectQuery(`SELECT \* FROM "role"`).
		WithArgs(int64(7), 1).
		WillReturnRows(sqlmock.NewRows(roleColumns()).AddRow(7, "编辑", "editor", ""))
	mock.ExpectQuery(`SELECT \* FROM "menu"`).
		WillReturnRows(sqlmock.NewRows(menuColumns()).
			AddRow(10, 0, "英雄管理", "/hero", "", 2, "", 1, 1).
			AddRow(11, 10, "编辑", "", "", 3, "hero:edit", 1, 1))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "role_menu"`).WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(`INSERT INTO "role_menu"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectCommit()

	require.NoError(t, s.GrantMenus(ctx, 7, []int64{10, 11}))
	require.NoError(t, mock.ExpectationsWereMet())
}
