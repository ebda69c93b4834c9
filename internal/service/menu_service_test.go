package service

import (
	"context"
	"testing"
	"time"

	"go-gamepedia/internal/pkg/cache"
	"go-gamepedia/internal/repository/dao"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMenuService(t *testing.T) (*MenuService, sqlmock.Sqlmock) {
	gdb, mock := newMockDB(t)
	s := NewMenuService(dao.NewMenuDAO(gdb), dao.NewRoleDAO(gdb), dao.NewUserDAO(gdb), cache.New(time.Minute), nil)
	return s, mock
}

func TestMenuAddParentNotFound(t *testing.T) {
	ctx := context.Background()
	s, mock := newMenuService(t)

	mock.ExpectQuery(`SELECT \* FROM "menu"`).
		WithArgs(int64(99), 1).
		WillReturnRows(sqlmock.NewRows(menuColumns()))

	_, err := s.Add(ctx, AddMenuParams{ParentID: 99, Name: "英雄", Kind: 2, Enabled: 1})
	assert.ErrorIs(t, err, ErrParentNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuAddRejectsBadPermCode(t *testing.T) {
	ctx := context.Background()
	s, _ := newMenuService(t)

	_, err := s.Add(ctx, AddMenuParams{ParentID: 0, Name: "编辑", Kind: 3, PermCode: "no-colon"})
	assert.ErrorIs(t, err, ErrBadParam)
}

// 把节点挂到自己的后代下面必须被拒绝
func TestMenuEditReparentCycle(t *testing.T) {
	ctx := context.Background()
	s, mock := newMenuService(t)

	mock.ExpectQuery(`SELECT \* FROM "menu"`).
		WithArgs(int64(1), 1).
		WillReturnRows(sqlmock.NewRows(menuColumns()).AddRow(1, 0, "根", "/", "", 1, "", 1, 1))
	mock.ExpectQuery(`SELECT \* FROM "menu"`).
		WithArgs(int64(2), 1).
		WillReturnRows(sqlmock.NewRows(menuColumns()).AddRow(2, 1, "子", "/c", "", 2, "", 1, 1))
	mock.ExpectQuery(`SELECT \* FROM "menu"`).
		WillReturnRows(sqlmock.NewRows(menuColumns()).
			AddRow(1, 0, "根", "/", "", 1, "", 1, 1).
			AddRow(2, 1, "子", "/c", "", 2, "", 1, 1))

	newParent := int64(2)
	err := s.Edit(ctx, EditMenuParams{ID: 1, ParentID: &newParent})
	assert.ErrorIs(t, err, ErrTreeCycle)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuEditReparentToSelf(t *testing.T) {
	ctx := context.Background()
	s, mock := newMenuService(t)

	mock.ExpectQuery(`SELECT \* FROM "menu"`).
		WithArgs(int64(1), 1).
		WillReturnRows(sqlmock.NewRows(menuColumns()).AddRow(1, 0, "根", "/", "", 1, "", 1, 1))

	self := int64(1)
	err := s.Edit(ctx, EditMenuParams{ID: 1, ParentID: &self})
	assert.ErrorIs(t, err, ErrTreeCycle)
}

// 有子节点不允许删，先删叶子
func TestMenuDeleteWithChildrenRejected(t *testing.T) {
	ctx := context.Background()
	s, mock := newMenuService(t)

	mock.ExpectQuery(`SELECT \* FROM "menu"`).
		WithArgs(int64(10), 1).
		WillReturnRows(sqlmock.NewRows(menuColumns()).AddRow(10, 0, "英雄管理", "/hero", "", 2, "", 1, 1))
	mock.ExpectQuery(`SELECT count`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	err := s.Delete(ctx, 10)
	assert.ErrorIs(t, err, ErrIntegrity)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMenuDeleteLeaf(t *testing.T) {
	ctx := context.Background()
	s, mock := newMenuService(t)

	mock.ExpectQuery(`SELECT \* FROM "menu"`).
		WithArgs(int64(11), 1).
		WillReturnRows(sqlmock.NewRows(menuColumns()).AddRow(11, 10, "编辑", "", "", 3, "hero:edit", 1, 1))
	mock.ExpectQuery(`SELECT count`).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "menu"`).WithArgs(int64(11)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "role_menu"`).WithArgs(int64(11)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.Delete(ctx, 11))
	require.NoError(t, mock.ExpectationsWereMet())
}
