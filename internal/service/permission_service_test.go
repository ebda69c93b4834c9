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

func newPermService(t *testing.T) (*PermissionService, sqlmock.Sqlmock) {
	gdb, mock := newMockDB(t)
	p := NewPermissionService(dao.NewUserDAO(gdb), dao.NewRoleDAO(gdb), dao.NewMenuDAO(gdb), cache.New(time.Minute))
	return p, mock
}

// 编辑角色用户：解析出角色菜单里的权限码，网关按 OR 语义判定
func TestResolveEditorRole(t *testing.T) {
	ctx := context.Background()
	p, mock := newPermService(t)

	mock.ExpectQuery(`SELECT \* FROM "user"`).
		WithArgs(int64(42), 1).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(42, "bob", "Bob", "x", "", "", 7, 1, 0, 0))
	mock.ExpectQuery(`FROM "menu" JOIN role_menu`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(menuColumns()).
			AddRow(10, 0, "英雄管理", "/hero", "", 2, "", 1, 1).
			AddRow(11, 10, "编辑", "", "", 3, "hero:edit", 1, 1).
			AddRow(12, 10, "删除", "", "", 3, "hero:delete", 2, 0). // 禁用节点不产生权限
			AddRow(13, 10, "坏码", "", "", 3, "not-a-code", 3, 1)) // 非法码被丢弃

	set, err := p.Resolve(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, []string{"hero:edit"}, set.Strings())

	assert.True(t, p.HasAny(ctx, 42, "hero:edit"))
	assert.True(t, p.HasAny(ctx, 42, "hero:delete", "hero:edit")) // OR 语义
	assert.False(t, p.HasAny(ctx, 42, "user:delete"))
	require.NoError(t, mock.ExpectationsWereMet())

	m := p.SnapshotMetrics()
	assert.Equal(t, uint64(1), m.DBLoad) // HasAny 走缓存，不再回源
	assert.True(t, m.Hit >= 3)
}

func TestResolveSuperAdmin(t *testing.T) {
	ctx := context.Background()
	p, mock := newPermService(t)

	mock.ExpectQuery(`SELECT \* FROM "menu"`).
		WillReturnRows(sqlmock.NewRows(menuColumns()).
			AddRow(11, 10, "编辑", "", "", 3, "hero:edit", 1, 1).
			AddRow(12, 10, "删除", "", "", 3, "hero:delete", 2, 1))

	set, err := p.Resolve(ctx, 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"hero:edit", "hero:delete"}, set.Strings())

	// 超级管理员网关直接放行，不依赖集合内容
	assert.True(t, p.HasAny(ctx, 1, "anything:at-all"))
}

func TestResolveUserWithoutRole(t *testing.T) {
	ctx := context.Background()
	p, mock := newPermService(t)

	mock.ExpectQuery(`SELECT \* FROM "user"`).
		WithArgs(int64(5), 1).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(5, "guest", "", "x", "", "", nil, 1, 0, 0))

	set, err := p.Resolve(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, set)

	// 第二次命中空 sentinel，不再查库
	set, err = p.Resolve(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, set)
	require.NoError(t, mock.ExpectationsWereMet())
}

// 角色授权变化 -> 失效 -> 重新回源拿到新集合
func TestInvalidateRoleForcesReload(t *testing.T) {
	ctx := context.Background()
	p, mock := newPermService(t)

	userRow := func() *sqlmock.Rows {
		return sqlmock.NewRows(userColumns()).AddRow(42, "bob", "Bob", "x", "", "", 7, 1, 0, 0)
	}
	mock.ExpectQuery(`SELECT \* FROM "user"`).WithArgs(int64(42), 1).WillReturnRows(userRow())
	mock.ExpectQuery(`FROM "menu" JOIN role_menu`).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(menuColumns()).AddRow(11, 10, "编辑", "", "", 3, "hero:edit", 1, 1))

	set, err := p.Resolve(ctx, 42)
	require.NoError(t, err)
	assert.True(t, set.HasAny("hero:edit"))

	// InvalidateRole: pluck 该角色用户 id，逐个删缓存
	mock.ExpectQuery(`SELECT "id" FROM "user"`).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	p.InvalidateRole(ctx, 7)

	mock.ExpectQuery(`SELECT \* FROM "user"`).WithArgs(int64(42), 1).WillReturnRows(userRow())
	mock.ExpectQuery(`FROM "menu" JOIN role_menu`).WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(menuColumns()).
			AddRow(11, 10, "编辑", "", "", 3, "hero:edit", 1, 1).
			AddRow(12, 10, "删除", "", "", 3, "hero:delete", 2, 1))

	set, err = p.Resolve(ctx, 42)
	require.NoError(t, err)
	assert.True(t, set.HasAny("hero:delete"))
	require.NoError(t, mock.ExpectationsWereMet())
}
