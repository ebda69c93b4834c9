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

func heroColumns() []string {
	return []string{"id", "name", "title", "faction", "avatar", "story", "attack", "defense", "magic", "difficulty", "skills", "enabled", "create_time", "update_time"}
}

func equipmentColumns() []string {
	return []string{"id", "name", "icon", "price", "tier", "description", "attributes", "enabled", "create_time", "update_time"}
}

func newHeroService(t *testing.T) (*HeroService, sqlmock.Sqlmock) {
	gdb, mock := newMockDB(t)
	s := NewHeroService(dao.NewHeroDAO(gdb), dao.NewHeroBuildDAO(gdb), dao.NewEquipmentDAO(gdb), dao.NewHexDAO(gdb), cache.New(time.Minute))
	return s, mock
}

// 出装引用了不存在的装备 -> 整体拒绝
func TestSetBuildUnknownEquipment(t *testing.T) {
	ctx := context.Background()
	s, mock := newHeroService(t)

	mock.ExpectQuery(`SELECT \* FROM "hero"`).
		WithArgs(int64(3), 1).
		WillReturnRows(sqlmock.NewRows(heroColumns()).
			AddRow(3, "亚索", "疾风剑豪", "艾欧尼亚", "", "", 8, 4, 4, 9, "[]", 1, 0, 0))
	mock.ExpectQuery(`SELECT \* FROM "equipment"`).
		WillReturnRows(sqlmock.NewRows(equipmentColumns()).
			AddRow(21, "无尽之刃", "", 3400, 3, "", "{}", 1, 0, 0)) // 22 不存在

	err := s.SetBuild(ctx, 3, []int64{21, 22}, nil)
	assert.ErrorIs(t, err, ErrIntegrity)
	require.NoError(t, mock.ExpectationsWereMet())
}

// 公开详情：不存在的英雄写空 sentinel，穿透只打一次库
func TestPublicDetailNilSentinel(t *testing.T) {
	ctx := context.Background()
	s, mock := newHeroService(t)

	mock.ExpectQuery(`SELECT \* FROM "hero"`).
		WithArgs(int64(404), 1).
		WillReturnRows(sqlmock.NewRows(heroColumns()))

	_, err := s.Detail(ctx, 404, true)
	assert.ErrorIs(t, err, ErrNotFound)

	// 第二次命中 sentinel，不再查库
	_, err = s.Detail(ctx, 404, true)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

// 未启用英雄对公开侧不可见，对管理侧可见
func TestDetailEnabledVisibility(t *testing.T) {
	ctx := context.Background()
	s, mock := newHeroService(t)

	disabled := func() *sqlmock.Rows {
		return sqlmock.NewRows(heroColumns()).
			AddRow(3, "亚索", "疾风剑豪", "艾欧尼亚", "", "", 8, 4, 4, 9, "[]", 0, 0, 0)
	}
	mock.ExpectQuery(`SELECT \* FROM "hero"`).WithArgs(int64(3), 1).WillReturnRows(disabled())

	_, err := s.Detail(ctx, 3, true)
	assert.ErrorIs(t, err, ErrNotFound)

	mock.ExpectQuery(`SELECT \* FROM "hero"`).WithArgs(int64(3), 1).WillReturnRows(disabled())
	mock.ExpectQuery(`SELECT \* FROM "hero_equipment"`).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "hero_id", "equipment_id", "slot"}))
	mock.ExpectQuery(`SELECT \* FROM "hero_hex"`).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "hero_id", "hex_id"}))

	d, err := s.Detail(ctx, 3, false)
	require.NoError(t, err)
	assert.Equal(t, "亚索", d.Hero.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

// 出装按 slot 顺序返回
func TestDetailBuildOrder(t *testing.T) {
	ctx := context.Background()
	s, mock := newHeroService(t)

	mock.ExpectQuery(`SELECT \* FROM "hero"`).WithArgs(int64(3), 1).
		WillReturnRows(sqlmock.NewRows(heroColumns()).
			AddRow(3, "亚索", "疾风剑豪", "艾欧尼亚", "", "", 8, 4, 4, 9, "[]", 1, 0, 0))
	mock.ExpectQuery(`SELECT \* FROM "hero_equipment"`).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "hero_id", "equipment_id", "slot"}).
			AddRow(1, 3, 21, 1).
			AddRow(2, 3, 22, 2))
	mock.ExpectQuery(`SELECT \* FROM "hero_hex"`).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "hero_id", "hex_id"}))
	mock.ExpectQuery(`SELECT \* FROM "equipment"`).
		WillReturnRows(sqlmock.NewRows(equipmentColumns()).
			AddRow(22, "疾风之刃", "", 3000, 3, "", "{}", 1, 0, 0).
			AddRow(21, "无尽之刃", "", 3400, 3, "", "{}", 1, 0, 0))

	d, err := s.Detail(ctx, 3, false)
	require.NoError(t, err)
	require.Len(t, d.Equipment, 2)
	assert.Equal(t, "无尽之刃", d.Equipment[0].Name) // slot 1
	assert.Equal(t, "疾风之刃", d.Equipment[1].Name) // slot 2
	require.NoError(t, mock.ExpectationsWereMet())
}
