package menutree

import (
	"encoding/json"
	"testing"

	"go-gamepedia/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menu(id, parent int64, sortv int, opts ...func(*model.Menu)) model.Menu {
	m := model.Menu{ID: id, ParentID: parent, Name: "n", Kind: model.MenuKindMenu, Sort: sortv, Enabled: 1}
	for _, o := range opts {
		o(&m)
	}
	return m
}

func withPerm(code string) func(*model.Menu) { return func(m *model.Menu) { m.PermCode = code } }
func disabled() func(*model.Menu)            { return func(m *model.Menu) { m.Enabled = 0 } }

func TestBuildRoundTrip(t *testing.T) {
	input := []model.Menu{
		menu(1, 0, 2),
		menu(2, 0, 1),
		menu(3, 1, 1),
		menu(4, 1, 1), // 同 sort，按 id 破平
		menu(5, 3, 1),
	}
	forest := Build(input)
	flat := Flatten(forest)
	require.Len(t, flat, len(input))

	ids := make(map[int64]struct{}, len(flat))
	for _, n := range flat {
		ids[n.ID] = struct{}{}
	}
	for _, m := range input {
		assert.Contains(t, ids, m.ID)
	}
}

func TestBuildSiblingOrder(t *testing.T) {
	forest := Build([]model.Menu{
		menu(1, 0, 5),
		menu(2, 0, 1),
		menu(3, 1, 9),
		menu(4, 1, 3),
		menu(5, 1, 3),
	})
	require.Len(t, forest, 2)
	assert.Equal(t, int64(2), forest[0].ID)
	assert.Equal(t, int64(1), forest[1].ID)

	ch := forest[1].Children
	require.Len(t, ch, 3)
	assert.Equal(t, int64(4), ch[0].ID) // sort 3, id 4
	assert.Equal(t, int64(5), ch[1].ID) // sort 3, id 5
	assert.Equal(t, int64(3), ch[2].ID)
	for i := 1; i < len(ch); i++ {
		assert.GreaterOrEqual(t, ch[i].Sort, ch[i-1].Sort)
	}
}

func TestBuildDropsOrphans(t *testing.T) {
	forest := Build([]model.Menu{
		menu(1, 0, 1),
		menu(2, 999, 1), // 父节点不存在
		menu(3, 2, 1),   // 父节点是孤儿，整条链不可达
	})
	flat := Flatten(forest)
	require.Len(t, flat, 1)
	assert.Equal(t, int64(1), flat[0].ID)
}

func TestBuildEmptyInput(t *testing.T) {
	assert.Empty(t, Build(nil))
	assert.Empty(t, Build([]model.Menu{}))
}

func TestBuildEnabledFiltersSubtree(t *testing.T) {
	forest := BuildEnabled([]model.Menu{
		menu(1, 0, 1),
		menu(2, 0, 2, disabled()),
		menu(3, 2, 1), // 父被禁用 -> 孤儿，被丢弃
		menu(4, 1, 1),
	})
	flat := Flatten(forest)
	require.Len(t, flat, 2)
	for _, n := range flat {
		assert.EqualValues(t, 1, n.Enabled)
	}
}

func TestChildrenOmittedWhenEmpty(t *testing.T) {
	forest := Build([]model.Menu{menu(1, 0, 1)})
	b, err := json.Marshal(forest[0])
	require.NoError(t, err)
	assert.NotContains(t, string(b), "children")
}

func TestCollectPermissions(t *testing.T) {
	forest := Build([]model.Menu{
		menu(1, 0, 1),
		menu(2, 1, 1, withPerm("hero:list")),
		menu(3, 1, 2, withPerm("hero:edit")),
		menu(4, 3, 1, withPerm("hero:edit")), // 重复折叠
		menu(5, 3, 2),                        // 空 code 跳过
	})
	codes := CollectPermissions(forest)
	assert.ElementsMatch(t, []string{"hero:list", "hero:edit"}, codes)
}
