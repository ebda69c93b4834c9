package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, RoleAdmin, KindOf("admin"))
	assert.Equal(t, RoleContentAdmin, KindOf("content_admin"))
	assert.Equal(t, RoleEditor, KindOf("editor"))
	assert.Equal(t, RoleUser, KindOf("user"))
	assert.Equal(t, RoleUnknown, KindOf(""))
	assert.Equal(t, RoleUnknown, KindOf("root"))
}

func TestParseCode(t *testing.T) {
	c, ok := ParseCode("hero:edit")
	assert.True(t, ok)
	assert.Equal(t, Code{Resource: "hero", Action: "edit"}, c)

	c, ok = ParseCode("  Hero:Edit ")
	assert.True(t, ok)
	assert.Equal(t, "hero:edit", c.String())

	for _, bad := range []string{"", "hero", ":edit", "hero:", ":"} {
		_, ok := ParseCode(bad)
		assert.False(t, ok, "input %q", bad)
	}
}

func TestPermSetHasAny(t *testing.T) {
	set := NewPermSet([]string{"hero:list", "hex:edit", "bogus"})
	assert.Len(t, set, 2)

	assert.True(t, set.HasAny("hero:list", "hero:edit"))
	assert.True(t, set.HasAny("hex:edit"))
	assert.False(t, set.HasAny("hero:edit"))
	assert.False(t, set.HasAny())
	assert.False(t, NewPermSet(nil).HasAny("hero:list"))
}
