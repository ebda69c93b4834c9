package cache

import (
	"context"
	"testing"
	"time"

	redisrepo "go-gamepedia/internal/repository/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleCacheTTL(t *testing.T) {
	ctx := context.Background()
	c := New(50 * time.Millisecond)
	require.NoError(t, c.SetEX(ctx, "k", "v", 0)) // 使用默认 TTL

	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	time.Sleep(80 * time.Millisecond)
	v, _ = c.Get(ctx, "k")
	assert.Empty(t, v)
}

func TestLayeredBackfill(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rc := redisrepo.New(redisrepo.Config{Addr: mr.Addr()})
	defer rc.Close()

	l1 := New(time.Minute)
	l2 := NewRedisAdapter(rc)
	lc := NewLayered(l1, l2)

	// 只写 L2，Get 应命中 L2 并回填 L1
	require.NoError(t, l2.SetEX(ctx, "k", "v", time.Minute))
	v, err := lc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	m := lc.SnapshotMetrics()
	assert.EqualValues(t, 1, m.HitsL2)
	assert.EqualValues(t, 1, m.BackfillL1)

	// 第二次命中 L1
	_, _ = lc.Get(ctx, "k")
	m = lc.SnapshotMetrics()
	assert.EqualValues(t, 1, m.HitsL1)
}

func TestLayeredDelBothLayers(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rc := redisrepo.New(redisrepo.Config{Addr: mr.Addr()})
	defer rc.Close()

	lc := NewLayered(New(time.Minute), NewRedisAdapter(rc))
	require.NoError(t, lc.SetEX(ctx, "k", "v", time.Minute))
	require.NoError(t, lc.Del(ctx, "k"))

	v, _ := lc.Get(ctx, "k")
	assert.Empty(t, v)
	assert.False(t, mr.Exists("k"))
}

func TestNilSentinel(t *testing.T) {
	assert.True(t, IsNilSentinel(WrapNil(true)))
	assert.False(t, IsNilSentinel("null"))
	assert.False(t, IsNilSentinel(""))
}

func TestJitterTTL(t *testing.T) {
	base := 10 * time.Second
	for i := 0; i < 50; i++ {
		d := JitterTTL(base)
		assert.GreaterOrEqual(t, d, base)
		assert.LessOrEqual(t, d, base+base/10)
	}
	assert.Equal(t, time.Duration(0), JitterTTL(0))
}
