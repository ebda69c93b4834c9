package cache

import (
	"math/rand"
	"time"
)

// 空结果 sentinel：防止空查询穿透到 DB；值不能与合法 JSON 混淆
const nilSentinel = "\x00nil\x00"

func WrapNil(_ bool) string { return nilSentinel }

func IsNilSentinel(v string) bool { return v == nilSentinel }

// JitterTTL 在 ttl 上加 0~10% 抖动，避免同批 key 同时过期
func JitterTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return ttl
	}
	j := time.Duration(rand.Int63n(int64(ttl)/10 + 1))
	return ttl + j
}
