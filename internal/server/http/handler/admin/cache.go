package admin

import (
	"go-gamepedia/internal/pkg/cache"
	"go-gamepedia/pkg/response"

	"github.com/gin-gonic/gin"
)

type CacheHandler struct{ d Dependencies }

func NewCacheHandler(d Dependencies) *CacheHandler { return &CacheHandler{d: d} }

// Metrics type=perm 权限缓存命中率；type=all 附带分层缓存指标
func (h *CacheHandler) Metrics(c *gin.Context) {
	t := c.Query("type")
	if t == "perm" {
		response.Success(c, gin.H{"perm": h.d.Perm.SnapshotMetrics()})
		return
	}
	layered := interface{}(gin.H{})
	if lc, ok := h.d.Cache.(*cache.LayeredCache); ok && lc != nil {
		layered = lc.SnapshotMetrics()
	}
	if t == "all" {
		response.Success(c, gin.H{"layered": layered, "perm": h.d.Perm.SnapshotMetrics()})
		return
	}
	response.Success(c, gin.H{"layered": layered})
}

func (h *CacheHandler) Reset(c *gin.Context) {
	t := c.Query("type")
	if t == "perm" || t == "all" {
		h.d.Perm.ResetMetrics()
	}
	if t != "perm" {
		if lc, ok := h.d.Cache.(*cache.LayeredCache); ok && lc != nil {
			lc.ResetMetrics()
		}
	}
	response.Success(c, gin.H{})
}
