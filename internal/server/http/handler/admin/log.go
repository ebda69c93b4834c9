package admin

import (
	"go-gamepedia/internal/util/retcode"
	"go-gamepedia/pkg/response"

	"github.com/gin-gonic/gin"
)

type LogHandler struct{ d Dependencies }

func NewLogHandler(d Dependencies) *LogHandler { return &LogHandler{d: d} }

func (h *LogHandler) List(c *gin.Context) {
	page := qInt(c, "page", 1)
	limit := qInt(c, "size", qInt(c, "limit", 20))
	if limit <= 0 {
		limit = 20
	}
	typ := qInt(c, "type", 0)
	keywords := c.Query("keywords")
	res, err := h.d.Log.List(c.Request.Context(), typ, keywords, page, limit)
	if err != nil {
		fail(c, err, retcode.DB_READ_ERROR)
		return
	}
	response.Success(c, gin.H{"list": res.List, "count": res.Count})
}

func (h *LogHandler) Delete(c *gin.Context) {
	id := qInt64(c, "id")
	if id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	if err := h.d.Log.Delete(c.Request.Context(), id); err != nil {
		fail(c, err, retcode.DELETE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
