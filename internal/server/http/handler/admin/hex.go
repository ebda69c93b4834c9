package admin

import (
	"go-gamepedia/internal/service"
	"go-gamepedia/internal/util/retcode"
	"go-gamepedia/pkg/response"

	"github.com/gin-gonic/gin"
)

type HexHandler struct{ d Dependencies }

func NewHexHandler(d Dependencies) *HexHandler { return &HexHandler{d: d} }

func (h *HexHandler) List(c *gin.Context) {
	list, err := h.d.Hex.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		fail(c, err, retcode.DB_READ_ERROR)
		return
	}
	response.Success(c, gin.H{"list": list, "count": len(list)})
}

func (h *HexHandler) Detail(c *gin.Context) {
	id := qInt64(c, "id")
	if id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	x, err := h.d.Hex.Detail(c.Request.Context(), id)
	if err != nil {
		fail(c, err, retcode.DB_READ_ERROR)
		return
	}
	response.Success(c, x)
}

type hexBody struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Enabled     int8   `json:"enabled"`
}

func (b hexBody) params() service.SaveHexParams {
	return service.SaveHexParams{Name: b.Name, Icon: b.Icon, Category: b.Category, Description: b.Description, Enabled: b.Enabled}
}

func (h *HexHandler) Add(c *gin.Context) {
	var req hexBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	id, err := h.d.Hex.Add(c.Request.Context(), req.params())
	if err != nil {
		fail(c, err, retcode.ADD_FAILED)
		return
	}
	response.Success(c, gin.H{"id": id})
}

func (h *HexHandler) Edit(c *gin.Context) {
	var req struct {
		ID int64 `json:"id"`
		hexBody
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	if req.ID <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	if err := h.d.Hex.Edit(c.Request.Context(), req.ID, req.params()); err != nil {
		fail(c, err, retcode.UPDATE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *HexHandler) ChangeStatus(c *gin.Context) {
	id := qInt64(c, "id")
	enabled := qInt8Ptr(c, "enabled")
	if id <= 0 || enabled == nil {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	if err := h.d.Hex.ChangeEnabled(c.Request.Context(), id, *enabled); err != nil {
		fail(c, err, retcode.UPDATE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *HexHandler) Delete(c *gin.Context) {
	id := qInt64(c, "id")
	if id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	if err := h.d.Hex.Delete(c.Request.Context(), id); err != nil {
		fail(c, err, retcode.DELETE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
