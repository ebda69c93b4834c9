package admin

import (
	"go-gamepedia/internal/service"
	"go-gamepedia/internal/util/retcode"
	"go-gamepedia/pkg/response"

	"github.com/gin-gonic/gin"
)

type EquipmentHandler struct{ d Dependencies }

func NewEquipmentHandler(d Dependencies) *EquipmentHandler { return &EquipmentHandler{d: d} }

func (h *EquipmentHandler) List(c *gin.Context) {
	list, err := h.d.Equipment.List(c.Request.Context(), c.Query("keywords"))
	if err != nil {
		fail(c, err, retcode.DB_READ_ERROR)
		return
	}
	response.Success(c, gin.H{"list": list, "count": len(list)})
}

func (h *EquipmentHandler) Detail(c *gin.Context) {
	id := qInt64(c, "id")
	if id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	e, err := h.d.Equipment.Detail(c.Request.Context(), id)
	if err != nil {
		fail(c, err, retcode.DB_READ_ERROR)
		return
	}
	response.Success(c, e)
}

type equipmentBody struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Price       int    `json:"price"`
	Tier        int8   `json:"tier"`
	Description string `json:"description"`
	Attributes  string `json:"attributes"`
	Enabled     int8   `json:"enabled"`
}

func (b equipmentBody) params() service.SaveEquipmentParams {
	return service.SaveEquipmentParams{
		Name: b.Name, Icon: b.Icon, Price: b.Price, Tier: b.Tier,
		Description: b.Description, Attributes: b.Attributes, Enabled: b.Enabled,
	}
}

func (h *EquipmentHandler) Add(c *gin.Context) {
	var req equipmentBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	id, err := h.d.Equipment.Add(c.Request.Context(), req.params())
	if err != nil {
		fail(c, err, retcode.ADD_FAILED)
		return
	}
	response.Success(c, gin.H{"id": id})
}

func (h *EquipmentHandler) Edit(c *gin.Context) {
	var req struct {
		ID int64 `json:"id"`
		equipmentBody
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	if req.ID <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	if err := h.d.Equipment.Edit(c.Request.Context(), req.ID, req.params()); err != nil {
		fail(c, err, retcode.UPDATE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *EquipmentHandler) ChangeStatus(c *gin.Context) {
	id := qInt64(c, "id")
	enabled := qInt8Ptr(c, "enabled")
	if id <= 0 || enabled == nil {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	if err := h.d.Equipment.ChangeEnabled(c.Request.Context(), id, *enabled); err != nil {
		fail(c, err, retcode.UPDATE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *EquipmentHandler) Delete(c *gin.Context) {
	id := qInt64(c, "id")
	if id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	if err := h.d.Equipment.Delete(c.Request.Context(), id); err != nil {
		fail(c, err, retcode.DELETE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
