package admin

import (
	"go-gamepedia/internal/service"
	"go-gamepedia/internal/util/retcode"
	"go-gamepedia/pkg/response"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct{ d Dependencies }

func NewMenuHandler(d Dependencies) *MenuHandler { return &MenuHandler{d: d} }

// Index 全量菜单树（管理端，含禁用与按钮节点）
func (h *MenuHandler) Index(c *gin.Context) {
	tree, err := h.d.Menu.Tree(c.Request.Context(), c.Query("keywords"))
	if err != nil {
		fail(c, err, retcode.DB_READ_ERROR)
		return
	}
	response.Success(c, gin.H{"list": tree})
}

func (h *MenuHandler) Add(c *gin.Context) {
	var req struct {
		ParentID int64  `json:"parent_id"`
		Name     string `json:"name"`
		Path     string `json:"path"`
		Icon     string `json:"icon"`
		Kind     int8   `json:"kind"`
		PermCode string `json:"perm_code"`
		Sort     int    `json:"sort"`
		Enabled  int8   `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	id, err := h.d.Menu.Add(c.Request.Context(), service.AddMenuParams{
		ParentID: req.ParentID, Name: req.Name, Path: req.Path, Icon: req.Icon,
		Kind: req.Kind, PermCode: req.PermCode, Sort: req.Sort, Enabled: req.Enabled,
	})
	if err != nil {
		fail(c, err, retcode.ADD_FAILED)
		return
	}
	response.Success(c, gin.H{"id": id})
}

func (h *MenuHandler) Edit(c *gin.Context) {
	var req struct {
		ID       int64   `json:"id"`
		ParentID *int64  `json:"parent_id"`
		Name     *string `json:"name"`
		Path     *string `json:"path"`
		Icon     *string `json:"icon"`
		Kind     *int8   `json:"kind"`
		PermCode *string `json:"perm_code"`
		Sort     *int    `json:"sort"`
		Enabled  *int8   `json:"enabled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	if req.ID <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	if err := h.d.Menu.Edit(c.Request.Context(), service.EditMenuParams{
		ID: req.ID, ParentID: req.ParentID, Name: req.Name, Path: req.Path, Icon: req.Icon,
		Kind: req.Kind, PermCode: req.PermCode, Sort: req.Sort, Enabled: req.Enabled,
	}); err != nil {
		fail(c, err, retcode.UPDATE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *MenuHandler) ChangeStatus(c *gin.Context) {
	id := qInt64(c, "id")
	enabled := qInt8Ptr(c, "enabled")
	if id <= 0 || enabled == nil {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	if err := h.d.Menu.ChangeEnabled(c.Request.Context(), id, *enabled); err != nil {
		fail(c, err, retcode.UPDATE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *MenuHandler) Delete(c *gin.Context) {
	id := qInt64(c, "id")
	if id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	if err := h.d.Menu.Delete(c.Request.Context(), id); err != nil {
		fail(c, err, retcode.DELETE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
