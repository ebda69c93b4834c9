package admin

import (
	"go-gamepedia/internal/util/retcode"
	"go-gamepedia/pkg/response"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct{ d Dependencies }

func NewRoleHandler(d Dependencies) *RoleHandler { return &RoleHandler{d: d} }

func (h *RoleHandler) Index(c *gin.Context) {
	list, err := h.d.Role.List(c.Request.Context())
	if err != nil {
		fail(c, err, retcode.DB_READ_ERROR)
		return
	}
	response.Success(c, gin.H{"list": list, "count": len(list)})
}

func (h *RoleHandler) Add(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Code        string `json:"code"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	id, err := h.d.Role.Add(c.Request.Context(), req.Name, req.Code, req.Description)
	if err != nil {
		fail(c, err, retcode.ADD_FAILED)
		return
	}
	response.Success(c, gin.H{"id": id})
}

// Edit code 是稳定标识，创建后不可改
func (h *RoleHandler) Edit(c *gin.Context) {
	var req struct {
		ID          int64   `json:"id"`
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	if req.ID <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	if err := h.d.Role.Edit(c.Request.Context(), req.ID, req.Name, req.Description); err != nil {
		fail(c, err, retcode.UPDATE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *RoleHandler) Delete(c *gin.Context) {
	id := qInt64(c, "id")
	if id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	if err := h.d.Role.Delete(c.Request.Context(), id); err != nil {
		fail(c, err, retcode.DELETE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

// GetMenus 角色已授权的菜单节点 ID 集
func (h *RoleHandler) GetMenus(c *gin.Context) {
	id := qInt64(c, "id")
	if id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	ids, err := h.d.Role.MenuIDs(c.Request.Context(), id)
	if err != nil {
		fail(c, err, retcode.DB_READ_ERROR)
		return
	}
	response.Success(c, gin.H{"menu_ids": ids})
}

// GrantMenus 整体替换角色的菜单授权
func (h *RoleHandler) GrantMenus(c *gin.Context) {
	var req struct {
		ID      int64   `json:"id"`
		MenuIDs []int64 `json:"menu_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	if req.ID <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	if err := h.d.Role.GrantMenus(c.Request.Context(), req.ID, req.MenuIDs); err != nil {
		fail(c, err, retcode.UPDATE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
