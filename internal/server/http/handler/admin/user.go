package admin

import (
	"strings"

	"go-gamepedia/internal/service"
	"go-gamepedia/internal/util/retcode"
	"go-gamepedia/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{ d Dependencies }

func NewUserHandler(d Dependencies) *UserHandler { return &UserHandler{d: d} }

func (h *UserHandler) List(c *gin.Context) {
	page, limit := pageLimit(c)
	status := qInt8Ptr(c, "status")
	res, err := h.d.User.List(c.Request.Context(), service.ListUserParams{Username: c.Query("username"), Status: status, Page: page, Limit: limit})
	if err != nil {
		fail(c, err, retcode.DB_READ_ERROR)
		return
	}
	response.Success(c, res)
}

func (h *UserHandler) Add(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Nickname string `json:"nickname"`
		Email    string `json:"email"`
		RoleID   *int64 `json:"role_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	id, err := h.d.User.Add(c.Request.Context(), service.AddUserParams{
		Username: strings.TrimSpace(req.Username),
		Password: req.Password,
		Nickname: req.Nickname,
		Email:    req.Email,
		RoleID:   req.RoleID,
	})
	if err != nil {
		fail(c, err, retcode.ADD_FAILED)
		return
	}
	response.Success(c, gin.H{"id": id})
}

func (h *UserHandler) Edit(c *gin.Context) {
	var req struct {
		ID       int64   `json:"id"`
		Nickname *string `json:"nickname"`
		Email    *string `json:"email"`
		Avatar   *string `json:"avatar"`
		RoleID   *int64  `json:"role_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	if req.ID <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	if err := h.d.User.Edit(c.Request.Context(), service.EditUserParams{
		ID: req.ID, Nickname: req.Nickname, Email: req.Email, Avatar: req.Avatar, RoleID: req.RoleID,
	}); err != nil {
		fail(c, err, retcode.UPDATE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *UserHandler) ChangeStatus(c *gin.Context) {
	id := qInt64(c, "id")
	status := qInt8Ptr(c, "status")
	if id <= 0 || status == nil {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	operator := c.GetInt64("user_id")
	if err := h.d.User.ChangeStatus(c.Request.Context(), operator, id, *status); err != nil {
		fail(c, err, retcode.UPDATE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *UserHandler) Delete(c *gin.Context) {
	id := qInt64(c, "id")
	if id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	operator := c.GetInt64("user_id")
	if err := h.d.User.Delete(c.Request.Context(), operator, id); err != nil {
		fail(c, err, retcode.DELETE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

// ChangePassword 当前登录用户修改口令
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	uid := c.GetInt64("user_id")
	if err := h.d.User.ChangePassword(c.Request.Context(), uid, req.OldPassword, req.NewPassword); err != nil {
		fail(c, err, retcode.UPDATE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

// ResetPassword 管理员重置指定账号口令
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req struct {
		ID          int64  `json:"id"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	if req.ID <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	if err := h.d.User.ResetPassword(c.Request.Context(), req.ID, req.NewPassword); err != nil {
		fail(c, err, retcode.UPDATE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
