package admin

import (
	"go-gamepedia/internal/util/retcode"
	"go-gamepedia/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ d Dependencies }

func NewAuthHandler(d Dependencies) *AuthHandler { return &AuthHandler{d: d} }

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	res, err := h.d.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err, retcode.LOGIN_ERROR)
		return
	}
	response.Success(c, res)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("jti")
	if jti == "" {
		response.Error(c, retcode.AUTH_ERROR, "missing token")
		return
	}
	_ = h.d.Auth.Logout(c.Request.Context(), jti)
	response.Success(c, gin.H{"ok": true})
}

func (h *AuthHandler) GetUserInfo(c *gin.Context) {
	uid := c.GetInt64("user_id")
	info, err := h.d.User.Profile(c.Request.Context(), uid)
	if err != nil {
		fail(c, err, retcode.DB_READ_ERROR)
		return
	}
	perms, err := h.d.Menu.Permissions(c.Request.Context(), uid)
	if err != nil {
		fail(c, err, retcode.DB_READ_ERROR)
		return
	}
	response.Success(c, gin.H{"user": info, "permissions": perms})
}

// GetAccessMenu 当前用户可见的启用菜单树（不含按钮节点）
func (h *AuthHandler) GetAccessMenu(c *gin.Context) {
	uid := c.GetInt64("user_id")
	tree, err := h.d.Menu.AccessTree(c.Request.Context(), uid)
	if err != nil {
		fail(c, err, retcode.DB_READ_ERROR)
		return
	}
	response.Success(c, gin.H{"list": tree})
}
