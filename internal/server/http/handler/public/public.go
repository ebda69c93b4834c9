package public

import (
	"errors"
	"strconv"
	"strings"

	"go-gamepedia/internal/service"
	"go-gamepedia/internal/util/retcode"
	"go-gamepedia/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler 公开浏览接口，无需登录；只暴露启用状态的数据
type Handler struct{ d Dependencies }

func NewHandler(d Dependencies) *Handler { return &Handler{d: d} }

func (h *Handler) HeroList(c *gin.Context) {
	page := 1
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	res, err := h.d.Hero.List(c.Request.Context(), service.ListHeroParams{
		Keywords:    strings.TrimSpace(c.Query("keywords")),
		Faction:     c.Query("faction"),
		EnabledOnly: true,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, err.Error())
		return
	}
	response.Success(c, res)
}

func (h *Handler) HeroDetail(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Query("id"), 10, 64)
	if id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	d, err := h.d.Hero.Detail(c.Request.Context(), id, true)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Error(c, retcode.NOT_EXISTS, "不存在")
			return
		}
		response.Error(c, retcode.DB_READ_ERROR, err.Error())
		return
	}
	response.Success(c, d)
}

func (h *Handler) EquipmentList(c *gin.Context) {
	list, err := h.d.Equipment.PublicList(c.Request.Context())
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, err.Error())
		return
	}
	response.Success(c, gin.H{"list": list, "count": len(list)})
}

func (h *Handler) HexList(c *gin.Context) {
	list, err := h.d.Hex.PublicList(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.Error(c, retcode.DB_READ_ERROR, err.Error())
		return
	}
	response.Success(c, gin.H{"list": list, "count": len(list)})
}
