package admin

import (
	"go-gamepedia/internal/service"
	"go-gamepedia/internal/util/retcode"
	"go-gamepedia/pkg/response"

	"github.com/gin-gonic/gin"
)

type HeroHandler struct{ d Dependencies }

func NewHeroHandler(d Dependencies) *HeroHandler { return &HeroHandler{d: d} }

func (h *HeroHandler) List(c *gin.Context) {
	page, limit := pageLimit(c)
	res, err := h.d.Hero.List(c.Request.Context(), service.ListHeroParams{
		Keywords: c.Query("keywords"),
		Faction:  c.Query("faction"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		fail(c, err, retcode.DB_READ_ERROR)
		return
	}
	response.Success(c, res)
}

// Detail 管理端详情，不隐藏未启用英雄
func (h *HeroHandler) Detail(c *gin.Context) {
	id := qInt64(c, "id")
	if id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	d, err := h.d.Hero.Detail(c.Request.Context(), id, false)
	if err != nil {
		fail(c, err, retcode.DB_READ_ERROR)
		return
	}
	response.Success(c, d)
}

type heroBody struct {
	Name       string `json:"name"`
	Title      string `json:"title"`
	Faction    string `json:"faction"`
	Avatar     string `json:"avatar"`
	Story      string `json:"story"`
	Attack     int    `json:"attack"`
	Defense    int    `json:"defense"`
	Magic      int    `json:"magic"`
	Difficulty int    `json:"difficulty"`
	Skills     string `json:"skills"`
	Enabled    int8   `json:"enabled"`
}

func (b heroBody) params() service.SaveHeroParams {
	return service.SaveHeroParams{
		Name: b.Name, Title: b.Title, Faction: b.Faction, Avatar: b.Avatar, Story: b.Story,
		Attack: b.Attack, Defense: b.Defense, Magic: b.Magic, Difficulty: b.Difficulty,
		Skills: b.Skills, Enabled: b.Enabled,
	}
}

func (h *HeroHandler) Add(c *gin.Context) {
	var req heroBody
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	id, err := h.d.Hero.Add(c.Request.Context(), req.params())
	if err != nil {
		fail(c, err, retcode.ADD_FAILED)
		return
	}
	response.Success(c, gin.H{"id": id})
}

func (h *HeroHandler) Edit(c *gin.Context) {
	var req struct {
		ID int64 `json:"id"`
		heroBody
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	if req.ID <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	if err := h.d.Hero.Edit(c.Request.Context(), req.ID, req.params()); err != nil {
		fail(c, err, retcode.UPDATE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *HeroHandler) ChangeStatus(c *gin.Context) {
	id := qInt64(c, "id")
	enabled := qInt8Ptr(c, "enabled")
	if id <= 0 || enabled == nil {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	if err := h.d.Hero.ChangeEnabled(c.Request.Context(), id, *enabled); err != nil {
		fail(c, err, retcode.UPDATE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

func (h *HeroHandler) Delete(c *gin.Context) {
	id := qInt64(c, "id")
	if id <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	if err := h.d.Hero.Delete(c.Request.Context(), id); err != nil {
		fail(c, err, retcode.DELETE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}

// SetBuild 整体替换英雄推荐出装与海克斯
func (h *HeroHandler) SetBuild(c *gin.Context) {
	var req struct {
		HeroID       int64   `json:"hero_id"`
		EquipmentIDs []int64 `json:"equipment_ids"`
		HexIDs       []int64 `json:"hex_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, retcode.JSON_PARSE_FAIL, "invalid body")
		return
	}
	if req.HeroID <= 0 {
		response.Error(c, retcode.EMPTY_PARAMS, "缺少必要参数")
		return
	}
	if err := h.d.Hero.SetBuild(c.Request.Context(), req.HeroID, req.EquipmentIDs, req.HexIDs); err != nil {
		fail(c, err, retcode.UPDATE_FAILED)
		return
	}
	response.Success(c, gin.H{"ok": true})
}
