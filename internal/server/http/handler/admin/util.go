package admin

import (
	"errors"
	"strconv"

	"go-gamepedia/internal/service"
	"go-gamepedia/internal/util/retcode"
	"go-gamepedia/pkg/response"

	"github.com/gin-gonic/gin"
)

func qInt(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}

func qInt64(c *gin.Context, key string) int64 {
	v := c.Query(key)
	if v == "" {
		return 0
	}
	i, _ := strconv.ParseInt(v, 10, 64)
	return i
}

func qInt8Ptr(c *gin.Context, key string) *int8 {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	iv, err := strconv.ParseInt(v, 10, 8)
	if err != nil {
		return nil
	}
	vv := int8(iv)
	return &vv
}

func pageLimit(c *gin.Context) (int, int) { return qInt(c, "page", 1), qInt(c, "limit", 20) }

// fail 服务层哨兵错误 -> 业务码；未识别的错误走 fallback
func fail(c *gin.Context, err error, fallback int) {
	switch {
	case errors.Is(err, service.ErrBadParam):
		response.Error(c, retcode.EMPTY_PARAMS, err.Error())
	case errors.Is(err, service.ErrNotFound):
		response.Error(c, retcode.RECORD_NOT_FOUND, err.Error())
	case errors.Is(err, service.ErrExists):
		response.Error(c, retcode.DATA_EXISTS, err.Error())
	case errors.Is(err, service.ErrIntegrity):
		response.Error(c, retcode.INTEGRITY_ERROR, err.Error())
	case errors.Is(err, service.ErrParentNotFound):
		response.Error(c, retcode.NOT_EXISTS, err.Error())
	case errors.Is(err, service.ErrTreeCycle):
		response.Error(c, retcode.INVALID, err.Error())
	case errors.Is(err, service.ErrSelfForbidden):
		response.Error(c, retcode.FORBIDDEN, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUserDisabled):
		response.Error(c, retcode.LOGIN_ERROR, err.Error())
	default:
		response.Error(c, fallback, err.Error())
	}
}
