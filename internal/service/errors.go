package service

import "errors"

// 服务层哨兵错误：handler 统一映射为业务码，见 pkg/response 与 util/retcode
var (
	ErrBadParam           = errors.New("invalid params")
	ErrNotFound           = errors.New("record not found")
	ErrExists             = errors.New("data already exists")
	ErrIntegrity          = errors.New("related data exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")
	ErrSelfForbidden      = errors.New("cannot operate on current account")
	ErrParentNotFound     = errors.New("parent node not found")
	ErrTreeCycle          = errors.New("node cycle detected")
)
