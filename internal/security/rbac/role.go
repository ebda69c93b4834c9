package rbac

// RoleKind 角色的封闭枚举。存储层的 role.code 在边界处映射为 RoleKind，
// 网关逻辑只比较枚举值，避免路由上散落字符串字面量。

type RoleKind int

const (
	RoleUnknown RoleKind = iota
	RoleAdmin
	RoleContentAdmin
	RoleEditor
	RoleUser
)

// 存储层角色标识
const (
	CodeAdmin        = "admin"
	CodeContentAdmin = "content_admin"
	CodeEditor       = "editor"
	CodeUser         = "user"
)

var codeToKind = map[string]RoleKind{
	CodeAdmin:        RoleAdmin,
	CodeContentAdmin: RoleContentAdmin,
	CodeEditor:       RoleEditor,
	CodeUser:         RoleUser,
}

// KindOf 未知 code 返回 RoleUnknown（永远不会通过任何角色网关）
func KindOf(code string) RoleKind {
	if k, ok := codeToKind[code]; ok {
		return k
	}
	return RoleUnknown
}

func (k RoleKind) String() string {
	switch k {
	case RoleAdmin:
		return CodeAdmin
	case RoleContentAdmin:
		return CodeContentAdmin
	case RoleEditor:
		return CodeEditor
	case RoleUser:
		return CodeUser
	}
	return "unknown"
}
