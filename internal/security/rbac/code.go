package rbac

import "strings"

// 权限码存储为自由字符串 "resource:action"（如 hero:edit）。
// 在边界处解析为结构化 Code，集合判定不再依赖裸字符串拼写。

type Code struct {
	Resource string
	Action   string
}

// ParseCode 非法形式（缺冒号、空段）返回 false
func ParseCode(s string) (Code, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	res, act, ok := strings.Cut(s, ":")
	if !ok || res == "" || act == "" {
		return Code{}, false
	}
	return Code{Resource: res, Action: act}, true
}

func (c Code) String() string { return c.Resource + ":" + c.Action }

// PermSet 已解析权限码集合
type PermSet map[Code]struct{}

// NewPermSet 非法 code 静默跳过
func NewPermSet(codes []string) PermSet {
	set := make(PermSet, len(codes))
	for _, s := range codes {
		if c, ok := ParseCode(s); ok {
			set[c] = struct{}{}
		}
	}
	return set
}

// HasAny 任一命中即通过（路由要求为逻辑 OR）
func (s PermSet) HasAny(required ...string) bool {
	for _, r := range required {
		c, ok := ParseCode(r)
		if !ok {
			continue
		}
		if _, hit := s[c]; hit {
			return true
		}
	}
	return false
}

func (s PermSet) Strings() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c.String())
	}
	return out
}
