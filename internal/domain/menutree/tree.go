package menutree

import (
	"sort"

	"go-gamepedia/internal/domain/model"
)

// 把扁平菜单记录组装成森林。parent_id=0 为顶级；父节点不存在且非顶级的
// 记录视为孤儿，直接丢弃（脏数据不应让渲染崩溃）。兄弟节点按 sort 升序、
// 同 sort 按 id 升序。输入必须无环（写侧保证），这里不做环检测。

// Node 树节点；Children 为空时序列化省略，避免消费端区分 "无子节点" 与 "空列表"
type Node struct {
	ID       int64   `json:"id"`
	ParentID int64   `json:"parent_id"`
	Name     string  `json:"name"`
	Path     string  `json:"path"`
	Icon     string  `json:"icon,omitempty"`
	Kind     int8    `json:"kind"`
	PermCode string  `json:"perm_code,omitempty"`
	Sort     int     `json:"sort"`
	Enabled  int8    `json:"enabled"`
	Children []*Node `json:"children,omitempty"`
}

func fromModel(m model.Menu) *Node {
	return &Node{
		ID: m.ID, ParentID: m.ParentID, Name: m.Name, Path: m.Path,
		Icon: m.Icon, Kind: m.Kind, PermCode: m.PermCode, Sort: m.Sort, Enabled: m.Enabled,
	}
}

// Build 一次扫描建子表索引，O(n) 组装
func Build(list []model.Menu) []*Node {
	exists := make(map[int64]struct{}, len(list))
	for _, m := range list {
		exists[m.ID] = struct{}{}
	}
	children := make(map[int64][]*Node, len(list))
	var roots []*Node
	for _, m := range list {
		n := fromModel(m)
		if m.ParentID == model.MenuRootParentID {
			roots = append(roots, n)
			continue
		}
		if _, ok := exists[m.ParentID]; !ok {
			continue // 孤儿
		}
		children[m.ParentID] = append(children[m.ParentID], n)
	}
	var attach func(n *Node)
	attach = func(n *Node) {
		ch := children[n.ID]
		if len(ch) == 0 {
			return
		}
		sortSiblings(ch)
		n.Children = ch
		for _, c := range ch {
			attach(c)
		}
	}
	sortSiblings(roots)
	for _, r := range roots {
		attach(r)
	}
	return roots
}

// BuildEnabled 只保留 enabled=1 的节点；禁用节点整棵子树不可达
func BuildEnabled(list []model.Menu) []*Node {
	filtered := make([]model.Menu, 0, len(list))
	for _, m := range list {
		if m.Enabled == 1 {
			filtered = append(filtered, m)
		}
	}
	return Build(filtered)
}

func sortSiblings(ns []*Node) {
	sort.SliceStable(ns, func(i, j int) bool {
		if ns[i].Sort != ns[j].Sort {
			return ns[i].Sort < ns[j].Sort
		}
		return ns[i].ID < ns[j].ID
	})
}

// Flatten 先序遍历展开
func Flatten(nodes []*Node) []*Node {
	var out []*Node
	var walk func(ns []*Node)
	walk = func(ns []*Node) {
		for _, n := range ns {
			out = append(out, n)
			walk(n.Children)
		}
	}
	walk(nodes)
	return out
}

// CollectPermissions 递归收集非空 perm_code，去重
func CollectPermissions(nodes []*Node) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, n := range Flatten(nodes) {
		if n.PermCode == "" {
			continue
		}
		if _, ok := seen[n.PermCode]; ok {
			continue
		}
		seen[n.PermCode] = struct{}{}
		out = append(out, n.PermCode)
	}
	return out
}
