// Package resolver 把命名空间路径映射为图模型中的包层级。
package resolver

import (
	"strings"

	"github.com/CodMac/cpp-treesitter-uml-analyzer/model"
)

// BuildQualifiedName 根据父限定名和当前名构建 C++ 限定名
func BuildQualifiedName(parentQN, name string) string {
	if parentQN == "" {
		return name
	}
	return parentQN + "::" + name
}

// JoinNamespace 以 "::" 连接命名空间路径
func JoinNamespace(parts []string) string {
	return strings.Join(parts, "::")
}

// PackageResolver 把命名空间路径 (inline/匿名段已由前端剔除) 解析为包。
// 路径先裁掉配置的 using-namespace 前缀；包名取剩余路径的最后一个 token，
// 父路径取剩余前缀。解析是幂等的：同一命名空间跨多个访问阶段被反复遇到，
// 已存在的包直接查找返回，不重复插入。
type PackageResolver struct {
	diagram        *model.Diagram
	usingNamespace []string
}

// NewPackageResolver 创建一个解析器。usingNamespace 为要裁剪的前缀，可为空。
func NewPackageResolver(d *model.Diagram, usingNamespace []string) *PackageResolver {
	return &PackageResolver{diagram: d, usingNamespace: usingNamespace}
}

// Resolve 解析一条命名空间路径，逐级确保所有祖先包存在 (前缀树)，
// 返回最深一级的包。每一级按自身的完整限定名独立过策略：被排除的层级
// 跳过不建包，但不中止更深层级的解析。路径被整个裁掉、或最深一级
// 被排除时返回 nil。第二个返回值表示最深一级的包是否由本次调用新建。
func (r *PackageResolver) Resolve(nsPath []string) (*model.Package, bool) {
	trimmed := trimPrefix(nsPath, r.usingNamespace)
	if len(trimmed) == 0 {
		return nil, false
	}

	// ID 与策略检查永远基于完整 (未裁剪) 限定名；裁剪只影响显示名
	base := nsPath[:len(nsPath)-len(trimmed)]

	var last *model.Package
	created := false
	for i := range trimmed {
		full := JoinNamespace(append(append([]string{}, base...), trimmed[:i+1]...))
		id := model.ToID(full)

		if p, ok := r.diagram.GetPackage(id); ok {
			last = p
			created = false
			continue
		}

		p := &model.Package{
			ID:        id,
			Name:      trimmed[i],
			Namespace: append([]string{}, trimmed[:i]...),
		}
		if r.diagram.AddPackage(p, full) {
			last = p
			created = true
			continue
		}

		// 插入失败：并发下别人先插入了，或本级被包含策略排除
		if p, ok := r.diagram.GetPackage(id); ok {
			last = p
			created = false
			continue
		}
		last = nil
		created = false
	}

	return last, created
}

// PackageID 返回一条命名空间路径对应的包 ID (不做任何插入)
func (r *PackageResolver) PackageID(nsPath []string) model.ID {
	if len(nsPath) == 0 {
		return model.NoID
	}
	return model.ToID(JoinNamespace(nsPath))
}

// trimPrefix 丢弃与 using-namespace 前缀匹配的前导 token
func trimPrefix(path, prefix []string) []string {
	if len(prefix) == 0 || len(prefix) > len(path) {
		return path
	}
	for i := range prefix {
		if path[i] != prefix[i] {
			return path
		}
	}
	return path[len(prefix):]
}
