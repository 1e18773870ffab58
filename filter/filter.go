package filter

import "strings"

// NamespaceFilter 实现命名空间包含策略：
// Include 为空时默认包含一切，否则路径必须落在某个 Include 前缀下；
// Exclude 前缀永远优先，用于剔除 detail/impl 之类的背景噪音命名空间。
type NamespaceFilter struct {
	Include []string
	Exclude []string
}

// NewNamespaceFilter 创建一个包含策略
func NewNamespaceFilter(include, exclude []string) *NamespaceFilter {
	return &NamespaceFilter{Include: include, Exclude: exclude}
}

// ShouldInclude 判断 "::" 连接的命名空间路径是否纳入图中
func (f *NamespaceFilter) ShouldInclude(namespacePath string) bool {
	if f == nil {
		return true
	}
	for _, p := range f.Exclude {
		if matchesPrefix(namespacePath, p) {
			return false
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for _, p := range f.Include {
		if matchesPrefix(namespacePath, p) {
			return true
		}
	}
	return false
}

// matchesPrefix 按命名空间 token 边界做前缀匹配：
// "ns::detail" 匹配 "ns::detail" 与 "ns::detail::inner"，但不匹配 "ns::detailed"
func matchesPrefix(path, prefix string) bool {
	if prefix == "" {
		return true
	}
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"::")
}
