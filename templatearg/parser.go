// Package templatearg 重建前端无法结构化解析的模板实参文本
// (e.g. "type-parameter-0-0 *, std::vector<type-parameter-0-1>")。
//
// 两个入口都是无副作用的纯函数，并且对畸形输入绝不报错：
// 最坏情况是整段文本退化为一个不透明的叶子参数/记号。
package templatearg

import (
	"strings"

	"github.com/CodMac/cpp-treesitter-uml-analyzer/model"
)

// NameResolver 由调用方提供，用于解析叶子参数的基础名
// (别名展开、using 指令等)。解析器自身不持有任何命名空间知识。
type NameResolver func(string) string

// ParseParams 结构化解析一段模板实参文本：
// 追踪 '<' / '>' 嵌套深度，在深度 0 的逗号处切分顶层片段；
// 片段带有尖括号尾部时递归解析为嵌套参数，递归一无所获则把
// 括号内文本整体保留为一个不透明叶子。
func ParseParams(params string, resolve NameResolver) []model.TemplateParameter {
	if resolve == nil {
		resolve = func(s string) string { return s }
	}
	return parseParams(params, resolve, 0)
}

func parseParams(params string, resolve NameResolver, depth int) []model.TemplateParameter {
	var res []model.TemplateParameter
	var typ strings.Builder
	var nested []model.TemplateParameter

	flush := func() {
		p := model.MakeUnexposedParameter(resolve(trimTypename(typ.String())))
		typ.Reset()
		p.Params = append(p.Params, nested...)
		nested = nil
		res = append(res, p)
	}

	i := 0
	for i < len(params) && isSpace(params[i]) {
		i++
	}

	complete := false
loop:
	for ; i < len(params); i++ {
		switch c := params[i]; c {
		case '<':
			// 匹配到对应的闭括号，括号内文本递归解析
			level := 0
			begin := i + 1
			end := begin
			for end < len(params) {
				if params[end] == '<' {
					level++
				} else if params[end] == '>' {
					if level > 0 {
						level--
					} else {
						break
					}
				}
				end++
			}
			sub := params[begin:end]
			nested = parseParams(sub, resolve, depth+1)
			if len(nested) == 0 && strings.TrimSpace(sub) != "" {
				// 嵌套解析一无所获，整体保留为不透明叶子
				nested = append(nested, model.MakeUnexposedParameter(sub))
			}
			i = end - 1
		case '>':
			complete = true
			if depth == 0 {
				break loop
			}
		case ',':
			complete = true
		default:
			typ.WriteByte(c)
		}
		if complete {
			flush()
			complete = false
		}
	}

	if strings.TrimSpace(typ.String()) != "" || len(nested) > 0 {
		flush()
	}

	return res
}

// trimTypename 去掉叶子前导的限定关键字 (class / typename / struct)
func trimTypename(s string) string {
	s = strings.TrimSpace(s)
	for {
		switch {
		case strings.HasPrefix(s, "class "):
			s = strings.TrimSpace(strings.TrimPrefix(s, "class "))
		case strings.HasPrefix(s, "typename "):
			s = strings.TrimSpace(strings.TrimPrefix(s, "typename "))
		case strings.HasPrefix(s, "struct "):
			s = strings.TrimSpace(strings.TrimPrefix(s, "struct "))
		default:
			return s
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
