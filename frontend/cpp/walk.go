package cpp

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/CodMac/cpp-treesitter-uml-analyzer/model"
)

// --- 两个遍历阶段共享的 AST 工具 ---

func nodeText(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return n.Utf8Text(source)
}

func location(n *sitter.Node, path string) *model.Location {
	s := n.StartPosition()
	e := n.EndPosition()
	return &model.Location{
		FilePath:    path,
		StartLine:   int(s.Row) + 1,
		EndLine:     int(e.Row) + 1,
		StartColumn: int(s.Column) + 1,
		EndColumn:   int(e.Column) + 1,
	}
}

func childOfKind(n *sitter.Node, kind string) *sitter.Node {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}

func hasChildOfKind(n *sitter.Node, kind string) bool {
	return childOfKind(n, kind) != nil
}

// hasDeprecatedAttr 检查声明头部是否带 [[deprecated]] 属性
func hasDeprecatedAttr(n *sitter.Node, source []byte) bool {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		k := child.Kind()
		if k == "attribute_declaration" || k == "attribute_specifier" {
			if strings.Contains(nodeText(child, source), "deprecated") {
				return true
			}
		}
	}
	return false
}

// namespaceParts 取命名空间定义的路径段与 body。
// 匿名与 inline 命名空间不贡献路径段 (它们的内容归并进外围路径)。
func namespaceParts(n *sitter.Node, source []byte) ([]string, *sitter.Node) {
	body := n.ChildByFieldName("body")

	if hasChildOfKind(n, "inline") {
		return nil, body
	}
	name := n.ChildByFieldName("name")
	if name == nil {
		return nil, body
	}

	text := nodeText(name, source)
	if text == "" {
		return nil, body
	}
	return strings.Split(text, "::"), body
}

// recordName 取记录类型的名字：模板特化 "Widget<T>" 拆为基础名与实参文本
func recordName(n *sitter.Node, source []byte) (base, argText string) {
	name := n.ChildByFieldName("name")
	if name == nil {
		return "", ""
	}
	text := nodeText(name, source)
	if idx := strings.Index(text, "<"); idx >= 0 {
		base = text[:idx]
		argText = strings.TrimSuffix(text[idx+1:], ">")
		return base, argText
	}
	return text, ""
}

// qualify 拼出 ns::Outer::Name 形式的限定名
func qualify(namespace, recordChain []string, name string) string {
	parts := make([]string, 0, len(namespace)+len(recordChain)+1)
	parts = append(parts, namespace...)
	for _, r := range recordChain {
		if r != "" {
			parts = append(parts, r)
		}
	}
	parts = append(parts, name)
	return strings.Join(parts, "::")
}

// declaratorName 沿声明符链找到最里层的标识符文本
func declaratorName(n *sitter.Node, source []byte) string {
	for n != nil {
		switch n.Kind() {
		case "identifier", "field_identifier", "type_identifier",
			"qualified_identifier", "destructor_name", "operator_name":
			return nodeText(n, source)
		case "pointer_declarator", "reference_declarator", "array_declarator",
			"function_declarator", "init_declarator", "parenthesized_declarator":
			inner := n.ChildByFieldName("declarator")
			if inner == nil {
				// reference_declarator 没有 declarator 字段，取第一个命名子节点
				inner = firstNamedChild(n)
			}
			n = inner
		default:
			return ""
		}
	}
	return ""
}

func firstNamedChild(n *sitter.Node) *sitter.Node {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child != nil {
			return child
		}
	}
	return nil
}

// findFunctionDeclarator 沿声明符链找到 function_declarator
func findFunctionDeclarator(n *sitter.Node) *sitter.Node {
	for n != nil {
		if n.Kind() == "function_declarator" {
			return n
		}
		inner := n.ChildByFieldName("declarator")
		if inner == nil {
			inner = firstNamedChild(n)
			if inner == n {
				return nil
			}
		}
		n = inner
	}
	return nil
}
