package cpp

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/CodMac/cpp-treesitter-uml-analyzer/model"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/templatearg"
)

// 别名链展开的深度上限，防御 using A = B; using B = A; 这类退化输入
const maxAliasDepth = 8

// buildType 由类型节点与声明符节点组合出类型形状：
// 基础类型来自类型节点，指针/引用/数组包装来自声明符链。
func (e *extractorPass) buildType(typeNode, declNode *sitter.Node, scope []string) *model.TypeShape {
	return e.wrapDeclarator(e.typeFromNode(typeNode, scope), declNode, scope)
}

func (e *extractorPass) wrapDeclarator(base *model.TypeShape, decl *sitter.Node, scope []string) *model.TypeShape {
	for decl != nil {
		switch decl.Kind() {
		case "pointer_declarator", "abstract_pointer_declarator":
			base = &model.TypeShape{Kind: model.ShapePointer, Elem: base}
			decl = declChild(decl)
		case "reference_declarator", "abstract_reference_declarator":
			kind := model.ShapeLValueReference
			if hasChildOfKind(decl, "&&") {
				kind = model.ShapeRValueReference
			}
			base = &model.TypeShape{Kind: kind, Elem: base}
			decl = declChild(decl)
		case "array_declarator", "abstract_array_declarator":
			base = &model.TypeShape{Kind: model.ShapeArray, Elem: base}
			decl = declChild(decl)
		case "init_declarator", "parenthesized_declarator":
			decl = declChild(decl)
		case "function_declarator", "abstract_function_declarator":
			// 函数指针字段等：形参继续结构化，供分类器展开
			base = &model.TypeShape{
				Kind:   model.ShapeFunction,
				Params: e.extractParams(decl, scope),
			}
			decl = nil
		default:
			decl = nil
		}
	}
	return base
}

func declChild(decl *sitter.Node) *sitter.Node {
	if inner := decl.ChildByFieldName("declarator"); inner != nil {
		return inner
	}
	return firstNamedChild(decl)
}

// typeFromNode 把一个类型节点翻译为形状，名字经符号表解析
func (e *extractorPass) typeFromNode(node *sitter.Node, scope []string) *model.TypeShape {
	if node == nil {
		return &model.TypeShape{Kind: model.ShapeUnexposed}
	}

	switch node.Kind() {
	case "primitive_type":
		text := nodeText(node, e.source)
		if text == "void" {
			return &model.TypeShape{Kind: model.ShapeVoid}
		}
		return &model.TypeShape{Kind: model.ShapeBuiltin, Name: text}

	case "sized_type_specifier", "placeholder_type_specifier":
		return &model.TypeShape{Kind: model.ShapeBuiltin, Name: nodeText(node, e.source)}

	case "type_identifier":
		return e.resolveNamed(nodeText(node, e.source), scope, 0)

	case "qualified_identifier":
		// std::vector<int> 的 template_type 挂在 name 字段下
		if name := node.ChildByFieldName("name"); name != nil && name.Kind() == "template_type" {
			return e.templateShape(spelledBase(nodeText(node, e.source)), name.ChildByFieldName("arguments"), scope)
		}
		return e.resolveNamed(nodeText(node, e.source), scope, 0)

	case "template_type":
		return e.templateShape(nodeText(node.ChildByFieldName("name"), e.source), node.ChildByFieldName("arguments"), scope)

	case "type_descriptor":
		return e.buildType(node.ChildByFieldName("type"), node.ChildByFieldName("declarator"), scope)

	case "class_specifier", "struct_specifier", "union_specifier", "enum_specifier":
		// 'struct Foo' 这类详述类型说明符
		if name := node.ChildByFieldName("name"); name != nil {
			return e.typeFromNode(name, scope)
		}
		return &model.TypeShape{Kind: model.ShapeUnexposed, RawText: nodeText(node, e.source)}

	default:
		return &model.TypeShape{Kind: model.ShapeUnexposed, RawText: nodeText(node, e.source)}
	}
}

func spelledBase(text string) string {
	if idx := strings.Index(text, "<"); idx >= 0 {
		return strings.TrimSpace(text[:idx])
	}
	return text
}

func (e *extractorPass) resolveNamed(name string, scope []string, depth int) *model.TypeShape {
	if depth > maxAliasDepth {
		return &model.TypeShape{Kind: model.ShapeUnexposed, RawText: name}
	}

	entry := e.frontend.syms.resolve(name, scope)
	if entry == nil {
		return &model.TypeShape{Kind: model.ShapeUnexposed, RawText: name}
	}

	switch entry.kind {
	case symRecord:
		return &model.TypeShape{Kind: model.ShapeRecord, Name: entry.qualifiedName, Namespace: entry.namespace}
	case symEnum:
		return &model.TypeShape{Kind: model.ShapeEnum, Name: entry.qualifiedName, Namespace: entry.namespace}
	case symAlias:
		return e.aliasShape(entry, scope, depth+1)
	}
	return &model.TypeShape{Kind: model.ShapeUnexposed, RawText: name}
}

// aliasShape 按别名目标的原始文本重建形状：
// 模板目标的实参文本用 templatearg 重建后逐个尝试解析，
// 非模板目标剥掉指针/引用修饰后按名解析再包回去。
func (e *extractorPass) aliasShape(entry *symbolEntry, scope []string, depth int) *model.TypeShape {
	target := strings.TrimSpace(entry.aliasTarget)

	if idx := strings.Index(target, "<"); idx >= 0 {
		base := strings.TrimSpace(target[:idx])
		argText := strings.TrimSuffix(strings.TrimSpace(target[idx+1:]), ">")

		shape := &model.TypeShape{Kind: model.ShapeTemplate, Name: base, RawText: target}
		if be := e.frontend.syms.resolve(base, scope); be != nil {
			shape.Name = longerName(base, be.qualifiedName)
			shape.Namespace = be.namespace
		}
		for _, p := range templatearg.ParseParams(argText, nil) {
			if ts := e.resolveNamed(p.Value, scope, depth); ts.Kind != model.ShapeUnexposed {
				shape.Args = append(shape.Args, model.TemplateArg{Kind: model.ArgType, Type: ts, Text: p.Value})
			} else {
				shape.Args = append(shape.Args, model.TemplateArg{Kind: model.ArgUnexposed, Text: p.Value})
			}
		}
		return shape
	}

	trimmed := strings.TrimRight(target, "*& ")
	inner := e.resolveNamed(trimmed, scope, depth)
	for i := len(target) - 1; i >= len(trimmed); i-- {
		switch target[i] {
		case '*':
			inner = &model.TypeShape{Kind: model.ShapePointer, Elem: inner}
		case '&':
			inner = &model.TypeShape{Kind: model.ShapeLValueReference, Elem: inner}
		}
	}
	return inner
}

func (e *extractorPass) templateShape(base string, args *sitter.Node, scope []string) *model.TypeShape {
	shape := &model.TypeShape{Kind: model.ShapeTemplate, Name: base}

	if entry := e.frontend.syms.resolve(base, scope); entry != nil {
		// 拼写名与规范名取较长者。这是无正确性保证的近似启发式，
		// 对别名掉了实参个数的部分特化可能选错，按原样保留。
		shape.Name = longerName(base, entry.qualifiedName)
		shape.Namespace = entry.namespace
		if entry.kind == symAlias {
			shape.Aliased = e.aliasShape(entry, scope, 1)
		}
	}

	if args == nil {
		return shape
	}
	for i := uint(0); i < args.NamedChildCount(); i++ {
		child := args.NamedChild(i)
		if child == nil {
			continue
		}
		text := nodeText(child, e.source)
		switch child.Kind() {
		case "type_descriptor":
			shape.Args = append(shape.Args, model.TemplateArg{
				Kind: model.ArgType,
				Type: e.buildType(child.ChildByFieldName("type"), child.ChildByFieldName("declarator"), scope),
				Text: text,
			})
		case "number_literal", "char_literal", "true", "false":
			shape.Args = append(shape.Args, model.TemplateArg{Kind: model.ArgIntegral, Text: text})
		case "nullptr":
			shape.Args = append(shape.Args, model.TemplateArg{Kind: model.ArgNullPtr, Text: text})
		case "parameter_pack_expansion":
			shape.Args = append(shape.Args, model.TemplateArg{Kind: model.ArgTemplateExpansion, Text: text})
		default:
			shape.Args = append(shape.Args, model.TemplateArg{Kind: model.ArgUnexposed, Text: text})
		}
	}
	return shape
}

// returnShape 取函数的返回类型形状。
// 返回值的指针/引用修饰挂在 function_declarator 之外的声明符上。
func (e *extractorPass) returnShape(node, fd *sitter.Node, scope []string) *model.TypeShape {
	base := e.typeFromNode(node.ChildByFieldName("type"), scope)

	decl := node.ChildByFieldName("declarator")
	for decl != nil && decl.Kind() != "function_declarator" {
		switch decl.Kind() {
		case "pointer_declarator":
			base = &model.TypeShape{Kind: model.ShapePointer, Elem: base}
		case "reference_declarator":
			kind := model.ShapeLValueReference
			if hasChildOfKind(decl, "&&") {
				kind = model.ShapeRValueReference
			}
			base = &model.TypeShape{Kind: kind, Elem: base}
		}
		decl = declChild(decl)
	}
	return base
}

func longerName(spelled, canonical string) string {
	if len(canonical) > len(spelled) {
		return canonical
	}
	return spelled
}
