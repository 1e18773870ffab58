package cpp

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	"go.uber.org/zap"

	"github.com/CodMac/cpp-treesitter-uml-analyzer/frontend"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/model"
)

// extractorPass 是阶段 2 的遍历：对照符号表产出已解析的声明
type extractorPass struct {
	frontend *Frontend
	path     string
	source   []byte
	system   bool
	decls    []frontend.Declaration
}

func (e *extractorPass) walk(node *sitter.Node, namespace, recordChain []string) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "namespace_definition":
			e.extractNamespace(child, namespace, recordChain)
		case "class_specifier", "struct_specifier", "union_specifier":
			e.extractRecord(child, namespace, recordChain, model.AccessPublic)
		case "enum_specifier":
			e.extractEnum(child, namespace, recordChain, model.AccessPublic)
		case "function_definition":
			e.extractFunction(child, namespace, recordChain)
		case "template_declaration", "declaration", "linkage_specification",
			"preproc_if", "preproc_ifdef", "preproc_else", "declaration_list":
			e.walk(child, namespace, recordChain)
		}
	}
}

func (e *extractorPass) extractNamespace(node *sitter.Node, namespace, recordChain []string) {
	segs, body := namespaceParts(node, e.source)
	path := append([]string{}, namespace...)

	deprecated := hasDeprecatedAttr(node, e.source)
	for _, seg := range segs {
		e.decls = append(e.decls, frontend.Declaration{
			Kind:           frontend.DeclNamespace,
			Name:           seg,
			QualifiedName:  qualify(path, nil, seg),
			Namespace:      append([]string{}, path...),
			Deprecated:     deprecated,
			InSystemHeader: e.system,
			Location:       location(node, e.path),
		})
		path = append(path, seg)
	}

	if body != nil {
		e.walk(body, path, recordChain)
	}
}

func (e *extractorPass) extractRecord(node *sitter.Node, namespace, recordChain []string, access model.Access) {
	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}

	base, argText := recordName(node, e.source)
	decl := frontend.Declaration{
		Kind:            frontend.DeclRecord,
		Name:            base,
		Namespace:       append([]string{}, namespace...),
		RecordChain:     append([]string{}, recordChain...),
		Access:          access,
		Deprecated:      hasDeprecatedAttr(node, e.source),
		InSystemHeader:  e.system,
		Location:        location(node, e.path),
		TemplateArgText: argText,
	}
	if base != "" {
		decl.QualifiedName = qualify(namespace, recordChain, base)
	}

	if bc := childOfKind(node, "base_class_clause"); bc != nil {
		decl.Bases = e.extractBases(bc, namespace)
	}

	childChain := recordChain
	if base != "" {
		childChain = append(append([]string{}, recordChain...), base)
	}
	// 方法体内的短名解析把记录链也当作前缀作用域
	scope := append(append([]string{}, namespace...), childChain...)

	cur := model.AccessPublic
	if node.Kind() == "class_specifier" {
		cur = model.AccessPrivate
	}

	e.extractRecordBody(body, &decl, namespace, childChain, scope, &cur)
	e.decls = append(e.decls, decl)
}

func (e *extractorPass) extractRecordBody(body *sitter.Node, decl *frontend.Declaration, namespace, childChain, scope []string, cur *model.Access) {
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "access_specifier":
			if a := parseAccess(nodeText(child, e.source)); a != "" {
				*cur = a
			}
		case "field_declaration", "declaration":
			declarator := child.ChildByFieldName("declarator")
			if fd := findFunctionDeclarator(declarator); fd != nil {
				if m, ok := e.extractMethod(child, fd, nil, scope, *cur); ok {
					decl.Methods = append(decl.Methods, m)
				}
			} else if m, ok := e.extractMember(child, scope, *cur); ok {
				decl.Members = append(decl.Members, m)
			}
		case "function_definition":
			fd := findFunctionDeclarator(child.ChildByFieldName("declarator"))
			if fd == nil {
				continue
			}
			if m, ok := e.extractMethod(child, fd, child.ChildByFieldName("body"), scope, *cur); ok {
				decl.Methods = append(decl.Methods, m)
			}
		case "friend_declaration":
			decl.Friends = append(decl.Friends, e.extractFriend(child, scope))
		case "class_specifier", "struct_specifier", "union_specifier":
			e.extractRecord(child, namespace, childChain, *cur)
		case "enum_specifier":
			e.extractEnum(child, namespace, childChain, *cur)
		case "template_declaration":
			e.extractRecordBody(child, decl, namespace, childChain, scope, cur)
		}
	}
}

func (e *extractorPass) extractBases(clause *sitter.Node, scope []string) []*model.TypeShape {
	var bases []*model.TypeShape
	for i := uint(0); i < clause.NamedChildCount(); i++ {
		child := clause.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "type_identifier", "qualified_identifier", "template_type":
			bases = append(bases, e.typeFromNode(child, scope))
		}
	}
	return bases
}

func (e *extractorPass) extractMember(node *sitter.Node, scope []string, access model.Access) (frontend.Member, bool) {
	typeNode := node.ChildByFieldName("type")
	declarator := node.ChildByFieldName("declarator")
	name := declaratorName(declarator, e.source)
	if typeNode == nil || name == "" {
		return frontend.Member{}, false
	}

	static := false
	if sc := childOfKind(node, "storage_class_specifier"); sc != nil {
		static = nodeText(sc, e.source) == "static"
	}

	return frontend.Member{
		Name:   name,
		Access: access,
		Static: static,
		Type:   e.buildType(typeNode, declarator, scope),
	}, true
}

func (e *extractorPass) extractMethod(node, fd, body *sitter.Node, scope []string, access model.Access) (frontend.Method, bool) {
	name := declaratorName(fd.ChildByFieldName("declarator"), e.source)
	if name == "" {
		return frontend.Method{}, false
	}

	m := frontend.Method{
		Name:       lastSegment(name),
		Access:     access,
		ReturnType: e.returnShape(node, fd, scope),
		Params:     e.extractParams(fd, scope),
	}
	if body != nil {
		m.Calls = e.collectCalls(body, scope)
	}
	return m, true
}

func (e *extractorPass) extractParams(fd *sitter.Node, scope []string) []*model.TypeShape {
	params := fd.ChildByFieldName("parameters")
	if params == nil {
		return nil
	}

	var shapes []*model.TypeShape
	for i := uint(0); i < params.NamedChildCount(); i++ {
		child := params.NamedChild(i)
		if child == nil || child.Kind() != "parameter_declaration" {
			continue
		}
		typeNode := child.ChildByFieldName("type")
		if typeNode == nil {
			continue
		}
		shapes = append(shapes, e.buildType(typeNode, child.ChildByFieldName("declarator"), scope))
	}
	return shapes
}

// extractFriend 解析 friend 声明指向的类型；
// 解析不到的留成 Unexposed 叶，由建模侧决定丢弃
func (e *extractorPass) extractFriend(node *sitter.Node, scope []string) *model.TypeShape {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "type_identifier", "qualified_identifier", "template_type":
			return e.typeFromNode(child, scope)
		case "class_specifier", "struct_specifier", "union_specifier":
			if name := child.ChildByFieldName("name"); name != nil {
				return e.typeFromNode(name, scope)
			}
		}
	}

	raw := strings.TrimSpace(strings.TrimSuffix(nodeText(node, e.source), ";"))
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "friend"))
	return &model.TypeShape{Kind: model.ShapeUnexposed, RawText: raw}
}

func (e *extractorPass) extractEnum(node *sitter.Node, namespace, recordChain []string, access model.Access) {
	if node.ChildByFieldName("body") == nil {
		return
	}
	name := nodeText(node.ChildByFieldName("name"), e.source)

	decl := frontend.Declaration{
		Kind:           frontend.DeclEnum,
		Name:           name,
		Namespace:      append([]string{}, namespace...),
		RecordChain:    append([]string{}, recordChain...),
		Access:         access,
		Deprecated:     hasDeprecatedAttr(node, e.source),
		InSystemHeader: e.system,
		Location:       location(node, e.path),
	}
	if name != "" {
		decl.QualifiedName = qualify(namespace, recordChain, name)
	}
	e.decls = append(e.decls, decl)
}

func (e *extractorPass) extractFunction(node *sitter.Node, namespace, recordChain []string) {
	fd := findFunctionDeclarator(node.ChildByFieldName("declarator"))
	if fd == nil {
		return
	}
	name := declaratorName(fd.ChildByFieldName("declarator"), e.source)
	if name == "" {
		return
	}

	qn := qualify(namespace, recordChain, name)
	scope := namespace
	if idx := strings.LastIndex(qn, "::"); idx >= 0 {
		// 类外方法定义：体内短名在所属记录作用域下解析
		scope = strings.Split(qn[:idx], "::")
	}

	e.decls = append(e.decls, frontend.Declaration{
		Kind:           frontend.DeclFunction,
		Name:           lastSegment(name),
		QualifiedName:  qn,
		Namespace:      append([]string{}, namespace...),
		Deprecated:     hasDeprecatedAttr(node, e.source),
		InSystemHeader: e.system,
		Location:       location(node, e.path),
		ReturnType:     e.returnShape(node, fd, scope),
		Params:         e.extractParams(fd, scope),
		Calls:          e.collectCalls(node.ChildByFieldName("body"), scope),
	})
}

// collectCalls 深度优先收集函数体内的调用表达式，保持源码顺序。
// 解析不到被调方定义的调用按句法噪声丢弃。
func (e *extractorPass) collectCalls(body *sitter.Node, scope []string) []frontend.Call {
	if body == nil {
		return nil
	}
	var calls []frontend.Call
	e.walkCalls(body, scope, &calls)
	return calls
}

func (e *extractorPass) walkCalls(node *sitter.Node, scope []string, calls *[]frontend.Call) {
	if node.Kind() == "call_expression" {
		if fn := node.ChildByFieldName("function"); fn != nil {
			e.resolveCall(fn, scope, calls)
		}
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child != nil {
			e.walkCalls(child, scope, calls)
		}
	}
}

func (e *extractorPass) resolveCall(fn *sitter.Node, scope []string, calls *[]frontend.Call) {
	syms := e.frontend.syms
	var entry *symbolEntry

	switch fn.Kind() {
	case "identifier", "qualified_identifier":
		entry = syms.resolve(nodeText(fn, e.source), scope)
	case "field_expression":
		// obj.method() / ptr->method()：只有方法短名可用
		entry = syms.resolveShort(nodeText(fn.ChildByFieldName("field"), e.source))
	default:
		return
	}

	if entry == nil || entry.kind != symFunction {
		e.frontend.log.Debug("dropping unresolved call",
			zap.String("path", e.path), zap.String("callee", nodeText(fn, e.source)))
		return
	}

	*calls = append(*calls, frontend.Call{
		CalleeQualifiedName: entry.qualifiedName,
		CalleeParticipant:   entry.participant,
		Label:               entry.name,
		ReturnTypeName:      entry.returnTypeName,
	})
}

func parseAccess(text string) model.Access {
	switch strings.TrimSpace(strings.TrimSuffix(text, ":")) {
	case "public":
		return model.AccessPublic
	case "protected":
		return model.AccessProtected
	case "private":
		return model.AccessPrivate
	}
	return ""
}
