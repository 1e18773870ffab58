package cpp

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// collectorPass 是阶段 1 的遍历：只登记定义，不产出声明
type collectorPass struct {
	frontend *Frontend
	path     string
	source   []byte
}

func (c *collectorPass) walk(node *sitter.Node, namespace, recordChain []string) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "namespace_definition":
			segs, body := namespaceParts(child, c.source)
			if body != nil {
				c.walk(body, append(append([]string{}, namespace...), segs...), recordChain)
			}
		case "class_specifier", "struct_specifier", "union_specifier":
			c.collectRecord(child, namespace, recordChain)
		case "enum_specifier":
			c.collectEnum(child, namespace, recordChain)
		case "alias_declaration":
			c.collectAlias(child, namespace, recordChain)
		case "type_definition":
			c.collectTypedef(child, namespace, recordChain)
		case "function_definition":
			c.collectFunction(child, namespace, recordChain)
		case "template_declaration", "declaration", "linkage_specification",
			"preproc_if", "preproc_ifdef", "preproc_else", "declaration_list":
			// 包装节点：透传继续找里面的定义
			c.walk(child, namespace, recordChain)
		}
	}
}

func (c *collectorPass) collectRecord(node *sitter.Node, namespace, recordChain []string) {
	body := node.ChildByFieldName("body")
	if body == nil {
		// 前置声明不登记
		return
	}

	base, _ := recordName(node, c.source)
	if base == "" {
		// 匿名记录没有可解析的名字，只下钻嵌套定义
		c.walkRecordBody(body, namespace, recordChain, "")
		return
	}

	qn := qualify(namespace, recordChain, base)
	c.frontend.syms.register(&symbolEntry{
		kind:          symRecord,
		name:          base,
		qualifiedName: qn,
		namespace:     namespace,
	})

	c.walkRecordBody(body, namespace, append(append([]string{}, recordChain...), base), qn)
}

// walkRecordBody 登记记录体内的嵌套类型与方法
func (c *collectorPass) walkRecordBody(body *sitter.Node, namespace, recordChain []string, recordQN string) {
	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "class_specifier", "struct_specifier", "union_specifier":
			c.collectRecord(child, namespace, recordChain)
		case "enum_specifier":
			c.collectEnum(child, namespace, recordChain)
		case "alias_declaration":
			c.collectAlias(child, namespace, recordChain)
		case "type_definition":
			c.collectTypedef(child, namespace, recordChain)
		case "function_definition":
			c.collectMethod(child, recordQN)
		case "field_declaration", "declaration":
			if fd := findFunctionDeclarator(child.ChildByFieldName("declarator")); fd != nil {
				c.collectMethodDecl(child, fd, recordQN)
			}
		case "template_declaration":
			c.walkRecordBody(child, namespace, recordChain, recordQN)
		}
	}
}

func (c *collectorPass) collectEnum(node *sitter.Node, namespace, recordChain []string) {
	if node.ChildByFieldName("body") == nil {
		return
	}
	name := nodeText(node.ChildByFieldName("name"), c.source)
	if name == "" {
		return
	}
	c.frontend.syms.register(&symbolEntry{
		kind:          symEnum,
		name:          name,
		qualifiedName: qualify(namespace, recordChain, name),
		namespace:     namespace,
	})
}

func (c *collectorPass) collectAlias(node *sitter.Node, namespace, recordChain []string) {
	name := nodeText(node.ChildByFieldName("name"), c.source)
	target := nodeText(node.ChildByFieldName("type"), c.source)
	if name == "" || target == "" {
		return
	}
	c.frontend.syms.register(&symbolEntry{
		kind:          symAlias,
		name:          name,
		qualifiedName: qualify(namespace, recordChain, name),
		namespace:     namespace,
		aliasTarget:   target,
	})
}

func (c *collectorPass) collectTypedef(node *sitter.Node, namespace, recordChain []string) {
	name := declaratorName(node.ChildByFieldName("declarator"), c.source)
	target := nodeText(node.ChildByFieldName("type"), c.source)
	if name == "" || target == "" {
		return
	}
	c.frontend.syms.register(&symbolEntry{
		kind:          symAlias,
		name:          name,
		qualifiedName: qualify(namespace, recordChain, name),
		namespace:     namespace,
		aliasTarget:   target,
	})
}

// collectFunction 登记命名空间作用域的函数定义，
// 包括类外定义的方法体 (void A::a() {})。
func (c *collectorPass) collectFunction(node *sitter.Node, namespace, recordChain []string) {
	fd := findFunctionDeclarator(node.ChildByFieldName("declarator"))
	if fd == nil {
		return
	}
	name := declaratorName(fd.ChildByFieldName("declarator"), c.source)
	if name == "" {
		return
	}

	qn := qualify(namespace, recordChain, name)
	participant := qn
	if idx := strings.LastIndex(qn, "::"); idx >= 0 {
		// 类外方法定义的参与者是所属记录
		participant = qn[:idx]
	}

	c.frontend.syms.register(&symbolEntry{
		kind:           symFunction,
		name:           lastSegment(name),
		qualifiedName:  qn,
		namespace:      namespace,
		participant:    participant,
		returnTypeName: nodeText(node.ChildByFieldName("type"), c.source),
	})
}

func (c *collectorPass) collectMethod(node *sitter.Node, recordQN string) {
	if recordQN == "" {
		return
	}
	fd := findFunctionDeclarator(node.ChildByFieldName("declarator"))
	if fd == nil {
		return
	}
	c.collectMethodDecl(node, fd, recordQN)
}

func (c *collectorPass) collectMethodDecl(node, fd *sitter.Node, recordQN string) {
	if recordQN == "" {
		return
	}
	name := declaratorName(fd.ChildByFieldName("declarator"), c.source)
	if name == "" {
		return
	}
	c.frontend.syms.register(&symbolEntry{
		kind:           symFunction,
		name:           name,
		qualifiedName:  recordQN + "::" + name,
		participant:    recordQN,
		returnTypeName: nodeText(node.ChildByFieldName("type"), c.source),
	})
}

func lastSegment(name string) string {
	if idx := strings.LastIndex(name, "::"); idx >= 0 {
		return name[idx+2:]
	}
	return name
}
