package classify

import (
	"strings"

	"github.com/CodMac/cpp-treesitter-uml-analyzer/model"
)

// Found 是分类器发现的一个 (目标实体 ID, 关系类型) 对
type Found struct {
	Target model.ID
	Kind   model.RelationKind
}

// FindRelationships 递归展开一个类型形状，收集零或多条 (目标, 关系类型)。
//
// hint 由调用方给出初值 (字段/形参/返回值默认 Dependency)，沿到达具体端点
// 的路径累积途中遇到的间接层：指针与左值引用升级为 Association，右值引用
// 与数组升级为 Aggregation。进入模板实参不会升级也不会重置 hint，兄弟实参
// 之间互不影响，因此 vector<Widget*> 得到 (Widget, ASSOCIATION) 而
// vector<Widget> 继承字段自身的默认 hint。
//
// 规则按序求值，首个命中即生效；返回是否发现了至少一个端点。
func FindRelationships(t *model.TypeShape, found *[]Found, hint model.RelationKind, flt model.Filter) bool {
	if t == nil {
		return false
	}

	result := false

	switch {
	case t.Kind == model.ShapeVoid || t.IsVoidPointer():
		// pass

	case t.Kind == model.ShapePointer:
		result = FindRelationships(t.Elem, found, model.Association, flt)

	case t.Kind == model.ShapeRValueReference:
		result = FindRelationships(t.Elem, found, model.Aggregation, flt)

	case t.Kind == model.ShapeLValueReference:
		result = FindRelationships(t.Elem, found, model.Association, flt)

	case t.Kind == model.ShapeArray:
		result = FindRelationships(t.Elem, found, model.Aggregation, flt)

	case t.Kind == model.ShapeEnum:
		if shouldInclude(flt, t.Namespace) {
			*found = append(*found, Found{Target: model.ToID(t.Name), Kind: hint})
			result = true
		}

	case t.Kind == model.ShapeTemplate:
		spec := t
		if spec.Aliased != nil {
			// 别名特化先解析到被别名的特化
			spec = spec.Aliased
		}
		for _, arg := range spec.Args {
			switch arg.Kind {
			case model.ArgIntegral, model.ArgNull, model.ArgNullPtr,
				model.ArgExpression, model.ArgTemplate, model.ArgTemplateExpansion:
				// 非类型实参不贡献任何关系
			case model.ArgType:
				if arg.Type != nil && arg.Type.Kind == model.ShapeFunction {
					for _, param := range arg.Type.Params {
						if FindRelationships(param, found, hint, flt) {
							result = true
						}
					}
					continue
				}
				if FindRelationships(arg.Type, found, hint, flt) {
					result = true
				}
			default:
				// 未知实参种类：跳过，留给调用方记日志
			}
		}

	case t.Kind == model.ShapeRecord:
		if shouldInclude(flt, t.Namespace) {
			*found = append(*found, Found{Target: model.ToID(t.Name), Kind: hint})
			result = true
		}

	default:
		// Builtin / Function / Unexposed 自身不产生关系
	}

	return result
}

func shouldInclude(flt model.Filter, namespace []string) bool {
	if flt == nil {
		return true
	}
	return flt.ShouldInclude(strings.Join(namespace, "::"))
}
