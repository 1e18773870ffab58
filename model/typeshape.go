package model

// --- 类型形状 (Type Shapes) ---
//
// 前端把每个语义类型急切地拷贝为一棵 TypeShape 树：一个封闭的 tagged union，
// 关系分类器对其做穷举匹配。原始前端句柄绝不保留到访问阶段之后。

// ShapeKind 是表示类型形状的字符串常量
type ShapeKind string

const (
	ShapeVoid            ShapeKind = "VOID"      // void
	ShapePointer         ShapeKind = "POINTER"   // X* (Elem = X)
	ShapeLValueReference ShapeKind = "LVALUE_REF" // X& (Elem = X)
	ShapeRValueReference ShapeKind = "RVALUE_REF" // X&& (Elem = X)
	ShapeArray           ShapeKind = "ARRAY"     // X[] (Elem = X)
	ShapeEnum            ShapeKind = "ENUM"      // 已解析到声明的枚举类型
	ShapeRecord          ShapeKind = "RECORD"    // 已解析到声明的 class/struct/union
	ShapeTemplate        ShapeKind = "TEMPLATE"  // 模板特化 T<Args...>
	ShapeFunction        ShapeKind = "FUNCTION"  // 函数原型 (Params = 形参类型)
	ShapeBuiltin         ShapeKind = "BUILTIN"   // 基础类型 (int, double, ...)
	ShapeUnexposed       ShapeKind = "UNEXPOSED" // 前端无法结构化解析的类型，仅有文本
)

// TypeShape 是类型形状的 tagged union 表示。
// 除 Kind 外，各字段只在对应形状下有意义。
type TypeShape struct {
	Kind      ShapeKind     `json:"Kind"`
	Name      string        `json:"Name,omitempty"`      // Name: Enum/Record/Template 的限定名
	Namespace []string      `json:"Namespace,omitempty"` // Namespace: Enum/Record 的外围命名空间
	Elem      *TypeShape    `json:"Elem,omitempty"`      // Elem: 指针/引用/数组的被包裹类型
	Args      []TemplateArg `json:"Args,omitempty"`      // Args: 模板特化的有序实参列表
	Params    []*TypeShape  `json:"Params,omitempty"`    // Params: 函数原型的形参类型
	Aliased   *TypeShape    `json:"Aliased,omitempty"`   // Aliased: 别名特化解析到的目标特化
	RawText   string        `json:"RawText,omitempty"`   // RawText: Unexposed 形状的原始文本
}

// IsVoidPointer 判断是否为 void 指针
func (t *TypeShape) IsVoidPointer() bool {
	return t.Kind == ShapePointer && t.Elem != nil && t.Elem.Kind == ShapeVoid
}

// --- 模板实参 (Template Arguments) ---

// TemplateArgKind 是表示模板实参种类的字符串常量
type TemplateArgKind string

const (
	ArgType              TemplateArgKind = "TYPE"               // 类型实参 (Type 字段有效)
	ArgIntegral          TemplateArgKind = "INTEGRAL"           // 整型值实参
	ArgNull              TemplateArgKind = "NULL"               // 空实参
	ArgNullPtr           TemplateArgKind = "NULLPTR"            // nullptr 实参
	ArgExpression        TemplateArgKind = "EXPRESSION"         // 表达式实参
	ArgTemplate          TemplateArgKind = "TEMPLATE"           // 模板模板实参
	ArgTemplateExpansion TemplateArgKind = "TEMPLATE_EXPANSION" // 包展开实参
	ArgUnexposed         TemplateArgKind = "UNEXPOSED"          // 仅有文本的实参 (Text 字段有效)
)

// TemplateArg 是模板特化中的一个实参
type TemplateArg struct {
	Kind TemplateArgKind `json:"Kind"`
	Type *TypeShape      `json:"Type,omitempty"` // Type: Kind == TYPE 时的类型形状
	Text string          `json:"Text,omitempty"` // Text: 值实参或 Unexposed 实参的文本
}
