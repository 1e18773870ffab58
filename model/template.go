package model

import "strings"

// --- 模板形参树 (Template Parameter Tree) ---

// TemplateParameterKind 是表示模板参数种类的字符串常量
type TemplateParameterKind string

const (
	ParamType      TemplateParameterKind = "TYPE"      // 类型参数
	ParamValue     TemplateParameterKind = "VALUE"     // 非类型(值)参数
	ParamUnexposed TemplateParameterKind = "UNEXPOSED" // 无法解析、仅有文本的参数
)

// TemplateParameter 是结构化模板参数树的一个节点。
// 该树只能通过消耗一段有限的输入文本构建，因此不可能成环。
type TemplateParameter struct {
	Kind       TemplateParameterKind `json:"Kind"`
	Value      string                `json:"Value"`                // Value: 文本表示 (基础名，不含嵌套实参)
	Params     []TemplateParameter   `json:"Params,omitempty"`     // Params: 有序的嵌套参数
	IsVariadic bool                  `json:"IsVariadic,omitempty"` // IsVariadic: 是否为包展开 (...)
}

// MakeUnexposedParameter 以原始文本构造一个 Unexposed 参数节点
func MakeUnexposedParameter(value string) TemplateParameter {
	value = strings.TrimSpace(value)
	return TemplateParameter{
		Kind:       ParamUnexposed,
		Value:      strings.TrimSuffix(value, "..."),
		IsVariadic: strings.HasSuffix(value, "..."),
	}
}

// String 渲染 "Base<P1,P2>" 形式的显示名 (仅用于诊断与展示)
func (p TemplateParameter) String() string {
	if len(p.Params) == 0 {
		return p.displayValue()
	}
	nested := make([]string, 0, len(p.Params))
	for _, n := range p.Params {
		nested = append(nested, n.String())
	}
	return p.displayValue() + "<" + strings.Join(nested, ",") + ">"
}

func (p TemplateParameter) displayValue() string {
	if p.IsVariadic {
		return p.Value + "..."
	}
	return p.Value
}
