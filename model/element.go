package model

import "strings"

// --- 实体类型 (Entity Kinds) ---

// EntityKind 是表示模型实体类型的字符串常量
type EntityKind string

const (
	KindClass    EntityKind = "CLASS"    // Class: C++ class/struct/union 记录类型
	KindEnum     EntityKind = "ENUM"     // Enum: 枚举类型
	KindFunction EntityKind = "FUNCTION" // Function: 自由函数或方法
	KindPackage  EntityKind = "PACKAGE"  // Package: 命名空间映射出的层级分组
)

// --- 访问级别 (Access Specifiers) ---

// Access 表示声明的访问级别
type Access string

const (
	AccessPublic    Access = "PUBLIC"
	AccessProtected Access = "PROTECTED"
	AccessPrivate   Access = "PRIVATE"
)

// Location 描述了实体在源码中的位置
type Location struct {
	FilePath    string `json:"FilePath"`
	StartLine   int    `json:"StartLine"`
	EndLine     int    `json:"EndLine"`
	StartColumn int    `json:"StartColumn"`
	EndColumn   int    `json:"EndColumn"`
}

// Entity 描述了图模型中的一个可识别实体。
// 每个唯一 ID 只在首次被接受的访问时创建一次，之后 ID 与 Kind 不再变化，
// 生命周期与单次图生成运行中的 DiagramModel 一致。
type Entity struct {
	ID            ID                  `json:"ID"`                     // ID: 由限定名确定性推导，见 ToID
	Kind          EntityKind          `json:"Kind"`                   // Kind: 实体类型 (CLASS, ENUM, FUNCTION, PACKAGE)
	Name          string              `json:"Name"`                   // Name: 短名称 (e.g., "Widget")
	QualifiedName string              `json:"QualifiedName"`          // QualifiedName: 完整限定名 (e.g., "ns::ui::Widget")
	Namespace     []string            `json:"Namespace,omitempty"`    // Namespace: 所在命名空间路径
	Access        Access              `json:"Access,omitempty"`       // Access: 访问级别
	Deprecated    bool                `json:"Deprecated,omitempty"`   // Deprecated: 是否带有 [[deprecated]] 属性
	Location      *Location           `json:"Location,omitempty"`     // Location: 声明位置
	TemplateArgs  []TemplateParameter `json:"TemplateArgs,omitempty"` // TemplateArgs: 结构化模板参数树
}

// NamespacePath 返回以 "::" 连接的命名空间路径
func (e *Entity) NamespacePath() string {
	return strings.Join(e.Namespace, "::")
}

// Package 是命名空间映射出的层级分组实体。
// 父子边由丢弃路径末尾 token 隐式推导，因此包结构是一棵前缀树，构造上无环。
type Package struct {
	ID         ID        `json:"ID"`
	Name       string    `json:"Name"`                // Name: 路径的最后一个 token
	Namespace  []string  `json:"Namespace,omitempty"` // Namespace: 父路径 (去掉最后一个 token)
	Deprecated bool      `json:"Deprecated,omitempty"`
	Location   *Location `json:"Location,omitempty"`
}

// QualifiedName 返回包的完整限定名
func (p *Package) QualifiedName() string {
	if len(p.Namespace) == 0 {
		return p.Name
	}
	return strings.Join(p.Namespace, "::") + "::" + p.Name
}
