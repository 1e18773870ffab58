package model

// --- UML 关系类型 (Relationship Kinds) ---

// RelationKind 是表示两个实体之间 UML 关系类型的字符串常量
type RelationKind string

const (
	// Association 关联: Source 持有对 Target 的引用/指针
	// e.g., [C++: Widget* / Widget&]
	Association RelationKind = "ASSOCIATION"

	// Aggregation 聚合: Source 拥有 Target，但不负责其完整生命周期
	// e.g., [C++: Widget&& / Widget[]]
	Aggregation RelationKind = "AGGREGATION"

	// Composition 组合: Source 完全拥有 Target 的生命周期
	Composition RelationKind = "COMPOSITION"

	// Dependency 依赖: Source 在签名或成员中按值使用 Target
	Dependency RelationKind = "DEPENDENCY"

	// Inheritance 继承: Source 以 Target 为基类
	Inheritance RelationKind = "INHERITANCE"
)

// Relationship 描述了两个实体之间的一条有向带类型的边。
// 创建后只追加、不删除；但目标被包含策略排除的边根本不会被创建。
type Relationship struct {
	Source ID           `json:"Source"`          // Source: 发起方实体 ID
	Target ID           `json:"Target"`          // Target: 指向方实体 ID
	Kind   RelationKind `json:"Kind"`            // Kind: 关系类型
	Label  string       `json:"Label,omitempty"` // Label: 可选的角色/标签
}
