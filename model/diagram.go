package model

import (
	"sort"
	"sync"
)

// Filter 定义了命名空间包含策略。
// 策略检查必须发生在实体建模与关系创建之前：被排除的实体不会获得 ID 归属，
// 指向它的关系也必须被静默丢弃而不是悬空。
type Filter interface {
	// ShouldInclude 判断一个 "::" 连接的命名空间路径是否纳入图中
	ShouldInclude(namespacePath string) bool
}

// Diagram 持有一次图生成运行的全部模型状态：
// 实体、包、关系与调用活动。它独占其中所有元素。
//
// 插入走单把互斥锁 (single-writer 纪律)：add-if-absent 需要原子的
// check-then-insert，多个翻译单元并发喂同一张图时由锁串行化；
// 关系可以成批合并。渲染只读，不加写锁即可并行。
type Diagram struct {
	Name string

	mu            sync.RWMutex
	filter        Filter
	entities      map[ID]*Entity
	packages      map[ID]*Package
	relationships []Relationship
	activities    map[ID]*Activity
}

// NewDiagram 创建一个空的图模型。filter 为 nil 时包含一切。
func NewDiagram(name string, filter Filter) *Diagram {
	return &Diagram{
		Name:       name,
		filter:     filter,
		entities:   make(map[ID]*Entity),
		packages:   make(map[ID]*Package),
		activities: make(map[ID]*Activity),
	}
}

// ShouldInclude 应用包含策略
func (d *Diagram) ShouldInclude(namespacePath string) bool {
	if d.filter == nil {
		return true
	}
	return d.filter.ShouldInclude(namespacePath)
}

// AddEntity 执行 add-if-absent 插入：只有当包含策略接受该实体、
// 且同 ID 实体尚不存在时才插入。返回是否发生了插入。
func (d *Diagram) AddEntity(e *Entity) bool {
	if e == nil || e.ID == NoID {
		return false
	}
	if !d.ShouldInclude(e.NamespacePath()) {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.entities[e.ID]; exists {
		return false
	}
	d.entities[e.ID] = e
	return true
}

// GetEntity 查找实体。缺席是正常的非错误结果，
// 调用方普遍用它判断 "这个类/命名空间是否已建模"。
func (d *Diagram) GetEntity(id ID) (*Entity, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.entities[id]
	return e, ok
}

// AddPackage 对包执行 add-if-absent 插入。
// policyPath 是策略检查用的完整 (未裁剪) 限定名：包的显示名可能被
// using-namespace 相对化，但包含策略永远作用于完整路径。
func (d *Diagram) AddPackage(p *Package, policyPath string) bool {
	if p == nil || p.ID == NoID {
		return false
	}
	if !d.ShouldInclude(policyPath) {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.packages[p.ID]; exists {
		return false
	}
	d.packages[p.ID] = p
	return true
}

// GetPackage 查找包
func (d *Diagram) GetPackage(id ID) (*Package, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	p, ok := d.packages[id]
	return p, ok
}

// AddRelationships 成批追加关系 (Phase 2 各 worker 的批量合并入口)
func (d *Diagram) AddRelationships(batch []Relationship) {
	if len(batch) == 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	d.relationships = append(d.relationships, batch...)
}

// Relationships 返回关系列表的快照
func (d *Diagram) Relationships() []Relationship {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]Relationship, len(d.relationships))
	copy(out, d.relationships)
	return out
}

// Entities 返回按限定名排序的实体快照 (渲染需要确定性顺序)
func (d *Diagram) Entities() []*Entity {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*Entity, 0, len(d.entities))
	for _, e := range d.entities {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QualifiedName < out[j].QualifiedName })
	return out
}

// Packages 返回按限定名排序的包快照
func (d *Diagram) Packages() []*Package {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*Package, 0, len(d.packages))
	for _, p := range d.packages {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QualifiedName() < out[j].QualifiedName() })
	return out
}

// AddActivity 对调用活动执行 add-if-absent 插入
func (d *Diagram) AddActivity(a *Activity) bool {
	if a == nil || a.ID == NoID {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.activities[a.ID]; exists {
		return false
	}
	d.activities[a.ID] = a
	return true
}

// GetActivity 按调用标识查找活动
func (d *Diagram) GetActivity(id ID) (*Activity, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	a, ok := d.activities[id]
	return a, ok
}

// EntityCount 返回实体数量 (测试与诊断用)
func (d *Diagram) EntityCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entities)
}

// PackageCount 返回包数量
func (d *Diagram) PackageCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.packages)
}
