// Package frontend 定义了语言前端的边界。
//
// 前端句柄 (AST 节点) 是非拥有的、绑定在单个翻译单元的瞬时内存上的。
// 因此这里的 Declaration 全部是急切拷贝出的纯标量/值结构：
// 访问阶段结束后，模型构建绝不会再触碰任何原始句柄。
package frontend

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/CodMac/cpp-treesitter-uml-analyzer/model"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/parser"
)

// DeclKind 是表示声明种类的字符串常量
type DeclKind string

const (
	DeclNamespace DeclKind = "NAMESPACE" // 命名空间定义
	DeclRecord    DeclKind = "RECORD"    // class / struct / union
	DeclEnum      DeclKind = "ENUM"      // 枚举定义
	DeclFunction  DeclKind = "FUNCTION"  // 自由函数定义
)

// Call 是函数体内的一次调用，已解析到被调方限定名
type Call struct {
	CalleeQualifiedName string // 被调 callable 的限定名 (e.g., "A::AA::aa")
	CalleeParticipant   string // 被调方参与者显示名 (方法为所属记录，自由函数为其自身)
	Label               string // 显示文本 (e.g., "aa")
	ReturnTypeName      string // 被调方返回类型的打印名，未知为 ""
}

// Member 是记录类型的一个数据成员
type Member struct {
	Name   string
	Access model.Access
	Static bool
	Type   *model.TypeShape
}

// Method 是记录类型的一个方法
type Method struct {
	Name       string
	Access     model.Access
	ReturnType *model.TypeShape
	Params     []*model.TypeShape
	Calls      []Call
}

// Declaration 是从一个翻译单元中拷贝出的声明。
// 字段按 Kind 部分有效：Record 用 Bases/Members/Methods/Friends，
// Function 用 ReturnType/Params/Calls。
type Declaration struct {
	Kind           DeclKind
	Name           string
	QualifiedName  string
	Namespace      []string // 外围命名空间路径，inline/匿名段已剔除
	RecordChain    []string // 外围记录链 (嵌套类)
	Access         model.Access
	Deprecated     bool
	InSystemHeader bool
	Location       *model.Location

	// Record
	Bases           []*model.TypeShape
	Members         []Member
	Methods         []Method
	Friends         []*model.TypeShape
	TemplateArgText string // 前端未能结构化解析的模板实参文本

	// Function
	ReturnType *model.TypeShape
	Params     []*model.TypeShape
	Calls      []Call
}

// TranslationUnit 是一个翻译单元的访问产物
type TranslationUnit struct {
	Path         string
	Declarations []Declaration
}

// Frontend 定义了两阶段的前端能力：
// 先跨所有翻译单元收集定义 (符号表)，再逐单元产出已解析的声明。
type Frontend interface {
	// Collect 是第一阶段：扫描一个翻译单元，登记其中的定义
	Collect(path string) error
	// Extract 是第二阶段：产出该单元已解析的声明序列
	Extract(path string) (*TranslationUnit, error)
}

// Options 是创建前端时的配置
type Options struct {
	// SystemHeaderRoots 下的文件被视为系统头，声明打上 InSystemHeader
	SystemHeaderRoots []string
	// Logger 为 nil 时前端静默
	Logger *zap.Logger
}

// Factory 是创建特定语言 Frontend 实例的工厂函数类型
type Factory func(opts Options) Frontend

var frontendFactories = make(map[parser.Language]Factory)

// RegisterFrontend 注册一个语言与其对应的 Frontend 工厂函数
func RegisterFrontend(lang parser.Language, factory Factory) {
	frontendFactories[lang] = factory
}

// GetFrontend 根据语言类型创建对应的 Frontend 实例
func GetFrontend(lang parser.Language, opts Options) (Frontend, error) {
	factory, ok := frontendFactories[lang]
	if !ok {
		return nil, fmt.Errorf("no frontend registered for language: %s", lang)
	}
	return factory(opts), nil
}
