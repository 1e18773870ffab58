// Package cpp 是基于 Tree-sitter 的 C++ 前端适配器。
//
// 两阶段工作：Collect 先跨翻译单元登记记录/枚举/别名/函数定义 (符号表)，
// Extract 再逐单元产出已解析的声明。所有需要的标量在访问期间急切拷贝，
// AST 节点绝不保留到解析调用之外。
//
// 没有预处理器与语义分析，名字解析是符号表驱动的句法近似。
package cpp

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/CodMac/cpp-treesitter-uml-analyzer/frontend"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/parser"
)

type symbolKind int

const (
	symRecord symbolKind = iota
	symEnum
	symAlias
	symFunction
)

// symbolEntry 是符号表中的一个定义
type symbolEntry struct {
	kind          symbolKind
	name          string
	qualifiedName string
	namespace     []string

	// symAlias: 别名目标的原始文本 (e.g. "std::vector<int>")
	aliasTarget string

	// symFunction
	participant    string // 方法为所属记录 QN，自由函数为自身 QN
	returnTypeName string
}

// symbolTable 跨翻译单元共享，阶段 1 并发写入需要加锁
type symbolTable struct {
	mu     sync.RWMutex
	byQN   map[string]*symbolEntry
	byName map[string][]*symbolEntry
}

func newSymbolTable() *symbolTable {
	return &symbolTable{
		byQN:   make(map[string]*symbolEntry),
		byName: make(map[string][]*symbolEntry),
	}
}

func (st *symbolTable) register(e *symbolEntry) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, exists := st.byQN[e.qualifiedName]; exists {
		return
	}
	st.byQN[e.qualifiedName] = e
	st.byName[e.name] = append(st.byName[e.name], e)
}

// resolve 从最深的外围命名空间前缀开始逐级查找限定名，
// 最后兜底按原样查 (代码里直接写全限定名的情况)。
func (st *symbolTable) resolve(name string, namespace []string) *symbolEntry {
	st.mu.RLock()
	defer st.mu.RUnlock()

	for i := len(namespace); i > 0; i-- {
		qn := strings.Join(namespace[:i], "::") + "::" + name
		if e, ok := st.byQN[qn]; ok {
			return e
		}
	}
	if e, ok := st.byQN[name]; ok {
		return e
	}
	return nil
}

// resolveShort 按短名查找，多重定义时取第一个
func (st *symbolTable) resolveShort(name string) *symbolEntry {
	st.mu.RLock()
	defer st.mu.RUnlock()

	if entries, ok := st.byName[name]; ok && len(entries) > 0 {
		return entries[0]
	}
	return nil
}

// Frontend 实现 frontend.Frontend
type Frontend struct {
	opts frontend.Options
	log  *zap.Logger
	syms *symbolTable
}

// New 创建一个 C++ 前端实例
func New(opts frontend.Options) *Frontend {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Frontend{
		opts: opts,
		log:  log,
		syms: newSymbolTable(),
	}
}

// Collect 实现阶段 1：登记一个翻译单元内的全部定义
func (f *Frontend) Collect(path string) error {
	p, err := parser.NewParser(parser.LangCpp)
	if err != nil {
		return err
	}
	defer p.Close()

	root, source, err := p.ParseFile(path)
	if err != nil {
		return err
	}

	c := &collectorPass{frontend: f, path: path, source: source}
	c.walk(root, nil, nil)
	return nil
}

// Extract 实现阶段 2：产出该单元已解析的声明序列
func (f *Frontend) Extract(path string) (*frontend.TranslationUnit, error) {
	p, err := parser.NewParser(parser.LangCpp)
	if err != nil {
		return nil, err
	}
	defer p.Close()

	root, source, err := p.ParseFile(path)
	if err != nil {
		return nil, err
	}

	e := &extractorPass{
		frontend: f,
		path:     path,
		source:   source,
		system:   f.inSystemHeader(path),
	}
	e.walk(root, nil, nil)

	return &frontend.TranslationUnit{Path: path, Declarations: e.decls}, nil
}

func (f *Frontend) inSystemHeader(path string) bool {
	for _, root := range f.opts.SystemHeaderRoots {
		if strings.HasPrefix(path, root) {
			return true
		}
	}
	return false
}
