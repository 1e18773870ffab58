// Package parser 封装 Tree-sitter 解析与语言注册。
package parser

import (
	"fmt"
	"os"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Language 标识支持的源语言
type Language string

const (
	LangCpp Language = "cpp"
)

// langMap 存储语言标识到 Tree-sitter 语言对象的映射
var langMap = make(map[Language]*sitter.Language)

// RegisterLanguage 用于注册 Tree-sitter 语言库
// (由具体语言前端包的 init 函数调用)
func RegisterLanguage(lang Language, tsLang *sitter.Language) {
	langMap[lang] = tsLang
}

// GetLanguage 获取已注册的 Tree-sitter 语言对象
func GetLanguage(lang Language) (*sitter.Language, error) {
	tsLang, ok := langMap[lang]
	if !ok {
		return nil, fmt.Errorf("language %s not registered", lang)
	}

	return tsLang, nil
}

// Parser 定义了所有语言解析器的通用能力
type Parser interface {
	// ParseFile 读取文件并解析，返回 AST 根节点和源码字节
	ParseFile(filePath string) (*sitter.Node, []byte, error)
	// ParseBytes 直接解析一段源码字节
	ParseBytes(source []byte) (*sitter.Node, error)
	// Close 释放 Tree-sitter 内部资源
	Close()
}

// TreeSitterParser 是 Parser 的具体实现
type TreeSitterParser struct {
	Language Language
	tsParser *sitter.Parser
}

// NewParser 创建一个新的 TreeSitterParser 实例
func NewParser(lang Language) (*TreeSitterParser, error) {
	tsLang, err := GetLanguage(lang)
	if err != nil {
		return nil, err
	}

	tsParser := sitter.NewParser()
	if err := tsParser.SetLanguage(tsLang); err != nil {
		return nil, fmt.Errorf("failed to set language %s: %w", lang, err)
	}

	return &TreeSitterParser{
		Language: lang,
		tsParser: tsParser,
	}, nil
}

// ParseFile 实现了 Parser 接口
func (p *TreeSitterParser) ParseFile(filePath string) (*sitter.Node, []byte, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	root, err := p.ParseBytes(content)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse file %s: %w", filePath, err)
	}

	return root, content, nil
}

// ParseBytes 实现了 Parser 接口
func (p *TreeSitterParser) ParseBytes(source []byte) (*sitter.Node, error) {
	tree := p.tsParser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned no tree")
	}

	return tree.RootNode(), nil
}

// Close 实现了 Parser 接口
func (p *TreeSitterParser) Close() {
	if p.tsParser != nil {
		p.tsParser.Close()
	}
}
