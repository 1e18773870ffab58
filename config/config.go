// Package config provides diagram configuration loading for the analyzer.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DiagramType 标识图的种类
type DiagramType string

const (
	ClassDiagram    DiagramType = "class"
	PackageDiagram  DiagramType = "package"
	SequenceDiagram DiagramType = "sequence"
)

// Config 是顶层配置：多个图共享一组翻译单元
type Config struct {
	// CompilationDatabaseDir is reserved for front-ends that need one
	CompilationDatabaseDir string `yaml:"compilation_database_dir,omitempty"`
	// SystemHeaderRoots lists path prefixes treated as system headers
	SystemHeaderRoots []string `yaml:"system_header_roots,omitempty"`
	// Diagrams maps diagram name to its definition
	Diagrams map[string]*DiagramConfig `yaml:"diagrams"`
}

// DiagramConfig 定义一张图
type DiagramConfig struct {
	// Type is one of class, package, sequence
	Type DiagramType `yaml:"type"`
	// Glob lists translation unit patterns (doublestar syntax)
	Glob []string `yaml:"glob"`
	// UsingNamespace is the prefix trimmed from all namespace paths
	UsingNamespace string `yaml:"using_namespace,omitempty"`
	// Include/Exclude are namespace prefix filters; exclude wins
	Include FilterConfig `yaml:"include,omitempty"`
	Exclude FilterConfig `yaml:"exclude,omitempty"`
	// StartFrom lists sequence diagram entry point qualified names
	StartFrom []string `yaml:"start_from,omitempty"`
	// PlantUML carries literal before/after text blocks
	PlantUML BlockConfig `yaml:"plantuml,omitempty"`
}

// FilterConfig 列出参与过滤的命名空间前缀
type FilterConfig struct {
	Namespaces []string `yaml:"namespaces,omitempty"`
}

// BlockConfig 是渲染输出前后的字面文本块
type BlockConfig struct {
	Before []string `yaml:"before,omitempty"`
	After  []string `yaml:"after,omitempty"`
}

// UsingNamespaceTokens 把 using_namespace 拆为路径 token
func (d *DiagramConfig) UsingNamespaceTokens() []string {
	if d == nil || d.UsingNamespace == "" {
		return nil
	}
	return strings.Split(d.UsingNamespace, "::")
}

// Load 读取并反序列化一个 yaml 配置文件
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	for name, d := range cfg.Diagrams {
		if d == nil {
			return nil, fmt.Errorf("diagram %q has no definition", name)
		}
		if d.Type == "" {
			d.Type = ClassDiagram
		}
	}

	return cfg, nil
}
