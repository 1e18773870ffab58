// Package output 把已完成的图模型渲染为各种标记格式。
// 渲染器都是 (model, config) → 文本流的纯函数，不修改模型。
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/CodMac/cpp-treesitter-uml-analyzer/config"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/model"
)

// PlantUMLGenerator 渲染类图/包图的 PlantUML 标记
type PlantUMLGenerator struct {
	diagram *model.Diagram
	cfg     *config.DiagramConfig
}

// NewPlantUMLGenerator 创建一个 PlantUML 生成器
func NewPlantUMLGenerator(d *model.Diagram, cfg *config.DiagramConfig) *PlantUMLGenerator {
	return &PlantUMLGenerator{diagram: d, cfg: cfg}
}

// Generate 渲染 PlantUML 类图/包图
func (g *PlantUMLGenerator) Generate(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "@startuml"); err != nil {
		return err
	}
	for _, b := range g.cfg.PlantUML.Before {
		fmt.Fprintln(w, b)
	}

	g.generatePackages(w)

	if g.cfg.Type != config.PackageDiagram {
		g.generateEntities(w)
	}
	g.generateRelationships(w)

	for _, a := range g.cfg.PlantUML.After {
		fmt.Fprintln(w, a)
	}
	_, err := fmt.Fprintln(w, "@enduml")
	return err
}

func (g *PlantUMLGenerator) generatePackages(w io.Writer) {
	for _, p := range g.diagram.Packages() {
		name := g.relative(p.QualifiedName())
		if p.Deprecated {
			fmt.Fprintf(w, "package %q as %s <<deprecated>> {\n}\n", name, alias(p.ID))
			continue
		}
		fmt.Fprintf(w, "package %q as %s {\n}\n", name, alias(p.ID))
	}
}

func (g *PlantUMLGenerator) generateEntities(w io.Writer) {
	for _, e := range g.diagram.Entities() {
		var keyword string
		switch e.Kind {
		case model.KindClass:
			keyword = "class"
		case model.KindEnum:
			keyword = "enum"
		case model.KindFunction:
			// PlantUML 没有函数构件，按带构造型的类渲染
			keyword = "class"
		default:
			continue
		}

		name := g.relative(e.QualifiedName)
		if len(e.TemplateArgs) > 0 {
			args := make([]string, 0, len(e.TemplateArgs))
			for _, a := range e.TemplateArgs {
				args = append(args, a.String())
			}
			name = name + "<" + strings.Join(args, ",") + ">"
		}

		fmt.Fprintf(w, "%s %q as %s", keyword, name, alias(e.ID))
		if e.Kind == model.KindFunction {
			fmt.Fprint(w, " <<function>>")
		}
		if e.Deprecated {
			fmt.Fprint(w, " <<deprecated>>")
		}
		fmt.Fprintln(w)
	}
}

func (g *PlantUMLGenerator) generateRelationships(w io.Writer) {
	seen := make(map[model.Relationship]bool)
	for _, r := range g.diagram.Relationships() {
		if seen[r] {
			continue
		}
		seen[r] = true

		if !g.hasEndpoint(r.Source) || !g.hasEndpoint(r.Target) {
			// 端点未建模的边不渲染
			continue
		}

		switch r.Kind {
		case model.Inheritance:
			fmt.Fprintf(w, "%s <|-- %s\n", alias(r.Target), alias(r.Source))
		case model.Composition:
			fmt.Fprintf(w, "%s *-- %s", alias(r.Source), alias(r.Target))
			g.label(w, r)
		case model.Aggregation:
			fmt.Fprintf(w, "%s o-- %s", alias(r.Source), alias(r.Target))
			g.label(w, r)
		case model.Association:
			fmt.Fprintf(w, "%s --> %s", alias(r.Source), alias(r.Target))
			g.label(w, r)
		case model.Dependency:
			fmt.Fprintf(w, "%s ..> %s", alias(r.Source), alias(r.Target))
			g.label(w, r)
		}
	}
}

func (g *PlantUMLGenerator) label(w io.Writer, r model.Relationship) {
	if r.Label != "" {
		fmt.Fprintf(w, " : %s", r.Label)
	}
	fmt.Fprintln(w)
}

func (g *PlantUMLGenerator) hasEndpoint(id model.ID) bool {
	if _, ok := g.diagram.GetEntity(id); ok {
		return true
	}
	_, ok := g.diagram.GetPackage(id)
	return ok
}

func (g *PlantUMLGenerator) relative(name string) string {
	if g.cfg.UsingNamespace != "" {
		return strings.TrimPrefix(name, g.cfg.UsingNamespace+"::")
	}
	return name
}

// alias 为实体/包生成 PlantUML 别名
func alias(id model.ID) string {
	return fmt.Sprintf("E%d", uint64(id))
}
