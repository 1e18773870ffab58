package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/CodMac/cpp-treesitter-uml-analyzer/config"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/core"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/model"
)

// SequenceGenerator 把每个入口点的调用活动深度优先展开为嵌套的
// call/return 链。渲染只读已完成的模型，是 (model, config) 的纯函数。
//
// 调用图可能含有直接或相互递归，展开携带按活动标识记录的 visited 集合
// 作为递归防护：已在当前展开路径上的活动不再二次展开，保证输出有限。
type SequenceGenerator struct {
	diagram *model.Diagram
	cfg     *config.DiagramConfig
}

// NewSequenceGenerator 创建一个时序图生成器
func NewSequenceGenerator(d *model.Diagram, cfg *config.DiagramConfig) *SequenceGenerator {
	return &SequenceGenerator{diagram: d, cfg: cfg}
}

// Generate 渲染 PlantUML 时序图
func (g *SequenceGenerator) Generate(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "@startuml"); err != nil {
		return err
	}
	for _, b := range g.cfg.PlantUML.Before {
		fmt.Fprintln(w, b)
	}

	for _, entry := range g.cfg.StartFrom {
		id := model.ToID(entry)
		act, ok := g.diagram.GetActivity(id)
		if !ok {
			continue
		}
		visited := map[model.ID]bool{id: true}
		g.generateActivity(act, w, visited)
	}

	for _, a := range g.cfg.PlantUML.After {
		fmt.Fprintln(w, a)
	}
	_, err := fmt.Fprintln(w, "@enduml")
	return err
}

func (g *SequenceGenerator) generateActivity(a *model.Activity, w io.Writer, visited map[model.ID]bool) {
	for _, m := range a.Messages {
		from := g.participantName(m.From, m.FromName)
		to := g.participantName(m.To, m.ToName)

		fmt.Fprintf(w, "%q -> %q : %s()\n", from, to, m.Label)
		fmt.Fprintf(w, "activate %q\n", to)

		if next, ok := g.diagram.GetActivity(m.Callee); ok && !visited[m.Callee] {
			visited[m.Callee] = true
			g.generateActivity(next, w, visited)
			delete(visited, m.Callee)
		}

		// 自调用与 void 返回不画返回消息
		if m.From != m.To && m.ReturnType != "void" {
			fmt.Fprintf(w, "%q --> %q\n", to, from)
		}
		fmt.Fprintf(w, "deactivate %q\n", to)
	}
}

// participantName 解析参与者显示名：优先查模型实体，退回消息里的缓存名；
// 两边都空时给占位显示名，参与者永远不以空名渲染
func (g *SequenceGenerator) participantName(id model.ID, cached string) string {
	if e, ok := g.diagram.GetEntity(id); ok {
		return core.DisplayName(g.relative(e.QualifiedName))
	}
	return core.DisplayName(g.relative(cached))
}

func (g *SequenceGenerator) relative(name string) string {
	if g.cfg.UsingNamespace != "" {
		return strings.TrimPrefix(name, g.cfg.UsingNamespace+"::")
	}
	return name
}
