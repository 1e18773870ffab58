package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/CodMac/cpp-treesitter-uml-analyzer/model"
)

// ExportMermaid 生成 Mermaid 流程图标记：包作为 subgraph，
// 实体作为节点，关系按类型定制箭头样式。
func ExportMermaid(w io.Writer, d *model.Diagram) error {
	if _, err := fmt.Fprintln(w, "graph LR"); err != nil {
		return err
	}

	// 1. 按包分组生成层级 subgraph
	grouped := make(map[string][]*model.Entity)
	for _, e := range d.Entities() {
		grouped[e.NamespacePath()] = append(grouped[e.NamespacePath()], e)
	}

	for _, p := range d.Packages() {
		qn := p.QualifiedName()
		members := grouped[qn]
		fmt.Fprintf(w, "    subgraph \"%s\"\n", qn)
		for _, e := range members {
			fmt.Fprintf(w, "        %s[\"%s (%s)\"]\n", safeID(e.QualifiedName), e.Name, e.Kind)
		}
		fmt.Fprintln(w, "    end")
		delete(grouped, qn)
	}

	// 2. 不属于任何已建模包的实体平铺
	for _, e := range d.Entities() {
		if _, pending := grouped[e.NamespacePath()]; pending {
			fmt.Fprintf(w, "    %s[\"%s (%s)\"]\n", safeID(e.QualifiedName), e.Name, e.Kind)
		}
	}

	// 3. 生成关系边
	for _, r := range d.Relationships() {
		src, ok := d.GetEntity(r.Source)
		if !ok {
			continue
		}
		dst, ok := d.GetEntity(r.Target)
		if !ok {
			continue
		}

		arrow := "-->"
		switch r.Kind {
		case model.Inheritance:
			arrow = "==>"
		case model.Dependency:
			arrow = "-.->"
		}

		fmt.Fprintf(w, "    %s %s %s\n", safeID(src.QualifiedName), arrow, safeID(dst.QualifiedName))
	}

	return nil
}

// safeID 确保限定名符合 Mermaid 的 ID 命名规范
func safeID(id string) string {
	r := strings.NewReplacer(".", "_", "/", "_", "-", "_", "\\", "_", ":", "_", "@", "_",
		"(", "_", ")", "_", "<", "_", ">", "_", " ", "_", ",", "_", "*", "_", "&", "_")
	return "n_" + r.Replace(id)
}
