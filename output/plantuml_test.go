package output

import (
	"fmt"
	"strings"
	"testing"

	"github.com/CodMac/cpp-treesitter-uml-analyzer/config"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/model"
)

func classEntity(qn string, namespace ...string) *model.Entity {
	name := qn
	if idx := strings.LastIndex(qn, "::"); idx >= 0 {
		name = qn[idx+2:]
	}
	return &model.Entity{
		ID:            model.ToID(qn),
		Kind:          model.KindClass,
		Name:          name,
		QualifiedName: qn,
		Namespace:     namespace,
	}
}

func TestPlantUMLGenerator_ClassDiagram(t *testing.T) {
	d := model.NewDiagram("classes", nil)
	d.AddEntity(classEntity("ns::Base", "ns"))
	d.AddEntity(classEntity("ns::Derived", "ns"))
	d.AddPackage(&model.Package{ID: model.ToID("ns"), Name: "ns"}, "ns")
	d.AddRelationships([]model.Relationship{
		{Source: model.ToID("ns::Derived"), Target: model.ToID("ns::Base"), Kind: model.Inheritance},
	})

	var sb strings.Builder
	cfg := &config.DiagramConfig{Type: config.ClassDiagram}
	if err := NewPlantUMLGenerator(d, cfg).Generate(&sb); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	out := sb.String()

	if !strings.HasPrefix(out, "@startuml\n") || !strings.HasSuffix(out, "@enduml\n") {
		t.Errorf("Expected @startuml/@enduml frame, got:\n%s", out)
	}
	if !strings.Contains(out, `class "ns::Base"`) || !strings.Contains(out, `class "ns::Derived"`) {
		t.Errorf("Expected both classes, got:\n%s", out)
	}

	arrow := fmt.Sprintf("%s <|-- %s",
		alias(model.ToID("ns::Base")), alias(model.ToID("ns::Derived")))
	if !strings.Contains(out, arrow) {
		t.Errorf("Expected inheritance arrow %q, got:\n%s", arrow, out)
	}
}

func TestPlantUMLGenerator_SkipsUnmodeledEndpoints(t *testing.T) {
	d := model.NewDiagram("classes", nil)
	d.AddEntity(classEntity("ns::Widget", "ns"))
	// 目标从未建模 (e.g. 被排除的命名空间)
	d.AddRelationships([]model.Relationship{
		{Source: model.ToID("ns::Widget"), Target: model.ToID("ns::detail::Helper"), Kind: model.Dependency},
	})

	var sb strings.Builder
	cfg := &config.DiagramConfig{Type: config.ClassDiagram}
	if err := NewPlantUMLGenerator(d, cfg).Generate(&sb); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if strings.Contains(sb.String(), "..>") {
		t.Errorf("Expected dangling edge to be dropped, got:\n%s", sb.String())
	}
}

func TestPlantUMLGenerator_DeduplicatesEdges(t *testing.T) {
	d := model.NewDiagram("classes", nil)
	d.AddEntity(classEntity("ns::A", "ns"))
	d.AddEntity(classEntity("ns::B", "ns"))

	edge := model.Relationship{Source: model.ToID("ns::A"), Target: model.ToID("ns::B"), Kind: model.Association}
	d.AddRelationships([]model.Relationship{edge, edge, edge})

	var sb strings.Builder
	cfg := &config.DiagramConfig{Type: config.ClassDiagram}
	if err := NewPlantUMLGenerator(d, cfg).Generate(&sb); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	arrow := fmt.Sprintf("%s --> %s", alias(model.ToID("ns::A")), alias(model.ToID("ns::B")))
	if got := strings.Count(sb.String(), arrow); got != 1 {
		t.Errorf("Expected identical edges rendered once, got %d in:\n%s", got, sb.String())
	}
}

func TestPlantUMLGenerator_Stereotypes(t *testing.T) {
	d := model.NewDiagram("classes", nil)

	deprecated := classEntity("ns::Old", "ns")
	deprecated.Deprecated = true
	d.AddEntity(deprecated)

	fn := classEntity("ns::run", "ns")
	fn.Kind = model.KindFunction
	d.AddEntity(fn)

	var sb strings.Builder
	cfg := &config.DiagramConfig{Type: config.ClassDiagram}
	if err := NewPlantUMLGenerator(d, cfg).Generate(&sb); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, "<<deprecated>>") {
		t.Errorf("Expected deprecated stereotype, got:\n%s", out)
	}
	if !strings.Contains(out, "<<function>>") {
		t.Errorf("Expected function stereotype, got:\n%s", out)
	}
}

func TestPlantUMLGenerator_UsingNamespaceRelativizesNames(t *testing.T) {
	d := model.NewDiagram("classes", nil)
	d.AddEntity(classEntity("company::product::Widget", "company", "product"))

	var sb strings.Builder
	cfg := &config.DiagramConfig{Type: config.ClassDiagram, UsingNamespace: "company::product"}
	if err := NewPlantUMLGenerator(d, cfg).Generate(&sb); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(sb.String(), `class "Widget"`) {
		t.Errorf("Expected relativized class name, got:\n%s", sb.String())
	}
}

func TestPlantUMLGenerator_PackageDiagramOmitsEntities(t *testing.T) {
	d := model.NewDiagram("packages", nil)
	d.AddEntity(classEntity("ns::Widget", "ns"))
	d.AddPackage(&model.Package{ID: model.ToID("ns"), Name: "ns"}, "ns")

	var sb strings.Builder
	cfg := &config.DiagramConfig{Type: config.PackageDiagram}
	if err := NewPlantUMLGenerator(d, cfg).Generate(&sb); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	out := sb.String()

	if !strings.Contains(out, `package "ns"`) {
		t.Errorf("Expected package node, got:\n%s", out)
	}
	if strings.Contains(out, `class "ns::Widget"`) {
		t.Errorf("Expected package diagram to omit entities, got:\n%s", out)
	}
}
