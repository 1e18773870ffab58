package output

import (
	"strings"
	"testing"

	"github.com/CodMac/cpp-treesitter-uml-analyzer/config"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/model"
)

func call(fromName, toName, calleeQN, label, returnType string) model.Message {
	return model.Message{
		Kind:       model.MessageCall,
		From:       model.ToID(fromName),
		To:         model.ToID(toName),
		Callee:     model.ToID(calleeQN),
		FromName:   fromName,
		ToName:     toName,
		Label:      label,
		ReturnType: returnType,
	}
}

func addActivity(d *model.Diagram, qn, participant string, messages ...model.Message) {
	a := &model.Activity{ID: model.ToID(qn), From: participant}
	for _, m := range messages {
		a.AddMessage(m)
	}
	d.AddActivity(a)
}

func TestSequenceGenerator_NestedCallChain(t *testing.T) {
	d := model.NewDiagram("seq", nil)
	addActivity(d, "main", "main", call("main", "A", "A::a", "a", "int"))
	addActivity(d, "A::a", "A", call("A", "A::AA", "A::AA::aa", "aa", "int"))
	addActivity(d, "A::AA::aa", "A::AA", call("A::AA", "A::AA::AAA", "A::AA::AAA::aaa", "aaa", "int"))

	cfg := &config.DiagramConfig{Type: config.SequenceDiagram, StartFrom: []string{"main"}}

	var sb strings.Builder
	if err := NewSequenceGenerator(d, cfg).Generate(&sb); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	want := `@startuml
"main" -> "A" : a()
activate "A"
"A" -> "A::AA" : aa()
activate "A::AA"
"A::AA" -> "A::AA::AAA" : aaa()
activate "A::AA::AAA"
"A::AA::AAA" --> "A::AA"
deactivate "A::AA::AAA"
"A::AA" --> "A"
deactivate "A::AA"
"A" --> "main"
deactivate "A"
@enduml
`
	if sb.String() != want {
		t.Errorf("Unexpected sequence output.\nGot:\n%s\nWant:\n%s", sb.String(), want)
	}
}

func TestSequenceGenerator_VoidReturnSuppressed(t *testing.T) {
	d := model.NewDiagram("seq", nil)
	addActivity(d, "main", "main", call("main", "A", "A::a", "a", "void"))

	cfg := &config.DiagramConfig{Type: config.SequenceDiagram, StartFrom: []string{"main"}}

	var sb strings.Builder
	if err := NewSequenceGenerator(d, cfg).Generate(&sb); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if strings.Contains(sb.String(), "-->") {
		t.Errorf("Expected no return message for void callee, got:\n%s", sb.String())
	}
}

func TestSequenceGenerator_RecursionTerminates(t *testing.T) {
	d := model.NewDiagram("seq", nil)
	// f 直接调用自身：展开必须有限
	addActivity(d, "f", "f", call("f", "f", "f", "f", "int"))

	cfg := &config.DiagramConfig{Type: config.SequenceDiagram, StartFrom: []string{"f"}}

	var sb strings.Builder
	if err := NewSequenceGenerator(d, cfg).Generate(&sb); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	out := sb.String()
	if got := strings.Count(out, `"f" -> "f" : f()`); got != 1 {
		t.Errorf("Expected self-recursive call to render exactly once, got %d in:\n%s", got, out)
	}
	// 自调用不画返回消息
	if strings.Contains(out, "-->") {
		t.Errorf("Expected no return message for self call, got:\n%s", out)
	}
}

func TestSequenceGenerator_MutualRecursionTerminates(t *testing.T) {
	d := model.NewDiagram("seq", nil)
	addActivity(d, "f", "f", call("f", "g", "g", "g", "void"))
	addActivity(d, "g", "g", call("g", "f", "f", "f", "void"))

	cfg := &config.DiagramConfig{Type: config.SequenceDiagram, StartFrom: []string{"f"}}

	var sb strings.Builder
	if err := NewSequenceGenerator(d, cfg).Generate(&sb); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	out := sb.String()
	if strings.Count(out, `"f" -> "g" : g()`) != 1 || strings.Count(out, `"g" -> "f" : f()`) != 1 {
		t.Errorf("Expected each edge of the mutual recursion exactly once, got:\n%s", out)
	}
}

func TestSequenceGenerator_EmptyParticipantNameGetsPlaceholder(t *testing.T) {
	d := model.NewDiagram("seq", nil)
	// 被调方既未建模也没有缓存显示名
	addActivity(d, "main", "main", call("main", "", "mystery", "go", "void"))

	cfg := &config.DiagramConfig{Type: config.SequenceDiagram, StartFrom: []string{"main"}}

	var sb strings.Builder
	if err := NewSequenceGenerator(d, cfg).Generate(&sb); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(sb.String(), `"main" -> "(anonymous)" : go()`) {
		t.Errorf("Expected placeholder participant name, got:\n%s", sb.String())
	}
	if strings.Contains(sb.String(), `""`) {
		t.Errorf("Expected no empty participant names, got:\n%s", sb.String())
	}
}

func TestSequenceGenerator_MissingEntryPointIgnored(t *testing.T) {
	d := model.NewDiagram("seq", nil)
	cfg := &config.DiagramConfig{
		Type:      config.SequenceDiagram,
		StartFrom: []string{"nonexistent"},
		PlantUML:  config.BlockConfig{Before: []string{"autonumber"}, After: []string{"' end"}},
	}

	var sb strings.Builder
	if err := NewSequenceGenerator(d, cfg).Generate(&sb); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	want := "@startuml\nautonumber\n' end\n@enduml\n"
	if sb.String() != want {
		t.Errorf("Expected only frame and literal blocks, got:\n%s", sb.String())
	}
}
