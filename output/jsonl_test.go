package output

import (
	"bufio"
	"encoding/json"
	"strings"
	"testing"

	"github.com/CodMac/cpp-treesitter-uml-analyzer/model"
)

func TestExportElements(t *testing.T) {
	d := model.NewDiagram("test", nil)
	d.AddEntity(classEntity("ns::Widget", "ns"))
	d.AddPackage(&model.Package{ID: model.ToID("ns"), Name: "ns"}, "ns")

	var sb strings.Builder
	count, err := ExportElements(&sb, d)
	if err != nil {
		t.Fatalf("ExportElements failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 exported elements, got %d", count)
	}

	// 每行必须是独立合法的 JSON 对象
	scanner := bufio.NewScanner(strings.NewReader(sb.String()))
	lines := 0
	for scanner.Scan() {
		var obj map[string]interface{}
		if err := json.Unmarshal(scanner.Bytes(), &obj); err != nil {
			t.Errorf("Line %d is not valid JSON: %v", lines+1, err)
		}
		lines++
	}
	if lines != 2 {
		t.Errorf("Expected 2 JSONL lines, got %d", lines)
	}
}

func TestExportRelations(t *testing.T) {
	d := model.NewDiagram("test", nil)
	d.AddRelationships([]model.Relationship{
		{Source: model.ToID("ns::A"), Target: model.ToID("ns::B"), Kind: model.Aggregation},
	})

	var sb strings.Builder
	count, err := ExportRelations(&sb, d)
	if err != nil {
		t.Fatalf("ExportRelations failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 exported relation, got %d", count)
	}
	if !strings.Contains(sb.String(), `"AGGREGATION"`) {
		t.Errorf("Expected relation kind in output, got: %s", sb.String())
	}
}
