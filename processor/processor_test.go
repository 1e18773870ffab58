package processor_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CodMac/cpp-treesitter-uml-analyzer/config"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/core"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/frontend"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/model"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/parser"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/processor"
)

const fakeLang = parser.Language("fake")

// fakeFrontend 不解析源码：每个翻译单元按文件名固定产出一个记录声明
type fakeFrontend struct{}

func (f *fakeFrontend) Collect(path string) error { return nil }

func (f *fakeFrontend) Extract(path string) (*frontend.TranslationUnit, error) {
	name := strings.TrimSuffix(filepath.Base(path), ".cc")
	return &frontend.TranslationUnit{
		Path: path,
		Declarations: []frontend.Declaration{
			{
				Kind:          frontend.DeclRecord,
				Name:          name,
				QualifiedName: "ns::" + name,
				Namespace:     []string{"ns"},
			},
		},
	}, nil
}

func init() {
	frontend.RegisterFrontend(fakeLang, func(frontend.Options) frontend.Frontend {
		return &fakeFrontend{}
	})
}

func writeStubFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("// stub\n"), 0o644); err != nil {
			t.Fatalf("Failed to write stub file: %v", err)
		}
	}
}

func TestDiagramProcessor_MergesTranslationUnits(t *testing.T) {
	dir := t.TempDir()
	writeStubFiles(t, dir, "alpha.cc", "beta.cc", "gamma.cc")

	cfg := &config.DiagramConfig{
		Type: config.ClassDiagram,
		Glob: []string{filepath.Join(dir, "*.cc")},
	}
	dp := processor.NewDiagramProcessor(fakeLang, 2, core.NewRunContext(nil))

	d, err := dp.Process(context.Background(), "test", cfg, frontend.Options{})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if d.EntityCount() != 3 {
		t.Errorf("Expected 3 entities across translation units, got %d", d.EntityCount())
	}
	for _, qn := range []string{"ns::alpha", "ns::beta", "ns::gamma"} {
		if _, ok := d.GetEntity(model.ToID(qn)); !ok {
			t.Errorf("Expected entity %s to be modeled", qn)
		}
	}
	if _, ok := d.GetPackage(model.ToID("ns")); !ok {
		t.Error("Expected shared package ns to be modeled once")
	}
	if d.PackageCount() != 1 {
		t.Errorf("Expected 1 package, got %d", d.PackageCount())
	}
}

func TestDiagramProcessor_NoTranslationUnits(t *testing.T) {
	cfg := &config.DiagramConfig{
		Type: config.ClassDiagram,
		Glob: []string{filepath.Join(t.TempDir(), "*.cc")},
	}
	dp := processor.NewDiagramProcessor(fakeLang, 2, core.NewRunContext(nil))

	if _, err := dp.Process(context.Background(), "empty", cfg, frontend.Options{}); err == nil {
		t.Error("Expected error when no translation units match")
	}
}

func TestDiagramProcessor_UnregisteredLanguage(t *testing.T) {
	dir := t.TempDir()
	writeStubFiles(t, dir, "alpha.cc")

	cfg := &config.DiagramConfig{Glob: []string{filepath.Join(dir, "*.cc")}}
	dp := processor.NewDiagramProcessor(parser.Language("nope"), 2, core.NewRunContext(nil))

	if _, err := dp.Process(context.Background(), "test", cfg, frontend.Options{}); err == nil {
		t.Error("Expected error for unregistered language")
	}
}

func TestDiscoverTranslationUnits_DeduplicatesOverlappingGlobs(t *testing.T) {
	dir := t.TempDir()
	writeStubFiles(t, dir, "alpha.cc", "beta.cc")

	paths, err := processor.DiscoverTranslationUnits([]string{
		filepath.Join(dir, "*.cc"),
		filepath.Join(dir, "alpha.cc"),
	})
	if err != nil {
		t.Fatalf("DiscoverTranslationUnits failed: %v", err)
	}
	if len(paths) != 2 {
		t.Errorf("Expected 2 unique paths, got %d: %v", len(paths), paths)
	}
}
