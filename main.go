package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"

	"github.com/CodMac/cpp-treesitter-uml-analyzer/config"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/core"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/frontend"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/model"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/output"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/parser"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/processor"

	// 导入语言前端实现，以触发其 init() 函数注册 Language 和 Frontend
	_ "github.com/CodMac/cpp-treesitter-uml-analyzer/frontend/cpp"
)

var (
	configPath string
	outputDir  string
	format     string
	workers    int
	verbose    bool
)

func init() {
	// 命令行参数定义
	flag.StringVar(&configPath, "config", ".uml-analyzer.yml", "图配置文件路径")
	flag.StringVar(&outputDir, "output-dir", ".", "生成文件的输出目录")
	flag.StringVar(&format, "format", "plantuml", "输出格式 (plantuml, mermaid, jsonl)")
	flag.IntVar(&workers, "workers", runtime.NumCPU(), "并发处理翻译单元的协程数量 (默认 CPU 核心数)")
	flag.BoolVar(&verbose, "verbose", false, "打印调试日志")
}

func main() {
	flag.Parse()

	logger, err := buildLogger(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 1. 加载配置
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if len(cfg.Diagrams) == 0 {
		fmt.Println("No diagrams defined in config.")
		return
	}

	rctx := core.NewRunContext(logger)
	proc := processor.NewDiagramProcessor(parser.LangCpp, workers, rctx)
	opts := frontend.Options{
		SystemHeaderRoots: cfg.SystemHeaderRoots,
		Logger:            logger,
	}

	// 2. 逐图生成模型并写出
	ctx := context.Background()
	for name, dcfg := range cfg.Diagrams {
		diagram, err := proc.Process(ctx, name, dcfg, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating diagram %s: %v\n", name, err)
			os.Exit(1)
		}

		if err := writeDiagram(name, diagram, dcfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing diagram %s: %v\n", name, err)
			os.Exit(1)
		}
	}
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// writeDiagram 按输出格式把一张图的模型写到输出目录
func writeDiagram(name string, d *model.Diagram, dcfg *config.DiagramConfig) error {
	switch format {
	case "plantuml":
		f, err := os.Create(filepath.Join(outputDir, name+".puml"))
		if err != nil {
			return err
		}
		defer f.Close()

		if dcfg.Type == config.SequenceDiagram {
			return output.NewSequenceGenerator(d, dcfg).Generate(f)
		}
		return output.NewPlantUMLGenerator(d, dcfg).Generate(f)

	case "mermaid":
		f, err := os.Create(filepath.Join(outputDir, name+".mmd"))
		if err != nil {
			return err
		}
		defer f.Close()
		return output.ExportMermaid(f, d)

	case "jsonl":
		ef, err := os.Create(filepath.Join(outputDir, name+".elements.jsonl"))
		if err != nil {
			return err
		}
		defer ef.Close()
		if _, err := output.ExportElements(ef, d); err != nil {
			return err
		}

		rf, err := os.Create(filepath.Join(outputDir, name+".relations.jsonl"))
		if err != nil {
			return err
		}
		defer rf.Close()
		_, err = output.ExportRelations(rf, d)
		return err

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
