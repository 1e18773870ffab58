// Package processor 负责并发处理翻译单元列表并聚合图模型。
package processor

import (
	"context"
	"fmt"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/CodMac/cpp-treesitter-uml-analyzer/config"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/core"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/filter"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/frontend"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/model"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/parser"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/resolver"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/visitor"
)

// DiagramProcessor 按两阶段处理一张图的全部翻译单元：
// 阶段 1 并发收集定义 (符号表)，阶段 2 并发提取声明并喂给访问器。
// 单个翻译单元内部的访问是单线程的，从头跑到尾，不设取消点；
// 共享模型的插入由模型自身的单把锁串行化。
type DiagramProcessor struct {
	Language parser.Language
	Workers  int
	rctx     *core.RunContext
}

// NewDiagramProcessor 创建处理器实例
func NewDiagramProcessor(lang parser.Language, workers int, rctx *core.RunContext) *DiagramProcessor {
	if workers <= 0 {
		workers = 4
	}
	return &DiagramProcessor{Language: lang, Workers: workers, rctx: rctx}
}

// Process 生成一张图：发现翻译单元、两阶段处理、返回完成的模型
func (dp *DiagramProcessor) Process(ctx context.Context, name string, cfg *config.DiagramConfig, opts frontend.Options) (*model.Diagram, error) {
	log := dp.rctx.Logger()

	paths, err := DiscoverTranslationUnits(cfg.Glob)
	if err != nil {
		return nil, fmt.Errorf("failed to discover translation units: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no translation units matched for diagram %s", name)
	}

	fe, err := frontend.GetFrontend(dp.Language, opts)
	if err != nil {
		return nil, err
	}

	flt := filter.NewNamespaceFilter(cfg.Include.Namespaces, cfg.Exclude.Namespaces)
	diagram := model.NewDiagram(name, flt)
	pkgs := resolver.NewPackageResolver(diagram, cfg.UsingNamespaceTokens())

	// --- 阶段 1: 收集定义 (Collect Definitions) ---
	log.Info("phase 1: collecting definitions",
		zap.String("diagram", name), zap.Int("files", len(paths)))
	dp.runPhase(ctx, paths, func(path string) {
		if err := fe.Collect(path); err != nil {
			log.Warn("skipping translation unit in phase 1",
				zap.String("path", path), zap.Error(err))
		}
	})

	// --- 阶段 2: 提取声明并建模 (Extract & Visit) ---
	log.Info("phase 2: extracting declarations", zap.String("diagram", name))
	dp.runPhase(ctx, paths, func(path string) {
		tu, err := fe.Extract(path)
		if err != nil {
			log.Warn("skipping translation unit in phase 2",
				zap.String("path", path), zap.Error(err))
			return
		}
		v := visitor.New(diagram, pkgs, flt, dp.rctx, cfg.UsingNamespaceTokens())
		v.Visit(tu)
	})

	log.Info("diagram model complete",
		zap.String("diagram", name),
		zap.Int("entities", diagram.EntityCount()),
		zap.Int("packages", diagram.PackageCount()),
		zap.Int("relationships", len(diagram.Relationships())))

	return diagram, nil
}

// runPhase 运行一个并发阶段；单个文件的失败只记日志，不中止整轮运行
func (dp *DiagramProcessor) runPhase(ctx context.Context, paths []string, fn func(string)) {
	filesChan := make(chan string, len(paths))
	var wg sync.WaitGroup

	for i := 0; i < dp.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range filesChan {
				select {
				case <-ctx.Done():
					// 只在文件边界响应取消，单元内部跑到完为止
					return
				default:
				}
				fn(path)
			}
		}()
	}

	for _, path := range paths {
		filesChan <- path
	}
	close(filesChan)

	wg.Wait()
}

// DiscoverTranslationUnits 按 doublestar 模式列表展开翻译单元路径
func DiscoverTranslationUnits(globs []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)

	for _, g := range globs {
		matches, err := doublestar.FilepathGlob(g)
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", g, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}

	return paths, nil
}
