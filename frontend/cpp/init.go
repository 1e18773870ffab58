package cpp

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"

	"github.com/CodMac/cpp-treesitter-uml-analyzer/frontend"
	"github.com/CodMac/cpp-treesitter-uml-analyzer/parser"
)

func init() {
	parser.RegisterLanguage(parser.LangCpp, sitter.NewLanguage(tree_sitter_cpp.Language()))
	frontend.RegisterFrontend(parser.LangCpp, func(opts frontend.Options) frontend.Frontend {
		return New(opts)
	})
}
