// Package outline derives navigation structure from parsed LMM documents:
// a tree of part symbols for outlines and jump lists, plus the canonical
// editor snippets for the well-known block names.
package outline

import (
	"strings"

	"github.com/yaklabco/golmm/pkg/lmm"
)

// Symbol is one "part" heading in a document outline.
type Symbol struct {
	// Name is the part title, its args joined with spaces, or "part" when
	// the block has no args.
	Name string

	// Span is the part's header span.
	Span lmm.Span

	// Children are the part symbols nested beneath this one.
	Children []Symbol
}

// Collect walks the document and returns its part outline. Parts nested
// inside non-part blocks are hoisted to the enclosing level, so a part
// wrapped in, say, a @note block still appears in the outline.
func Collect(doc *lmm.Document) []Symbol {
	return collectSymbols(doc.Nodes)
}

func collectSymbols(nodes []lmm.Node) []Symbol {
	var symbols []Symbol
	for _, node := range nodes {
		block, ok := node.(*lmm.Block)
		if !ok {
			continue
		}
		children := collectSymbols(block.Nodes)
		if block.Name != "part" {
			symbols = append(symbols, children...)
			continue
		}
		name := "part"
		if len(block.Args) > 0 {
			name = strings.Join(block.Args, " ")
		}
		symbols = append(symbols, Symbol{
			Name:     name,
			Span:     block.Span,
			Children: children,
		})
	}
	return symbols
}

// Snippet is an insertable template for a well-known block, with $n
// placeholders marking cursor tab stops.
type Snippet struct {
	Label  string
	Detail string
	Body   string
}

// Snippets returns the canonical snippet set for editor completion.
func Snippets() []Snippet {
	return []Snippet{
		{Label: "part", Detail: "section heading", Body: "part { $1 }"},
		{Label: "list", Detail: "list block", Body: "list bullet {\n  $1\n}"},
		{Label: "code", Detail: "code block", Body: "code[lang=$1] {\n  $2\n}"},
		{Label: "b", Detail: "bold text", Body: "b {$1}"},
	}
}
