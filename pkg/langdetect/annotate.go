package langdetect

import (
	"strings"

	"github.com/yaklabco/golmm/pkg/lmm"
)

const (
	codeBlockName = "code"
	langParamKey  = "lang"
)

// Annotate walks the document and fills in the lang parameter on code
// blocks that do not declare one, using the block's text content for
// detection. It mutates blocks in place and returns the number of blocks
// annotated. Blocks whose detection falls back to "text" are left alone.
func Annotate(doc *lmm.Document) int {
	if doc == nil {
		return 0
	}
	return annotateNodes(doc.Nodes)
}

func annotateNodes(nodes []lmm.Node) int {
	annotated := 0
	for _, node := range nodes {
		block, ok := node.(*lmm.Block)
		if !ok {
			continue
		}
		if block.Name == codeBlockName && !hasLangParam(block) {
			if lang := Detect([]byte(blockContent(block))); lang != langText {
				block.Params = append(block.Params, lmm.Attribute{
					Key:   langParamKey,
					Value: lang,
					Span:  block.Span,
				})
				annotated++
			}
		}
		annotated += annotateNodes(block.Nodes)
	}
	return annotated
}

func hasLangParam(block *lmm.Block) bool {
	for _, param := range block.Params {
		if param.Key == langParamKey && param.Value != "" {
			return true
		}
	}
	return false
}

// blockContent reconstructs the visible text of a block's direct children,
// skipping comments and nested blocks.
func blockContent(block *lmm.Block) string {
	var lines []string
	for _, node := range block.Nodes {
		text, ok := node.(*lmm.Text)
		if !ok {
			continue
		}
		for _, line := range text.Lines {
			if line.IsComment {
				continue
			}
			lines = append(lines, line.Value)
		}
	}
	return strings.Join(lines, "\n")
}
