package render

import (
	"strings"

	"github.com/yaklabco/golmm/pkg/lmm"
)

// Markdown renders the document as Markdown. Output is deterministic and
// carries no trailing newlines.
func Markdown(doc *lmm.Document) string {
	var out strings.Builder
	markdownNodes(&out, doc.Nodes, 0)
	return strings.TrimRight(out.String(), "\n")
}

func markdownNodes(out *strings.Builder, nodes []lmm.Node, depth int) {
	for _, node := range nodes {
		switch n := node.(type) {
		case *lmm.Text:
			markdownText(out, n)
		case *lmm.Block:
			markdownBlock(out, n, depth)
		}
	}
}

func markdownBlock(out *strings.Builder, block *lmm.Block, depth int) {
	switch block.Name {
	case "part":
		out.WriteString(strings.Repeat("#", partLevel(depth)))
		out.WriteByte(' ')
		out.WriteString(partTitle(block))
		out.WriteString("\n\n")
		markdownNodes(out, block.Nodes, depth+1)
	case "list":
		markdownList(out, block)
	case "code":
		out.WriteString("```")
		out.WriteString(langParam(block))
		out.WriteByte('\n')
		markdownTextOnly(out, block.Nodes)
		out.WriteString("```\n\n")
	default:
		markdownNodes(out, block.Nodes, depth)
	}
}

func markdownText(out *strings.Builder, text *lmm.Text) {
	for _, line := range text.Lines {
		if line.IsComment {
			continue
		}
		out.WriteString(strings.Repeat(" ", line.Indent))
		out.WriteString(line.Value)
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
}

func markdownList(out *strings.Builder, block *lmm.Block) {
	style := blockListStyle(block)
	hadText := false
	for _, node := range block.Nodes {
		switch n := node.(type) {
		case *lmm.Text:
			for _, line := range n.Lines {
				if line.IsComment {
					continue
				}
				hadText = true
				if style == listBullet {
					out.WriteString("- ")
				}
				out.WriteString(line.Value)
				out.WriteByte('\n')
			}
		case *lmm.Block:
			// Headings inside list items restart at the top level.
			markdownBlock(out, n, 0)
		}
	}
	if hadText {
		out.WriteByte('\n')
	}
}

func markdownTextOnly(out *strings.Builder, nodes []lmm.Node) {
	for _, node := range nodes {
		text, ok := node.(*lmm.Text)
		if !ok {
			continue
		}
		for _, line := range text.Lines {
			if line.IsComment {
				continue
			}
			out.WriteString(line.Value)
			out.WriteByte('\n')
		}
	}
}
