package render

import (
	"fmt"
	"strings"

	"github.com/yaklabco/golmm/pkg/lmm"
)

// HTML renders the document as an HTML fragment wrapped in a
// <div class="lmm-document"> element. Document attributes become data-*
// attributes on the wrapper; block attributes and params become data-* and
// data-param-* attributes on their elements. All text content is escaped.
func HTML(doc *lmm.Document) string {
	var out strings.Builder
	out.WriteString(`<div class="lmm-document"`)
	htmlAttrs(&out, doc.Attrs, nil)
	out.WriteString(">\n")
	htmlNodes(&out, doc.Nodes, 0)
	out.WriteString("</div>\n")
	return out.String()
}

func htmlNodes(out *strings.Builder, nodes []lmm.Node, depth int) {
	for _, node := range nodes {
		switch n := node.(type) {
		case *lmm.Text:
			htmlText(out, n)
		case *lmm.Block:
			htmlBlock(out, n, depth)
		}
	}
}

func htmlBlock(out *strings.Builder, block *lmm.Block, depth int) {
	switch block.Name {
	case "part":
		level := partLevel(depth)
		out.WriteString(`<section class="lmm-part"`)
		htmlAttrs(out, block.Attrs, block.Params)
		out.WriteString(">\n")
		fmt.Fprintf(out, "<h%d>", level)
		out.WriteString(escapeHTML(partTitle(block)))
		fmt.Fprintf(out, "</h%d>\n", level)
		htmlNodes(out, block.Nodes, depth+1)
		out.WriteString("</section>\n")
	case "list":
		htmlList(out, block)
	case "code":
		out.WriteString(`<pre class="lmm-code"`)
		htmlAttrs(out, block.Attrs, block.Params)
		out.WriteString("><code")
		if lang := langParam(block); lang != "" {
			out.WriteString(` class="language-`)
			out.WriteString(escapeHTML(lang))
			out.WriteByte('"')
		}
		out.WriteByte('>')
		htmlTextOnly(out, block.Nodes)
		out.WriteString("</code></pre>\n")
	default:
		out.WriteString(`<div class="lmm-block lmm-block-`)
		out.WriteString(sanitizeIdent(block.Name))
		out.WriteByte('"')
		htmlAttrs(out, block.Attrs, block.Params)
		out.WriteString(">\n")
		htmlNodes(out, block.Nodes, depth)
		out.WriteString("</div>\n")
	}
}

func htmlText(out *strings.Builder, text *lmm.Text) {
	for _, line := range text.Lines {
		if line.IsComment {
			continue
		}
		out.WriteString("<p>")
		out.WriteString(escapeHTML(line.Value))
		out.WriteString("</p>\n")
	}
}

func htmlList(out *strings.Builder, block *lmm.Block) {
	style := blockListStyle(block)
	open, itemOpen, itemClose, closeTag := `<ul class="lmm-list"`, "<li>", "</li>\n", "</ul>\n"
	if style == listLine {
		open, itemOpen, itemClose, closeTag = `<div class="lmm-lines"`, `<div class="lmm-line">`, "</div>\n", "</div>\n"
	}
	out.WriteString(open)
	htmlAttrs(out, block.Attrs, block.Params)
	out.WriteString(">\n")
	for _, node := range block.Nodes {
		switch n := node.(type) {
		case *lmm.Text:
			for _, line := range n.Lines {
				if line.IsComment {
					continue
				}
				out.WriteString(itemOpen)
				out.WriteString(escapeHTML(line.Value))
				out.WriteString(itemClose)
			}
		case *lmm.Block:
			htmlBlock(out, n, 0)
		}
	}
	out.WriteString(closeTag)
}

func htmlTextOnly(out *strings.Builder, nodes []lmm.Node) {
	for _, node := range nodes {
		text, ok := node.(*lmm.Text)
		if !ok {
			continue
		}
		for _, line := range text.Lines {
			if line.IsComment {
				continue
			}
			out.WriteString(escapeHTML(line.Value))
			out.WriteByte('\n')
		}
	}
}

func htmlAttrs(out *strings.Builder, attrs []lmm.Attribute, params []lmm.Attribute) {
	for _, attr := range attrs {
		key := sanitizeIdent(attr.Key)
		if key == "" {
			continue
		}
		out.WriteString(" data-")
		out.WriteString(key)
		out.WriteString(`="`)
		out.WriteString(escapeHTML(attr.Value))
		out.WriteByte('"')
	}
	for _, param := range params {
		key := sanitizeIdent(param.Key)
		if key == "" {
			continue
		}
		out.WriteString(" data-param-")
		out.WriteString(key)
		out.WriteString(`="`)
		out.WriteString(escapeHTML(param.Value))
		out.WriteByte('"')
	}
}

// sanitizeIdent lowercases ASCII alphanumerics, '-' and '_', maps whitespace
// and ':' to '-', and drops everything else. Used for class names and data-*
// attribute keys.
func sanitizeIdent(value string) string {
	var out strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '_':
			out.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			out.WriteRune(r + ('a' - 'A'))
		case r == ' ' || r == '\t' || r == '\n' || r == '\v' || r == '\f' || r == '\r' || r == ':':
			out.WriteByte('-')
		}
	}
	return out.String()
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escapeHTML(value string) string {
	return htmlEscaper.Replace(value)
}
