package lmm

// Document is the root of a parsed LMM tree: leading #key:value attributes
// followed by a node sequence. The document exclusively owns its nodes; the
// tree is immutable after parsing.
type Document struct {
	Attrs []Attribute
	Nodes []Node
}

// Attribute is a key/value pair with a source span. Both strings are trimmed
// of surrounding whitespace. Used for document attributes, block attributes,
// and bracketed block parameters.
type Attribute struct {
	Key   string
	Value string
	Span  Span
}

// Node is one of the two node kinds in a document: *Block or *Text.
// The interface is sealed; consumers do an exhaustive type switch.
type Node interface {
	node()
}

// Block is a named container delimited by "@name ... { ... }".
type Block struct {
	// Name is the block identifier (ASCII alphanumerics, '_', '-').
	Name string

	// Args are the bare tokens between the name and any parameter list.
	Args []string

	// Params are the bracketed [k=v, ...] parameters, in source order.
	// Duplicate keys are kept. Each param shares the header's span.
	Params []Attribute

	// Attrs are #key:value lines found at the very start of the body.
	Attrs []Attribute

	// Nodes are the block's children.
	Nodes []Node

	// Span covers the header only, from '@' through the matched '{'.
	Span Span
}

// Text is a run of consecutive text lines buffered into one node.
// Comment and non-comment lines may interleave within a single Text.
type Text struct {
	Lines []TextLine
}

// TextLine is one parsed line of text content.
type TextLine struct {
	// Indent is the weighted indentation of the line's leading whitespace,
	// computed from ParseOptions widths. Zero when the segment did not start
	// at column zero.
	Indent int

	// Value is the unescaped, whitespace-stripped content.
	Value string

	// Span covers the value within its source line.
	Span Span

	// IsComment is true for "!" comment lines.
	IsComment bool
}

func (*Block) node() {}
func (*Text) node()  {}
