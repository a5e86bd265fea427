package lmm

import (
	"strings"
	"unicode/utf8"
)

// ParseOptions controls how indentation is weighted when text lines are
// parsed. Widths are abstract units, not display columns.
type ParseOptions struct {
	// SpaceWidth is the indent contribution of one leading space.
	SpaceWidth int

	// TabWidth is the indent contribution of one leading tab.
	TabWidth int
}

// DefaultOptions returns the standard indent weights: one unit per space,
// two per tab.
func DefaultOptions() ParseOptions {
	return ParseOptions{SpaceWidth: 1, TabWidth: 2}
}

// ParseResult bundles the parsed document with every diagnostic produced
// while parsing it.
type ParseResult struct {
	Document    Document
	Diagnostics []Diagnostic
}

// Parse parses input with DefaultOptions.
func Parse(input string) ParseResult {
	return ParseWithOptions(input, DefaultOptions())
}

// ParseWithOptions parses input as an LMM document. It always succeeds:
// malformed constructs are reported through ParseResult.Diagnostics and the
// parser recovers locally, producing a partial tree.
//
// Two behaviors worth knowing about:
//
//   - A closing delimiter is matched by substring search within each physical
//     line, before any other interpretation of that line. A '{' appearing
//     later on the same line therefore never opens a nested block; nesting
//     requires the child header on its own line.
//
//   - When a header has a delimiter but no name ("@ { ..."), the header is
//     rejected with a diagnostic but the cursor has already moved past the
//     '{', so the remainder of the line is taken as plain text.
func ParseWithOptions(input string, opts ParseOptions) ParseResult {
	p := &parser{input: input, opts: opts}
	doc := p.parseDocument()
	return ParseResult{Document: doc, Diagnostics: p.diags}
}

type parser struct {
	input     string
	idx       int
	lineStart int
	pos       Position
	opts      ParseOptions
	diags     []Diagnostic
}

func (p *parser) parseDocument() Document {
	attrs := p.parseAttributesAtStart()
	nodes := p.parseNodesUntil("")
	p.consumeTrailingComments()
	if !p.atEnd() {
		p.pushDiag(spanAtLineStart(p.pos.Line), SeverityError, "unexpected trailing content")
	}
	return Document{Attrs: attrs, Nodes: nodes}
}

// parseNodesUntil parses nodes until the closing delimiter is found or input
// ends. An empty closing string means top level (no delimiter expected).
func (p *parser) parseNodesUntil(closing string) []Node {
	var nodes []Node
	var textBuf []lineBuf
	closed := closing == ""

	for !p.atEnd() {
		if closing != "" {
			if closeIdx, ok := p.findCloseInLine(closing); ok {
				if closeIdx > p.idx {
					line := p.currentLineSlice()
					startOffset := p.currentLineOffset()
					endOffset := closeIdx - p.lineStart
					if buf, ok := parseTextSegment(line, p.pos.Line, startOffset, endOffset, p.opts); ok {
						textBuf = append(textBuf, buf)
					}
				}
				p.flushText(&nodes, &textBuf)
				p.advanceTo(closeIdx + len(closing))
				closed = true
				break
			}
		}

		if p.isLineStart() {
			line := p.currentLineSlice()
			if isCommentLine(line) {
				if buf, ok := parseCommentLine(line, p.pos.Line, p.opts); ok {
					textBuf = append(textBuf, buf)
				}
				p.advanceLine()
				continue
			}
			if strings.TrimSpace(line) == "" {
				p.advanceLine()
				continue
			}
			if isDollarLine(line) {
				p.flushText(&nodes, &textBuf)
				p.advanceLine()
				var lines []lineBuf
				for _, raw := range p.collectUntilDollar() {
					if buf, ok := parseTextLine(raw.text, raw.line, p.opts); ok {
						lines = append(lines, buf)
					}
				}
				if len(lines) > 0 {
					nodes = append(nodes, finalizeText(lines))
				}
				continue
			}
			if header, ok := p.tryParseBlockHeader(); ok {
				p.flushText(&nodes, &textBuf)
				attrs := p.parseAttributesAtStart()
				children := p.parseNodesUntil(blockCloseDelim(header.plusCount))
				nodes = append(nodes, &Block{
					Name:   header.name,
					Args:   header.args,
					Params: header.params,
					Attrs:  attrs,
					Nodes:  children,
					Span:   header.span,
				})
				continue
			}
		}

		line := p.currentLineSlice()
		startOffset := p.currentLineOffset()
		endOffset := p.lineEndIdx() - p.lineStart
		if buf, ok := parseTextSegment(line, p.pos.Line, startOffset, endOffset, p.opts); ok {
			textBuf = append(textBuf, buf)
		}
		p.advanceLine()
	}

	p.flushText(&nodes, &textBuf)
	if !closed {
		lineIndex := p.pos.Line - 1
		if lineIndex < 0 {
			lineIndex = 0
		}
		p.pushDiag(spanAtLineStart(lineIndex), SeverityError, "missing closing delimiter")
	}
	return nodes
}

func (p *parser) flushText(nodes *[]Node, textBuf *[]lineBuf) {
	if len(*textBuf) == 0 {
		return
	}
	lines := make([]TextLine, 0, len(*textBuf))
	for _, buf := range *textBuf {
		lines = append(lines, TextLine{
			Indent:    buf.indent,
			Value:     unescapeText(buf.value),
			Span:      buf.span,
			IsComment: buf.isComment,
		})
	}
	*nodes = append(*nodes, &Text{Lines: lines})
	*textBuf = (*textBuf)[:0]
}

// parseAttributesAtStart consumes a run of #key:value lines. It stops at the
// first line that is not an attribute: comments, blank lines, and anything
// else end the run.
func (p *parser) parseAttributesAtStart() []Attribute {
	var attrs []Attribute
	for p.isLineStart() && !p.atEnd() {
		line := p.currentLineSlice()
		if isCommentLine(line) || strings.TrimSpace(line) == "" {
			break
		}
		attr, ok := p.parseAttributeLine(line)
		if !ok {
			break
		}
		attrs = append(attrs, attr)
		p.advanceLine()
	}
	return attrs
}

func (p *parser) parseAttributeLine(line string) (Attribute, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "##") {
		return Attribute{}, false
	}
	withoutHash := trimmed[1:]
	key, value, found := strings.Cut(withoutHash, ":")
	if !found {
		p.pushDiag(lineSpanFromLine(p.pos.Line, line), SeverityError, "attribute missing ':'")
		return Attribute{}, false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		p.pushDiag(lineSpanFromLine(p.pos.Line, line), SeverityError, "attribute key is empty")
		return Attribute{}, false
	}
	return Attribute{
		Key:   key,
		Value: strings.TrimSpace(value),
		Span:  lineSpanFromLine(p.pos.Line, line),
	}, true
}

type blockHeader struct {
	name      string
	args      []string
	params    []Attribute
	plusCount int
	span      Span
}

// tryParseBlockHeader attempts to read "@name args [params] +..." up to the
// opening '{', which may be on a later line. On success the cursor sits just
// past the '{' (and past the newline if the '{' ended its line). On a
// missing-name failure the cursor has still advanced, by design.
func (p *parser) tryParseBlockHeader() (blockHeader, bool) {
	line := p.currentLineSlice()
	atCol, ok := findBlockHeaderStart(line)
	if !ok {
		return blockHeader{}, false
	}
	startPos := positionForLineOffset(p.pos.Line, line, atCol)
	startIdx := p.lineStart + atCol

	headerRaw, headerSpan, endIdx, ok := p.scanHeader(startIdx, startPos)
	if !ok {
		p.pushDiag(lineSpanFromLine(p.pos.Line, line), SeverityError, "block header missing opening delimiter")
		p.advanceLine()
		return blockHeader{}, false
	}

	p.advanceTo(endIdx)
	p.advanceLineIfEOL()

	name, args, rawParams, plusCount, missingSpace, ok := parseHeaderParts(headerRaw)
	if !ok {
		p.pushDiag(headerSpan, SeverityError, "missing block name")
		return blockHeader{}, false
	}

	if missingSpace {
		p.pushDiag(headerSpan, SeverityWarning,
			"missing space between block name and '{'; write '@name {'")
	}

	params := make([]Attribute, 0, len(rawParams))
	for _, kv := range rawParams {
		params = append(params, Attribute{Key: kv.key, Value: kv.value, Span: headerSpan})
	}

	return blockHeader{
		name:      name,
		args:      args,
		params:    params,
		plusCount: plusCount,
		span:      Span{Start: startPos, End: headerSpan.End},
	}, true
}

// scanHeader collects header text from startIdx up to the first '{', folding
// newlines into single spaces. Returns the raw header (without the '{'), the
// header span including the '{', and the byte index just past the '{'.
func (p *parser) scanHeader(startIdx int, startPos Position) (string, Span, int, bool) {
	var header strings.Builder
	idx := startIdx
	pos := startPos

	for idx < len(p.input) {
		r, size := utf8.DecodeRuneInString(p.input[idx:])
		if r == '{' {
			endPos := advancePos(pos, r, size)
			return header.String(), Span{Start: startPos, End: endPos}, idx + size, true
		}
		if r == '\n' {
			header.WriteByte(' ')
			pos = Position{Line: pos.Line + 1}
			idx += size
			continue
		}
		header.WriteRune(r)
		pos = advancePos(pos, r, size)
		idx += size
	}
	return "", Span{}, 0, false
}

type rawLine struct {
	line int
	text string
}

func (p *parser) collectUntilDollar() []rawLine {
	var out []rawLine
	for !p.atEnd() {
		line := p.currentLineSlice()
		if isDollarLine(line) {
			p.advanceLine()
			return out
		}
		out = append(out, rawLine{line: p.pos.Line, text: line})
		p.advanceLine()
	}
	lineIndex := p.pos.Line - 1
	if lineIndex < 0 {
		lineIndex = 0
	}
	p.pushDiag(spanAtLineStart(lineIndex), SeverityError, "unterminated $ block")
	return out
}

func (p *parser) consumeTrailingComments() {
	for !p.atEnd() {
		line := p.currentLineSlice()
		if isCommentLine(line) || strings.TrimSpace(line) == "" {
			p.advanceLine()
			continue
		}
		break
	}
}

// findCloseInLine searches for the closing delimiter in the unconsumed part
// of the current physical line.
func (p *parser) findCloseInLine(close string) (int, bool) {
	lineEnd := p.lineEndIdx()
	if p.idx > lineEnd {
		return 0, false
	}
	offset := strings.Index(p.input[p.idx:lineEnd], close)
	if offset < 0 {
		return 0, false
	}
	return p.idx + offset, true
}

func (p *parser) isLineStart() bool {
	return p.idx == p.lineStart
}

func (p *parser) atEnd() bool {
	return p.idx >= len(p.input)
}

func (p *parser) currentLineSlice() string {
	if p.lineStart > len(p.input) {
		return ""
	}
	return p.input[p.lineStart:p.lineEndIdx()]
}

func (p *parser) lineEndIdx() int {
	if p.lineStart >= len(p.input) {
		return len(p.input)
	}
	offset := strings.IndexByte(p.input[p.lineStart:], '\n')
	if offset < 0 {
		return len(p.input)
	}
	return p.lineStart + offset
}

func (p *parser) currentLineOffset() int {
	if p.idx < p.lineStart {
		return 0
	}
	return p.idx - p.lineStart
}

func (p *parser) advanceLine() {
	lineEnd := p.lineEndIdx()
	if p.idx < lineEnd {
		p.advanceTo(lineEnd)
	}
	if r, _, ok := p.peekRune(); ok && r == '\n' {
		p.advanceRune()
	}
}

func (p *parser) advanceLineIfEOL() {
	if p.idx >= p.lineEndIdx() {
		if r, _, ok := p.peekRune(); ok && r == '\n' {
			p.advanceRune()
		}
	}
}

func (p *parser) peekRune() (rune, int, bool) {
	if p.atEnd() {
		return 0, 0, false
	}
	r, size := utf8.DecodeRuneInString(p.input[p.idx:])
	return r, size, true
}

func (p *parser) advanceRune() {
	r, size, ok := p.peekRune()
	if !ok {
		return
	}
	p.idx += size
	if r == '\n' {
		p.pos = Position{Line: p.pos.Line + 1}
		p.lineStart = p.idx
	} else {
		p.pos = advancePos(p.pos, r, size)
	}
}

func (p *parser) advanceTo(target int) {
	for p.idx < target {
		p.advanceRune()
	}
}

func (p *parser) pushDiag(span Span, severity Severity, message string) {
	p.diags = append(p.diags, Diagnostic{Span: span, Severity: severity, Message: message})
}

type lineBuf struct {
	indent    int
	value     string
	span      Span
	isComment bool
}

// isCommentLine reports whether the line is a "!" comment. "!!" escapes the
// marker and makes the line ordinary text.
func isCommentLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "!!") {
		return false
	}
	return strings.HasPrefix(trimmed, "!")
}

func isDollarLine(line string) bool {
	return strings.TrimSpace(line) == "$"
}

func blockCloseDelim(plusCount int) string {
	return "}" + strings.Repeat("+", plusCount)
}

func parseTextLine(line string, lineIndex int, opts ParseOptions) (lineBuf, bool) {
	if isCommentLine(line) {
		return parseCommentLine(line, lineIndex, opts)
	}
	return parseTextSegment(line, lineIndex, 0, len(line), opts)
}

// parseTextSegment parses line[start:end] as text content. Leading
// whitespace counts toward indent only when the segment begins at column
// zero; mid-line segments keep their whitespace verbatim.
func parseTextSegment(line string, lineIndex, start, end int, opts ParseOptions) (lineBuf, bool) {
	if start >= end {
		return lineBuf{}, false
	}
	segment := line[start:end]

	indent, skip := 0, 0
	if start == 0 {
		indent, skip = measureIndent(segment, opts)
	}

	valueStart := start + skip
	value := segment[skip:]
	if start == 0 && strings.HasPrefix(value, "!!") {
		value = "!" + value[2:]
	}
	if value == "" {
		return lineBuf{}, false
	}

	span := spanForLineOffsets(lineIndex, line, valueStart, valueStart+len(value))
	return lineBuf{indent: indent, value: value, span: span}, true
}

func parseCommentLine(line string, lineIndex int, opts ParseOptions) (lineBuf, bool) {
	if !isCommentLine(line) {
		return lineBuf{}, false
	}
	indent, skip := measureIndent(line, opts)
	rest := strings.TrimPrefix(line[skip:], "!")
	trimmed := strings.TrimLeft(rest, " \t")
	valueStart := skip + 1 + (len(rest) - len(trimmed))
	span := spanForLineOffsets(lineIndex, line, valueStart, valueStart+len(trimmed))
	return lineBuf{indent: indent, value: trimmed, span: span, isComment: true}, true
}

// measureIndent returns the weighted indent of s's leading spaces and tabs
// and the byte count they occupy.
func measureIndent(s string, opts ParseOptions) (indent, skip int) {
	for skip < len(s) {
		switch s[skip] {
		case ' ':
			indent += opts.SpaceWidth
		case '\t':
			indent += opts.TabWidth
		default:
			return indent, skip
		}
		skip++
	}
	return indent, skip
}

func finalizeText(lines []lineBuf) *Text {
	out := make([]TextLine, 0, len(lines))
	for _, buf := range lines {
		out = append(out, TextLine{
			Indent:    buf.indent,
			Value:     unescapeText(buf.value),
			Span:      buf.span,
			IsComment: buf.isComment,
		})
	}
	return &Text{Lines: out}
}

// unescapeText collapses the escape pairs @@, ## and {{ in a single pass.
// "@@@" therefore becomes "@@": the first pair collapses, the third '@'
// passes through.
func unescapeText(input string) string {
	if !strings.ContainsAny(input, "@#{") {
		return input
	}
	var out strings.Builder
	out.Grow(len(input))
	for i := 0; i < len(input); i++ {
		c := input[i]
		if i+1 < len(input) && input[i+1] == c && (c == '@' || c == '#' || c == '{') {
			out.WriteByte(c)
			i++
			continue
		}
		out.WriteByte(c)
	}
	return out.String()
}

func findBlockHeaderStart(line string) (int, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "@") {
		return 0, false
	}
	return len(line) - len(trimmed), true
}

type param struct {
	key   string
	value string
}

// parseHeaderParts splits a raw header "@name arg1 arg2 [k=v, ...] ++" into
// its components. missingSpace is true when the header ends immediately
// after the name, i.e. the source had "@name{".
func parseHeaderParts(header string) (name string, args []string, params []param, plusCount int, missingSpace bool, ok bool) {
	if len(header) == 0 || header[0] != '@' {
		return "", nil, nil, 0, false, false
	}
	cursor := 1
	nameStart := cursor
	for cursor < len(header) && isNameByte(header[cursor]) {
		cursor++
	}
	if cursor == nameStart {
		return "", nil, nil, 0, false, false
	}
	name = header[nameStart:cursor]
	missingSpace = cursor == len(header)

	cursor = skipSpaces(header, cursor)
	for cursor < len(header) {
		c := header[cursor]
		if c == '[' || c == '+' {
			break
		}
		if isASCIISpace(c) {
			cursor = skipSpaces(header, cursor)
			continue
		}
		start := cursor
		for cursor < len(header) {
			c := header[cursor]
			if isASCIISpace(c) || c == '[' || c == '+' {
				break
			}
			cursor++
		}
		args = append(args, header[start:cursor])
		cursor = skipSpaces(header, cursor)
	}

	if cursor < len(header) && header[cursor] == '[' {
		params, cursor = parseParams(header, cursor)
		cursor = skipSpaces(header, cursor)
	}

	for cursor < len(header) && header[cursor] == '+' {
		plusCount++
		cursor++
	}

	return name, args, params, plusCount, missingSpace, true
}

func parseParams(header string, start int) ([]param, int) {
	cursor := start
	if cursor >= len(header) || header[cursor] != '[' {
		return nil, cursor
	}
	cursor++
	var params []param
	tokenStart := cursor

	for cursor < len(header) {
		switch header[cursor] {
		case ']':
			if token := header[tokenStart:cursor]; strings.TrimSpace(token) != "" {
				params = append(params, parseParamToken(token))
			}
			return params, cursor + 1
		case ',':
			if token := header[tokenStart:cursor]; strings.TrimSpace(token) != "" {
				params = append(params, parseParamToken(token))
			}
			cursor++
			tokenStart = cursor
		default:
			cursor++
		}
	}
	if token := header[tokenStart:cursor]; strings.TrimSpace(token) != "" {
		params = append(params, parseParamToken(token))
	}
	return params, cursor
}

func parseParamToken(token string) param {
	token = strings.TrimSpace(token)
	key, value, found := strings.Cut(token, "=")
	if !found {
		return param{key: token}
	}
	return param{key: strings.TrimSpace(key), value: strings.TrimSpace(value)}
}

func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '-'
}

func isASCIISpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func skipSpaces(s string, index int) int {
	for index < len(s) && isASCIISpace(s[index]) {
		index++
	}
	return index
}

func spanAtLineStart(lineIndex int) Span {
	pos := Position{Line: lineIndex}
	return Span{Start: pos, End: pos}
}

func lineSpanFromLine(lineIndex int, line string) Span {
	return Span{
		Start: Position{Line: lineIndex},
		End:   positionForLineOffset(lineIndex, line, len(line)),
	}
}

func spanForLineOffsets(lineIndex int, line string, start, end int) Span {
	return Span{
		Start: positionForLineOffset(lineIndex, line, start),
		End:   positionForLineOffset(lineIndex, line, end),
	}
}

// positionForLineOffset converts a byte offset within line into a full
// Position by re-counting the prefix in all three column units.
func positionForLineOffset(lineIndex int, line string, byteOffset int) Position {
	pos := Position{Line: lineIndex}
	prefix := line[:byteOffset]
	for i := 0; i < len(prefix); {
		r, size := utf8.DecodeRuneInString(prefix[i:])
		pos.Col8 += size
		pos.Col16 += utf16Len(r)
		pos.Col32++
		i += size
	}
	return pos
}

// advancePos moves pos past a rune of the given encoded size. The size is
// passed in so that invalid UTF-8 bytes, decoded as U+FFFD with size 1,
// still advance Col8 by exactly the bytes consumed.
func advancePos(pos Position, r rune, size int) Position {
	if r == '\n' {
		return Position{Line: pos.Line + 1}
	}
	return Position{
		Line:  pos.Line,
		Col8:  pos.Col8 + size,
		Col16: pos.Col16 + utf16Len(r),
		Col32: pos.Col32 + 1,
	}
}
