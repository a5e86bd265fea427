package lmm

import "unicode/utf16"

// Position is a zero-based location in LMM source text.
//
// The column is carried in three units at once: Col8 counts UTF-8 bytes,
// Col16 counts UTF-16 code units, and Col32 counts Unicode scalar values.
// Different consumers need different units from the same position (byte
// slicing of source vs. UTF-16 editor-protocol ranges), so all three advance
// together as the scanner consumes characters and all three reset to zero at
// the start of every line.
type Position struct {
	// Line is the zero-based line index, counting \n-terminated lines.
	Line int

	// Col8 is the UTF-8 byte offset within the line.
	Col8 int

	// Col16 is the UTF-16 code-unit offset within the line.
	Col16 int

	// Col32 is the Unicode scalar-value offset within the line.
	Col32 int
}

// Advance returns the position after consuming r.
// A newline moves to column zero of the next line; any other rune advances
// the three column counters in lockstep.
func (p Position) Advance(r rune) Position {
	return advancePos(p, r, utf8Len(r))
}

// Span is a half-open range over two positions: Start is inclusive, End is
// exclusive. A span may cross physical lines (e.g. a block header that spans
// several lines before its opening delimiter).
type Span struct {
	Start Position
	End   Position
}

// IsEmpty returns true if the span covers no characters.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

func utf8Len(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

func utf16Len(r rune) int {
	if utf16.RuneLen(r) == 2 {
		return 2
	}
	return 1
}
