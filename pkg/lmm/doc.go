// Package lmm implements the LMM lightweight markup language: the document
// data model (positions, spans, diagnostics, the Block/Text node tree) and a
// single-pass recursive-descent parser over raw source text.
//
// The parser never fails hard. Every malformed construct is reported as a
// Diagnostic and recovered from locally, so Parse always returns a usable,
// possibly partial, Document. Exact source-position bookkeeping is kept in
// three column units at once (UTF-8 bytes, UTF-16 code units, Unicode
// scalars) so downstream tools can map results to whichever offsets they
// need without re-scanning.
package lmm
