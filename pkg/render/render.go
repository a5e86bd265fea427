// Package render turns parsed LMM documents into Markdown or HTML.
//
// Both renderers interpret the same small set of well-known block names
// (part, list, code); every other block renders generically. Comment lines
// never appear in output.
package render

import (
	"strings"

	"github.com/yaklabco/golmm/pkg/lmm"
)

type listStyle uint8

const (
	listBullet listStyle = iota
	listLine
)

// blockListStyle picks the list rendering style. An explicit "bullet" marker
// wins over "line"; the default is bullet.
func blockListStyle(block *lmm.Block) listStyle {
	if hasMarker(block, "bullet") {
		return listBullet
	}
	if hasMarker(block, "line") {
		return listLine
	}
	return listBullet
}

// hasMarker reports whether key appears as a param key or a bare arg.
func hasMarker(block *lmm.Block, key string) bool {
	for _, p := range block.Params {
		if p.Key == key {
			return true
		}
	}
	for _, arg := range block.Args {
		if arg == key {
			return true
		}
	}
	return false
}

// partTitle joins the part's args into a heading title, falling back to the
// literal "part" when no args were given.
func partTitle(block *lmm.Block) string {
	if len(block.Args) == 0 {
		return "part"
	}
	return strings.Join(block.Args, " ")
}

// partLevel maps a nesting depth to a heading level, capped at 6.
func partLevel(depth int) int {
	level := depth + 1
	if level > 6 {
		level = 6
	}
	return level
}

func langParam(block *lmm.Block) string {
	for _, p := range block.Params {
		if p.Key == "lang" {
			return p.Value
		}
	}
	return ""
}
