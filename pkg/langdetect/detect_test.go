package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/golmm/pkg/langdetect"
	"github.com/yaklabco/golmm/pkg/lmm"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"shebang bash", "#!/bin/bash\necho hello", "bash"},
		{"shebang sh", "#!/bin/sh\necho hello", "bash"},
		{"shebang python", "#!/usr/bin/env python3\nprint('hello')", "python"},
		{"go code", "package main\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}", "go"},
		{"python code", "def foo():\n    pass\n\nif __name__ == '__main__':\n    foo()", "python"},
		{"javascript code", "const x = () => { return 42; };\nconsole.log(x());", "javascript"},
		{"json object", `{"key": "value", "number": 123}`, "json"},
		{"yaml content", "key: value\nother: 123\nlist:\n  - item1\n  - item2", "yaml"},
		{"rust code", "fn main() {\n    println!(\"Hello, world!\");\n}", "rust"},
		{"sql query", "SELECT * FROM users WHERE id = 1;", "sql"},
		{"html content", "<!DOCTYPE html>\n<html>\n<head><title>Test</title></head>\n<body></body>\n</html>", "html"},
		{"dockerfile", "FROM golang:1.21\nWORKDIR /app\nCOPY . .\nRUN go build", "dockerfile"},
		{"plain text fallback", "just some text without any code patterns", "text"},
		{"empty content fallback", "", "text"},
		{"whitespace only fallback", "   \n\t\n", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.Detect([]byte(tt.content)))
		})
	}
}

func TestDetect_ShebangTakesPrecedence(t *testing.T) {
	t.Parallel()

	// Looks like Python, but the shebang says bash.
	content := []byte("#!/bin/bash\ndef foo():\n    pass")
	assert.Equal(t, "bash", langdetect.Detect(content))
}

func TestAnnotate(t *testing.T) {
	t.Parallel()

	input := "@part Examples {\n" +
		"  @code+ {\n" +
		"    fn main() {\n" +
		"        println!(\"hi\");\n" +
		"    }\n" +
		"  }+\n" +
		"}\n"
	parsed := lmm.Parse(input)
	require.Empty(t, parsed.Diagnostics)

	annotated := langdetect.Annotate(&parsed.Document)
	assert.Equal(t, 1, annotated)

	part, ok := parsed.Document.Nodes[0].(*lmm.Block)
	require.True(t, ok)
	code, ok := part.Nodes[0].(*lmm.Block)
	require.True(t, ok)
	require.Len(t, code.Params, 1)
	assert.Equal(t, "lang", code.Params[0].Key)
	assert.Equal(t, "rust", code.Params[0].Value)
}

func TestAnnotate_KeepsExplicitLang(t *testing.T) {
	t.Parallel()

	parsed := lmm.Parse("@code[lang=go] {\n  SELECT 1;\n}\n")
	require.Empty(t, parsed.Diagnostics)

	assert.Zero(t, langdetect.Annotate(&parsed.Document))

	code, ok := parsed.Document.Nodes[0].(*lmm.Block)
	require.True(t, ok)
	require.Len(t, code.Params, 1)
	assert.Equal(t, "go", code.Params[0].Value)
}

func TestAnnotate_SkipsUndetectable(t *testing.T) {
	t.Parallel()

	parsed := lmm.Parse("@code {\n  just prose here\n}\n")
	require.Empty(t, parsed.Diagnostics)

	assert.Zero(t, langdetect.Annotate(&parsed.Document))
}

func TestAnnotate_NilDocument(t *testing.T) {
	t.Parallel()

	assert.Zero(t, langdetect.Annotate(nil))
}
