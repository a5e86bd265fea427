// Package langdetect guesses the programming language of code block
// content so renderers can emit a fence or highlight class when the
// author left the lang parameter off.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Fallback tag when no strategy produces a confident answer.
const langText = "text"

// classifierCandidates narrows the enry classifier to languages that show
// up in prose documents. An open candidate set makes it guess exotic
// languages on short snippets.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Detect returns a lowercase fence tag for the given code content.
// It tries, in order: shebang, high-signal syntax patterns, then the
// enry bayesian classifier. Returns "text" when nothing is confident.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return langText
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return langText
}

// matcher inspects content and returns a fence tag or "".
type matcher func(raw []byte, trimmed []byte, text string) string

// matchers run in order of specificity. First hit wins.
var matchers = []matcher{
	matchGo,
	matchPython,
	matchHTML,
	matchJSON,
	matchDockerfile,
	matchSQL,
	matchRust,
	matchJavaScript,
	matchYAML,
}

func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	text := string(content)

	for _, match := range matchers {
		if lang := match(content, trimmed, text); lang != "" {
			return lang
		}
	}
	return ""
}

func matchGo(_ []byte, trimmed []byte, _ string) string {
	if bytes.HasPrefix(trimmed, []byte("package ")) {
		return "go"
	}
	return ""
}

func matchPython(_ []byte, _ []byte, text string) string {
	if strings.Contains(text, "def ") && strings.Contains(text, "):") {
		return "python"
	}
	// Import statements, excluding Go's grouped form.
	if strings.Contains(text, "import ") && !strings.Contains(text, "import (") {
		if strings.Contains(text, "from ") || strings.HasPrefix(strings.TrimSpace(text), "import ") {
			return "python"
		}
	}
	if strings.Contains(text, "__name__") || strings.Contains(text, "__main__") {
		return "python"
	}
	return ""
}

func matchHTML(_ []byte, trimmed []byte, _ string) string {
	lower := bytes.ToLower(trimmed)
	for _, tag := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(tag)) {
			return "html"
		}
	}
	return ""
}

func matchJSON(_ []byte, trimmed []byte, _ string) string {
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) {
		return "json"
	}
	return ""
}

func matchDockerfile(raw []byte, trimmed []byte, _ string) string {
	if bytes.HasPrefix(trimmed, []byte("FROM ")) ||
		(bytes.Contains(raw, []byte("\nFROM ")) && bytes.Contains(raw, []byte("\nRUN "))) ||
		(bytes.Contains(raw, []byte("WORKDIR ")) && bytes.Contains(raw, []byte("COPY "))) {
		return "dockerfile"
	}
	return ""
}

func matchSQL(_ []byte, _ []byte, text string) string {
	upper := strings.TrimSpace(strings.ToUpper(text))
	for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, kw) {
			return "sql"
		}
	}
	return ""
}

func matchRust(_ []byte, _ []byte, text string) string {
	if strings.Contains(text, "fn main()") ||
		strings.Contains(text, "println!") ||
		strings.Contains(text, "let mut ") {
		return "rust"
	}
	return ""
}

func matchJavaScript(_ []byte, _ []byte, text string) string {
	if strings.Contains(text, "=>") ||
		strings.Contains(text, "const ") ||
		strings.Contains(text, "let ") ||
		strings.Contains(text, "console.log") {
		return "javascript"
	}
	return ""
}

// matchYAML counts key: value lines and root-level list items; two or more
// is enough signal.
func matchYAML(raw []byte, _ []byte, _ string) string {
	hits := 0
	for _, line := range bytes.Split(raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.Contains(line, []byte("(")) &&
			!bytes.Contains(line, []byte("{")) &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			hits++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			hits++
		}
	}
	if hits >= 2 {
		return "yaml"
	}
	return ""
}

// normalize converts enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
