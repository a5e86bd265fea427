package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/golmm/pkg/lmm"
	"github.com/yaklabco/golmm/pkg/render"
)

const demoInput = `#title: Demo

@part Hello World {
  @list[bullet] {
    First item
    Second item
  }

  @code[lang=rust] {
    println!("hi");
  }
}
`

func parseClean(t *testing.T, input string) *lmm.Document {
	t.Helper()
	result := lmm.Parse(input)
	require.Empty(t, result.Diagnostics)
	return &result.Document
}

func TestMarkdown_EndToEnd(t *testing.T) {
	t.Parallel()

	doc := parseClean(t, demoInput)
	want := "# Hello World\n" +
		"\n" +
		"- First item\n" +
		"- Second item\n" +
		"\n" +
		"```rust\n" +
		"println!(\"hi\");\n" +
		"```"
	assert.Equal(t, want, render.Markdown(doc))
}

func TestHTML_EndToEnd(t *testing.T) {
	t.Parallel()

	doc := parseClean(t, demoInput)
	want := `<div class="lmm-document" data-title="Demo">
<section class="lmm-part">
<h1>Hello World</h1>
<ul class="lmm-list" data-param-bullet="">
<li>First item</li>
<li>Second item</li>
</ul>
<pre class="lmm-code" data-param-lang="rust"><code class="language-rust">println!(&quot;hi&quot;);
</code></pre>
</section>
</div>
`
	assert.Equal(t, want, render.HTML(doc))
}

func TestMarkdown_PartDepth(t *testing.T) {
	t.Parallel()

	doc := parseClean(t, "@part A {\n@part B {\n@part C {\nx\n}\n}\n}\n")
	want := "# A\n\n## B\n\n### C\n\nx"
	assert.Equal(t, want, render.Markdown(doc))
}

func TestMarkdown_PartDepthCapsAtSix(t *testing.T) {
	t.Parallel()

	var in strings.Builder
	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	for _, name := range names {
		in.WriteString("@part " + name + " {\n")
	}
	in.WriteString(strings.Repeat("}\n", len(names)))

	out := render.Markdown(parseClean(t, in.String()))
	assert.Contains(t, out, "###### F")
	assert.Contains(t, out, "###### G")
	assert.NotContains(t, out, "#######")
}

func TestMarkdown_PartWithoutTitle(t *testing.T) {
	t.Parallel()

	doc := parseClean(t, "@part {\n}\n")
	assert.Equal(t, "# part", render.Markdown(doc))
}

func TestMarkdown_LineStyleList(t *testing.T) {
	t.Parallel()

	doc := parseClean(t, "@list line {\nfirst\nsecond\n}\n")
	assert.Equal(t, "first\nsecond", render.Markdown(doc))
}

func TestMarkdown_BulletWinsOverLine(t *testing.T) {
	t.Parallel()

	doc := parseClean(t, "@list [line, bullet] {\nitem\n}\n")
	assert.Equal(t, "- item", render.Markdown(doc))
}

func TestMarkdown_CommentsSkipped(t *testing.T) {
	t.Parallel()

	doc := parseClean(t, "! hidden\nvisible\n")
	assert.Equal(t, "visible", render.Markdown(doc))
}

func TestMarkdown_IndentRendered(t *testing.T) {
	t.Parallel()

	doc := parseClean(t, "top\n  nested\n")
	assert.Equal(t, "top\n  nested", render.Markdown(doc))
}

func TestMarkdown_HeadingsResetInsideLists(t *testing.T) {
	t.Parallel()

	doc := parseClean(t, "@part Top {\n@list bullet {\n@part Inner {\n}\n}\n}\n")
	out := render.Markdown(doc)
	assert.Contains(t, out, "# Top")
	assert.Contains(t, out, "# Inner")
	assert.NotContains(t, out, "## Inner")
}

func TestHTML_GenericBlock(t *testing.T) {
	t.Parallel()

	doc := parseClean(t, "@warn [level=high] {\n#source: ops\nmsg\n}\n")
	want := `<div class="lmm-document">
<div class="lmm-block lmm-block-warn" data-source="ops" data-param-level="high">
<p>msg</p>
</div>
</div>
`
	assert.Equal(t, want, render.HTML(doc))
}

func TestHTML_LineStyleList(t *testing.T) {
	t.Parallel()

	doc := parseClean(t, "@list line {\na\nb\n}\n")
	want := `<div class="lmm-document">
<div class="lmm-lines">
<div class="lmm-line">a</div>
<div class="lmm-line">b</div>
</div>
</div>
`
	assert.Equal(t, want, render.HTML(doc))
}

func TestHTML_EscapesEntities(t *testing.T) {
	t.Parallel()

	doc := parseClean(t, "a & <b> \"c\" 'd'\n")
	out := render.HTML(doc)
	assert.Contains(t, out, "<p>a &amp; &lt;b&gt; &quot;c&quot; &#39;d&#39;</p>")
}

func TestHTML_CommentsSkipped(t *testing.T) {
	t.Parallel()

	doc := parseClean(t, "! secret\nshown\n")
	out := render.HTML(doc)
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "<p>shown</p>")
}

func TestRender_Deterministic(t *testing.T) {
	t.Parallel()

	doc := parseClean(t, demoInput)
	assert.Equal(t, render.Markdown(doc), render.Markdown(doc))
	assert.Equal(t, render.HTML(doc), render.HTML(doc))
}
