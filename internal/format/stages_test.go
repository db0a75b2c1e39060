package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFencedCode(t *testing.T) {
	assert.Equal(t, pythonBlock, FencedCode("```python\nprint(1)\n```"))
	assert.Equal(t, "no fences here", FencedCode("no fences here"))
}

func TestFencedCode_TrimsBody(t *testing.T) {
	got := FencedCode("```go\n\n\tx := 1\n\n```")
	assert.Contains(t, got, `<code class="language-go">x := 1</code>`)
}

func TestFencedCode_MultipleBlocks(t *testing.T) {
	got := FencedCode("```a\n1\n``` mid ```b\n2\n```")
	assert.Contains(t, got, `<code class="language-a">1</code>`)
	assert.Contains(t, got, `<code class="language-b">2</code>`)
	assert.Contains(t, got, "</div> mid <div")
}

func TestInlineCode(t *testing.T) {
	assert.Equal(t, "use <code>go test</code> now", InlineCode("use `go test` now"))
	assert.Equal(t, "``", InlineCode("``"))
}

func TestBold(t *testing.T) {
	assert.Equal(t, "<strong>a</strong> <strong>b</strong>", Bold("**a** **b**"))
	assert.Equal(t, "**a*b**", Bold("**a*b**"))
}

func TestItalic(t *testing.T) {
	assert.Equal(t, "<em>a</em> b", Italic("*a* b"))
	assert.Equal(t, "*a\nb*", Italic("*a\nb*"))
}

func TestHeaders(t *testing.T) {
	assert.Equal(t, "<h4>x</h4>\n<h3>y</h3>", Headers("### x\n## y"))
	assert.Equal(t, "#### z", Headers("#### z"))
	assert.Equal(t, "a ## b", Headers("a ## b"))
}

func TestUnorderedList(t *testing.T) {
	assert.Equal(t, "<ul><li>a</li><li>b</li></ul>\ntail", UnorderedList("- a\n- b\ntail"))
	assert.Equal(t, "-no space", UnorderedList("-no space"))
}

func TestOrderedList(t *testing.T) {
	assert.Equal(t, "<li>first</li>\n<li>second</li>", OrderedList("1. first\n10. second"))
	assert.Equal(t, "1.no space", OrderedList("1.no space"))
}

func TestLineBreaks(t *testing.T) {
	assert.Equal(t, "a<br>b<br>", LineBreaks("a\nb\n"))
}

func TestTextStage_SkipsCodeBodies(t *testing.T) {
	p := Pipeline{
		{Name: "fenced-code", Apply: liftFences},
		TextStage("line-breaks", LineBreaks),
	}
	want := "x<br>" + codeBlockHTML("go", "a\nb") + "<br>y"
	assert.Equal(t, want, p.Apply("x\n```go\na\nb\n```\ny"))
}

func TestCleanBreaks_AroundLiftedBlocks(t *testing.T) {
	p := Pipeline{
		{Name: "fenced-code", Apply: liftFences},
		TextStage("line-breaks", LineBreaks),
		{Name: "break-cleanup", Apply: cleanBreaks},
	}
	block := codeBlockHTML("go", "a")
	assert.Equal(t, "x"+block+"y", p.Apply("x\n```go\na\n```\ny"))
	assert.Equal(t, "x<br>"+block+"<br>y", p.Apply("x\n\n```go\na\n```\n\ny"))
	assert.Equal(t, block+block, p.Apply("```go\na\n```\n```go\na\n```"))
}

func TestBreakCleanup(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"a<br><ul><li>x</li></ul><br>b", "a<ul><li>x</li></ul>b"},
		{"a<br><h3>t</h3><br>b", "a<h3>t</h3>b"},
		{"a<br><h4>t</h4>", "a<h4>t</h4>"},
		{"a<br><br><h3>t</h3>", "a<br><h3>t</h3>"},
		{`a<br><div class="code-block">c</div><br>b`, `a<div class="code-block">c</div>b`},
		{"a<br>b", "a<br>b"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, BreakCleanup(tc.in), "input %q", tc.in)
	}
}

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t, "&lt;a href=&#34;x&#34;&gt;&amp;&#39;", EscapeHTML(`<a href="x">&'`))
}

func TestFencedCode_SpacesAfterLanguage(t *testing.T) {
	got := FencedCode("```go \t\nx := 1\n```")
	assert.Contains(t, got, `<span class="code-lang">go</span>`)
	assert.Contains(t, got, `<code class="language-go">x := 1</code>`)
}

func TestInlineCode_StopsAtNewline(t *testing.T) {
	assert.Equal(t, "a `b\nc` d", InlineCode("a `b\nc` d"))
}
