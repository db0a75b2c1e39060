package format

import (
	"html"
	"regexp"
	"strings"
)

// DefaultLanguage is the tag shown on a fenced block opened without one.
const DefaultLanguage = "code"

// CopyLabel is the initial label of the copy control on every code block.
const CopyLabel = "Copy"

const lineBreak = "<br>"

var (
	fencedCodeRe = regexp.MustCompile("(?s)```(\\w*)[ \\t]*\\n?(.*?)```")

	inlineCodeRe = regexp.MustCompile("`([^`\\n]+)`")
	boldRe       = regexp.MustCompile(`\*\*([^*]+?)\*\*`)
	italicRe     = regexp.MustCompile(`\*([^*\n]+?)\*`)

	h4Re = regexp.MustCompile(`(?m)^### (.*)$`)
	h3Re = regexp.MustCompile(`(?m)^## (.*)$`)

	bulletItemRe  = regexp.MustCompile(`(?m)^(?:-|•) (.*)$`)
	itemRunRe     = regexp.MustCompile(`<li>[^\n]*</li>(?:\n<li>[^\n]*</li>)*`)
	orderedItemRe = regexp.MustCompile(`(?m)^\d+\. (.*)$`)

	breakBeforeBlockRe = regexp.MustCompile(`<br>(<div class="code-block">|<ul>|<h3>|<h4>)`)
	breakAfterBlockRe  = regexp.MustCompile(`(</div>|</ul>|</h3>|</h4>)<br>`)
)

// EscapeHTML escapes <, >, &, ' and " so text can sit inside an element.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// FencedCode replaces ```lang ... ``` regions with a code block carrying a
// language header, a copy control and the escaped, trimmed body.
func FencedCode(s string) string {
	doc := newDocument(s)
	liftFences(doc)
	return doc.HTML()
}

// liftFences splits every text segment around its fenced regions and records
// each region as a code block.
func liftFences(d *Document) {
	var out []segment
	for _, seg := range d.segments {
		if seg.block != textSegment {
			out = append(out, seg)
			continue
		}
		last := 0
		for _, m := range fencedCodeRe.FindAllStringSubmatchIndex(seg.text, -1) {
			if m[0] > last {
				out = append(out, segment{text: seg.text[last:m[0]], block: textSegment})
			}
			lang := seg.text[m[2]:m[3]]
			if lang == "" {
				lang = DefaultLanguage
			}
			d.blocks = append(d.blocks, CodeBlock{
				Language: lang,
				Code:     strings.TrimSpace(seg.text[m[4]:m[5]]),
			})
			out = append(out, segment{block: len(d.blocks) - 1})
			last = m[1]
		}
		if last < len(seg.text) || last == 0 {
			out = append(out, segment{text: seg.text[last:], block: textSegment})
		}
	}
	d.segments = out
}

func codeBlockHTML(lang, escapedBody string) string {
	var b strings.Builder
	b.WriteString(`<div class="code-block"><div class="code-header"><span class="code-lang">`)
	b.WriteString(lang)
	b.WriteString(`</span><button class="copy-btn" type="button">`)
	b.WriteString(CopyLabel)
	b.WriteString(`</button></div><pre><code class="language-`)
	b.WriteString(lang)
	b.WriteString(`">`)
	b.WriteString(escapedBody)
	b.WriteString(`</code></pre></div>`)
	return b.String()
}

// InlineCode wraps `x` spans in <code>. The span content is not escaped.
func InlineCode(s string) string {
	return inlineCodeRe.ReplaceAllString(s, "<code>${1}</code>")
}

// Bold wraps **x** spans in <strong>.
func Bold(s string) string {
	return boldRe.ReplaceAllString(s, "<strong>${1}</strong>")
}

// Italic wraps *x* spans in <em>. It must run after Bold.
func Italic(s string) string {
	return italicRe.ReplaceAllString(s, "<em>${1}</em>")
}

// Headers turns "### t" lines into <h4> and "## t" lines into <h3>.
func Headers(s string) string {
	s = h4Re.ReplaceAllString(s, "<h4>${1}</h4>")
	return h3Re.ReplaceAllString(s, "<h3>${1}</h3>")
}

// UnorderedList turns "- x" and "• x" lines into list items and wraps each
// run of adjacent items in a single <ul>.
func UnorderedList(s string) string {
	s = bulletItemRe.ReplaceAllString(s, "<li>${1}</li>")
	return itemRunRe.ReplaceAllStringFunc(s, func(run string) string {
		return "<ul>" + strings.ReplaceAll(run, "\n", "") + "</ul>"
	})
}

// OrderedList turns "1. x" lines into bare list items. No <ol> wrapper is
// emitted.
func OrderedList(s string) string {
	return orderedItemRe.ReplaceAllString(s, "<li>${1}</li>")
}

// LineBreaks converts every newline into <br>.
func LineBreaks(s string) string {
	return strings.ReplaceAll(s, "\n", lineBreak)
}

// BreakCleanup drops one <br> directly before a block element opens and one
// directly after it closes.
func BreakCleanup(s string) string {
	s = breakBeforeBlockRe.ReplaceAllString(s, "${1}")
	return breakAfterBlockRe.ReplaceAllString(s, "${1}")
}

// cleanBreaks applies BreakCleanup to the text and also drops the single
// <br> that touches a lifted code block on either side.
func cleanBreaks(d *Document) {
	for i := range d.segments {
		seg := &d.segments[i]
		if seg.block != textSegment {
			continue
		}
		if d.isBlock(i + 1) {
			seg.text = strings.TrimSuffix(seg.text, lineBreak)
		}
		if d.isBlock(i - 1) {
			seg.text = strings.TrimPrefix(seg.text, lineBreak)
		}
		seg.text = BreakCleanup(seg.text)
	}
}
