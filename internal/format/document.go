package format

import "strings"

// CodeBlock is a fenced block lifted out of a message.
type CodeBlock struct {
	Language string
	// Code is the trimmed, unescaped body, exactly what the copy control
	// puts on the clipboard.
	Code string
}

// segment is either a run of text still open to later stages or a
// reference to a lifted code block.
type segment struct {
	text  string
	block int
}

const textSegment = -1

// Document is a message part way through the pipeline: text runs
// interleaved with code blocks that later stages cannot see into.
type Document struct {
	segments []segment
	blocks   []CodeBlock
}

func newDocument(raw string) *Document {
	return &Document{segments: []segment{{text: raw, block: textSegment}}}
}

// Blocks returns the lifted code blocks in document order.
func (d *Document) Blocks() []CodeBlock {
	if len(d.blocks) == 0 {
		return nil
	}
	out := make([]CodeBlock, len(d.blocks))
	copy(out, d.blocks)
	return out
}

// HTML renders the document, emitting each code block in place.
func (d *Document) HTML() string {
	var b strings.Builder
	for _, seg := range d.segments {
		if seg.block == textSegment {
			b.WriteString(seg.text)
			continue
		}
		block := d.blocks[seg.block]
		b.WriteString(codeBlockHTML(block.Language, EscapeHTML(block.Code)))
	}
	return b.String()
}

func (d *Document) eachText(fn func(string) string) {
	for i := range d.segments {
		if d.segments[i].block == textSegment {
			d.segments[i].text = fn(d.segments[i].text)
		}
	}
}

func (d *Document) isBlock(i int) bool {
	return i >= 0 && i < len(d.segments) && d.segments[i].block != textSegment
}
