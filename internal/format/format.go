// Package format converts the markdown subset produced by the tutor bot into
// HTML fragments for the chat widget.
//
// The dialect is deliberately small: fenced code blocks with an optional
// language tag, inline code, bold, italic, ## and ### headers, "-"/"•"
// bullet items, numbered items and plain line breaks. Conversion is a fixed
// ordered pipeline of pure stages; see DefaultPipeline.
//
// Only fenced code block bodies are HTML-escaped. Any markup outside a fence
// is passed through as-is.
package format

// Stage is a single transformation step of the formatter pipeline.
// A stage must be pure: same input, same output, no panics.
type Stage struct {
	Name  string
	Apply func(*Document)
}

// TextStage adapts a string transform into a stage. fn only sees the text
// between lifted code blocks, so code bodies are never rewritten.
func TextStage(name string, fn func(string) string) Stage {
	return Stage{
		Name: name,
		Apply: func(d *Document) {
			d.eachText(fn)
		},
	}
}

// Pipeline is an ordered list of stages. Each stage receives the output of
// the previous one.
type Pipeline []Stage

// Run converts raw into a document.
func (p Pipeline) Run(raw string) *Document {
	doc := newDocument(raw)
	for _, stage := range p {
		stage.Apply(doc)
	}
	return doc
}

// Apply runs every stage in order over raw and returns the HTML.
func (p Pipeline) Apply(raw string) string {
	return p.Run(raw).HTML()
}

// Names returns the stage names in execution order.
func (p Pipeline) Names() []string {
	names := make([]string, len(p))
	for i, stage := range p {
		names[i] = stage.Name
	}
	return names
}

// DefaultPipeline is the formatter's stage order. Later stages must not
// re-match markup emitted by earlier ones, so the order is fixed:
// fenced code first, italic after bold, line breaks and cleanup last.
var DefaultPipeline = Pipeline{
	{Name: "fenced-code", Apply: liftFences},
	TextStage("inline-code", InlineCode),
	TextStage("bold", Bold),
	TextStage("italic", Italic),
	TextStage("headers", Headers),
	TextStage("unordered-list", UnorderedList),
	TextStage("ordered-list", OrderedList),
	TextStage("line-breaks", LineBreaks),
	{Name: "break-cleanup", Apply: cleanBreaks},
}

// Format converts a bot message into an HTML fragment.
func Format(raw string) string {
	html, _ := FormatBlocks(raw)
	return html
}

// FormatBlocks converts a bot message into an HTML fragment and also returns
// its code blocks in document order, one per emitted copy control.
func FormatBlocks(raw string) (string, []CodeBlock) {
	if raw == "" {
		return "", nil
	}
	doc := DefaultPipeline.Run(raw)
	return doc.HTML(), doc.Blocks()
}
