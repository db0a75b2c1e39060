// Package render renders tutor replies as styled terminal markdown.
package render

// Width bounds for rendered replies. Chat bubbles shrink with the terminal,
// and glamour wraps badly below a few words per line.
const (
	MinWidth = 20
	MaxWidth = 200
)

// Options configures the markdown renderer. Options is comparable and is
// used directly as the renderer cache key.
type Options struct {
	// Width is the wrap column
	Width int

	// Style is a glamour standard style name or a path to a JSON style
	Style string

	// EnableEmoji converts :emoji: to unicode characters
	EnableEmoji bool

	// PreserveNewLines keeps single line breaks from the reply
	PreserveNewLines bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            ThemeDark,
		EnableEmoji:      true,
		PreserveNewLines: true,
	}
}

// WithWidth returns a copy with the given wrap width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns a copy with the given style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}

// normalized clamps the width and fills in a missing style, so equivalent
// requests share one renderer pool.
func (o Options) normalized() Options {
	switch {
	case o.Width < MinWidth:
		o.Width = MinWidth
	case o.Width > MaxWidth:
		o.Width = MaxWidth
	}
	if o.Style == "" {
		o.Style = ThemeDark
	}
	return o
}
