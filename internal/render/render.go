package render

import "strings"

// Markdown renders markdown content for terminal display.
func Markdown(content string, opts Options) (string, error) {
	opts = opts.normalized()

	r, err := renderers.acquire(opts)
	if err != nil {
		return "", err
	}
	defer renderers.release(opts, r)

	return r.Render(content)
}

// Reply renders a tutor reply for a chat bubble. On render failure the raw
// text is returned so a reply is never lost.
func Reply(text string, opts Options) string {
	out, err := Markdown(text, opts)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
