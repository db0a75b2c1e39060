package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// rendererCache keeps one pool of glamour renderers per option set.
// A TermRenderer must not Render concurrently, so renderers are checked out
// and handed back instead of shared.
type rendererCache struct {
	pools sync.Map // Options -> *sync.Pool
}

var renderers = &rendererCache{}

func (c *rendererCache) pool(opts Options) *sync.Pool {
	if p, ok := c.pools.Load(opts); ok {
		return p.(*sync.Pool)
	}
	p, _ := c.pools.LoadOrStore(opts, &sync.Pool{})
	return p.(*sync.Pool)
}

// acquire returns a pooled renderer or builds a new one
func (c *rendererCache) acquire(opts Options) (*glamour.TermRenderer, error) {
	if r, ok := c.pool(opts).Get().(*glamour.TermRenderer); ok {
		return r, nil
	}
	return newRenderer(opts)
}

// release hands a renderer back for reuse
func (c *rendererCache) release(opts Options, r *glamour.TermRenderer) {
	if r == nil {
		return
	}
	c.pool(opts).Put(r)
}

func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	rendererOpts := []glamour.TermRendererOption{
		styleOption(opts.Style),
		glamour.WithWordWrap(opts.Width),
	}
	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(rendererOpts...)
}
