package render

import (
	"context"
	"fmt"
	"strings"
)

// HeadingSink receives every heading a renderer discovers, in document
// order, and returns the id to use as the heading's anchor.
type HeadingSink interface {
	Observe(level int, rawTitle string) string
}

// Renderer converts one section's text to HTML, reporting headings to sink.
type Renderer interface {
	Render(ctx context.Context, section string, sink HeadingSink) (string, error)
}

// Options configures the built-in renderers.
type Options struct {
	CodeStyle string // chroma style name for fenced code
}

// Supported lists the renderer kinds New accepts.
var Supported = map[string]bool{
	"markdown": true,
	"md":       true,
	"html":     true,
}

// New returns the renderer for kind.
func New(kind string, opts Options) (Renderer, error) {
	switch strings.ToLower(kind) {
	case "markdown", "md", "":
		return NewMarkdown(opts), nil
	case "html":
		return &HTMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported renderer: %s", kind)
	}
}
