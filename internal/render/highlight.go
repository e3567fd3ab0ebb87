package render

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// HighlightCSS returns the stylesheet matching the class-based markup the
// markdown renderer emits for fenced code. Unknown styles fall back to
// chroma's default.
func HighlightCSS(style string) (string, error) {
	if style == "" {
		style = DefaultCodeStyle
	}
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(style)); err != nil {
		return "", fmt.Errorf("write css: %w", err)
	}
	return buf.String(), nil
}
