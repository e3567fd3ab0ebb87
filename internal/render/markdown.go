package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// DefaultCodeStyle is used when Options.CodeStyle is empty.
const DefaultCodeStyle = "monokai"

var sinkKey = parser.NewContextKey()

// MarkdownRenderer renders sections with goldmark. Headings are reported
// to the sink from an AST transformer, so ids are assigned before the
// HTML is written.
type MarkdownRenderer struct {
	md goldmark.Markdown
}

func NewMarkdown(opts Options) *MarkdownRenderer {
	style := opts.CodeStyle
	if style == "" {
		style = DefaultCodeStyle
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
			),
		),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(headingTransformer{}, 100)),
		),
	)
	return &MarkdownRenderer{md: md}
}

func (r *MarkdownRenderer) Render(ctx context.Context, section string, sink HeadingSink) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pc := parser.NewContext()
	if sink != nil {
		pc.Set(sinkKey, sink)
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(section), &buf, parser.WithContext(pc)); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// headingTransformer reports headings to the sink stored in the parser
// context and stamps the returned id on the node.
type headingTransformer struct{}

func (headingTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	sink, _ := pc.Get(sinkKey).(HeadingSink)
	if sink == nil {
		return
	}
	src := reader.Source()
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		id := sink.Observe(h.Level, headingText(h, src))
		h.SetAttributeString("id", []byte(id))
		return ast.WalkSkipChildren, nil
	})
}

// headingText flattens the inline content of a heading to the text
// goldmark renders: escapes and entity references are resolved, code
// spans are kept verbatim, and autolinks contribute their label.
func headingText(n ast.Node, src []byte) string {
	var buf strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				buf.Write(plainText(t.Segment.Value(src)))
				if t.SoftLineBreak() || t.HardLineBreak() {
					buf.WriteByte(' ')
				}
			case *ast.String:
				buf.Write(t.Value)
			case *ast.CodeSpan:
				for cc := t.FirstChild(); cc != nil; cc = cc.NextSibling() {
					if tt, ok := cc.(*ast.Text); ok {
						buf.Write(tt.Segment.Value(src))
					}
				}
			case *ast.AutoLink:
				buf.Write(plainText(t.Label(src)))
			case *ast.RawHTML:
				// Inline tags carry no heading text.
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(buf.String())
}

func plainText(v []byte) []byte {
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	return util.ResolveEntityNames(v)
}
