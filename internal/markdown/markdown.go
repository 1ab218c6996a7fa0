// Package markdown renders article bodies to HTML and extracts a
// table of contents from the document headings.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Heading is one table-of-contents entry. ID matches the anchor the
// renderer emits on the corresponding heading element.
type Heading struct {
	Level int    `json:"level"`
	Title string `json:"title"`
	ID    string `json:"id"`
}

// Result is the rendered document plus its TOC side output.
type Result struct {
	HTML string
	TOC  []Heading
}

// Renderer converts markdown source to HTML. Stateless after
// construction, safe to share across requests.
type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.DefinitionList,
				extension.Footnote,
			),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Render converts source to HTML and collects headings in document order.
// The source itself is never modified.
func (r *Renderer) Render(source string) (Result, error) {
	src := []byte(source)

	doc := r.md.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))

	var toc []Heading
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		toc = append(toc, Heading{
			Level: h.Level,
			Title: string(h.Text(src)),
			ID:    headingID(h),
		})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("markdown toc: %w", err)
	}

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, doc); err != nil {
		return Result{}, fmt.Errorf("markdown render: %w", err)
	}

	return Result{HTML: buf.String(), TOC: toc}, nil
}

func headingID(h *ast.Heading) string {
	v, ok := h.AttributeString("id")
	if !ok {
		return ""
	}
	b, ok := v.([]byte)
	if !ok {
		return ""
	}
	return string(b)
}
