// Package markdown renders post bodies to HTML with the site's element
// styling applied, and exposes the result as a templ component.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Classes is the class attribute applied to each overridden element.
type Classes struct {
	H1         string
	H2         string
	H3         string
	P          string
	UL         string
	OL         string
	LI         string
	Blockquote string
	A          string
	Img        string
	Code       string
	Pre        string
}

// DefaultClasses matches the blog's article styling.
var DefaultClasses = Classes{
	H1:         "text-3xl md:text-4xl font-bold text-gray-900 mb-8 mt-12 leading-tight",
	H2:         "text-2xl md:text-3xl font-bold text-gray-900 mb-6 mt-12 leading-tight",
	H3:         "text-xl md:text-2xl font-bold text-gray-900 mb-4 mt-8 leading-tight",
	P:          "text-base text-gray-700 mb-8 leading-relaxed",
	UL:         "text-base text-gray-700 mb-4 ml-6 list-disc space-y-2",
	OL:         "text-base text-gray-700 mb-4 ml-6 list-decimal space-y-2",
	LI:         "leading-relaxed",
	Blockquote: "border-l-4 border-nexus-green pl-6 py-2 my-6 bg-gray-50 italic text-gray-700",
	A:          "text-nexus-green hover:text-green-600 underline transition-colors",
	Img:        "rounded-lg my-6 w-full h-auto",
	Code:       "bg-gray-100 px-2 py-1 rounded text-sm font-mono text-gray-800",
	Pre:        "bg-gray-900 text-white p-4 rounded-lg overflow-x-auto my-6",
}

// Image dimensions hinted on every body image.
const (
	ImageWidth  = "800"
	ImageHeight = "400"
)

// Renderer converts Markdown/MDX bodies to HTML. It is safe for concurrent use.
type Renderer struct {
	md      goldmark.Markdown
	classes Classes
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClasses replaces DefaultClasses.
func WithClasses(c Classes) Option {
	return func(r *Renderer) {
		r.classes = c
	}
}

// New returns a Renderer with GFM and auto heading IDs enabled. Raw HTML in
// the source is omitted from the output.
func New(opts ...Option) *Renderer {
	r := &Renderer{classes: DefaultClasses}
	for _, opt := range opts {
		opt(r)
	}
	r.md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(util.Prioritized(&overrides{classes: r.classes}, 100)),
		),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(&codeBlockRenderer{classes: r.classes}, 100)),
		),
	)
	return r
}

// Render converts src to HTML.
func (r *Renderer) Render(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown: render: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Component returns a templ.Component that renders src.
func (r *Renderer) Component(src string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return r.md.Convert([]byte(src), w)
	})
}

// overrides decorates block and inline nodes with the configured classes
// before rendering.
type overrides struct {
	classes Classes
}

func (o *overrides) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Heading:
			switch n.Level {
			case 1:
				setClass(n, o.classes.H1)
			case 2:
				setClass(n, o.classes.H2)
			case 3:
				setClass(n, o.classes.H3)
			}
		case *ast.Paragraph:
			setClass(n, o.classes.P)
		case *ast.List:
			if n.IsOrdered() {
				setClass(n, o.classes.OL)
			} else {
				setClass(n, o.classes.UL)
			}
		case *ast.ListItem:
			setClass(n, o.classes.LI)
		case *ast.Blockquote:
			setClass(n, o.classes.Blockquote)
		case *ast.Link:
			decorateLink(n, o.classes.A, n.Destination)
		case *ast.AutoLink:
			decorateLink(n, o.classes.A, n.URL(source))
		case *ast.Image:
			setClass(n, o.classes.Img)
			n.SetAttributeString("width", []byte(ImageWidth))
			n.SetAttributeString("height", []byte(ImageHeight))
			n.SetAttributeString("loading", []byte("lazy"))
		case *ast.CodeSpan:
			setClass(n, o.classes.Code)
		}
		return ast.WalkContinue, nil
	})
}

func setClass(n ast.Node, class string) {
	if class == "" {
		return
	}
	n.SetAttributeString("class", []byte(class))
}

// decorateLink opens absolute http(s) links in a new tab.
func decorateLink(n ast.Node, class string, dest []byte) {
	setClass(n, class)
	if IsExternal(string(dest)) {
		n.SetAttributeString("target", []byte("_blank"))
		n.SetAttributeString("rel", []byte("noopener noreferrer"))
	}
}

// IsExternal reports whether href points off-site.
func IsExternal(href string) bool {
	return strings.HasPrefix(href, "http")
}

// codeBlockRenderer writes fenced and indented code as
// <pre class="..."><code class="language-x">.
type codeBlockRenderer struct {
	classes Classes
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
}

func (r *codeBlockRenderer) openPre(w util.BufWriter) {
	_, _ = w.WriteString("<pre")
	if r.classes.Pre != "" {
		_, _ = w.WriteString(` class="`)
		_, _ = w.Write(util.EscapeHTML([]byte(r.classes.Pre)))
		_ = w.WriteByte('"')
	}
	_, _ = w.WriteString("><code")
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.FencedCodeBlock)
	if !entering {
		_, _ = w.WriteString("</code></pre>\n")
		return ast.WalkContinue, nil
	}
	r.openPre(w)
	if lang := n.Language(source); len(lang) > 0 {
		_, _ = w.WriteString(` class="language-`)
		_, _ = w.Write(util.EscapeHTML(lang))
		_ = w.WriteByte('"')
	}
	_ = w.WriteByte('>')
	writeLines(w, source, n)
	return ast.WalkContinue, nil
}

func (r *codeBlockRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</code></pre>\n")
		return ast.WalkContinue, nil
	}
	r.openPre(w)
	_ = w.WriteByte('>')
	writeLines(w, source, node)
	return ast.WalkContinue, nil
}

func writeLines(w util.BufWriter, source []byte, n ast.Node) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		_, _ = w.Write(util.EscapeHTML(line.Value(source)))
	}
}
