// Package goldmark compiles markdown pages with github.com/yuin/goldmark and
// highlights code with chroma.
package goldmark

import (
	"bytes"
	"io"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/fwojciec/docsearch"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// DefaultLanguages are the code block languages highlighted by default.
var DefaultLanguages = []string{"c", "cpp", "shell", "xml"}

// DefaultStyle is the chroma style used for the stylesheet.
const DefaultStyle = "github"

// Ensure Compiler implements docsearch.Compiler at compile time.
var _ docsearch.Compiler = (*Compiler)(nil)

// Compiler renders markdown pages to HTML fragments. It is safe for
// concurrent use.
type Compiler struct {
	md        goldmark.Markdown
	languages []string
	lexers    map[string]chroma.Lexer
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLanguages sets the code block languages that are highlighted. Blocks in
// any other language render as plain text.
func WithLanguages(languages ...string) Option {
	return func(c *Compiler) {
		c.languages = languages
	}
}

// WithStyle sets the chroma style written by WriteCSS.
// Unknown names fall back to chroma's default style.
func WithStyle(name string) Option {
	return func(c *Compiler) {
		c.style = styles.Get(name)
	}
}

// NewCompiler creates a new Compiler.
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		languages: DefaultLanguages,
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
		style:     styles.Get(DefaultStyle),
	}
	for _, opt := range opts {
		opt(c)
	}

	// Aliases resolve to the same lexer, so "sh" is allowed when "shell" is.
	c.lexers = make(map[string]chroma.Lexer, len(c.languages))
	for _, lang := range c.languages {
		if l := lexers.Get(strings.ToLower(lang)); l != nil {
			c.lexers[l.Config().Name] = chroma.Coalesce(l)
		}
	}

	c.md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithHeadingAttribute(),
			parser.WithASTTransformers(util.Prioritized(pageTransformer{}, 100)),
		),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(&codeRenderer{compiler: c}, 100)),
		),
	)
	return c
}

// Compile renders a whole page.
func (c *Compiler) Compile(source []byte) (*docsearch.CompiledPage, error) {
	pc := parser.NewContext()
	doc := c.md.Parser().Parse(text.NewReader(source), parser.WithContext(pc))

	var buf bytes.Buffer
	if err := c.md.Renderer().Render(&buf, source, doc); err != nil {
		return nil, err
	}

	page := &docsearch.CompiledPage{
		HTML:  buf.String(),
		Title: docsearch.UntitledPage,
	}
	if sections, ok := pc.Get(sectionsKey).([]docsearch.Section); ok {
		page.Sections = sections
		if len(sections) > 0 {
			page.Title = sections[0].Title
		}
	}
	if removed, ok := pc.Get(removedKey).([]string); ok {
		page.Removed = removed
	}
	return page, nil
}

// RenderInline renders one line of markdown without the enclosing paragraph.
func (c *Compiler) RenderInline(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	out := strings.TrimSpace(buf.String())
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	return out, nil
}

// WriteCSS writes the stylesheet for highlighted code blocks.
func (c *Compiler) WriteCSS(w io.Writer) error {
	return c.formatter.WriteCSS(w, c.style)
}

// lexer returns the lexer for a fence language, or nil when the block should
// render as plain text.
func (c *Compiler) lexer(lang string) chroma.Lexer {
	if lang == "" {
		return nil
	}
	l := lexers.Get(lang)
	if l == nil {
		return nil
	}
	return c.lexers[l.Config().Name]
}

var (
	sectionsKey = parser.NewContextKey()
	removedKey  = parser.NewContextKey()
)

var (
	externalLink = regexp.MustCompile(`(?i)^[a-z]+://`)
	markdownExt  = regexp.MustCompile(`\.md(?:$|#)`)
)

// pageTransformer drops raw HTML, rewrites links and assigns heading anchors.
// Its findings are stored in the parser context.
type pageTransformer struct{}

func (pageTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()

	var (
		raw      []ast.Node
		links    []ast.Node
		headings []*ast.Heading
	)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.HTMLBlock, *ast.RawHTML:
			raw = append(raw, n)
			return ast.WalkSkipChildren, nil
		case *ast.Link, *ast.AutoLink:
			links = append(links, n)
		case *ast.Heading:
			headings = append(headings, n)
		}
		return ast.WalkContinue, nil
	})

	removed := make([]string, 0, len(raw))
	for _, n := range raw {
		if s := strings.TrimSpace(rawText(n, source)); s != "" {
			removed = append(removed, s)
		}
		n.Parent().RemoveChild(n.Parent(), n)
	}
	pc.Set(removedKey, removed)

	for _, n := range links {
		rewriteLink(n, source)
	}

	pc.Set(sectionsKey, assignAnchors(headings, source))
}

func rawText(n ast.Node, source []byte) string {
	var b strings.Builder
	switch n := n.(type) {
	case *ast.HTMLBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(source))
		}
		if n.HasClosure() {
			b.Write(n.ClosureLine.Value(source))
		}
	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(source))
		}
	}
	return b.String()
}

// rewriteLink leaves fragments alone, opens absolute URLs in a new tab and
// drops the .md extension from relative links.
func rewriteLink(n ast.Node, source []byte) {
	switch n := n.(type) {
	case *ast.Link:
		dest := string(n.Destination)
		switch {
		case strings.HasPrefix(dest, "#"):
		case externalLink.MatchString(dest):
			n.SetAttributeString("target", []byte("_blank"))
		default:
			if loc := markdownExt.FindStringIndex(dest); loc != nil {
				n.Destination = []byte(dest[:loc[0]] + dest[loc[0]+len(".md"):])
			}
		}
	case *ast.AutoLink:
		if n.AutoLinkType == ast.AutoLinkURL && externalLink.Match(n.URL(source)) {
			n.SetAttributeString("target", []byte("_blank"))
		}
	}
}

// assignAnchors gives every heading a unique id. Explicit {#id} attributes are
// kept and reserved first.
func assignAnchors(headings []*ast.Heading, source []byte) []docsearch.Section {
	anchors := docsearch.NewAnchors()
	explicit := make(map[*ast.Heading]string)
	for _, h := range headings {
		if v, ok := h.AttributeString("id"); ok {
			if id, ok := v.([]byte); ok && len(id) > 0 {
				explicit[h] = string(id)
				anchors.Reserve(string(id))
			}
		}
	}

	sections := make([]docsearch.Section, 0, len(headings))
	for _, h := range headings {
		title := plainText(h, source)
		id, ok := explicit[h]
		if !ok {
			id = anchors.Next(title)
			h.SetAttributeString("id", []byte(id))
		}
		sections = append(sections, docsearch.Section{Level: h.Level, Title: title, Anchor: id})
	}
	return sections
}

// plainText returns the text content of an inline tree.
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(source))
			if c.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}
