package goldmark

import (
	"html"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// codeRenderer renders code blocks: allowed languages through chroma,
// everything else as escaped plain text.
type codeRenderer struct {
	compiler *Compiler
}

func (r *codeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
}

func (r *codeRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	lang := strings.ToLower(string(n.Language(source)))
	code := blockText(n, source)

	lexer := r.compiler.lexer(lang)
	if lexer == nil {
		writePlain(w, code)
		return ast.WalkSkipChildren, nil
	}
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return ast.WalkStop, err
	}
	if err := r.compiler.formatter.Format(w, r.compiler.style, it); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}

func (r *codeRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		writePlain(w, blockText(node, source))
	}
	return ast.WalkSkipChildren, nil
}

func writePlain(w util.BufWriter, code string) {
	_, _ = w.WriteString("<pre><code>")
	_, _ = w.WriteString(html.EscapeString(code))
	_, _ = w.WriteString("</code></pre>\n")
}

func blockText(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}
