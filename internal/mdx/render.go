package mdx

import (
	"bytes"

	"braces.dev/errtrace"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
	"go.abhg.dev/blogkit/internal/codeblock"
)

type nodeRenderer struct {
	*componentExtension
}

var _ renderer.NodeRenderer = (*nodeRenderer)(nil)

func (r *nodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(ast.KindHTMLBlock, r.renderHTMLBlock)
}

func (r *nodeRenderer) renderFencedCodeBlock(
	w util.BufWriter, source []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*ast.FencedCodeBlock)
	var b codeblock.Block
	if n.Info != nil {
		b = parseInfo(string(n.Info.Segment.Value(source)))
	}
	b.Source = string(linesOf(n, source))

	c := codeblock.New(r.ctx, b, r.cfg)
	if err := r.html.RenderCodeBlock(w, c); err != nil {
		return ast.WalkStop, errtrace.Wrap(err)
	}
	_, err := w.WriteString("\n")
	return ast.WalkSkipChildren, errtrace.Wrap(err)
}

func (r *nodeRenderer) renderHTMLBlock(
	w util.BufWriter, source []byte, node ast.Node, entering bool,
) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*ast.HTMLBlock)
	raw := linesOf(n, source)
	if n.HasClosure() {
		raw = append(raw, n.ClosureLine.Value(source)...)
	}

	cards, ok, err := parsePostLinks(raw)
	if err != nil {
		return ast.WalkStop, errtrace.Wrap(err)
	}
	if !ok {
		return ast.WalkSkipChildren, errtrace.Wrap(r.writeRawHTML(w, raw))
	}

	// A bad card renders as nothing.
	// It must not take the rest of the page down with it.
	for _, link := range cards {
		if link.Err != nil {
			r.cfg.Log.Printf("%v", link.Err)
			continue
		}

		card := link.Card
		out, err := r.html.PostCardHTML(card, r.posts)
		if err != nil {
			r.cfg.Log.Printf("PostLink: render %q: %v", card.To, err)
			continue
		}
		if out == "" {
			r.cfg.Log.Printf("PostLink: no post at %q", card.To)
			continue
		}
		if _, err := w.WriteString(string(out) + "\n"); err != nil {
			return ast.WalkStop, errtrace.Wrap(err)
		}
	}
	return ast.WalkSkipChildren, nil
}

func (r *nodeRenderer) writeRawHTML(w util.BufWriter, raw []byte) error {
	if !r.allowHTML {
		_, err := w.WriteString("<!-- raw HTML omitted -->\n")
		return errtrace.Wrap(err)
	}
	_, err := w.Write(raw)
	return errtrace.Wrap(err)
}

func linesOf(n ast.Node, source []byte) []byte {
	var buff bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buff.Write(seg.Value(source))
	}
	return buff.Bytes()
}
