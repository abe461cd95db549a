// Package mdx renders markdown documents that embed blog components.
//
// Fenced code blocks become code block components.
// The info string selects the language and the block's options:
//
//	```go-html-template live title="Greeting" {2}
//	<p>Hello</p>
//	<p>{{ upper "world" }}</p>
//	```
//
// HTML blocks made up only of PostLink tags become post summary cards:
//
//	<PostLink to="/blog/hello/" align="flex-start" />
//
// Front matter in YAML, TOML, or JSON is stripped from the document
// and reported alongside the rendered HTML.
package mdx

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"log"

	"braces.dev/errtrace"
	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
	"go.abhg.dev/blogkit/internal/codeblock"
	"go.abhg.dev/blogkit/internal/html"
	"go.abhg.dev/blogkit/internal/postcard"
)

// Document is a rendered markdown document.
type Document struct {
	// Title is the "title" field of the front matter, if any.
	Title string

	// Params holds the document's front matter.
	// It's empty if the document has none.
	Params map[string]any

	// Content is the rendered body of the document.
	Content template.HTML
}

// Converter renders markdown documents into HTML.
type Converter struct {
	// HTML renders components.
	HTML *html.Renderer

	// Posts are the posts that PostLink tags may refer to.
	Posts postcard.Finder

	// CodeBlocks configures code block components.
	// If no evaluator is set, sources are evaluated as templates
	// that may call the renderer's widget functions.
	CodeBlocks codeblock.Config

	// AllowHTML passes raw HTML in documents through to the output.
	// Otherwise, it's omitted.
	AllowHTML bool

	Log *log.Logger
}

func (c *Converter) log() *log.Logger {
	if c.Log != nil {
		return c.Log
	}
	return log.New(io.Discard, "", 0)
}

func (c *Converter) htmlRenderer() *html.Renderer {
	if c.HTML != nil {
		return c.HTML
	}
	return new(html.Renderer)
}

// Convert renders a markdown document.
func (c *Converter) Convert(ctx context.Context, src []byte) (*Document, error) {
	params := make(map[string]any)
	body, err := frontmatter.Parse(bytes.NewReader(src), &params)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	cfg := c.CodeBlocks
	if cfg.Evaluator == nil {
		cfg.Evaluator = &codeblock.TemplateEvaluator{
			Funcs: c.htmlRenderer().WidgetFuncs(c.Posts),
		}
	}
	if cfg.Log == nil {
		cfg.Log = c.log()
	}

	// goldmark doesn't thread a context through rendering,
	// so the component renderer is bound to this conversion.
	opts := []goldmark.Option{
		goldmark.WithExtensions(
			extension.GFM,
			&componentExtension{
				ctx:       ctx,
				html:      c.htmlRenderer(),
				posts:     c.Posts,
				cfg:       cfg,
				allowHTML: c.AllowHTML,
			},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	}
	if c.AllowHTML {
		// Inline HTML. Blocks are handled by componentExtension.
		opts = append(opts, goldmark.WithRendererOptions(gmhtml.WithUnsafe()))
	}
	md := goldmark.New(opts...)

	var buff bytes.Buffer
	if err := md.Convert(body, &buff); err != nil {
		return nil, errtrace.Wrap(err)
	}

	doc := Document{
		Params:  params,
		Content: template.HTML(buff.String()),
	}
	if title, ok := params["title"].(string); ok {
		doc.Title = title
	}
	return &doc, nil
}

// componentExtension renders code blocks and PostLink tags
// as components.
type componentExtension struct {
	ctx       context.Context
	html      *html.Renderer
	posts     postcard.Finder
	cfg       codeblock.Config
	allowHTML bool
}

var _ goldmark.Extender = (*componentExtension)(nil)

func (e *componentExtension) Extend(m goldmark.Markdown) {
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			// Ahead of the default HTML renderer.
			util.Prioritized(&nodeRenderer{componentExtension: e}, 100),
		),
	)
}
