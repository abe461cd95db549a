// Package html renders blog components into HTML.
package html

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	ttemplate "text/template"

	"braces.dev/errtrace"
	"go.abhg.dev/blogkit/internal/clipboard"
	"go.abhg.dev/blogkit/internal/codeblock"
	"go.abhg.dev/blogkit/internal/highlight"
	"go.abhg.dev/blogkit/internal/must"
	"go.abhg.dev/blogkit/internal/postcard"
	"go.abhg.dev/blogkit/internal/style"
)

const _staticDir = "_"

// DefaultEvalPath is the path, relative to the site root,
// at which live code blocks are evaluated.
const DefaultEvalPath = "/" + _staticDir + "/eval"

// DefaultCopyPath is the path, relative to the site root,
// at which code is copied when the browser's clipboard is unavailable.
const DefaultCopyPath = "/" + _staticDir + "/copy"

var (
	//go:embed tmpl/*.html
	_tmplFS embed.FS

	//go:embed static/**
	_staticFS embed.FS

	// Trick borrowed from pkgsite:
	// Unusable function references at parse time,
	// and then Clone and replace at render time.
	// This way, template validity is still
	// verified at init.
	_pageTmpl = template.Must(
		template.New("layout.html").
			Funcs((*render)(nil).FuncMap()).
			ParseFS(_tmplFS, "tmpl/layout.html"),
	)

	_codeBlockTmpl = template.Must(
		template.New("codeblock.html").
			Funcs((*render)(nil).FuncMap()).
			ParseFS(_tmplFS, "tmpl/codeblock.html"),
	)

	_postCardTmpl = template.Must(
		template.New("postcard.html").
			Funcs((*render)(nil).FuncMap()).
			ParseFS(_tmplFS, "tmpl/postcard.html"),
	)
)

// Highlighter renders code into HTML.
type Highlighter interface {
	Highlight(*highlight.Code) string
	WriteCSS(io.Writer) error
}

var _ Highlighter = (*highlight.Highlighter)(nil)

// Renderer renders components into HTML.
type Renderer struct {
	// Path to the home page of the generated site.
	// Static assets are referenced relative to it.
	// If empty, they're referenced relative to each page.
	Home string

	// Whether we're in embedded mode.
	// In this mode, pages will only contain the rendered document
	// and will not be complete, stylized HTML pages.
	Embedded bool

	// FrontMatter to include at the top of each page, if any.
	FrontMatter *ttemplate.Template

	// Highlighter renders code blocks into HTML.
	// Defaults to a highlighter with the default style and inline styles.
	Highlighter Highlighter

	// Theme holds style constants for components.
	// Defaults to style.DefaultTheme.
	Theme *style.Theme

	// EvalPath is the endpoint that live code blocks
	// send their edits to.
	// Live blocks aren't re-evaluated if this is empty.
	EvalPath string

	// CopyPath is the endpoint that copy buttons fall back to
	// if the browser doesn't expose a clipboard.
	CopyPath string
}

func (r *Renderer) templateName() string {
	if r.Embedded {
		return "Body"
	}
	return "Page"
}

func (r *Renderer) theme() *style.Theme {
	if r.Theme != nil {
		return r.Theme
	}
	return style.DefaultTheme()
}

func (r *Renderer) highlighter() Highlighter {
	if r.Highlighter != nil {
		return r.Highlighter
	}
	return new(highlight.Highlighter)
}

func (r *Renderer) newRender() *render {
	return &render{
		Home:        r.Home,
		Theme:       r.theme(),
		Highlighter: r.highlighter(),
		EvalPath:    r.EvalPath,
		CopyPath:    r.CopyPath,
	}
}

// WriteStatic dumps the contents of static/ into the given directory.
//
// This is a no-op if the renderer is running in embedded mode.
func (r *Renderer) WriteStatic(dir string) error {
	if r.Embedded {
		return nil
	}

	dir = filepath.Join(dir, _staticDir)
	static := must.Get(fs.Sub(_staticFS, "static"))
	return fs.WalkDir(static, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || path == "." {
			return err
		}

		outPath := filepath.Join(dir, path)
		if d.IsDir() {
			return os.MkdirAll(outPath, 0o1755)
		}

		bs, err := fs.ReadFile(static, path)
		if err != nil {
			return errtrace.Wrap(err)
		}

		// The highlighter's classes, if any,
		// are part of the main style sheet.
		if path == "css/main.css" {
			buff := bytes.NewBuffer(bs)
			buff.WriteString("\n")
			if err := r.highlighter().WriteCSS(buff); err != nil {
				return errtrace.Wrap(err)
			}
			bs = buff.Bytes()
		}

		return os.WriteFile(outPath, bs, 0o644)
	})
}

// PageInfo specifies a page that should be rendered.
type PageInfo struct {
	// Path of the page relative to the site root.
	Path string

	Title string

	// Content is the rendered document.
	Content template.HTML

	// Params holds the document's front matter.
	Params map[string]any
}

type frontmatterData struct {
	Path     string
	Basename string
	Title    string
	Params   map[string]any
}

func (r *Renderer) renderFrontmatter(w io.Writer, d frontmatterData) error {
	if r.FrontMatter == nil {
		return nil
	}

	var buff bytes.Buffer
	if err := r.FrontMatter.Execute(&buff, d); err != nil {
		return errtrace.Wrap(err)
	}

	bs := bytes.TrimSpace(buff.Bytes())
	if len(bs) == 0 {
		return nil
	}
	bs = append(bs, '\n', '\n')

	_, err := w.Write(bs)
	return errtrace.Wrap(err)
}

// RenderPage renders a complete page,
// or just its body in embedded mode.
func (r *Renderer) RenderPage(w io.Writer, info *PageInfo) error {
	err := r.renderFrontmatter(w, frontmatterData{
		Path:     info.Path,
		Basename: path.Base(info.Path),
		Title:    info.Title,
		Params:   info.Params,
	})
	if err != nil {
		return err
	}

	render := r.newRender()
	render.Path = info.Path
	return errtrace.Wrap(template.Must(_pageTmpl.Clone()).
		Funcs(render.FuncMap()).
		ExecuteTemplate(w, r.templateName(), info))
}

// RenderCodeBlock renders a code block in its selected variant.
func (r *Renderer) RenderCodeBlock(w io.Writer, c *codeblock.Component) error {
	render := r.newRender()
	return errtrace.Wrap(template.Must(_codeBlockTmpl.Clone()).
		Funcs(render.FuncMap()).
		ExecuteTemplate(w, "CodeBlock", c))
}

// RenderPostCard renders a post summary card.
// It renders nothing if view is nil.
func (r *Renderer) RenderPostCard(w io.Writer, view *postcard.View) error {
	if view == nil {
		return nil
	}

	render := r.newRender()
	return errtrace.Wrap(template.Must(_postCardTmpl.Clone()).
		Funcs(render.FuncMap()).
		ExecuteTemplate(w, "PostCard", view))
}

// PostCardHTML looks up and renders a card in one step.
// It returns an empty string if the post doesn't exist.
func (r *Renderer) PostCardHTML(card *postcard.Card, posts postcard.Finder) (template.HTML, error) {
	view, ok := postcard.Build(card, posts, r.theme())
	if !ok {
		return "", nil
	}

	var buff bytes.Buffer
	if err := r.RenderPostCard(&buff, view); err != nil {
		return "", err
	}
	return template.HTML(buff.String()), nil
}

// WidgetFuncs returns template functions that render components.
// Live code blocks can call them.
//
//	{{ postLink "/blog/hello/" }}
//	{{ postLink "/blog/hello/" "flex-start" }}
func (r *Renderer) WidgetFuncs(posts postcard.Finder) template.FuncMap {
	return template.FuncMap{
		"postLink": func(to string, align ...string) (template.HTML, error) {
			card := postcard.Card{To: to}
			if len(align) > 0 {
				card.Align = align[0]
			}
			return r.PostCardHTML(&card, posts)
		},
	}
}

type render struct {
	Home string
	Path string

	Theme       *style.Theme
	Highlighter Highlighter
	EvalPath    string
	CopyPath    string
}

func (r *render) FuncMap() template.FuncMap {
	return template.FuncMap{
		"code":        r.code,
		"static":      r.static,
		"css":         css,
		"theme":       r.theme,
		"evalPath":    r.evalPath,
		"copyPath":    r.copyPath,
		"copiedMs":    copiedMillis,
		"json":        toJSON,
		"variantKind": variantKind,
		"variantName": codeblock.VariantName,
		"withVariant": withVariant,
	}
}

// static returns the URL of a static asset.
// Without a home, it's relative to the page being rendered
// so that the site may be served from any path.
func (r *render) static(p string) string {
	if r.Home == "" {
		return relPath(r.Path, path.Join(_staticDir, p))
	}
	return path.Join(r.Home, _staticDir, p)
}

func (r *render) theme() *style.Theme {
	return r.Theme
}

func (r *render) evalPath() string {
	return r.EvalPath
}

func (r *render) copyPath() string {
	return r.CopyPath
}

// copiedMillis is how long the copy button acknowledges a copy.
func copiedMillis() int64 {
	return clipboard.DefaultTimeout.Milliseconds()
}

func (r *render) code(c *codeblock.Component) template.HTML {
	code := highlight.Lines(
		highlight.LexerFor(c.Language()),
		[]byte(c.State.Source()),
		c.Lines,
	)
	return template.HTML(r.Highlighter.Highlight(code))
}

func toJSON(v any) (string, error) {
	bs, err := json.Marshal(v)
	return string(bs), errtrace.Wrap(err)
}

func css(s style.Style) template.CSS {
	return template.CSS(s.CSS())
}

func variantKind(v codeblock.Variant) string {
	switch v.(type) {
	case *codeblock.Live:
		return "live"
	case *codeblock.Collapsible:
		return "collapsible"
	default:
		return "static"
	}
}

// variantView renders a code block as a specific variant.
// This lets a disclosure render its inner variant
// with the same state.
type variantView struct {
	*codeblock.Component

	Variant codeblock.Variant
}

func withVariant(c *codeblock.Component, v codeblock.Variant) variantView {
	return variantView{Component: c, Variant: v}
}
