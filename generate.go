package main

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"braces.dev/errtrace"
	"go.abhg.dev/blogkit/internal/errdefer"
	"go.abhg.dev/blogkit/internal/html"
	"go.abhg.dev/blogkit/internal/mdx"
)

// _defaultBasename is the name of the file written for each page.
const _defaultBasename = "index.html"

// Converter renders a markdown document into HTML.
type Converter interface {
	Convert(context.Context, []byte) (*mdx.Document, error)
}

var _ Converter = (*mdx.Converter)(nil)

// Renderer renders rendered documents into pages.
type Renderer interface {
	WriteStatic(string) error
	RenderPage(io.Writer, *html.PageInfo) error
}

var _ Renderer = (*html.Renderer)(nil)

// Generator generates a site from user-specified markdown files.
//
// In terms of code organization,
// Generator's purpose is to add a separation between main
// and the program's core logic to aid in testability.
type Generator struct {
	Log       *log.Logger
	Converter Converter
	Renderer  Renderer
	OutDir    string

	// Basename is the name of the file written for each page.
	// Defaults to index.html.
	Basename string
}

func (g *Generator) basename() string {
	if g.Basename != "" {
		return g.Basename
	}
	return _defaultBasename
}

// Generate renders the given markdown files
// and writes static assets next to them.
// It returns the paths of the rendered pages relative to the site root.
func (g *Generator) Generate(ctx context.Context, files []string) ([]string, error) {
	if err := g.Renderer.WriteStatic(g.OutDir); err != nil {
		return nil, errtrace.Wrap(err)
	}

	seen := make(map[string]string, len(files)) // page path => file
	pages := make([]string, 0, len(files))
	for _, file := range files {
		p := pagePath(file)
		if other, ok := seen[p]; ok {
			return nil, errtrace.Errorf("%v: page %q already generated from %v", file, p, other)
		}
		seen[p] = file

		if err := g.renderFile(ctx, p, file); err != nil {
			return nil, errtrace.Errorf("%v: %w", file, err)
		}
		pages = append(pages, p)
	}
	return pages, nil
}

func (g *Generator) renderFile(ctx context.Context, page, file string) (err error) {
	src, err := os.ReadFile(file)
	if err != nil {
		return errtrace.Wrap(err)
	}

	g.Log.Printf("Rendering %v", file)
	doc, err := g.Converter.Convert(ctx, src)
	if err != nil {
		return errtrace.Wrap(err)
	}

	title := doc.Title
	if title == "" && page != "." {
		title = page
	}

	dir := filepath.Join(g.OutDir, filepath.FromSlash(page))
	if err := os.MkdirAll(dir, 0o1755); err != nil {
		return errtrace.Wrap(err)
	}

	f, err := os.Create(filepath.Join(dir, g.basename()))
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, f)

	return errtrace.Wrap(g.Renderer.RenderPage(f, &html.PageInfo{
		Path:    page,
		Title:   title,
		Content: doc.Content,
		Params:  doc.Params,
	}))
}

// pagePath reports the path of the page for a markdown file,
// relative to the site root.
// index.md is the site root itself.
func pagePath(file string) string {
	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	if name == "index" {
		return "."
	}
	return name
}
