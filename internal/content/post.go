// Package content defines the post records that components consume,
// and loads them from a pre-built YAML index.
//
// This package does not build the index:
// that's the job of the site's content pipeline.
package content

import (
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Post is a read-only view over a published post.
type Post struct {
	// Slug is the unique path of the post, e.g. "/blog/hello/".
	Slug string `yaml:"slug"`

	Frontmatter Frontmatter `yaml:"frontmatter"`

	// Excerpt is an automatically generated summary of the post body.
	Excerpt string `yaml:"excerpt"`
}

// Frontmatter is structured metadata attached to a post.
type Frontmatter struct {
	Title       string    `yaml:"title"`
	Cover       *Image    `yaml:"cover"`
	Tags        []string  `yaml:"tags"`
	Description string    `yaml:"description"`
	Date        time.Time `yaml:"date"`
}

// Summary returns the description of the post,
// falling back to its excerpt if it doesn't have one.
func (p *Post) Summary() string {
	if p.Frontmatter.Description != "" {
		return p.Frontmatter.Description
	}
	return p.Excerpt
}

// SortedTags returns the post's tags without duplicates,
// in the collation order of the given language.
func (p *Post) SortedTags(lang language.Tag) []string {
	tags := slices.Clone(p.Frontmatter.Tags)
	collate.New(lang).SortStrings(tags)
	return slices.Compact(tags)
}

// Image is a responsive image descriptor.
//
// In YAML, an image may be written as a plain string,
// which is taken to be its source URL,
// or as a mapping with the fields below.
type Image struct {
	Src         string  `yaml:"src"`
	SrcSet      string  `yaml:"srcset"`
	Sizes       string  `yaml:"sizes"`
	AspectRatio float64 `yaml:"aspectRatio"`
	Alt         string  `yaml:"alt"`
}

var _ yaml.Unmarshaler = (*Image)(nil)

// UnmarshalYAML decodes an image from a string or a mapping.
func (img *Image) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*img = Image{Src: node.Value}
		return nil
	}

	// Avoid recursing into this method.
	type plain Image
	return node.Decode((*plain)(img))
}
