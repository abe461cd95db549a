package content

import (
	"fmt"
	"io"
	"os"

	"braces.dev/errtrace"
	"go.abhg.dev/blogkit/internal/errdefer"
	"gopkg.in/yaml.v3"
)

// Index is a collection of posts that can be searched by slug.
//
// The zero value is an empty index.
type Index struct {
	posts  []*Post
	bySlug map[string]*Post
}

// NewIndex builds an index from the given posts.
// If two posts share a slug, the first one wins.
func NewIndex(posts []*Post) *Index {
	bySlug := make(map[string]*Post, len(posts))
	for _, p := range posts {
		if _, ok := bySlug[p.Slug]; !ok {
			bySlug[p.Slug] = p
		}
	}
	return &Index{posts: posts, bySlug: bySlug}
}

type indexFile struct {
	Posts []*Post `yaml:"posts"`
}

// LoadIndex decodes an index from YAML of the form:
//
//	posts:
//	  - slug: /blog/hello/
//	    frontmatter:
//	      title: Hello
//	      cover: /img/hello.png
//	      tags: [go]
//	      date: 2023-04-05
//	    excerpt: ...
//
// An empty document is an empty index.
func LoadIndex(r io.Reader) (*Index, error) {
	var f indexFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return nil, errtrace.Wrap(fmt.Errorf("decode index: %w", err))
	}

	for i, p := range f.Posts {
		if p == nil || p.Slug == "" {
			return nil, errtrace.Errorf("post %d: missing slug", i)
		}
	}
	return NewIndex(f.Posts), nil
}

// LoadIndexFile loads an index from the YAML file at path.
func LoadIndexFile(path string) (_ *Index, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, f)

	idx, err := LoadIndex(f)
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("%v: %w", path, err))
	}
	return idx, nil
}

// Find returns the post with exactly the given slug.
func (idx *Index) Find(slug string) (*Post, bool) {
	if idx == nil {
		return nil, false
	}
	p, ok := idx.bySlug[slug]
	return p, ok
}

// Posts returns all posts in the index, in their original order.
func (idx *Index) Posts() []*Post {
	if idx == nil {
		return nil
	}
	return idx.posts
}

// Len reports the number of posts in the index.
func (idx *Index) Len() int {
	return len(idx.Posts())
}
