// Package postcard builds summary cards that link to posts.
package postcard

import (
	"go.abhg.dev/blogkit/internal/content"
	"go.abhg.dev/blogkit/internal/style"
	"golang.org/x/text/language"
)

// DefaultAlign is the default horizontal alignment of a card.
const DefaultAlign = "center"

// Card holds the inputs for a post summary card.
type Card struct {
	// To is the slug of the post to summarize.
	To string

	// Align is the horizontal alignment of the card:
	// a CSS justify-content value like "center" or "flex-start".
	// Defaults to DefaultAlign.
	Align string

	// Style overrides the default card style.
	// On conflict, these values win.
	Style style.Style
}

// Finder looks up posts by slug.
type Finder interface {
	Find(slug string) (*content.Post, bool)
}

var _ Finder = (*content.Index)(nil)

// View is a card ready to be rendered.
type View struct {
	// Href is the link target of the card: the post's slug.
	Href string

	Title string
	Cover *content.Image
	Tags  []string

	// Date is the formatted date of the post,
	// or empty if the post is undated.
	Date string

	// Summary is the post's description,
	// or its excerpt if it doesn't have one.
	Summary string

	// Justify is the alignment of the card in its row.
	Justify string

	// Style of the card container.
	Style style.Style
}

// Build looks up the post for a card and builds its view.
//
// If there's no post with the requested slug,
// Build returns false and the card renders as nothing.
func Build(card *Card, posts Finder, theme *style.Theme) (*View, bool) {
	if posts == nil {
		return nil, false
	}

	post, ok := posts.Find(card.To)
	if !ok {
		return nil, false
	}

	align := card.Align
	if align == "" {
		align = DefaultAlign
	}

	lang := language.Und
	if theme.Locale != "" {
		// Unknown locales fall back to the root collation.
		if tag, err := language.Parse(theme.Locale); err == nil {
			lang = tag
		}
	}

	var date string
	if d := post.Frontmatter.Date; !d.IsZero() {
		date = d.Format(theme.DateLayout)
	}

	return &View{
		Href:    post.Slug,
		Title:   post.Frontmatter.Title,
		Cover:   post.Frontmatter.Cover,
		Tags:    post.SortedTags(lang),
		Date:    date,
		Summary: post.Summary(),
		Justify: align,
		Style:   style.Merge(theme.Card, card.Style),
	}, true
}
