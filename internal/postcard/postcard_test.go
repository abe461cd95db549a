package postcard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/blogkit/internal/content"
	"go.abhg.dev/blogkit/internal/style"
)

func testIndex() *content.Index {
	return content.NewIndex([]*content.Post{
		{
			Slug: "/foo",
			Frontmatter: content.Frontmatter{
				Title: "Foo",
				Cover: &content.Image{Src: "/img/foo.png"},
				Tags:  []string{"react", "go"},
				Date:  time.Date(2020, 5, 17, 0, 0, 0, 0, time.UTC),
			},
			Excerpt: "Foo excerpt",
		},
		{
			Slug: "/described",
			Frontmatter: content.Frontmatter{
				Description: "A description",
			},
			Excerpt: "ignored",
		},
	})
}

func TestBuild(t *testing.T) {
	t.Parallel()

	theme := style.DefaultTheme()
	got, ok := Build(&Card{To: "/foo"}, testIndex(), theme)
	require.True(t, ok)

	assert.Equal(t, &View{
		Href:    "/foo",
		Title:   "Foo",
		Cover:   &content.Image{Src: "/img/foo.png"},
		Tags:    []string{"go", "react"},
		Date:    "2020年05月17日",
		Summary: "Foo excerpt",
		Justify: "center",
		Style:   theme.Card,
	}, got)
}

func TestBuild_missing(t *testing.T) {
	t.Parallel()

	got, ok := Build(&Card{To: "/bar"}, testIndex(), style.DefaultTheme())
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestBuild_description(t *testing.T) {
	t.Parallel()

	got, ok := Build(&Card{To: "/described"}, testIndex(), style.DefaultTheme())
	require.True(t, ok)
	assert.Equal(t, "A description", got.Summary)
	assert.Empty(t, got.Date, "undated post")
	assert.Empty(t, got.Tags)
}

func TestBuild_overrides(t *testing.T) {
	t.Parallel()

	theme := style.DefaultTheme()
	theme.DateLayout = "2006-01-02"
	got, ok := Build(&Card{
		To:    "/foo",
		Align: "flex-start",
		Style: style.Style{"width": "100%", "margin": "1em"},
	}, testIndex(), theme)
	require.True(t, ok)

	assert.Equal(t, "flex-start", got.Justify)
	assert.Equal(t, "2020-05-17", got.Date)
	assert.Equal(t, "100%", got.Style["width"], "caller overrides win")
	assert.Equal(t, "1em", got.Style["margin"])
	assert.Equal(t, theme.Card["overflow"], got.Style["overflow"])
	assert.Equal(t, "24rem", theme.Card["width"], "theme is not modified")
}

func TestBuild_locale(t *testing.T) {
	t.Parallel()

	theme := style.DefaultTheme()
	theme.Locale = "not a locale!"
	got, ok := Build(&Card{To: "/foo"}, testIndex(), theme)
	require.True(t, ok)
	assert.Equal(t, []string{"go", "react"}, got.Tags)
}

func TestBuild_noPosts(t *testing.T) {
	t.Parallel()

	view, ok := Build(&Card{To: "/foo"}, nil, style.DefaultTheme())
	assert.False(t, ok)
	assert.Nil(t, view)
}
