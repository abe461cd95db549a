package mdx

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"braces.dev/errtrace"
	"go.abhg.dev/blogkit/internal/postcard"
	"go.abhg.dev/blogkit/internal/style"
	"golang.org/x/net/html"
)

// _postLinkTag is the lowercased tag name for post summary cards.
const _postLinkTag = "postlink"

// postLink is a single PostLink tag in a document.
// Err is set if the tag's attributes are invalid.
type postLink struct {
	Card *postcard.Card
	Err  error
}

// parsePostLinks parses an HTML block made up of only PostLink tags.
//
//	<PostLink to="/blog/hello/" align="flex-start" style="width: 50%" />
//
// It reports false if the block holds anything else,
// in which case it should be treated as plain HTML.
// Invalid tags are reported individually
// so that they don't affect their neighbors.
func parsePostLinks(raw []byte) ([]postLink, bool, error) {
	var cards []postLink
	z := html.NewTokenizer(bytes.NewReader(raw))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, false, errtrace.Wrap(err)
			}
			return cards, len(cards) > 0, nil

		case html.TextToken:
			if len(bytes.TrimSpace(z.Text())) > 0 {
				return nil, false, nil
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data != _postLinkTag {
				return nil, false, nil
			}
			card, err := postLinkCard(tok.Attr)
			cards = append(cards, postLink{Card: card, Err: err})

		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) != _postLinkTag {
				return nil, false, nil
			}

		default:
			// Comments and doctypes make this plain HTML.
			return nil, false, nil
		}
	}
}

func postLinkCard(attrs []html.Attribute) (*postcard.Card, error) {
	var card postcard.Card
	for _, attr := range attrs {
		switch attr.Key {
		case "to":
			card.To = attr.Val
		case "align":
			card.Align = attr.Val
		case "style":
			s, err := style.ParseDeclarations(attr.Val)
			if err != nil {
				return nil, errtrace.Errorf("PostLink: bad style: %w", err)
			}
			card.Style = s
		}
	}

	if strings.TrimSpace(card.To) == "" {
		return nil, errtrace.Wrap(errors.New("PostLink: missing 'to' attribute"))
	}
	return &card, nil
}
