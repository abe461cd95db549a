package highlight

import chroma "github.com/alecthomas/chroma/v2"

// Code is a code block comprised of multiple text nodes.
type Code struct {
	Spans []Span
}

type (
	// Span is a part of a code block.
	Span interface{ span() }

	// TextSpan is a span rendered as-is.
	TextSpan struct {
		Text []byte
	}

	// TokenSpan is a span of code
	// that is highlighted with chroma.
	TokenSpan struct {
		Tokens []chroma.Token
	}

	// LineSpan is a single line of a code block.
	//
	// It must not contain a trailing newline:
	// line breaks are implied by the LineSpan boundaries.
	LineSpan struct {
		Spans []Span

		// Highlighted lines are rendered with visual emphasis.
		Highlighted bool
	}

	// ErrorSpan is a special span
	// that represents a failure operation.
	//
	// This renders in HTML in a visible way
	// to avoid failing silently.
	ErrorSpan struct {
		Msg string
		Err error
	}
)

var (
	_ Span = (*TextSpan)(nil)
	_ Span = (*TokenSpan)(nil)
	_ Span = (*LineSpan)(nil)
	_ Span = (*ErrorSpan)(nil)
)

func (*TextSpan) span()  {}
func (*TokenSpan) span() {}
func (*LineSpan) span()  {}
func (*ErrorSpan) span() {}
