package highlight

import (
	"strings"

	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// PlainLexer is a [Lexer] that doesn't group text in any way.
// All source code is reported as plain text.
var PlainLexer Lexer = &chromaLexer{l: lexers.Fallback}

// Lexer analyzes source code and generates a stream of tokens.
type Lexer interface {
	Lex(src []byte) ([]chroma.Token, error)
}

// chromaLexer builds a [Lexer] from a Chroma lexer.
type chromaLexer struct{ l chroma.Lexer }

// Lex lexically analyzes the given source code using Chroma.
func (cl *chromaLexer) Lex(src []byte) ([]chroma.Token, error) {
	return chroma.Tokenise(cl.l, nil, string(src))
}

// LexerFor returns a lexer for the language with the given name or alias,
// e.g. "go", "jsx", or "go-html-template".
//
// Unknown or empty language names get [PlainLexer].
func LexerFor(language string) Lexer {
	language = strings.TrimSpace(language)
	if language == "" {
		return PlainLexer
	}

	l := lexers.Get(language)
	if l == nil {
		return PlainLexer
	}
	return &chromaLexer{l: chroma.Coalesce(l)}
}
