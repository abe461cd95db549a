package highlight

import (
	"errors"
	"strings"
	"testing"

	chroma "github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineSet map[int]bool

func (s lineSet) Contains(idx int) bool { return s[idx] }

// lineText flattens a LineSpan back into its source text.
func lineText(t *testing.T, span Span) string {
	line, ok := span.(*LineSpan)
	require.True(t, ok, "expected *LineSpan, got %T", span)

	var sb strings.Builder
	for _, s := range line.Spans {
		switch s := s.(type) {
		case *TokenSpan:
			for _, tok := range s.Tokens {
				sb.WriteString(tok.Value)
			}
		case *TextSpan:
			sb.Write(s.Text)
		default:
			t.Fatalf("unexpected span %T", s)
		}
	}
	return sb.String()
}

func TestLines(t *testing.T) {
	t.Parallel()

	src := []byte("const x = 1;\nconst y = 2;")
	code := Lines(LexerFor("jsx"), src, lineSet{1: true})

	require.Len(t, code.Spans, 2)
	assert.Equal(t, "const x = 1;", lineText(t, code.Spans[0]))
	assert.Equal(t, "const y = 2;", lineText(t, code.Spans[1]))
	assert.False(t, code.Spans[0].(*LineSpan).Highlighted)
	assert.True(t, code.Spans[1].(*LineSpan).Highlighted)
}

func TestLines_blankLines(t *testing.T) {
	t.Parallel()

	code := Lines(LexerFor("go"), []byte("a\n\nb"), nil)
	require.Len(t, code.Spans, 3)
	assert.Equal(t, "a", lineText(t, code.Spans[0]))
	assert.Equal(t, "", lineText(t, code.Spans[1]))
	assert.Equal(t, "b", lineText(t, code.Spans[2]))
}

func TestLines_empty(t *testing.T) {
	t.Parallel()

	code := Lines(LexerFor("go"), nil, lineSet{0: true})
	assert.Empty(t, code.Spans)
}

func TestLines_unknownLanguage(t *testing.T) {
	t.Parallel()

	assert.Same(t, PlainLexer, LexerFor("not-a-real-language"))
	assert.Same(t, PlainLexer, LexerFor(""))

	code := Lines(LexerFor("not-a-real-language"), []byte("func main() {}"), nil)
	require.Len(t, code.Spans, 1)

	line := code.Spans[0].(*LineSpan)
	require.Len(t, line.Spans, 1)
	for _, tok := range line.Spans[0].(*TokenSpan).Tokens {
		assert.Equal(t, chroma.Text, tok.Type, "token %q", tok.Value)
	}
}

type failingLexer struct{}

func (failingLexer) Lex([]byte) ([]chroma.Token, error) {
	return nil, errors.New("great sadness")
}

func TestLines_lexError(t *testing.T) {
	t.Parallel()

	code := Lines(failingLexer{}, []byte("a\nb"), lineSet{0: true})
	require.Len(t, code.Spans, 3)

	errSpan, ok := code.Spans[0].(*ErrorSpan)
	require.True(t, ok)
	assert.ErrorContains(t, errSpan.Err, "great sadness")

	assert.Equal(t, "a", lineText(t, code.Spans[1]))
	assert.True(t, code.Spans[1].(*LineSpan).Highlighted)
	assert.Equal(t, "b", lineText(t, code.Spans[2]))
}

func TestStyleNamed(t *testing.T) {
	t.Parallel()

	sty, ok := StyleNamed("vsdark")
	require.True(t, ok)
	assert.Same(t, VSDarkStyle, sty)

	_, ok = StyleNamed("does-not-exist")
	assert.False(t, ok)
}
