package highlight

import (
	"bytes"
	"strings"

	chroma "github.com/alecthomas/chroma/v2"
)

// LineSelector reports whether a line,
// identified by its 0-based index,
// should be highlighted.
type LineSelector interface {
	Contains(lineIndex int) bool
}

// Lines tokenizes src with the given lexer,
// and builds a code block with a [LineSpan] for each line.
// Lines picked by sel are marked as highlighted.
// sel may be nil if no lines are highlighted.
//
// If the lexer fails, the code block reports the failure
// with an [ErrorSpan] and falls back to rendering the lines as plain text.
// Empty source code produces an empty code block.
func Lines(lexer Lexer, src []byte, sel LineSelector) *Code {
	if len(src) == 0 {
		return &Code{}
	}

	isHighlighted := func(idx int) bool {
		return sel != nil && sel.Contains(idx)
	}

	tokens, err := lexer.Lex(src)
	if err != nil {
		code := Code{
			Spans: []Span{&ErrorSpan{Msg: "Unable to highlight code", Err: err}},
		}
		for idx, line := range bytes.Split(src, []byte{'\n'}) {
			code.Spans = append(code.Spans, &LineSpan{
				Spans:       []Span{&TextSpan{Text: line}},
				Highlighted: isHighlighted(idx),
			})
		}
		return &code
	}

	lines := trimTrailingEmpty(chroma.SplitTokensIntoLines(tokens))
	spans := make([]Span, len(lines))
	for idx, line := range lines {
		spans[idx] = &LineSpan{
			Spans:       []Span{&TokenSpan{Tokens: trimNewline(line)}},
			Highlighted: isHighlighted(idx),
		}
	}
	return &Code{Spans: spans}
}

// trimNewline drops the trailing line break from a line of tokens.
func trimNewline(line []chroma.Token) []chroma.Token {
	if len(line) == 0 {
		return line
	}

	last := line[len(line)-1]
	last.Value = strings.TrimSuffix(last.Value, "\n")
	last.Value = strings.TrimSuffix(last.Value, "\r")
	if last.Value == "" {
		return line[:len(line)-1]
	}

	out := make([]chroma.Token, len(line))
	copy(out, line)
	out[len(out)-1] = last
	return out
}

// trimTrailingEmpty drops lines at the end that hold no text.
// Chroma lexers append a newline to their input,
// which would otherwise show up as an extra blank line.
func trimTrailingEmpty(lines [][]chroma.Token) [][]chroma.Token {
	for len(lines) > 0 {
		last := lines[len(lines)-1]
		empty := true
		for _, t := range last {
			if t.Value != "" {
				empty = false
				break
			}
		}
		if !empty {
			break
		}
		lines = lines[:len(lines)-1]
	}
	return lines
}
