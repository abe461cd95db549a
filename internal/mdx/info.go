package mdx

import (
	"strconv"
	"strings"
	"unicode"

	"go.abhg.dev/blogkit/internal/codeblock"
)

// parseInfo builds a code block from the info string of a fenced block:
//
//	<lang> [live] [manual] [render] [open] [title="..."] [collapse="..."] [{ranges}]
//
// Unknown key=value pairs become evaluator options.
// Unknown bare words are ignored.
func parseInfo(info string) codeblock.Block {
	var b codeblock.Block
	for i, field := range splitInfo(info) {
		key, value, hasValue := strings.Cut(field, "=")
		switch {
		case strings.HasPrefix(field, "{"):
			b.Line = field
		case hasValue:
			value = unquote(value)
			switch key {
			case "title":
				b.Title = value
			case "collapse":
				b.Collapse = value
			default:
				if b.Options == nil {
					b.Options = make(map[string]string)
				}
				b.Options[key] = value
			}
		case field == "live":
			b.Live = true
		case field == "manual", field == "noInline":
			b.Manual = true
		case field == "render":
			b.Render = true
		case field == "open":
			b.Open = true
		case i == 0:
			b.Class = codeblock.ClassOf(field)
		}
	}
	return b
}

// splitInfo splits an info string on spaces,
// except inside double quotes and braces.
func splitInfo(info string) []string {
	var (
		fields  []string
		field   strings.Builder
		quoted  bool
		escaped bool
		braces  int
	)
	flush := func() {
		if field.Len() > 0 {
			fields = append(fields, field.String())
			field.Reset()
		}
	}

	for _, r := range info {
		switch {
		case escaped:
			escaped = false
		case quoted && r == '\\':
			escaped = true
		case r == '"':
			quoted = !quoted
		case quoted:
			// Anything goes inside quotes.
		case r == '{':
			braces++
		case r == '}' && braces > 0:
			braces--
		case braces == 0 && unicode.IsSpace(r):
			flush()
			continue
		}
		field.WriteRune(r)
	}
	flush()
	return fields
}

func unquote(s string) string {
	if len(s) < 2 || s[0] != '"' {
		return s
	}
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return strings.Trim(s, `"`)
}
