package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// PlainStyle is a minimal syntax highlighting style for Chroma.
// It leaves most text as-is, and fades comments ever so slightly.
var PlainStyle = chroma.MustNewStyle("plain", map[chroma.TokenType]string{
	chroma.Comment:       "#666666",
	chroma.PreWrapper:    "bg:#eeeeee",
	chroma.Background:    "bg:#eeeeee",
	chroma.LineHighlight: "bg:#dddddd",
})

// VSDarkStyle is a dark syntax highlighting style
// modeled after Visual Studio's dark theme.
//
// This is the default style for code blocks.
var VSDarkStyle = chroma.MustNewStyle("vsdark", map[chroma.TokenType]string{
	chroma.Background:        "#d4d4d4 bg:#2d2d2d",
	chroma.PreWrapper:        "#d4d4d4 bg:#2d2d2d",
	chroma.LineHighlight:     "bg:#2d3748",
	chroma.Comment:           "italic #6a9955",
	chroma.CommentPreproc:    "#c586c0",
	chroma.Keyword:           "#569cd6",
	chroma.KeywordNamespace:  "#c586c0",
	chroma.KeywordType:       "#4ec9b0",
	chroma.Name:              "#9cdcfe",
	chroma.NameBuiltin:       "#dcdcaa",
	chroma.NameFunction:      "#dcdcaa",
	chroma.NameTag:           "#4ec9b0",
	chroma.NameAttribute:     "#9cdcfe",
	chroma.NameClass:         "#4ec9b0",
	chroma.LiteralString:     "#ce9178",
	chroma.LiteralNumber:     "#b5cea8",
	chroma.Operator:          "#d4d4d4",
	chroma.Punctuation:       "#d4d4d4",
	chroma.GenericDeleted:    "#ce9178",
	chroma.GenericInserted:   "#b5cea8",
	chroma.GenericEmph:       "italic",
	chroma.GenericStrong:     "bold",
	chroma.GenericHeading:    "bold #569cd6",
	chroma.GenericSubheading: "#569cd6",
})

func init() {
	styles.Register(PlainStyle)
	styles.Register(VSDarkStyle)
}

// StyleNamed returns the registered Chroma style with the given name,
// e.g. "vsdark", "plain", or one of Chroma's built-in styles.
// ok is false if no such style is registered.
func StyleNamed(name string) (_ *chroma.Style, ok bool) {
	sty, ok := styles.Registry[name]
	return sty, ok
}
