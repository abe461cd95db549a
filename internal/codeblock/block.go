package codeblock

import "strings"

// _languagePrefix prefixes language identifiers in class names.
const _languagePrefix = "language-"

// DefaultLiveLanguage is the only language that enables live mode
// unless configured otherwise.
const DefaultLiveLanguage = "go-html-template"

// Block holds the inputs for a single code block.
type Block struct {
	// Source is the code inside the block.
	Source string

	// Class is a class name in the form "language-<id>".
	Class string

	// Live requests an editable block that is evaluated on every edit.
	// This only takes effect for the live language.
	Live bool

	// Manual requests no-inline evaluation:
	// the source defines a "render" template instead of being one.
	Manual bool

	// Render shows the evaluated preview under a static block.
	Render bool

	// Collapse, if set, hides the block behind a disclosure
	// with this label.
	Collapse string

	// Open shows the disclosure expanded on first render.
	Open bool

	// Title is shown in a bar above the block.
	Title string

	// Line is the highlight annotation, e.g. "{1,3-5}".
	Line string

	// Options are passed through to the evaluator as template data.
	Options map[string]string
}

// Language returns the language identifier of this block.
func (b *Block) Language() string {
	return LanguageOf(b.Class)
}

// LanguageOf extracts the language identifier from a class name
// like "language-go".
// If the class doesn't have the prefix, it's used as-is.
func LanguageOf(class string) string {
	return strings.TrimPrefix(strings.TrimSpace(class), _languagePrefix)
}

// ClassOf builds the class name for a language identifier.
func ClassOf(language string) string {
	if language == "" {
		return ""
	}
	return _languagePrefix + language
}
