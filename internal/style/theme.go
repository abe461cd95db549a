package style

import "maps"

// MonoFont is the font stack used for all code.
const MonoFont = "Consolas,Monaco,Andale Mono,Ubuntu Mono,monospace"

// Theme holds the style constants used by rendered components.
//
// A theme is built once at startup and then shared by reference.
// It must not be modified after it's been handed to a renderer.
type Theme struct {
	// Code is the container of a static code listing.
	Code Style

	// Editor is the editable surface of a live code block.
	Editor Style

	// Error is the region that reports live evaluation failures.
	Error Style

	// Preview is the region holding live evaluation output.
	Preview Style

	// Title is the bar above a code block with a title.
	Title Style

	// Card is the container of a post summary card.
	Card Style

	// CopiedText is shown on the copy button after a successful copy.
	CopiedText string

	// EditableNotice labels live code blocks.
	EditableNotice string

	// DateLayout formats post dates. See time.Layout.
	DateLayout string

	// Locale is a BCP 47 language tag used to order tags.
	// An empty value uses the root collation order.
	Locale string
}

// DefaultTheme returns a new copy of the default theme.
func DefaultTheme() *Theme {
	return &Theme{
		Code: Style{
			"background-color": "#2D2D2D",
			"font-family":      MonoFont,
			"font-size":        "14px",
			"overflow":         "auto",
			"padding":          "5px",
		},
		Editor: Style{
			"background-color": "#2D2D2D",
			"font-family":      MonoFont,
			"font-size":        "14px",
			"overflow":         "auto",
			"white-space":      "nowrap",
			"padding":          "20px",
		},
		Error: Style{
			"background-color": "red",
			"color":            "white",
			"font-family":      MonoFont,
			"overflow-x":       "auto",
			"padding":          "1em",
		},
		Preview: Style{
			"border":        "1px solid",
			"border-color":  "inherit",
			"border-radius": "0.375rem",
			"margin-top":    "1.25rem",
			"padding":       "0.75rem",
		},
		Title: Style{
			"background-color": "#444444",
			"color":            "white",
			"font-family":      MonoFont,
			"font-size":        "0.875rem",
			"padding":          "0.25rem 1rem",
		},
		Card: Style{
			"border-radius": "0.5rem",
			"border-width":  "1px",
			"overflow":      "hidden",
			"padding":       "0.5rem",
			"width":         "24rem",
		},
		CopiedText:     "copied(^∀^)ᕗ",
		EditableNotice: "Editable Example",
		DateLayout:     "2006年01月02日",
	}
}

// Clone returns a deep copy of the theme.
// Use it to derive a customized theme before startup completes.
func (t *Theme) Clone() *Theme {
	out := *t
	for _, s := range []*Style{
		&out.Code, &out.Editor, &out.Error,
		&out.Preview, &out.Title, &out.Card,
	} {
		*s = maps.Clone(*s)
	}
	return &out
}
