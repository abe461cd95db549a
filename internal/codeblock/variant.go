package codeblock

import "fmt"

// Variant is the display mode of a code block.
//
// It's one of [*Static], [*Live], or [*Collapsible].
type Variant interface {
	variant()

	// Evaluates reports whether this variant shows
	// evaluation output.
	Evaluates() bool
}

type (
	// Static renders highlighted source code.
	Static struct {
		// Preview shows the evaluated source under the code.
		Preview bool
	}

	// Live renders an editable surface with a live preview.
	Live struct{}

	// Collapsible hides another variant behind a disclosure label.
	Collapsible struct {
		Label string
		Inner Variant // *Static or *Live
	}
)

var (
	_ Variant = (*Static)(nil)
	_ Variant = (*Live)(nil)
	_ Variant = (*Collapsible)(nil)
)

func (*Static) variant()      {}
func (*Live) variant()        {}
func (*Collapsible) variant() {}

// Evaluates reports whether the preview is shown.
func (v *Static) Evaluates() bool { return v.Preview }

// Evaluates always reports true for live blocks.
func (*Live) Evaluates() bool { return true }

// Evaluates reports whether the wrapped variant evaluates.
func (v *Collapsible) Evaluates() bool { return v.Inner.Evaluates() }

// Select picks the variant for a block.
//
// Live mode is used if the block asks for it
// and its language is liveLanguage.
// Otherwise, the block is static.
// Either is wrapped in a disclosure if the block has a collapse label.
func Select(b *Block, liveLanguage string) Variant {
	if liveLanguage == "" {
		liveLanguage = DefaultLiveLanguage
	}

	var v Variant = &Static{Preview: b.Render}
	if b.Live && b.Language() == liveLanguage {
		v = &Live{}
	}

	if b.Collapse != "" {
		v = &Collapsible{Label: b.Collapse, Inner: v}
	}
	return v
}

// Unwrap returns the variant under any disclosure.
func Unwrap(v Variant) Variant {
	for {
		c, ok := v.(*Collapsible)
		if !ok {
			return v
		}
		v = c.Inner
	}
}

// VariantName returns a short name for the variant,
// e.g. for logging.
func VariantName(v Variant) string {
	switch v := v.(type) {
	case *Static:
		return "static"
	case *Live:
		return "live"
	case *Collapsible:
		return "collapsible " + VariantName(v.Inner)
	default:
		panic(fmt.Sprintf("unrecognized variant %T", v))
	}
}
