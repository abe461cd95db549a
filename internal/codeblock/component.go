package codeblock

import (
	"context"
	"io"
	"log"

	"go.abhg.dev/blogkit/internal/linerange"
)

// Config configures how code blocks are built.
type Config struct {
	// LiveLanguage is the one language that enables live mode.
	// Defaults to DefaultLiveLanguage.
	LiveLanguage string

	// Evaluator evaluates sources for previews.
	// Defaults to a TemplateEvaluator with no extra functions.
	Evaluator Evaluator

	// Log receives absorbed failures.
	Log *log.Logger
}

// Component is a code block instance:
// its inputs, the variant it's displayed as, and its state.
type Component struct {
	Block   Block
	Variant Variant
	State   *State

	// Lines selected for highlighting.
	Lines linerange.Set

	evaluator Evaluator
	logger    *log.Logger
}

// New builds a code block instance from its inputs.
// If the selected variant shows a preview,
// the initial source is evaluated right away.
func New(ctx context.Context, b Block, cfg Config) *Component {
	logger := cfg.Log
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	ev := cfg.Evaluator
	if ev == nil {
		ev = new(TemplateEvaluator)
	}

	state := NewState(b.Source)
	state.Log = logger

	v := Select(&b, cfg.LiveLanguage)
	if _, ok := v.(*Collapsible); ok && b.Open {
		state.Toggle()
	}

	c := &Component{
		Block:     b,
		Variant:   v,
		State:     state,
		Lines:     linerange.Parse(b.Line),
		evaluator: ev,
		logger:    logger,
	}
	c.evaluate(ctx)
	return c
}

// Language returns the language identifier of the block.
func (c *Component) Language() string {
	return c.Block.Language()
}

// Edit replaces the source of the block.
// Blocks that show a preview are re-evaluated immediately.
func (c *Component) Edit(ctx context.Context, src string) {
	c.State.Edit(src)
	c.evaluate(ctx)
}

func (c *Component) evaluate(ctx context.Context) {
	if !c.Variant.Evaluates() {
		return
	}

	c.State.Evaluate(ctx, c.evaluator, EvalOptions{
		Manual: c.Block.Manual,
		Data:   c.Block.Options,
	})
	if err := c.State.Err(); err != nil {
		c.logger.Printf("evaluate %v block: %v", VariantName(c.Variant), err)
	}
}
