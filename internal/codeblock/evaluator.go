package codeblock

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"braces.dev/errtrace"
	"github.com/microcosm-cc/bluemonday"
)

// ManualTemplate is the template that manual (no-inline) sources
// must define for [TemplateEvaluator].
const ManualTemplate = "render"

// ErrNoRenderTemplate is reported when a manual source
// doesn't define a render template.
var ErrNoRenderTemplate = fmt.Errorf("no %q template defined", ManualTemplate)

// DefaultMaxOutput is the default limit on the size
// of a single preview, in bytes.
const DefaultMaxOutput = 1 << 20

// ErrOutputTooLarge is reported when evaluation produces more output
// than the evaluator allows.
var ErrOutputTooLarge = errors.New("preview output too large")

// EvalOptions control a single evaluation.
type EvalOptions struct {
	// Manual evaluates the source in no-inline mode.
	Manual bool

	// Data is made available to the evaluated source.
	Data map[string]string
}

// Evaluator evaluates code block sources into previews.
type Evaluator interface {
	Evaluate(ctx context.Context, src string, opts EvalOptions) (template.HTML, error)
}

// TemplateEvaluator evaluates sources as Go HTML templates.
//
// In inline mode, the source is itself the template.
// In manual mode, the source must define a template named "render",
// which is executed instead.
// Template data is [EvalOptions.Data].
//
// Output is sanitized before it's returned,
// since template text is emitted verbatim.
type TemplateEvaluator struct {
	// Funcs are made available to evaluated templates
	// in addition to the built-in functions.
	Funcs template.FuncMap

	// Policy sanitizes output.
	// Defaults to [PreviewPolicy].
	Policy *bluemonday.Policy

	// MaxOutput limits the size of the unsanitized output in bytes.
	// Defaults to DefaultMaxOutput.
	MaxOutput int
}

var _ Evaluator = (*TemplateEvaluator)(nil)

var _builtinFuncs = template.FuncMap{
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"join":  func(sep string, s ...string) string { return strings.Join(s, sep) },
}

// Evaluate parses and executes src.
// Empty sources evaluate to an empty preview.
func (e *TemplateEvaluator) Evaluate(ctx context.Context, src string, opts EvalOptions) (template.HTML, error) {
	if err := ctx.Err(); err != nil {
		return "", errtrace.Wrap(err)
	}
	if strings.TrimSpace(src) == "" {
		return "", nil
	}

	tmpl, err := template.New("preview").
		Funcs(_builtinFuncs).
		Funcs(e.Funcs).
		Parse(src)
	if err != nil {
		return "", errtrace.Wrap(err)
	}

	name := tmpl.Name()
	if opts.Manual {
		if tmpl.Lookup(ManualTemplate) == nil {
			return "", errtrace.Wrap(ErrNoRenderTemplate)
		}
		name = ManualTemplate
	}

	// Templates can't be interrupted,
	// so execution stops at the next write after the context is done.
	maxOutput := e.MaxOutput
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}
	buff := boundedBuffer{ctx: ctx, limit: maxOutput}
	if err := tmpl.ExecuteTemplate(&buff, name, opts.Data); err != nil {
		// The template package wraps writer errors.
		if buff.err != nil {
			return "", errtrace.Wrap(buff.err)
		}
		return "", errtrace.Wrap(err)
	}

	policy := e.Policy
	if policy == nil {
		policy = PreviewPolicy()
	}
	return template.HTML(policy.SanitizeBytes(buff.Bytes())), nil
}

// boundedBuffer is a bytes.Buffer that refuses writes
// once its context is done or it holds limit bytes.
type boundedBuffer struct {
	bytes.Buffer

	ctx   context.Context
	limit int
	err   error // first failure
}

func (b *boundedBuffer) Write(p []byte) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	if err := b.ctx.Err(); err != nil {
		b.err = err
		return 0, err
	}
	if b.Len()+len(p) > b.limit {
		b.err = fmt.Errorf("%w: more than %d bytes", ErrOutputTooLarge, b.limit)
		return 0, b.err
	}
	return b.Buffer.Write(p)
}

// PreviewPolicy returns the default sanitization policy for previews.
// It's bluemonday's user generated content policy,
// plus inline styles and responsive images.
func PreviewPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("style").Globally()
	p.AllowAttrs("srcset", "sizes", "loading").OnElements("img")
	return p
}

// evaluate runs an evaluator, turning panics into errors.
func evaluate(ctx context.Context, ev Evaluator, src string, opts EvalOptions) (out template.HTML, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errtrace.Wrap(fmt.Errorf("evaluator panicked: %v", r))
		}
	}()

	if ev == nil {
		return "", errtrace.Wrap(errors.New("no evaluator configured"))
	}
	return ev.Evaluate(ctx, src, opts)
}
