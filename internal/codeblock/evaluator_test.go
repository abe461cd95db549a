package codeblock

import (
	"context"
	"html/template"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateEvaluator(t *testing.T) {
	t.Parallel()

	ev := TemplateEvaluator{
		Funcs: template.FuncMap{
			"greet": func(name string) template.HTML {
				return template.HTML("<b>hi " + template.HTMLEscapeString(name) + "</b>")
			},
		},
	}

	tests := []struct {
		desc    string
		src     string
		opts    EvalOptions
		want    template.HTML
		wantErr string
	}{
		{desc: "empty", src: "  \n"},
		{
			desc: "plain markup",
			src:  "<p>Hello</p>",
			want: "<p>Hello</p>",
		},
		{
			desc: "data and builtins",
			src:  `<p>{{ upper .name }} {{ join "," "a" "b" }}</p>`,
			opts: EvalOptions{Data: map[string]string{"name": "gopher"}},
			want: "<p>GOPHER a,b</p>",
		},
		{
			desc: "escaped data",
			src:  `<p>{{ .x }}</p>`,
			opts: EvalOptions{Data: map[string]string{"x": "<i>"}},
			want: "<p>&lt;i&gt;</p>",
		},
		{
			desc: "scope funcs",
			src:  `{{ greet "gopher" }}`,
			want: "<b>hi gopher</b>",
		},
		{
			desc:    "syntax error",
			src:     "<p>{{ .name </p>",
			wantErr: "template: preview",
		},
		{
			desc:    "unknown function",
			src:     `{{ nope }}`,
			wantErr: `function "nope" not defined`,
		},
		{
			desc: "manual",
			src:  `{{ define "render" }}<p>manual</p>{{ end }}`,
			opts: EvalOptions{Manual: true},
			want: "<p>manual</p>",
		},
		{
			desc:    "manual without render",
			src:     `<p>inline</p>`,
			opts:    EvalOptions{Manual: true},
			wantErr: `no "render" template defined`,
		},
		{
			desc: "sanitized",
			src:  `<p onclick="x()">ok</p><script>alert(1)</script>`,
			want: "<p>ok</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			got, err := ev.Evaluate(context.Background(), tt.src, tt.opts)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTemplateEvaluator_canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := new(TemplateEvaluator).Evaluate(ctx, "<p>x</p>", EvalOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTemplateEvaluator_manualSentinel(t *testing.T) {
	t.Parallel()

	_, err := new(TemplateEvaluator).Evaluate(context.Background(), "x", EvalOptions{Manual: true})
	assert.ErrorIs(t, err, ErrNoRenderTemplate)
}

func TestTemplateEvaluator_outputLimit(t *testing.T) {
	t.Parallel()

	ev := TemplateEvaluator{MaxOutput: 100}

	t.Run("within limit", func(t *testing.T) {
		t.Parallel()

		got, err := ev.Evaluate(context.Background(), "{{ range 10 }}x{{ end }}", EvalOptions{})
		require.NoError(t, err)
		assert.Equal(t, template.HTML("xxxxxxxxxx"), got)
	})

	t.Run("over limit", func(t *testing.T) {
		t.Parallel()

		_, err := ev.Evaluate(context.Background(), "{{ range 1000 }}xxxxxxxxxx{{ end }}", EvalOptions{})
		assert.ErrorIs(t, err, ErrOutputTooLarge)
	})
}

func TestTemplateEvaluator_defaultOutputLimit(t *testing.T) {
	t.Parallel()

	_, err := new(TemplateEvaluator).Evaluate(context.Background(),
		"{{ range 3000000 }}xxxxxxxxxx{{ end }}", EvalOptions{})
	assert.ErrorIs(t, err, ErrOutputTooLarge)
}

func TestTemplateEvaluator_deadlineDuringExecution(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Each iteration sleeps so that the deadline passes mid-execution.
	ev := TemplateEvaluator{
		Funcs: template.FuncMap{
			"nap": func() string {
				time.Sleep(time.Millisecond)
				return "z"
			},
		},
		MaxOutput: 1 << 30,
	}

	start := time.Now()
	_, err := ev.Evaluate(ctx, "{{ range 100000 }}{{ nap }}{{ end }}", EvalOptions{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 10*time.Second)
}
