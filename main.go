package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	ttemplate "text/template"

	"braces.dev/errtrace"
	"go.abhg.dev/blogkit/internal/clipboard"
	"go.abhg.dev/blogkit/internal/codeblock"
	"go.abhg.dev/blogkit/internal/content"
	"go.abhg.dev/blogkit/internal/errdefer"
	"go.abhg.dev/blogkit/internal/html"
	"go.abhg.dev/blogkit/internal/mdx"
	"go.abhg.dev/blogkit/internal/style"
)

func main() {
	cmd := mainCmd{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(cmd.Run(os.Args[1:]))
}

// mainCmd is the actual entry point to the program.
type mainCmd struct {
	Stdout io.Writer // == os.Stdout
	Stderr io.Writer // == os.Stderr

	log *log.Logger
}

func (cmd *mainCmd) Run(args []string) (exitCode int) {
	cmd.log = log.New(cmd.Stderr, "", 0)

	opts, err := (&cliParser{
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	}).Parse(args)
	if err != nil {
		// '$cmd -h' should exit with zero.
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		// No need to print anything.
		// Parse prints messages.
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.run(ctx, opts); err != nil {
		cmd.log.Printf("blogkit: %v", err)
		return 1
	}
	return 0
}

func (cmd *mainCmd) run(ctx context.Context, opts *params) (err error) {
	debugLog, closeDebug, err := opts.Debug.Logger(cmd.Stderr, "")
	if err != nil {
		return errtrace.Errorf("open debug log: %w", err)
	}
	defer errdefer.Func(&err, closeDebug)

	var frontmatter *ttemplate.Template
	if len(opts.Frontmatter) > 0 {
		frontmatter, err = ttemplate.New("frontmatter").Parse(opts.Frontmatter)
		if err != nil {
			return errtrace.Errorf("bad frontmatter template: %w", err)
		}
	}

	var posts *content.Index
	if len(opts.Index) > 0 {
		posts, err = content.LoadIndexFile(opts.Index)
		if err != nil {
			return errtrace.Errorf("load post index: %w", err)
		}
		debugLog.Printf("Loaded %d posts from %v", posts.Len(), opts.Index)
	}

	theme := style.DefaultTheme()
	if len(opts.DateFormat) > 0 {
		theme.DateLayout = opts.DateFormat
	}
	theme.Card = style.Merge(theme.Card, style.FromDeclarations(opts.CardStyle))

	renderer := html.Renderer{
		Embedded:    opts.Embed,
		FrontMatter: frontmatter,
		Highlighter: opts.Highlight.Highlighter(),
		Theme:       theme,
	}
	if len(opts.Serve) > 0 {
		// Edits can only be evaluated when we're serving.
		renderer.EvalPath = html.DefaultEvalPath
		renderer.CopyPath = html.DefaultCopyPath
	}

	evaluator := &codeblock.TemplateEvaluator{
		Funcs: renderer.WidgetFuncs(posts),
	}

	gen := Generator{
		Log: debugLog,
		Converter: &mdx.Converter{
			HTML:  &renderer,
			Posts: posts,
			CodeBlocks: codeblock.Config{
				LiveLanguage: opts.LiveLang,
				Evaluator:    evaluator,
				Log:          cmd.log,
			},
			AllowHTML: opts.RawHTML,
			Log:       cmd.log,
		},
		Renderer: &renderer,
		OutDir:   opts.OutputDir,
		Basename: opts.Basename,
	}

	pages, err := gen.Generate(ctx, opts.Files)
	if err != nil {
		return errtrace.Wrap(err)
	}
	debugLog.Printf("Rendered %d pages into %v", len(pages), opts.OutputDir)

	if len(opts.Serve) == 0 {
		return nil
	}

	server := Server{
		Log:       cmd.log,
		Dir:       opts.OutputDir,
		Evaluator: evaluator,
		Clipboard: &clipboard.Command{Log: debugLog},
	}
	return errtrace.Wrap(server.ListenAndServe(ctx, opts.Serve))
}
