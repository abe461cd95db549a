package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/peterbourgon/ff/v3"
	"go.abhg.dev/blogkit/internal/flagvalue"
	"go.abhg.dev/blogkit/internal/highlight"
	"go.abhg.dev/blogkit/internal/style"
)

var (
	errHelp             = flag.ErrHelp
	errInvalidArguments = errors.New("invalid arguments")
)

// _envPrefix is the prefix for environment variables
// that set flags. -live-lang is BLOGKIT_LIVE_LANG.
const _envPrefix = "BLOGKIT"

// params holds all arguments for blogkit.
type params struct {
	version bool
	help    Help
	config  string

	Debug flagvalue.FileSwitch

	Basename  string
	OutputDir string
	Index     string

	Embed       bool
	RawHTML     bool
	Frontmatter string
	Highlight   highlightParams
	LiveLang    string
	DateFormat  string
	CardStyle   []style.Declaration

	Serve string

	Files []string
}

// cliParser parses the command line arguments for blogkit.
type cliParser struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (cmd *cliParser) newFlagSet() (*params, *flag.FlagSet) {
	flag := flag.NewFlagSet("blogkit", flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	flag.Usage = func() {
		_ = DefaultHelp.Write(cmd.Stderr)
	}

	var p params

	// Filesystem:
	flag.StringVar(&p.OutputDir, "out", "_site", "")
	flag.StringVar(&p.Basename, "basename", "", "")
	flag.StringVar(&p.Index, "index", "", "")

	// HTML output:
	flag.BoolVar(&p.Embed, "embed", false, "")
	flag.BoolVar(&p.RawHTML, "raw-html", false, "")
	flag.StringVar(&p.Frontmatter, "frontmatter", "", "")
	flag.Var(&p.Highlight, "highlight", "")

	// Components:
	flag.StringVar(&p.LiveLang, "live-lang", "", "")
	flag.StringVar(&p.DateFormat, "date-format", "", "")
	flag.Var(flagvalue.ListOf(&p.CardStyle), "card-style", "")

	// Server:
	flag.StringVar(&p.Serve, "serve", "", "")

	// Program-level:
	flag.StringVar(&p.config, "config", "", "")
	flag.Var(&p.Debug, "debug", "")
	flag.BoolVar(&p.version, "version", false, "")
	flag.Var(&p.help, "help", "")
	flag.Var(&p.help, "h", "")

	return &p, flag
}

func (cmd *cliParser) Parse(args []string) (*params, error) {
	p, flag := cmd.newFlagSet()
	err := ff.Parse(flag, args,
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithEnvVars(),
		ff.WithEnvVarPrefix(_envPrefix),
	)
	if err != nil {
		if !errors.Is(err, errHelp) {
			// Config file and environment errors aren't
			// reported by the flag set.
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, err
	}
	args = flag.Args()

	if p.version {
		fmt.Fprintln(cmd.Stdout, "blogkit", _version)
		return nil, errHelp
	}

	if p.help == DefaultHelp && len(args) > 0 {
		// The user might have done "-h foo"
		// instead of "-h=foo".
		// If the argument is a known help topic,
		// take it.
		if h := Help(args[0]); h.Known() {
			p.help = h
		}
	}

	switch p.help {
	case NoHelp:
		// proceed as usual
	default:
		if err := p.help.Write(cmd.Stderr); err != nil {
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, errHelp
	}

	p.Files = args
	if len(p.Files) == 0 {
		fmt.Fprintln(cmd.Stderr, "Please provide at least one markdown file.")
		_ = UsageHelp.Write(cmd.Stderr)
		return nil, errInvalidArguments
	}

	return p, nil
}

// highlightParams is the value of the -highlight flag:
//
//	[MODE:][STYLE]
//
// MODE is "classes" or "inline".
type highlightParams struct {
	UseClasses bool
	Style      string
}

var _ flag.Getter = (*highlightParams)(nil)

func (hp *highlightParams) Get() any { return *hp }

func (hp *highlightParams) String() string {
	var sb strings.Builder
	if hp.UseClasses {
		sb.WriteString("classes:")
	}
	sb.WriteString(hp.Style)
	return sb.String()
}

func (hp *highlightParams) Set(s string) error {
	mode, name, ok := strings.Cut(s, ":")
	if !ok {
		mode, name = "", s
	}

	switch mode {
	case "":
	case "classes":
		hp.UseClasses = true
	case "inline":
		hp.UseClasses = false
	default:
		return fmt.Errorf("unknown highlight mode %q: expected 'classes' or 'inline'", mode)
	}

	if name != "" {
		if _, ok := highlight.StyleNamed(name); !ok {
			return fmt.Errorf("unknown highlight style %q", name)
		}
	}
	hp.Style = name
	return nil
}

// Highlighter builds the highlighter for these parameters.
func (hp *highlightParams) Highlighter() *highlight.Highlighter {
	h := highlight.Highlighter{UseClasses: hp.UseClasses}
	if hp.Style != "" {
		h.Style, _ = highlight.StyleNamed(hp.Style)
	}
	return &h
}
