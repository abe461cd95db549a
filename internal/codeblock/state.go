package codeblock

import (
	"context"
	"html/template"
	"io"
	"log"
	"strings"

	"go.abhg.dev/blogkit/internal/clipboard"
)

// State is the mutable state of a single rendered code block.
//
// A State is owned by one code block instance
// and is not safe for concurrent use.
type State struct {
	// Log receives failures that are absorbed
	// instead of being reported to the caller.
	Log *log.Logger

	source  string
	open    bool
	copied  clipboard.Status
	preview template.HTML
	err     error
}

// NewState builds the state for a code block
// with the given initial source.
// The disclosure starts closed.
func NewState(source string) *State {
	return &State{source: strings.TrimSpace(source)}
}

func (s *State) log() *log.Logger {
	if s.Log != nil {
		return s.Log
	}
	return log.New(io.Discard, "", 0)
}

// Source returns the current source, trimmed of surrounding whitespace.
func (s *State) Source() string { return s.source }

// Edit replaces the source with the trimmed form of src.
func (s *State) Edit(src string) {
	s.source = strings.TrimSpace(src)
}

// Open reports whether the disclosure is open.
func (s *State) Open() bool { return s.open }

// Toggle opens a closed disclosure, or closes an open one.
func (s *State) Toggle() { s.open = !s.open }

// Copy writes the current source to the clipboard.
//
// Failures are logged and otherwise ignored.
// Use HasCopied to find out whether the copy went through.
func (s *State) Copy(ctx context.Context, cb clipboard.Clipboard) {
	if err := s.copied.Copy(ctx, cb, s.source); err != nil {
		s.log().Printf("copy to clipboard: %v", err)
	}
}

// HasCopied reports whether the source was copied recently enough
// to still acknowledge it.
func (s *State) HasCopied() bool { return s.copied.HasCopied() }

// Evaluate evaluates the current source.
//
// On success, the output replaces the preview and clears the error.
// On failure, the error is recorded and the last good preview is kept.
// Evaluation never panics.
func (s *State) Evaluate(ctx context.Context, ev Evaluator, opts EvalOptions) {
	out, err := evaluate(ctx, ev, s.source, opts)
	if err != nil {
		s.err = err
		return
	}
	s.preview = out
	s.err = nil
}

// Preview returns the output of the last successful evaluation.
func (s *State) Preview() template.HTML { return s.preview }

// Err returns the error from the last evaluation, if it failed.
func (s *State) Err() error { return s.err }
