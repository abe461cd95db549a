package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"braces.dev/errtrace"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.abhg.dev/blogkit/internal/clipboard"
	"go.abhg.dev/blogkit/internal/codeblock"
	"go.abhg.dev/blogkit/internal/html"
)

const (
	// Largest request body accepted for evaluation or copying.
	_maxEvalRequest = 1 << 20

	_evalTimeout     = 5 * time.Second
	_shutdownTimeout = 5 * time.Second
)

// Server serves a generated site
// and evaluates edits to live code blocks.
type Server struct {
	Log *log.Logger

	// Dir is the root directory of the site.
	Dir string

	// Evaluator evaluates edited sources.
	Evaluator codeblock.Evaluator

	// Clipboard receives code copied from pages
	// that can't reach the browser's clipboard.
	// Copying is refused if this is nil.
	Clipboard clipboard.Clipboard
}

// Handler builds the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  s.Log,
		NoColor: true,
	}))

	r.With(middleware.AllowContentType("application/json")).
		Post(html.DefaultEvalPath, s.eval)
	r.With(middleware.AllowContentType("application/json")).
		Post(html.DefaultCopyPath, s.copy)
	r.Handle("/*", http.FileServer(http.Dir(s.Dir)))
	return r
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(s.Serve(ctx, ln))
}

// Serve serves on the given listener until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          s.Log,
	}

	s.Log.Printf("Serving %v on http://%v", s.Dir, ln.Addr())
	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return errtrace.Wrap(err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), _shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errtrace.Wrap(err)
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return errtrace.Wrap(err)
	}
	return nil
}

// evalRequest is the body of a request to evaluate an edited source.
type evalRequest struct {
	Source string            `json:"source"`
	Manual bool              `json:"manual"`
	Data   map[string]string `json:"data,omitempty"`
}

// evalResponse holds either the preview or the evaluation error.
type evalResponse struct {
	Preview string `json:"preview,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) eval(w http.ResponseWriter, r *http.Request) {
	var req evalRequest
	if !s.decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), _evalTimeout)
	defer cancel()

	// Evaluation failures are part of the response.
	// The page shows them next to the editor.
	var resp evalResponse
	state := codeblock.NewState(req.Source)
	state.Log = s.Log
	state.Evaluate(ctx, s.Evaluator, codeblock.EvalOptions{
		Manual: req.Manual,
		Data:   req.Data,
	})
	if err := state.Err(); err != nil {
		resp.Error = err.Error()
	} else {
		resp.Preview = string(state.Preview())
	}

	s.respond(w, resp)
}

// copyRequest is the body of a request to copy a code block's source.
type copyRequest struct {
	Source string `json:"source"`
}

// copyResponse reports whether the source was copied,
// and for how long the copy should be acknowledged.
type copyResponse struct {
	Copied  bool   `json:"copied"`
	Timeout int64  `json:"timeout,omitempty"` // milliseconds
	Error   string `json:"error,omitempty"`
}

func (s *Server) copy(w http.ResponseWriter, r *http.Request) {
	if s.Clipboard == nil {
		http.Error(w, "copying is not supported", http.StatusNotImplemented)
		return
	}

	var req copyRequest
	if !s.decode(w, r, &req) {
		return
	}

	// Failures are logged by the state.
	state := codeblock.NewState(req.Source)
	state.Log = s.Log
	state.Copy(r.Context(), s.Clipboard)

	resp := copyResponse{Copied: state.HasCopied()}
	if resp.Copied {
		resp.Timeout = clipboard.DefaultTimeout.Milliseconds()
	} else {
		resp.Error = "copy failed"
	}
	s.respond(w, resp)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, _maxEvalRequest))
	if err := dec.Decode(v); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Log.Printf("write response: %v", err)
	}
}
