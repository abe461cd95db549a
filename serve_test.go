package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/blogkit/internal/clipboard"
	"go.abhg.dev/blogkit/internal/codeblock"
	"go.abhg.dev/blogkit/internal/iotest"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "hello"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "hello", "index.html"), []byte("<p>hello</p>"), 0o644))

	srv := Server{
		Log: log.New(iotest.Writer(t), "", 0),
		Dir: dir,
		Evaluator: &codeblock.TemplateEvaluator{
			Funcs: map[string]any{
				"shout": func(s string) string { return strings.ToUpper(s) + "!" },
			},
		},
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postEval(t *testing.T, ts *httptest.Server, body string) (int, evalResponse) {
	t.Helper()

	res, err := http.Post(ts.URL+"/_/eval", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()

	var resp evalResponse
	if res.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(res.Body).Decode(&resp))
	}
	return res.StatusCode, resp
}

func TestServer_eval(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	tests := []struct {
		desc string
		give evalRequest

		wantPreview string
		wantError   string
	}{
		{
			desc:        "inline",
			give:        evalRequest{Source: `<b>{{ shout "hi" }}</b>`},
			wantPreview: "<b>HI!</b>",
		},
		{
			desc: "data",
			give: evalRequest{
				Source: "<i>{{ .name }}</i>",
				Data:   map[string]string{"name": "gopher"},
			},
			wantPreview: "<i>gopher</i>",
		},
		{
			desc: "manual",
			give: evalRequest{
				Source: `{{ define "render" }}ok{{ end }}`,
				Manual: true,
			},
			wantPreview: "ok",
		},
		{
			desc:      "manual without render",
			give:      evalRequest{Source: "<p>hi</p>", Manual: true},
			wantError: `no "render" template defined`,
		},
		{
			desc:      "syntax error",
			give:      evalRequest{Source: "{{ .name "},
			wantError: "template: preview",
		},
		{
			desc:        "sanitized",
			give:        evalRequest{Source: `<p onclick="x()">hi</p><script>alert(1)</script>`},
			wantPreview: "<p>hi</p>",
		},
		{
			desc: "empty",
			give: evalRequest{Source: "   "},
		},
		{
			desc:      "runaway output",
			give:      evalRequest{Source: "{{ range 3000000 }}xxxxxxxxxx{{ end }}"},
			wantError: "preview output too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			body, err := json.Marshal(tt.give)
			require.NoError(t, err)

			status, resp := postEval(t, ts, string(body))
			require.Equal(t, http.StatusOK, status)
			assert.Equal(t, tt.wantPreview, resp.Preview)
			if tt.wantError != "" {
				assert.Contains(t, resp.Error, tt.wantError)
			} else {
				assert.Empty(t, resp.Error)
			}
		})
	}
}

func TestServer_evalBadRequest(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	status, _ := postEval(t, ts, "{not json")
	assert.Equal(t, http.StatusBadRequest, status)

	res, err := http.Post(ts.URL+"/_/eval", "text/plain", strings.NewReader("{}"))
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode)
}

func TestServer_static(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	res, err := http.Get(ts.URL + "/hello/")
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	var body strings.Builder
	_, err = io.Copy(&body, res.Body)
	require.NoError(t, err)
	assert.Equal(t, "<p>hello</p>", body.String())
}

func TestServer_Serve(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := Server{
		Log:       log.New(iotest.Writer(t), "", 0),
		Dir:       t.TempDir(),
		Evaluator: new(codeblock.TemplateEvaluator),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	res, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	cancel()
	assert.NoError(t, <-done, "shuts down cleanly")
}

type brokenClipboard struct{}

func (brokenClipboard) WriteText(context.Context, string) error {
	return errors.New("no display")
}

func TestServer_copy(t *testing.T) {
	t.Parallel()

	postCopy := func(t *testing.T, srv *Server, body string) (int, copyResponse) {
		t.Helper()

		srv.Log = log.New(iotest.Writer(t), "", 0)
		ts := httptest.NewServer(srv.Handler())
		t.Cleanup(ts.Close)

		res, err := http.Post(ts.URL+"/_/copy", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer func() { _ = res.Body.Close() }()

		var resp copyResponse
		if res.StatusCode == http.StatusOK {
			require.NoError(t, json.NewDecoder(res.Body).Decode(&resp))
		}
		return res.StatusCode, resp
	}

	t.Run("copied", func(t *testing.T) {
		t.Parallel()

		var mem clipboard.Memory
		status, resp := postCopy(t, &Server{Clipboard: &mem}, `{"source": "  <p>hi</p>\n"}`)
		require.Equal(t, http.StatusOK, status)
		assert.True(t, resp.Copied)
		assert.Equal(t, clipboard.DefaultTimeout.Milliseconds(), resp.Timeout)
		assert.Empty(t, resp.Error)
		assert.Equal(t, "<p>hi</p>", mem.Text())
	})

	t.Run("clipboard fails", func(t *testing.T) {
		t.Parallel()

		status, resp := postCopy(t, &Server{Clipboard: brokenClipboard{}}, `{"source": "x"}`)
		require.Equal(t, http.StatusOK, status)
		assert.False(t, resp.Copied)
		assert.NotEmpty(t, resp.Error)
	})

	t.Run("no clipboard", func(t *testing.T) {
		t.Parallel()

		status, _ := postCopy(t, &Server{}, `{"source": "x"}`)
		assert.Equal(t, http.StatusNotImplemented, status)
	})

	t.Run("bad request", func(t *testing.T) {
		t.Parallel()

		status, _ := postCopy(t, &Server{Clipboard: new(clipboard.Memory)}, "{nope")
		assert.Equal(t, http.StatusBadRequest, status)
	})
}
