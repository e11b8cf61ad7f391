package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	deckcmd "github.com/goliatone/go-deck/internal/commands/deck"
	"github.com/goliatone/go-deck/internal/deck"
	deckhttp "github.com/goliatone/go-deck/internal/http"
	"github.com/goliatone/go-deck/internal/slides"
	"github.com/goliatone/go-deck/internal/tokens"
)

type stubGenerate struct {
	calls  int
	last   deckcmd.GenerateDeckCommand
	result deck.Result
	err    error
}

func (s *stubGenerate) Execute(_ context.Context, msg deckcmd.GenerateDeckCommand) error {
	s.calls++
	s.last = msg
	if s.err != nil {
		return s.err
	}
	if msg.Result != nil {
		*msg.Result = s.result
	}
	return nil
}

type stubInvalidate struct {
	calls int
	keys  []string
}

func (s *stubInvalidate) Execute(_ context.Context, msg deckcmd.InvalidateTokensCommand) error {
	s.calls++
	s.keys = msg.FileKeys
	return nil
}

type stubPreview struct {
	err error
}

func (s stubPreview) Preview(_ context.Context, markdown string) (*deck.PreviewResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	if strings.TrimSpace(markdown) == "" {
		return nil, deck.ErrEmptyMarkdown
	}
	parsed := slides.Parse(markdown)
	return &deck.PreviewResult{
		Slides: parsed,
		Stats:  slides.Summarize(parsed),
		Tokens: tokens.Defaults(),
	}, nil
}

func postForm(t *testing.T, handler nethttp.Handler, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestGenerateReturnsPDFAttachment(t *testing.T) {
	gen := &stubGenerate{result: deck.Result{
		Format:   deck.FormatPDF,
		Filename: "roadmap.pdf",
		PDF:      []byte("%PDF-1.7"),
	}}
	handler := deckhttp.NewAPI(gen, stubPreview{}).Handler()

	rec := postForm(t, handler, "/generate", url.Values{"markdown": {"# Roadmap"}, "file_key": {"abc"}})
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != "attachment; filename=roadmap.pdf" {
		t.Fatalf("unexpected disposition %q", got)
	}
	if rec.Body.String() != "%PDF-1.7" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
	if gen.last.Markdown != "# Roadmap" || gen.last.FileKey != "abc" {
		t.Fatalf("unexpected command %+v", gen.last)
	}
}

func TestGenerateReturnsHTMLFromJSONBody(t *testing.T) {
	gen := &stubGenerate{result: deck.Result{
		Format:   deck.FormatHTML,
		Filename: "deck.html",
		HTML:     []byte("<html></html>"),
	}}
	handler := deckhttp.NewAPI(gen, stubPreview{}).Handler()

	req := httptest.NewRequest(nethttp.MethodPost, "/generate", strings.NewReader(`{"markdown":"# Hi","format":"html"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Fatalf("unexpected content type %q", got)
	}
	if gen.last.Format != "html" {
		t.Fatalf("expected html format, got %q", gen.last.Format)
	}
}

func TestGenerateErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "no slides", err: deck.ErrNoSlides, status: 400, message: "No slides found in markdown"},
		{name: "unsupported format", err: fmt.Errorf("%w: %q", deck.ErrUnsupportedFormat, "docx"), status: 400, message: "Unsupported output format"},
		{name: "pdf disabled", err: deckcmd.ErrPDFFeatureDisabled, status: 501, message: "PDF output is not available"},
		{name: "validation", err: goerrors.Wrap(errors.New("bad"), goerrors.CategoryValidation, "command validation failed"), status: 400, message: "Invalid request"},
		{name: "render failure hides cause", err: fmt.Errorf("%w: %w", deck.ErrRenderFailed, errors.New("chrome crashed at /tmp/secret")), status: 500, message: "failed to generate presentation"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := deckhttp.NewAPI(&stubGenerate{err: tc.err}, stubPreview{}).Handler()
			rec := postForm(t, handler, "/generate", url.Values{"markdown": {"# Title"}})
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tc.message {
				t.Fatalf("expected message %q, got %q", tc.message, got)
			}
		})
	}
}

func TestGenerateRejectsEmptyMarkdown(t *testing.T) {
	gen := &stubGenerate{}
	handler := deckhttp.NewAPI(gen, stubPreview{}).Handler()

	rec := postForm(t, handler, "/generate", url.Values{"markdown": {"   \n"}})
	if rec.Code != nethttp.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "No markdown content provided" {
		t.Fatalf("unexpected message %q", got)
	}
	if gen.calls != 0 {
		t.Fatalf("expected generator not to be called")
	}
}

func TestGenerateRejectsOversizedBody(t *testing.T) {
	gen := &stubGenerate{}
	handler := deckhttp.NewAPI(gen, stubPreview{}, deckhttp.WithMaxBodyBytes(16)).Handler()

	rec := postForm(t, handler, "/generate", url.Values{"markdown": {strings.Repeat("x", 128)}})
	if rec.Code != nethttp.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
	if gen.calls != 0 {
		t.Fatalf("expected generator not to be called")
	}
}

func TestPreviewReturnsJSON(t *testing.T) {
	handler := deckhttp.NewAPI(&stubGenerate{}, stubPreview{}).Handler()

	rec := postForm(t, handler, "/preview", url.Values{"markdown": {"# One\n# Two\n**5** - Things"}})
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload struct {
		Slides []slides.Slide `json:"slides"`
		Stats  slides.Stats   `json:"stats"`
		Tokens struct {
			Colors map[string]string `json:"colors"`
		} `json:"tokens"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if payload.Stats.Slides != 2 || len(payload.Slides) != 2 {
		t.Fatalf("expected two slides, got %+v", payload.Stats)
	}
	if payload.Stats.Factoids != 1 {
		t.Fatalf("expected one factoid, got %d", payload.Stats.Factoids)
	}
	if payload.Tokens.Colors["background"] == "" {
		t.Fatalf("expected default colors in preview")
	}
}

func TestPreviewEmptyMarkdown(t *testing.T) {
	handler := deckhttp.NewAPI(&stubGenerate{}, stubPreview{}).Handler()
	rec := postForm(t, handler, "/preview", url.Values{})
	if rec.Code != nethttp.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestInvalidateTokens(t *testing.T) {
	inv := &stubInvalidate{}
	handler := deckhttp.NewAPI(&stubGenerate{}, stubPreview{}, deckhttp.WithInvalidateHandler(inv)).Handler()

	rec := postForm(t, handler, "/tokens/invalidate", url.Values{"file_key": {" abc ", "def", ""}})
	if rec.Code != nethttp.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if inv.calls != 1 || len(inv.keys) != 2 || inv.keys[0] != "abc" || inv.keys[1] != "def" {
		t.Fatalf("unexpected invalidation %+v", inv)
	}

	rec = postForm(t, handler, "/tokens/invalidate", url.Values{})
	if rec.Code != nethttp.StatusNoContent {
		t.Fatalf("expected 204 for full invalidation, got %d", rec.Code)
	}
	if len(inv.keys) != 0 {
		t.Fatalf("expected no keys for full invalidation, got %v", inv.keys)
	}
}

func TestInvalidateTokensUnavailable(t *testing.T) {
	handler := deckhttp.NewAPI(&stubGenerate{}, stubPreview{}).Handler()
	rec := postForm(t, handler, "/tokens/invalidate", url.Values{})
	if rec.Code != nethttp.StatusNotImplemented {
		t.Fatalf("expected 501, got %d", rec.Code)
	}
}

func TestIndexHealthAndStatic(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "logo.svg"), []byte("<svg/>"), 0o644); err != nil {
		t.Fatalf("write static file: %v", err)
	}
	server := httptest.NewServer(deckhttp.NewAPI(&stubGenerate{}, stubPreview{}, deckhttp.WithStaticDir(dir)).Handler())
	defer server.Close()

	cases := []struct {
		path     string
		status   int
		contains string
	}{
		{path: "/", status: 200, contains: `name="markdown"`},
		{path: "/healthz", status: 200, contains: `"ok"`},
		{path: "/static/logo.svg", status: 200, contains: "<svg/>"},
		{path: "/static/missing.svg", status: 404},
	}
	for _, tc := range cases {
		resp, err := nethttp.Get(server.URL + tc.path)
		if err != nil {
			t.Fatalf("get %s: %v", tc.path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.path, tc.status, resp.StatusCode)
		}
		if tc.contains != "" && !strings.Contains(string(body), tc.contains) {
			t.Fatalf("%s: expected body to contain %q, got %q", tc.path, tc.contains, body)
		}
	}
}
