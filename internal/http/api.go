package http

import (
	"context"
	_ "embed"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	command "github.com/goliatone/go-command"

	deckcmd "github.com/goliatone/go-deck/internal/commands/deck"
	"github.com/goliatone/go-deck/internal/deck"
	"github.com/goliatone/go-deck/internal/logging"
	"github.com/goliatone/go-deck/pkg/interfaces"
)

//go:embed assets/index.html
var indexPage []byte

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 5 << 20

// Previewer produces parse-only deck summaries.
type Previewer interface {
	Preview(ctx context.Context, markdown string) (*deck.PreviewResult, error)
}

// API registers the deck endpoints.
type API struct {
	generate     command.Commander[deckcmd.GenerateDeckCommand]
	invalidate   command.Commander[deckcmd.InvalidateTokensCommand]
	preview      Previewer
	staticDir    string
	maxBodyBytes int64
	logger       interfaces.Logger
}

// Option mutates the API configuration.
type Option func(*API)

// WithStaticDir serves files under /static from dir.
func WithStaticDir(dir string) Option {
	return func(api *API) {
		api.staticDir = strings.TrimSpace(dir)
	}
}

// WithMaxBodyBytes limits request bodies. Non-positive values keep the default.
func WithMaxBodyBytes(limit int64) Option {
	return func(api *API) {
		if limit > 0 {
			api.maxBodyBytes = limit
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		api.logger = logging.Or(logger)
	}
}

// WithInvalidateHandler enables POST /tokens/invalidate.
func WithInvalidateHandler(handler command.Commander[deckcmd.InvalidateTokensCommand]) Option {
	return func(api *API) {
		api.invalidate = handler
	}
}

// NewAPI constructs the deck API around the generate command and previewer.
func NewAPI(generate command.Commander[deckcmd.GenerateDeckCommand], preview Previewer, opts ...Option) *API {
	api := &API{
		generate:     generate,
		preview:      preview,
		maxBodyBytes: DefaultMaxBodyBytes,
		logger:       logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// Handler returns a chi router carrying the standard middleware stack and
// every deck route.
func (api *API) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(api.requestLogger)
	r.Use(middleware.Recoverer)
	api.Register(r)
	return r
}

// Register attaches the deck endpoints to the provided router.
func (api *API) Register(r chi.Router) {
	r.Get("/", api.handleIndex)
	r.Get("/healthz", api.handleHealth)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequestSize(api.maxBodyBytes))
		r.Post("/generate", api.handleGenerate)
		r.Post("/preview", api.handlePreview)
		r.Post("/tokens/invalidate", api.handleInvalidate)
	})
	if api.staticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(api.staticDir))))
	}
}

func (api *API) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexPage)
}

func (api *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (api *API) handleGenerate(w http.ResponseWriter, r *http.Request) {
	form, err := readForm(r)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	if strings.TrimSpace(form.Markdown) == "" {
		api.fail(w, r, deck.ErrEmptyMarkdown)
		return
	}

	result := &deck.Result{}
	err = api.generate.Execute(r.Context(), deckcmd.GenerateDeckCommand{
		Markdown: form.Markdown,
		FileKey:  form.FileKey,
		Format:   form.Format,
		Result:   result,
	})
	if err != nil {
		api.fail(w, r, err)
		return
	}

	body := result.Body()
	w.Header().Set("Content-Type", result.Format.ContentType())
	w.Header().Set("Content-Disposition", contentDisposition(result.Format, result.Filename))
	w.Header().Set("X-Deck-Id", result.ID.String())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (api *API) handlePreview(w http.ResponseWriter, r *http.Request) {
	form, err := readForm(r)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	result, err := api.preview.Preview(r.Context(), form.Markdown)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (api *API) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	if api.invalidate == nil {
		api.fail(w, r, deckcmd.ErrTokenCacheUnavailable)
		return
	}
	form, err := readForm(r)
	if err != nil {
		api.fail(w, r, err)
		return
	}
	keys := trimmed(form.FileKeys)
	if len(keys) == 0 {
		keys = trimmed([]string{form.FileKey})
	}
	if err := api.invalidate.Execute(r.Context(), deckcmd.InvalidateTokensCommand{FileKeys: keys}); err != nil {
		api.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, message := mapError(err)
	if status >= http.StatusInternalServerError {
		api.logger.Error("http.request.failed",
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
	}
	writeText(w, status, message)
}

func (api *API) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			r = r.WithContext(logging.ContextWithFields(r.Context(), map[string]any{"request_id": reqID}))
		}
		next.ServeHTTP(ww, r)
		api.logger.Info("http.request.completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(started).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// Serve runs handler on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger interfaces.Logger) error {
	logger = logging.Or(logger)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http.server.started", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("http.server.stopping", "addr", addr)
		return server.Shutdown(shutdownCtx)
	}
}
