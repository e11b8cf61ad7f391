package http

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-deck/internal/commands"
	deckcmd "github.com/goliatone/go-deck/internal/commands/deck"
	"github.com/goliatone/go-deck/internal/deck"
)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain; charset=utf-8"

	internalErrorMessage = "failed to generate presentation"
)

var errBodyTooLarge = errors.New("http: request body too large")

type deckForm struct {
	Markdown string   `json:"markdown"`
	FileKey  string   `json:"file_key"`
	Format   string   `json:"format"`
	FileKeys []string `json:"file_keys"`
}

// readForm accepts JSON bodies as well as urlencoded and multipart forms.
func readForm(r *http.Request) (deckForm, error) {
	var form deckForm
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case contentTypeJSON:
		if r.ContentLength == 0 {
			return form, nil
		}
		decoder := json.NewDecoder(r.Body)
		if err := decoder.Decode(&form); err != nil {
			return form, bodyError(err)
		}
		return form, nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(32 << 10); err != nil {
			return form, bodyError(err)
		}
	default:
		if err := r.ParseForm(); err != nil {
			return form, bodyError(err)
		}
	}

	form.Markdown = r.PostFormValue("markdown")
	form.FileKey = r.PostFormValue("file_key")
	form.Format = r.PostFormValue("format")
	if r.PostForm != nil {
		form.FileKeys = r.PostForm["file_key"]
	}
	return form, nil
}

func bodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return errBodyTooLarge
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid request body")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", contentTypeText)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message + "\n"))
}

// mapError converts generation failures to a status code and a client-safe
// message. Unknown errors never leak their text.
func mapError(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, internalErrorMessage
	case errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge, "request body too large"
	case errors.Is(err, deck.ErrEmptyMarkdown):
		return http.StatusBadRequest, "No markdown content provided"
	case errors.Is(err, deck.ErrNoSlides):
		return http.StatusBadRequest, "No slides found in markdown"
	case errors.Is(err, deck.ErrInvalidFrontMatter):
		return http.StatusBadRequest, "Invalid front matter"
	case errors.Is(err, deck.ErrUnsupportedFormat):
		return http.StatusBadRequest, "Unsupported output format"
	case errors.Is(err, deckcmd.ErrPDFFeatureDisabled), errors.Is(err, deck.ErrPDFUnavailable):
		return http.StatusNotImplemented, "PDF output is not available"
	case errors.Is(err, deckcmd.ErrTokenCacheUnavailable):
		return http.StatusNotImplemented, "Design token cache is not configured"
	case commands.IsValidation(err):
		return http.StatusBadRequest, "Invalid request"
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

func contentDisposition(format deck.Format, filename string) string {
	disposition := "attachment"
	if format == deck.FormatHTML {
		disposition = "inline"
	}
	return mime.FormatMediaType(disposition, map[string]string{"filename": filename})
}

func trimmed(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}
