package figma

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-deck/internal/logging"
	"github.com/goliatone/go-deck/internal/tokens"
	"github.com/goliatone/go-deck/pkg/interfaces"
)

const (
	// DefaultBaseURL is the public Figma REST endpoint.
	DefaultBaseURL = "https://api.figma.com"
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second

	tokenHeader     = "X-Figma-Token"
	maxResponseSize = 64 << 20
)

var (
	ErrTokenRequired     = errors.New("figma: access token required")
	ErrFileKeyRequired   = errors.New("figma: file key required")
	ErrMalformedResponse = errors.New("figma: malformed response")
)

// StatusError reports a non-success HTTP status from the API.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("figma: unexpected status %d from %s", e.StatusCode, e.URL)
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     interfaces.Logger
}

// File is the subset of a Figma file response used for token extraction.
type File struct {
	Name     string                           `json:"name"`
	Document *tokens.Node                     `json:"document"`
	Styles   map[string]tokens.PublishedStyle `json:"styles"`
}

type stylesResponse struct {
	Meta struct {
		Styles []publishedStyleMeta `json:"styles"`
	} `json:"meta"`
}

type publishedStyleMeta struct {
	Key         string `json:"key"`
	NodeID      string `json:"node_id"`
	Name        string `json:"name"`
	StyleType   string `json:"style_type"`
	Description string `json:"description"`
}

// Client talks to the Figma REST API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	schemas *responseSchemas
	logger  interfaces.Logger
}

// NewClient builds a client, applying defaults for empty options.
func NewClient(opts Options) (*Client, error) {
	schemas, err := loadSchemas()
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: baseURL,
		token:   strings.TrimSpace(opts.Token),
		http:    httpClient,
		schemas: schemas,
		logger:  logging.Or(opts.Logger),
	}, nil
}

// FetchFile downloads the document tree and style map of a file.
func (c *Client) FetchFile(ctx context.Context, fileKey string) (*File, error) {
	body, status, err := c.get(ctx, fileKey, "")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &StatusError{StatusCode: status, URL: c.fileURL(fileKey, "")}
	}

	var file File
	if err := decodeValidated(c.schemas.file, body, &file); err != nil {
		return nil, err
	}
	if file.Styles == nil {
		file.Styles = map[string]tokens.PublishedStyle{}
	}
	return &file, nil
}

// FetchPublishedStyles returns the published styles of a file keyed by node
// id. A non-success status yields an empty map rather than an error.
func (c *Client) FetchPublishedStyles(ctx context.Context, fileKey string) (map[string]tokens.PublishedStyle, error) {
	body, status, err := c.get(ctx, fileKey, "styles")
	if err != nil {
		return nil, err
	}
	styles := map[string]tokens.PublishedStyle{}
	if status != http.StatusOK {
		return styles, nil
	}

	var payload stylesResponse
	if err := decodeValidated(c.schemas.styles, body, &payload); err != nil {
		return nil, err
	}
	for _, meta := range payload.Meta.Styles {
		if meta.NodeID == "" {
			continue
		}
		styles[meta.NodeID] = tokens.PublishedStyle{
			Key:         meta.Key,
			Name:        meta.Name,
			StyleType:   meta.StyleType,
			Description: meta.Description,
		}
	}
	return styles, nil
}

func (c *Client) get(ctx context.Context, fileKey, suffix string) ([]byte, int, error) {
	if c.token == "" {
		return nil, 0, ErrTokenRequired
	}
	fileKey = strings.TrimSpace(fileKey)
	if fileKey == "" {
		return nil, 0, ErrFileKeyRequired
	}
	if ctx == nil {
		ctx = context.Background()
	}

	target := c.fileURL(fileKey, suffix)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("figma: build request: %w", err)
	}
	req.Header.Set(tokenHeader, c.token)
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("figma.request.failed", "url", target, "error", err)
		return nil, 0, fmt.Errorf("figma: request %s: %w", target, err)
	}
	defer resp.Body.Close()
	c.logger.Debug("figma.request.completed",
		"url", target,
		"status", resp.StatusCode,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("figma: read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

func (c *Client) fileURL(fileKey, suffix string) string {
	target := c.baseURL + "/v1/files/" + url.PathEscape(fileKey)
	if suffix != "" {
		target += "/" + suffix
	}
	return target
}
