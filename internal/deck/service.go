package deck

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-deck/internal/logging"
	"github.com/goliatone/go-deck/internal/slides"
	"github.com/goliatone/go-deck/internal/tokens"
	"github.com/goliatone/go-deck/pkg/interfaces"
)

var (
	ErrEmptyMarkdown      = errors.New("deck: markdown is empty")
	ErrNoSlides           = errors.New("deck: no slides to generate")
	ErrRenderFailed       = errors.New("deck: rendering failed")
	ErrInvalidFrontMatter = errors.New("deck: invalid front matter")
	ErrUnsupportedFormat  = errors.New("deck: unsupported output format")
	ErrPDFUnavailable     = errors.New("deck: pdf rendering not configured")
)

// Format selects the generated artifact.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

const defaultBasename = "presentation"

// ParseFormat normalises a format name. Empty input selects PDF.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, value)
	}
}

// Extension returns the file extension for the format, with the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatHTML {
		return "text/html; charset=utf-8"
	}
	return "application/pdf"
}

// TokenProvider resolves design tokens for a design file. The boolean is
// false when defaults were substituted.
type TokenProvider interface {
	Tokens(ctx context.Context, fileKey string) (tokens.DesignTokens, bool)
}

// SlideParser turns Markdown into slides.
type SlideParser interface {
	Parse(markdown string) []slides.Slide
}

// HTMLRenderer renders slides into an HTML document.
type HTMLRenderer interface {
	Render(ctx context.Context, deck []slides.Slide, design tokens.DesignTokens) ([]byte, error)
}

// PDFRenderer rasterises an HTML document.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, document []byte, layout tokens.LayoutSpec) ([]byte, error)
}

// Request describes one generation run.
type Request struct {
	Markdown string
	FileKey  string
	Format   Format
}

// Result is a generated deck.
type Result struct {
	ID               uuid.UUID           `json:"id"`
	Meta             Meta                `json:"meta"`
	Slides           []slides.Slide      `json:"slides"`
	Tokens           tokens.DesignTokens `json:"tokens"`
	TokensFromSource bool                `json:"tokens_from_source"`
	Format           Format              `json:"format"`
	Filename         string              `json:"filename"`
	HTML             []byte              `json:"-"`
	PDF              []byte              `json:"-"`
}

// Body returns the artifact matching the requested format.
func (r *Result) Body() []byte {
	if r == nil {
		return nil
	}
	if r.Format == FormatHTML {
		return r.HTML
	}
	return r.PDF
}

// PreviewResult is the parse-only view of a deck.
type PreviewResult struct {
	Meta             Meta                `json:"meta"`
	Slides           []slides.Slide      `json:"slides"`
	Stats            slides.Stats        `json:"stats"`
	Tokens           tokens.DesignTokens `json:"tokens"`
	TokensFromSource bool                `json:"tokens_from_source"`
}

// Service coordinates token resolution, parsing and rendering.
type Service struct {
	html    HTMLRenderer
	pdf     PDFRenderer
	tokens  TokenProvider
	parser  SlideParser
	fileKey string
	newID   func() uuid.UUID
	logger  interfaces.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithPDFRenderer enables PDF output.
func WithPDFRenderer(renderer PDFRenderer) Option {
	return func(s *Service) {
		s.pdf = renderer
	}
}

// WithTokenProvider sets where remote design tokens come from. Without one
// every run uses tokens.Defaults.
func WithTokenProvider(provider TokenProvider) Option {
	return func(s *Service) {
		s.tokens = provider
	}
}

// WithParser overrides the slide parser.
func WithParser(parser SlideParser) Option {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// WithDefaultFileKey sets the design file used when neither the request nor
// the front matter names one.
func WithDefaultFileKey(key string) Option {
	return func(s *Service) {
		s.fileKey = strings.TrimSpace(key)
	}
}

// WithIDGenerator overrides result id generation.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService builds a generation service around an HTML renderer.
func NewService(html HTMLRenderer, opts ...Option) *Service {
	s := &Service{
		html:   html,
		parser: slides.NewParser(),
		newID:  uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Generate renders req.Markdown into the requested format.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	format, err := ParseFormat(string(req.Format))
	if err != nil {
		return nil, err
	}

	doc, err := s.prepare(req.Markdown)
	if err != nil {
		return nil, err
	}

	id := s.newID()
	fileKey := s.resolveFileKey(doc.Meta, req.FileKey)
	logger := logging.WithGenerateContext(s.logger.WithContext(ctx), id.String(), fileKey, string(format))

	design, fromSource := s.resolveTokens(ctx, fileKey)
	deck := s.parser.Parse(doc.Body)
	if len(deck) == 0 {
		logger.Warn("deck.generate.no_slides")
		return nil, ErrNoSlides
	}

	if s.html == nil {
		return nil, fmt.Errorf("%w: html renderer not configured", ErrRenderFailed)
	}
	html, err := s.html.Render(ctx, deck, design)
	if err != nil {
		logger.Error("deck.generate.html_failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	result := &Result{
		ID:               id,
		Meta:             doc.Meta,
		Slides:           deck,
		Tokens:           design,
		TokensFromSource: fromSource,
		Format:           format,
		HTML:             html,
		Filename:         Filename(doc.Meta, deck, format),
	}

	if format == FormatPDF {
		if s.pdf == nil {
			return nil, ErrPDFUnavailable
		}
		pdf, err := s.pdf.RenderPDF(ctx, html, design.Layout)
		if err != nil {
			logger.Error("deck.generate.pdf_failed", "error", err)
			return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
		}
		result.PDF = pdf
	}

	logger.Info("deck.generate.completed",
		"slides", len(deck),
		"tokens_from_source", fromSource,
		"filename", result.Filename,
	)
	return result, nil
}

// Preview parses markdown and resolves tokens without rendering.
func (s *Service) Preview(ctx context.Context, markdown string) (*PreviewResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	doc, err := s.prepare(markdown)
	if err != nil {
		return nil, err
	}
	design, fromSource := s.resolveTokens(ctx, s.resolveFileKey(doc.Meta, ""))
	deck := s.parser.Parse(doc.Body)
	if len(deck) == 0 {
		return nil, ErrNoSlides
	}
	return &PreviewResult{
		Meta:             doc.Meta,
		Slides:           deck,
		Stats:            slides.Summarize(deck),
		Tokens:           design,
		TokensFromSource: fromSource,
	}, nil
}

func (s *Service) prepare(markdown string) (Document, error) {
	trimmed := strings.TrimSpace(markdown)
	if trimmed == "" {
		return Document{}, ErrEmptyMarkdown
	}
	doc, err := ParseDocument(trimmed)
	if err != nil {
		return Document{}, err
	}
	if strings.TrimSpace(doc.Body) == "" {
		return Document{}, ErrEmptyMarkdown
	}
	return doc, nil
}

func (s *Service) resolveFileKey(meta Meta, requested string) string {
	for _, candidate := range []string{meta.FileKey, requested, s.fileKey} {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func (s *Service) resolveTokens(ctx context.Context, fileKey string) (tokens.DesignTokens, bool) {
	if s.tokens == nil || fileKey == "" {
		return tokens.Defaults(), false
	}
	return s.tokens.Tokens(ctx, fileKey)
}

// Filename picks the download name for a deck: the front matter filename,
// then a slug of the deck title or first slide title, then "presentation".
func Filename(meta Meta, deck []slides.Slide, format Format) string {
	ext := format.Extension()
	if name := filepath.Base(meta.Filename); meta.Filename != "" && name != "." && name != "/" {
		if filepath.Ext(name) != ext {
			name = strings.TrimSuffix(name, filepath.Ext(name)) + ext
		}
		return name
	}

	candidates := []string{meta.Title}
	if len(deck) > 0 {
		candidates = append(candidates, deck[0].Title, deck[0].TitleAccent)
	}
	for _, candidate := range candidates {
		if base := slugify(candidate); base != "" {
			return base + ext
		}
	}
	return defaultBasename + ext
}

func slugify(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	normalized, err := slug.Normalize(value)
	if err != nil {
		return ""
	}
	return normalized
}
