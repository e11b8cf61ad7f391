package deck

import (
	"context"

	deckcmd "github.com/goliatone/go-deck/internal/commands/deck"
	internaldeck "github.com/goliatone/go-deck/internal/deck"
	"github.com/goliatone/go-deck/internal/di"
	"github.com/goliatone/go-deck/internal/slides"
	"github.com/goliatone/go-deck/internal/tokens"
)

// Service exports the generation service.
type Service = internaldeck.Service

// Request exports the generation request.
type Request = internaldeck.Request

// Result exports the generation result.
type Result = internaldeck.Result

// PreviewResult exports the preview summary.
type PreviewResult = internaldeck.PreviewResult

// Format exports the output format.
type Format = internaldeck.Format

// Slide exports the parsed slide model.
type Slide = slides.Slide

// DesignTokens exports the normalised token set.
type DesignTokens = tokens.DesignTokens

// GenerateDeckCommand exports the generate command message.
type GenerateDeckCommand = deckcmd.GenerateDeckCommand

// InvalidateTokensCommand exports the token invalidation command message.
type InvalidateTokensCommand = deckcmd.InvalidateTokensCommand

const (
	FormatPDF  = internaldeck.FormatPDF
	FormatHTML = internaldeck.FormatHTML
)

var (
	ErrEmptyMarkdown      = internaldeck.ErrEmptyMarkdown
	ErrNoSlides           = internaldeck.ErrNoSlides
	ErrRenderFailed       = internaldeck.ErrRenderFailed
	ErrUnsupportedFormat  = internaldeck.ErrUnsupportedFormat
	ErrPDFUnavailable     = internaldeck.ErrPDFUnavailable
	ErrPDFFeatureDisabled = deckcmd.ErrPDFFeatureDisabled
)

// ParseFormat validates an output format name. Empty selects PDF.
func ParseFormat(value string) (Format, error) {
	return internaldeck.ParseFormat(value)
}

// Module represents the top level deck runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a deck module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Service returns the configured generation service.
func (m *Module) Service() *Service {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.DeckService()
}

// Generate runs the generate command so the configured feature gates apply.
func (m *Module) Generate(ctx context.Context, req Request) (*Result, error) {
	result := &Result{}
	err := m.container.GenerateHandler().Execute(ctx, GenerateDeckCommand{
		Markdown: req.Markdown,
		FileKey:  req.FileKey,
		Format:   string(req.Format),
		Result:   result,
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Preview parses markdown and reports slide statistics without rendering.
func (m *Module) Preview(ctx context.Context, markdown string) (*PreviewResult, error) {
	return m.container.DeckService().Preview(ctx, markdown)
}

// InvalidateTokens drops cached design tokens. No keys clears everything.
func (m *Module) InvalidateTokens(ctx context.Context, fileKeys ...string) error {
	return m.container.InvalidateHandler().Execute(ctx, InvalidateTokensCommand{FileKeys: fileKeys})
}

// Close releases renderer resources.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
