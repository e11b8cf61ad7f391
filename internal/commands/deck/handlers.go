package deckcmd

import (
	"context"
	"errors"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-deck/internal/commands"
	"github.com/goliatone/go-deck/internal/deck"
	"github.com/goliatone/go-deck/internal/logging"
	"github.com/goliatone/go-deck/pkg/interfaces"
)

const (
	generateOperation   = "deck.generate"
	invalidateOperation = "deck.tokens.invalidate"
)

var (
	// ErrPDFFeatureDisabled is returned when PDF output is switched off at runtime.
	ErrPDFFeatureDisabled = errors.New("deck command: pdf feature disabled")
	// ErrTokenCacheUnavailable is returned when no token cache is configured.
	ErrTokenCacheUnavailable = errors.New("deck command: token cache unavailable")
)

var (
	_ command.Commander[GenerateDeckCommand]     = (*GenerateDeckHandler)(nil)
	_ command.Commander[InvalidateTokensCommand] = (*InvalidateTokensHandler)(nil)
)

// Generator is the subset of deck.Service used by GenerateDeckHandler.
type Generator interface {
	Generate(ctx context.Context, req deck.Request) (*deck.Result, error)
}

// TokenInvalidator drops cached design tokens.
type TokenInvalidator interface {
	Invalidate(fileKeys ...string)
}

// GenerateDeckHandler runs deck generation through the shared command handler.
type GenerateDeckHandler struct {
	inner *commands.Handler[GenerateDeckCommand]
}

// NewGenerateDeckHandler creates a handler bound to the supplied generator.
func NewGenerateDeckHandler(generator Generator, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[GenerateDeckCommand]) *GenerateDeckHandler {
	baseLogger := logging.Or(logger)

	exec := func(ctx context.Context, msg GenerateDeckCommand) error {
		format, err := deck.ParseFormat(msg.Format)
		if err != nil {
			return err
		}
		if format == deck.FormatPDF && !gates.pdfEnabled() {
			return ErrPDFFeatureDisabled
		}

		result, err := generator.Generate(ctx, deck.Request{
			Markdown: msg.Markdown,
			FileKey:  msg.FileKey,
			Format:   format,
		})
		if err != nil {
			return err
		}
		if msg.Result != nil && result != nil {
			*msg.Result = *result
		}
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"deck_id":            result.ID.String(),
				"slide_count":        len(result.Slides),
				"tokens_from_source": result.TokensFromSource,
				"filename":           result.Filename,
			}).Info("deck.command.generate.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[GenerateDeckCommand]{
		commands.WithLogger[GenerateDeckCommand](baseLogger),
		commands.WithOperation[GenerateDeckCommand](generateOperation),
		commands.WithMessageFields(func(msg GenerateDeckCommand) map[string]any {
			fields := map[string]any{
				"markdown_bytes": len(msg.Markdown),
			}
			if key := strings.TrimSpace(msg.FileKey); key != "" {
				fields["file_key"] = key
			}
			if format := strings.TrimSpace(msg.Format); format != "" {
				fields["format"] = format
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[GenerateDeckCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &GenerateDeckHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[GenerateDeckCommand].
func (h *GenerateDeckHandler) Execute(ctx context.Context, msg GenerateDeckCommand) error {
	return h.inner.Execute(ctx, msg)
}

// InvalidateTokensHandler clears cached design tokens.
type InvalidateTokensHandler struct {
	inner *commands.Handler[InvalidateTokensCommand]
}

// NewInvalidateTokensHandler creates a handler bound to the supplied token source.
func NewInvalidateTokensHandler(invalidator TokenInvalidator, logger interfaces.Logger, opts ...commands.HandlerOption[InvalidateTokensCommand]) *InvalidateTokensHandler {
	baseLogger := logging.Or(logger)

	exec := func(ctx context.Context, msg InvalidateTokensCommand) error {
		if invalidator == nil {
			return ErrTokenCacheUnavailable
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		keys := make([]string, 0, len(msg.FileKeys))
		for _, key := range msg.FileKeys {
			keys = append(keys, strings.TrimSpace(key))
		}
		invalidator.Invalidate(keys...)
		return nil
	}

	handlerOpts := []commands.HandlerOption[InvalidateTokensCommand]{
		commands.WithLogger[InvalidateTokensCommand](baseLogger),
		commands.WithOperation[InvalidateTokensCommand](invalidateOperation),
		commands.WithMessageFields(func(msg InvalidateTokensCommand) map[string]any {
			if len(msg.FileKeys) == 0 {
				return map[string]any{"scope": "all"}
			}
			return map[string]any{"file_keys": msg.FileKeys}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[InvalidateTokensCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &InvalidateTokensHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[InvalidateTokensCommand].
func (h *InvalidateTokensHandler) Execute(ctx context.Context, msg InvalidateTokensCommand) error {
	return h.inner.Execute(ctx, msg)
}
