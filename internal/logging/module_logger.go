package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-deck/pkg/interfaces"
)

const (
	rootModule     = "deck"
	slidesModule   = "deck.slides"
	tokensModule   = "deck.tokens"
	figmaModule    = "deck.figma"
	renderModule   = "deck.render"
	httpModule     = "deck.http"
	generateModule = "deck.generate"
)

const (
	fieldFileKey = "file_key"
	fieldFormat  = "format"
	fieldDeckID  = "deck_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// SlidesLogger returns the logger namespace reserved for the Markdown slide parser.
func SlidesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, slidesModule)
}

// TokensLogger returns the logger namespace reserved for token normalisation and caching.
func TokensLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, tokensModule)
}

// FigmaLogger returns the logger namespace reserved for the design document client.
func FigmaLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, figmaModule)
}

// RenderLogger returns the logger namespace reserved for HTML and PDF rendering.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// HTTPLogger returns the logger namespace reserved for the HTTP adapter.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// GenerateLogger returns the logger namespace reserved for deck generation.
func GenerateLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generateModule)
}

// WithGenerateContext enriches the logger with the deck id, design file key
// and output format of a generation run. Empty values are ignored.
func WithGenerateContext(logger interfaces.Logger, deckID, fileKey, format string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(deckID); trimmed != "" {
		fields[fieldDeckID] = trimmed
	}
	if trimmed := strings.TrimSpace(fileKey); trimmed != "" {
		fields[fieldFileKey] = trimmed
	}
	if trimmed := strings.TrimSpace(format); trimmed != "" {
		fields[fieldFormat] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var (
	_ interfaces.Logger       = noopLogger{}
	_ interfaces.FieldsLogger = noopLogger{}
)

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
