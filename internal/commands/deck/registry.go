package deckcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-deck/internal/commands"
	"github.com/goliatone/go-deck/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the deck command handlers produced by RegisterDeckCommands.
type HandlerSet struct {
	Generate   *GenerateDeckHandler
	Invalidate *InvalidateTokensHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	generateHandlerOpts   []commands.HandlerOption[GenerateDeckCommand]
	invalidateHandlerOpts []commands.HandlerOption[InvalidateTokensCommand]
}

// WithGenerateHandlerOptions forwards options to the GenerateDeckHandler constructor.
func WithGenerateHandlerOptions(opts ...commands.HandlerOption[GenerateDeckCommand]) Option {
	return func(cfg *options) {
		cfg.generateHandlerOpts = append(cfg.generateHandlerOpts, opts...)
	}
}

// WithInvalidateHandlerOptions forwards options to the InvalidateTokensHandler constructor.
func WithInvalidateHandlerOptions(opts ...commands.HandlerOption[InvalidateTokensCommand]) Option {
	return func(cfg *options) {
		cfg.invalidateHandlerOpts = append(cfg.invalidateHandlerOpts, opts...)
	}
}

// RegisterDeckCommands builds the deck command handlers and registers them
// with reg when it is non-nil. A nil invalidator yields a handler that
// reports ErrTokenCacheUnavailable.
func RegisterDeckCommands(reg CommandRegistry, generator Generator, invalidator TokenInvalidator, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if generator == nil {
		return nil, errors.New("deck command registration: generator is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "deck")

	generateHandler := NewGenerateDeckHandler(generator, logger, gates, cfg.generateHandlerOpts...)
	invalidateHandler := NewInvalidateTokensHandler(invalidator, logger, cfg.invalidateHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(generateHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(invalidateHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Generate:   generateHandler,
		Invalidate: invalidateHandler,
	}, nil
}

// RegisterInvalidateCron schedules msg on the invalidate handler so cached
// tokens are refreshed on cfg's expression. The handler runs with a
// background context.
func RegisterInvalidateCron(reg CronRegistrar, handler *InvalidateTokensHandler, cfg command.HandlerConfig, msg InvalidateTokensCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
