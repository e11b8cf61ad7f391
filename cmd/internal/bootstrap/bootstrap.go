package bootstrap

import (
	"fmt"
	"strings"

	deck "github.com/goliatone/go-deck"
	"github.com/goliatone/go-deck/internal/di"
	"github.com/goliatone/go-deck/internal/logging"
	"github.com/goliatone/go-deck/pkg/interfaces"
)

// Options captures configuration shared by the deck binaries.
type Options struct {
	ConfigPath     string
	Lookup         func(string) (string, bool)
	FileKey        string
	DisablePDF     bool
	LoggerProvider interfaces.LoggerProvider
	DIOptions      []di.Option
}

// Module wraps the deck module and a logger scoped to the binary.
type Module struct {
	Module *deck.Module
	Logger interfaces.Logger
}

// BuildModule loads configuration and constructs a deck module.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := deck.LoadConfig(strings.TrimSpace(opts.ConfigPath), opts.Lookup)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if key := strings.TrimSpace(opts.FileKey); key != "" {
		cfg.Figma.FileKey = key
	}
	if opts.DisablePDF {
		cfg.Features.PDF = false
	}

	diOpts := append([]di.Option{}, opts.DIOptions...)
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := deck.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise deck module: %w", err)
	}

	return &Module{
		Module: module,
		Logger: logging.ModuleLogger(module.Container().LoggerProvider(), "deck.cli"),
	}, nil
}
