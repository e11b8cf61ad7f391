package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goliatone/go-deck/cmd/internal/bootstrap"
	deckhttp "github.com/goliatone/go-deck/internal/http"
	"github.com/goliatone/go-deck/internal/logging"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		log.Fatalf("deckd: %v", err)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("deckd", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML config file")
	addr := fs.String("addr", "", "Listen address (overrides config and PORT)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ConfigPath: *configPath,
		Lookup:     os.LookupEnv,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Module == nil {
		return fmt.Errorf("deck module not configured")
	}
	defer module.Module.Close()

	api := newAPI(module)
	listen := module.Module.Container().Config.HTTP.Addr
	if trimmed := strings.TrimSpace(*addr); trimmed != "" {
		listen = trimmed
	}

	httpLogger := logging.HTTPLogger(module.Module.Container().LoggerProvider())
	return deckhttp.Serve(ctx, listen, api.Handler(), httpLogger)
}

func newAPI(module *bootstrap.Module) *deckhttp.API {
	container := module.Module.Container()
	cfg := container.Config
	return deckhttp.NewAPI(container.GenerateHandler(), container.DeckService(),
		deckhttp.WithStaticDir(cfg.HTTP.StaticDir),
		deckhttp.WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes),
		deckhttp.WithInvalidateHandler(container.InvalidateHandler()),
		deckhttp.WithLogger(logging.HTTPLogger(container.LoggerProvider())),
	)
}
