package di

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	command "github.com/goliatone/go-command"

	deckcmd "github.com/goliatone/go-deck/internal/commands/deck"
	"github.com/goliatone/go-deck/internal/deck"
	"github.com/goliatone/go-deck/internal/figma"
	"github.com/goliatone/go-deck/internal/logging"
	"github.com/goliatone/go-deck/internal/logging/console"
	"github.com/goliatone/go-deck/internal/logging/gologger"
	"github.com/goliatone/go-deck/internal/render"
	"github.com/goliatone/go-deck/internal/runtimeconfig"
	"github.com/goliatone/go-deck/internal/slides"
	"github.com/goliatone/go-deck/internal/tokens"
	"github.com/goliatone/go-deck/pkg/interfaces"
)

// Container wires module dependencies from a runtime config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	httpClient     *http.Client

	tokenCache  *tokens.Cache
	fetcher     figma.Fetcher
	tokenSource *figma.Source

	parser       *slides.Parser
	htmlRenderer *render.HTMLRenderer
	pdfRenderer  deck.PDFRenderer

	commandRegistry deckcmd.CommandRegistry
	cronRegistrar   deckcmd.CronRegistrar
	refreshCron     command.HandlerConfig

	deckSvc           *deck.Service
	generateHandler   *deckcmd.GenerateDeckHandler
	invalidateHandler *deckcmd.InvalidateTokensHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithTokenCache shares an existing token cache.
func WithTokenCache(cache *tokens.Cache) Option {
	return func(c *Container) {
		c.tokenCache = cache
	}
}

// WithFetcher replaces the Figma client. Supplying a fetcher enables remote
// tokens even without an access token.
func WithFetcher(fetcher figma.Fetcher) Option {
	return func(c *Container) {
		c.fetcher = fetcher
	}
}

// WithHTTPClient sets the HTTP client used by the Figma client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Container) {
		c.httpClient = client
	}
}

// WithPDFRenderer overrides the headless Chrome renderer.
func WithPDFRenderer(renderer deck.PDFRenderer) Option {
	return func(c *Container) {
		c.pdfRenderer = renderer
	}
}

// WithCommandRegistry registers the deck command handlers with registry.
func WithCommandRegistry(registry deckcmd.CommandRegistry) Option {
	return func(c *Container) {
		c.commandRegistry = registry
	}
}

// WithTokenRefreshCron schedules a full token cache invalidation on cfg's
// expression. It has no effect when remote tokens are disabled.
func WithTokenRefreshCron(registrar deckcmd.CronRegistrar, cfg command.HandlerConfig) Option {
	return func(c *Container) {
		c.cronRegistrar = registrar
		c.refreshCron = cfg
	}
}

// NewContainer validates cfg and builds every service it enables.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureTokens(); err != nil {
		return nil, err
	}
	if err := c.configureRenderers(); err != nil {
		return nil, err
	}
	if err := c.configureServices(); err != nil {
		return nil, err
	}

	logging.ModuleLogger(c.loggerProvider, "deck.di").Debug("container.configured",
		"remote_tokens", c.tokenSource != nil,
		"pdf", c.pdfRenderer != nil,
		"cache_ttl", c.Config.Cache.TTL.String(),
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
		})
		if err != nil {
			return fmt.Errorf("di: configure logger: %w", err)
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(logCfg.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureTokens() error {
	if c.tokenCache == nil {
		c.tokenCache = tokens.NewCache()
	}

	if c.fetcher == nil && c.Config.RemoteTokensEnabled() {
		client, err := figma.NewClient(figma.Options{
			BaseURL:    c.Config.Figma.BaseURL,
			Token:      c.Config.Figma.Token,
			Timeout:    c.Config.Figma.Timeout,
			HTTPClient: c.httpClient,
			Logger:     logging.FigmaLogger(c.loggerProvider),
		})
		if err != nil {
			return fmt.Errorf("di: configure figma client: %w", err)
		}
		c.fetcher = client
	}
	if c.fetcher == nil {
		return nil
	}

	c.tokenSource = figma.NewSource(c.fetcher,
		figma.WithCache(c.tokenCache),
		figma.WithTTL(c.Config.Cache.TTL),
		figma.WithLogger(logging.TokensLogger(c.loggerProvider)),
	)
	return nil
}

func (c *Container) configureRenderers() error {
	c.parser = slides.NewParser(slides.WithLogger(logging.SlidesLogger(c.loggerProvider)))

	renderLogger := logging.RenderLogger(c.loggerProvider)
	htmlRenderer, err := render.NewHTMLRenderer(
		render.WithTemplateDir(c.Config.Render.TemplateDir),
		render.WithSanitize(c.Config.Render.Sanitize),
		render.WithLogoURL(c.Config.Render.LogoURL),
		render.WithHTMLLogger(renderLogger),
	)
	if err != nil {
		return fmt.Errorf("di: configure html renderer: %w", err)
	}
	c.htmlRenderer = htmlRenderer

	if c.pdfRenderer == nil && c.Config.Features.PDF {
		c.pdfRenderer = render.NewPDFRenderer(render.PDFOptions{
			RemoteURL: c.Config.Render.RemoteBrowserURL,
			Timeout:   c.Config.Render.PDFTimeout,
			Logger:    renderLogger,
		})
	}
	return nil
}

func (c *Container) configureServices() error {
	opts := []deck.Option{
		deck.WithParser(c.parser),
		deck.WithDefaultFileKey(c.Config.Figma.FileKey),
		deck.WithLogger(logging.GenerateLogger(c.loggerProvider)),
	}
	if c.pdfRenderer != nil {
		opts = append(opts, deck.WithPDFRenderer(c.pdfRenderer))
	}
	if c.tokenSource != nil {
		opts = append(opts, deck.WithTokenProvider(c.tokenSource))
	}
	c.deckSvc = deck.NewService(c.htmlRenderer, opts...)

	var invalidator deckcmd.TokenInvalidator
	if c.tokenSource != nil {
		invalidator = c.tokenSource
	}
	gates := deckcmd.FeatureGates{
		PDFEnabled: func() bool { return c.Config.Features.PDF },
	}
	set, err := deckcmd.RegisterDeckCommands(c.commandRegistry, c.deckSvc, invalidator, c.loggerProvider, gates)
	if err != nil {
		return fmt.Errorf("di: register deck commands: %w", err)
	}
	c.generateHandler = set.Generate
	c.invalidateHandler = set.Invalidate

	if c.tokenSource != nil {
		if err := deckcmd.RegisterInvalidateCron(c.cronRegistrar, c.invalidateHandler, c.refreshCron, deckcmd.InvalidateTokensCommand{}); err != nil {
			return fmt.Errorf("di: register token refresh cron: %w", err)
		}
	}
	return nil
}

// LoggerProvider exposes the configured logger provider, which may be nil
// when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// TokenCache exposes the shared token cache.
func (c *Container) TokenCache() *tokens.Cache {
	return c.tokenCache
}

// TokenSource returns the remote token source, or nil when remote tokens are
// disabled.
func (c *Container) TokenSource() *figma.Source {
	return c.tokenSource
}

// Parser returns the slide parser.
func (c *Container) Parser() *slides.Parser {
	return c.parser
}

// HTMLRenderer returns the deck HTML renderer.
func (c *Container) HTMLRenderer() *render.HTMLRenderer {
	return c.htmlRenderer
}

// PDFRenderer returns the PDF renderer, or nil when PDF output is disabled.
func (c *Container) PDFRenderer() deck.PDFRenderer {
	return c.pdfRenderer
}

// DeckService returns the generation service.
func (c *Container) DeckService() *deck.Service {
	return c.deckSvc
}

// GenerateHandler returns the generate command handler.
func (c *Container) GenerateHandler() *deckcmd.GenerateDeckHandler {
	return c.generateHandler
}

// InvalidateHandler returns the token invalidation command handler.
func (c *Container) InvalidateHandler() *deckcmd.InvalidateTokensHandler {
	return c.invalidateHandler
}

// Close releases renderer resources.
func (c *Container) Close() error {
	var errs []error
	if closer, ok := c.pdfRenderer.(io.Closer); ok {
		errs = append(errs, closer.Close())
	}
	return errors.Join(errs...)
}
