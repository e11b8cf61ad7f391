package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrFigmaBaseURLInvalid = errors.New("deck config: figma base url is invalid")
var ErrFigmaTimeoutInvalid = errors.New("deck config: figma timeout must be zero or positive")
var ErrHTTPConfigInvalid = errors.New("deck config: http settings are invalid")
var ErrRenderConfigInvalid = errors.New("deck config: render settings are invalid")
var ErrLoggingProviderRequired = errors.New("deck config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("deck config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("deck config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("deck config: logging format is invalid")

// Config aggregates feature flags and adapter settings for the deck module.
type Config struct {
	Figma    FigmaConfig   `yaml:"figma"`
	Cache    CacheConfig   `yaml:"cache"`
	Render   RenderConfig  `yaml:"render"`
	HTTP     HTTPConfig    `yaml:"http"`
	Logging  LoggingConfig `yaml:"logging"`
	Features Features      `yaml:"features"`
}

// FigmaConfig configures the design document client.
type FigmaConfig struct {
	FileKey string        `yaml:"file_key"`
	Token   string        `yaml:"token"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// CacheConfig controls token caching. A zero or negative TTL disables it.
type CacheConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// RenderConfig captures HTML and PDF rendering behaviour.
type RenderConfig struct {
	TemplateDir      string        `yaml:"template_dir"`
	LogoURL          string        `yaml:"logo_url"`
	RemoteBrowserURL string        `yaml:"remote_browser_url"`
	PDFTimeout       time.Duration `yaml:"pdf_timeout"`
	Sanitize         bool          `yaml:"sanitize"`
}

// HTTPConfig captures the web adapter settings.
type HTTPConfig struct {
	Addr         string `yaml:"addr"`
	StaticDir    string `yaml:"static_dir"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

// Features toggles module functionality.
type Features struct {
	Logger       bool `yaml:"logger"`
	RemoteTokens bool `yaml:"remote_tokens"`
	PDF          bool `yaml:"pdf"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string `yaml:"provider"`
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"add_source"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Figma: FigmaConfig{
			BaseURL: "https://api.figma.com",
			Timeout: 30 * time.Second,
		},
		Cache: CacheConfig{},
		Render: RenderConfig{
			PDFTimeout: time.Minute,
			Sanitize:   true,
		},
		HTTP: HTTPConfig{
			Addr:         ":8000",
			StaticDir:    "static",
			MaxBodyBytes: 5 << 20,
		},
		Features: Features{
			Logger:       true,
			RemoteTokens: true,
			PDF:          true,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// RemoteTokensEnabled reports whether a design file can actually be fetched.
func (cfg Config) RemoteTokensEnabled() bool {
	return cfg.Features.RemoteTokens && strings.TrimSpace(cfg.Figma.Token) != ""
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if base := strings.TrimSpace(cfg.Figma.BaseURL); base != "" {
		parsed, err := url.Parse(base)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%w: %s", ErrFigmaBaseURLInvalid, base)
		}
	}
	if cfg.Figma.Timeout < 0 {
		return ErrFigmaTimeoutInvalid
	}

	httpCfg := cfg.HTTP
	if err := validation.ValidateStruct(&httpCfg,
		validation.Field(&httpCfg.Addr, validation.Required),
		validation.Field(&httpCfg.MaxBodyBytes, validation.Required, validation.Min(int64(1))),
	); err != nil {
		return fmt.Errorf("%w: %v", ErrHTTPConfigInvalid, err)
	}

	renderCfg := cfg.Render
	if err := validation.ValidateStruct(&renderCfg,
		validation.Field(&renderCfg.PDFTimeout, validation.Min(time.Duration(0))),
	); err != nil {
		return fmt.Errorf("%w: %v", ErrRenderConfigInvalid, err)
	}

	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
