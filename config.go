package deck

import "github.com/goliatone/go-deck/internal/runtimeconfig"

var (
	ErrFigmaBaseURLInvalid     = runtimeconfig.ErrFigmaBaseURLInvalid
	ErrFigmaTimeoutInvalid     = runtimeconfig.ErrFigmaTimeoutInvalid
	ErrHTTPConfigInvalid       = runtimeconfig.ErrHTTPConfigInvalid
	ErrRenderConfigInvalid     = runtimeconfig.ErrRenderConfigInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrEnvInvalid              = runtimeconfig.ErrEnvInvalid
)

type (
	Config        = runtimeconfig.Config
	FigmaConfig   = runtimeconfig.FigmaConfig
	CacheConfig   = runtimeconfig.CacheConfig
	RenderConfig  = runtimeconfig.RenderConfig
	HTTPConfig    = runtimeconfig.HTTPConfig
	LoggingConfig = runtimeconfig.LoggingConfig
	Features      = runtimeconfig.Features
)

// DefaultConfig returns the module defaults.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a YAML config file over the defaults and applies
// environment overrides from lookup. A nil lookup skips the environment.
func LoadConfig(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := runtimeconfig.DefaultConfig()
	if path != "" {
		loaded, err := runtimeconfig.LoadFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	if lookup != nil {
		if err := cfg.ApplyEnv(lookup); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}
