package runtimeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvFigmaToken    = "FIGMA_TOKEN"
	EnvFigmaFileKey  = "FIGMA_FILE_KEY"
	EnvFigmaCacheTTL = "FIGMA_CACHE_TTL"
	EnvPort          = "PORT"
	EnvLogLevel      = "LOG_LEVEL"
)

var ErrEnvInvalid = errors.New("deck config: invalid environment value")

// LoadFile reads a YAML file on top of DefaultConfig. Unknown keys are
// rejected.
func LoadFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("deck config: read %s: %w", path, err)
	}
	cfg, err := Decode(raw)
	if err != nil {
		return Config{}, fmt.Errorf("deck config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses YAML on top of DefaultConfig.
func Decode(raw []byte) (Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overlays the supported environment variables using lookup, which
// is usually os.LookupEnv. FIGMA_CACHE_TTL accepts whole seconds or a Go
// duration string.
func (cfg *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if cfg == nil || lookup == nil {
		return nil
	}
	if value, ok := lookupTrimmed(lookup, EnvFigmaToken); ok {
		cfg.Figma.Token = value
	}
	if value, ok := lookupTrimmed(lookup, EnvFigmaFileKey); ok {
		cfg.Figma.FileKey = value
	}
	if value, ok := lookupTrimmed(lookup, EnvFigmaCacheTTL); ok {
		ttl, err := parseTTL(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrEnvInvalid, EnvFigmaCacheTTL, value)
		}
		cfg.Cache.TTL = ttl
	}
	if value, ok := lookupTrimmed(lookup, EnvPort); ok {
		port, err := strconv.Atoi(value)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("%w: %s=%q", ErrEnvInvalid, EnvPort, value)
		}
		cfg.HTTP.Addr = ":" + strconv.Itoa(port)
	}
	if value, ok := lookupTrimmed(lookup, EnvLogLevel); ok {
		cfg.Logging.Level = strings.ToLower(value)
	}
	return nil
}

func lookupTrimmed(lookup func(string) (string, bool), key string) (string, bool) {
	value, ok := lookup(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func parseTTL(value string) (time.Duration, error) {
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	return time.ParseDuration(value)
}
