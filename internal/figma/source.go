package figma

import (
	"context"
	"maps"
	"strings"
	"time"

	"github.com/goliatone/go-deck/internal/logging"
	"github.com/goliatone/go-deck/internal/tokens"
	"github.com/goliatone/go-deck/pkg/interfaces"
)

// Fetcher retrieves raw design documents. Client is the production
// implementation.
type Fetcher interface {
	FetchFile(ctx context.Context, fileKey string) (*File, error)
	FetchPublishedStyles(ctx context.Context, fileKey string) (map[string]tokens.PublishedStyle, error)
}

// Source resolves design tokens for a file key, consulting the cache before
// the network.
type Source struct {
	fetcher Fetcher
	cache   *tokens.Cache
	ttl     time.Duration
	logger  interfaces.Logger
}

// SourceOption customises a Source.
type SourceOption func(*Source)

// WithCache sets the cache shared by lookups.
func WithCache(cache *tokens.Cache) SourceOption {
	return func(s *Source) {
		if cache != nil {
			s.cache = cache
		}
	}
}

// WithTTL sets how long fetched tokens stay fresh. Zero or negative disables
// caching.
func WithTTL(ttl time.Duration) SourceOption {
	return func(s *Source) {
		s.ttl = ttl
	}
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(logger interfaces.Logger) SourceOption {
	return func(s *Source) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSource builds a token source around fetcher.
func NewSource(fetcher Fetcher, opts ...SourceOption) *Source {
	s := &Source{
		fetcher: fetcher,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.cache == nil {
		s.cache = tokens.NewCache()
	}
	return s
}

// Tokens returns the tokens for fileKey. The boolean is false when the remote
// document could not be used and the defaults were returned instead.
func (s *Source) Tokens(ctx context.Context, fileKey string) (tokens.DesignTokens, bool) {
	fileKey = strings.TrimSpace(fileKey)
	if s == nil || s.fetcher == nil || fileKey == "" {
		return tokens.Defaults(), false
	}
	logger := logging.WithFields(s.logger, map[string]any{"file_key": fileKey})

	if s.ttl <= 0 {
		defer s.cache.Invalidate(fileKey)
	} else if cached, ok := s.cache.Get(fileKey, s.ttl); ok {
		logger.Debug("tokens.cache.hit")
		return cached, true
	}

	started := time.Now()
	file, err := s.fetcher.FetchFile(ctx, fileKey)
	if err != nil {
		logger.Warn("tokens.fetch.failed", "error", err)
		return tokens.Defaults(), false
	}
	if file == nil {
		logger.Warn("tokens.fetch.empty")
		return tokens.Defaults(), false
	}

	styles := make(map[string]tokens.PublishedStyle, len(file.Styles))
	maps.Copy(styles, file.Styles)
	if published, err := s.fetcher.FetchPublishedStyles(ctx, fileKey); err != nil {
		logger.Debug("tokens.styles.skipped", "error", err)
	} else {
		for id, style := range published {
			if _, exists := styles[id]; !exists {
				styles[id] = style
			}
		}
	}

	result := tokens.Normalize(file.Document, styles)
	if s.ttl > 0 {
		s.cache.Put(fileKey, result)
	}

	logger.Info("tokens.fetch.completed",
		"colors", len(result.Colors),
		"typography", len(result.Typography),
		"zones", len(result.Zones),
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return result, true
}

// Invalidate drops cached tokens for the given keys, or all keys when none
// are given.
func (s *Source) Invalidate(fileKeys ...string) {
	if s == nil {
		return
	}
	keys := make([]string, 0, len(fileKeys))
	for _, key := range fileKeys {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	if len(fileKeys) > 0 && len(keys) == 0 {
		return
	}
	s.cache.Invalidate(keys...)
	s.logger.Debug("tokens.cache.invalidated", "keys", len(keys))
}
