package provider

import (
	"context"
	"log/slog"
	"time"

	"github.com/tomekeeper/importer/internal/entities/content"
	"github.com/tomekeeper/importer/internal/errors"
)

// DocumentCache stores raw documents keyed by (kind, contentID, channel)
// with a TTL. Implementations must return NOT_FOUND on a miss.
type DocumentCache interface {
	Get(ctx context.Context, kind content.Kind, contentID string, channel content.Channel) (*RawDocument, error)
	Put(ctx context.Context, doc *RawDocument, ttl time.Duration) error
}

// CachedConfig configures the caching decorator.
type CachedConfig struct {
	Base  Client
	Cache DocumentCache
	// TTLByKind overrides the default TTL per content kind. Class and
	// spell text is largely static, so the default leans long.
	TTLByKind  map[content.Kind]time.Duration
	DefaultTTL time.Duration
}

// Validate validates the CachedConfig and sets defaults if not provided.
func (cfg *CachedConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if cfg.Base == nil {
		vb.RequiredField("Base")
	}
	if cfg.Cache == nil {
		vb.RequiredField("Cache")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if cfg.DefaultTTL == 0 {
		cfg.DefaultTTL = 24 * time.Hour
	}
	return nil
}

type cachedClient struct {
	base       Client
	cache      DocumentCache
	ttlByKind  map[content.Kind]time.Duration
	defaultTTL time.Duration
}

// NewCached wraps a client with document caching. Cache failures degrade to
// a direct fetch; they never fail the request.
func NewCached(cfg *CachedConfig) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid cached client config")
	}

	return &cachedClient{
		base:       cfg.Base,
		cache:      cfg.Cache,
		ttlByKind:  cfg.TTLByKind,
		defaultTTL: cfg.DefaultTTL,
	}, nil
}

func (c *cachedClient) Fetch(ctx context.Context, input *FetchInput) (*RawDocument, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	cached, err := c.cache.Get(ctx, input.Kind, input.ContentID, input.Channel)
	if err == nil {
		slog.Debug("document cache hit",
			"kind", input.Kind, "content_id", input.ContentID, "channel", input.Channel)
		return cached, nil
	}
	if !errors.IsNotFound(err) {
		slog.Warn("document cache read failed, fetching directly",
			"kind", input.Kind, "content_id", input.ContentID, "channel", input.Channel, "error", err)
	}

	doc, err := c.base.Fetch(ctx, input)
	if err != nil {
		return nil, err
	}

	if putErr := c.cache.Put(ctx, doc, c.ttl(input.Kind)); putErr != nil {
		slog.Warn("document cache write failed",
			"kind", input.Kind, "content_id", input.ContentID, "channel", input.Channel, "error", putErr)
	}

	return doc, nil
}

func (c *cachedClient) ttl(kind content.Kind) time.Duration {
	if ttl, ok := c.ttlByKind[kind]; ok {
		return ttl
	}
	return c.defaultTTL
}
