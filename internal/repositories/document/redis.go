// Package document provides the raw-document cache shared by concurrent
// pipeline runs. Entries are keyed by (kind, contentID, channel) and expire
// on a per-kind TTL, so cache reads and writes stay independent per key and
// no cross-request locking is needed.
package document

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tomekeeper/importer/internal/clients/provider"
	"github.com/tomekeeper/importer/internal/entities/content"
	"github.com/tomekeeper/importer/internal/errors"
	redisclient "github.com/tomekeeper/importer/internal/redis"
)

const documentKeyPrefix = "document:"

// envelope is the cached wire form of a raw document. Only the raw body is
// stored; the channel-specific parsed form is rebuilt on read.
type envelope struct {
	ContentID string          `json:"content_id"`
	Kind      content.Kind    `json:"kind"`
	Channel   content.Channel `json:"channel"`
	FetchedAt time.Time       `json:"fetched_at"`
	Body      []byte          `json:"body"`
}

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis document cache.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed document cache.
func NewRedis(cfg *RedisConfig) (provider.DocumentCache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Get(ctx context.Context, kind content.Kind, contentID string, channel content.Channel) (*provider.RawDocument, error) {
	if contentID == "" {
		return nil, errors.InvalidArgument("content ID cannot be empty")
	}

	key := cacheKey(kind, contentID, channel)
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if redisclient.IsNil(err) {
			return nil, errors.NotFoundf("no cached document for %s", key)
		}
		return nil, errors.Wrapf(err, "failed to read cached document %s", key)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal cached document %s", key)
	}

	doc, err := provider.ParseRawDocument(env.Kind, env.ContentID, env.Channel, env.FetchedAt, env.Body)
	if err != nil {
		// A cached body that no longer parses is treated as a miss so the
		// caller re-fetches instead of failing the pipeline.
		return nil, errors.NotFoundf("cached document %s is unreadable", key)
	}
	return doc, nil
}

func (r *redisRepository) Put(ctx context.Context, doc *provider.RawDocument, ttl time.Duration) error {
	if doc == nil {
		return errors.InvalidArgument("document cannot be nil")
	}
	if doc.ContentID == "" {
		return errors.InvalidArgument("document content ID cannot be empty")
	}

	data, err := json.Marshal(envelope{
		ContentID: doc.ContentID,
		Kind:      doc.Kind,
		Channel:   doc.Channel,
		FetchedAt: doc.FetchedAt,
		Body:      doc.Body,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to marshal document envelope")
	}

	key := cacheKey(doc.Kind, doc.ContentID, doc.Channel)
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return errors.Wrapf(err, "failed to write cached document %s", key)
	}
	return nil
}

func cacheKey(kind content.Kind, contentID string, channel content.Channel) string {
	return documentKeyPrefix + kind.String() + ":" + contentID + ":" + channel.String()
}
