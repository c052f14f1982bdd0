// Package config loads importer configuration from environment variables.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/tomekeeper/importer/internal/errors"
)

// Config is the process-level configuration for the importer CLI.
type Config struct {
	// APIBaseURL is the root of the provider's structured JSON API.
	APIBaseURL string `env:"IMPORTER_API_BASE_URL"`
	// SiteBaseURL is the root of the provider's HTML site.
	SiteBaseURL string `env:"IMPORTER_SITE_BASE_URL"`
	// AuthToken is the bearer credential attached to channel fetches.
	AuthToken string `env:"IMPORTER_AUTH_TOKEN"`

	// RedisAddress enables the document cache when set.
	RedisAddress string `env:"IMPORTER_REDIS_ADDRESS"`
	// CacheTTL bounds how long fetched documents stay cached.
	CacheTTL time.Duration `env:"IMPORTER_CACHE_TTL" envDefault:"24h"`

	HTTPTimeout time.Duration `env:"IMPORTER_HTTP_TIMEOUT" envDefault:"30s"`
	UserAgent   string        `env:"IMPORTER_USER_AGENT" envDefault:"tomekeeper-importer/1.0"`

	// BatchConcurrency caps concurrent fetches during batch spell imports.
	BatchConcurrency int `env:"IMPORTER_BATCH_CONCURRENCY" envDefault:"4"`
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures required settings are present and sane.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.APIBaseURL == "" {
		vb.RequiredField("IMPORTER_API_BASE_URL")
	}
	if c.SiteBaseURL == "" {
		vb.RequiredField("IMPORTER_SITE_BASE_URL")
	}
	if c.HTTPTimeout <= 0 {
		vb.InvalidField("IMPORTER_HTTP_TIMEOUT", "must be positive")
	}
	if c.CacheTTL <= 0 {
		vb.InvalidField("IMPORTER_CACHE_TTL", "must be positive")
	}
	if c.BatchConcurrency < 1 {
		vb.InvalidField("IMPORTER_BATCH_CONCURRENCY", "must be at least 1")
	}

	return vb.Build()
}
