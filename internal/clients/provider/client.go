// Package provider is the location for the content provider fetchers: one
// per channel, both behind the Client interface. Fetchers are pure I/O
// adapters; they perform exactly one network call per invocation and leave
// retry policy to the transport.
package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tomekeeper/importer/internal/entities/content"
	"github.com/tomekeeper/importer/internal/errors"
	"github.com/tomekeeper/importer/internal/pkg/clock"
)

//go:generate mockgen -destination=mock/mock_client.go -package=providermock github.com/tomekeeper/importer/internal/clients/provider Client

// Client defines the interface for fetching raw provider documents.
type Client interface {
	// Fetch retrieves one raw document over the requested channel.
	// Failures come back as coded errors (UNAUTHENTICATED, UNAVAILABLE,
	// NOT_FOUND, DATA_LOSS) rather than panics, so the pipeline can decide
	// whether to fall back to the other channel.
	Fetch(ctx context.Context, input *FetchInput) (*RawDocument, error)
}

// Config contains configuration options for the provider client.
type Config struct {
	// APIBaseURL is the root of the structured JSON API
	APIBaseURL string
	// SiteBaseURL is the root of the scraped HTML site
	SiteBaseURL string
	// HTTPTimeout for provider requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// UserAgent sent with every request
	UserAgent string
	// Clock supplies fetch timestamps (optional, defaults to system time)
	Clock clock.Clock
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("APIBaseURL", cfg.APIBaseURL, vb)
	errors.ValidateRequired("SiteBaseURL", cfg.SiteBaseURL, vb)
	if err := vb.Build(); err != nil {
		return err
	}

	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "tomekeeper-importer/1.0"
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	return nil
}

type client struct {
	http      *http.Client
	apiBase   string
	siteBase  string
	userAgent string
	clock     clock.Clock
}

// New creates a new provider client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid provider config")
	}

	return &client{
		http:      &http.Client{Timeout: cfg.HTTPTimeout},
		apiBase:   cfg.APIBaseURL,
		siteBase:  cfg.SiteBaseURL,
		userAgent: cfg.UserAgent,
		clock:     cfg.Clock,
	}, nil
}

func (c *client) Fetch(ctx context.Context, input *FetchInput) (*RawDocument, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ContentID == "" {
		return nil, errors.InvalidArgument("content ID is required")
	}
	if input.Auth.Token == "" {
		// Rejected credentials surface the same way; no network call is
		// spent on a request that cannot succeed.
		return nil, errors.Unauthenticatedf("no auth token for %s %s", input.Kind, input.ContentID).
			WithMeta("channel", input.Channel.String())
	}

	url, err := c.documentURL(input)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build request for %s", url)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Authorization", "Bearer "+input.Auth.Token)
	if input.Channel == content.ChannelAPI {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable,
			fmt.Sprintf("provider request failed for %s %s", input.Kind, input.ContentID)).
			WithMeta("channel", input.Channel.String())
	}
	defer func() { _ = resp.Body.Close() }()

	if code := errors.FromHTTPStatus(resp.StatusCode); code != errors.CodeOK {
		return nil, errors.Newf(code, "provider returned %s for %s %s", resp.Status, input.Kind, input.ContentID).
			WithMeta("channel", input.Channel.String()).
			WithMeta("status", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read provider response").
			WithMeta("channel", input.Channel.String())
	}

	return ParseRawDocument(input.Kind, input.ContentID, input.Channel, c.clock.Now(), body)
}

// documentURL builds the channel-specific URL for a content entity.
func (c *client) documentURL(input *FetchInput) (string, error) {
	var base string
	switch input.Channel {
	case content.ChannelAPI:
		base = c.apiBase
	case content.ChannelHTML:
		base = c.siteBase
	default:
		return "", errors.InvalidArgumentf("unknown channel %q", input.Channel)
	}

	switch input.Kind {
	case content.KindClass:
		return fmt.Sprintf("%s/classes/%s", base, input.ContentID), nil
	case content.KindSpell:
		return fmt.Sprintf("%s/spells/%s", base, input.ContentID), nil
	default:
		return "", errors.InvalidArgumentf("unknown content kind %q", input.Kind)
	}
}
