package provider

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/tomekeeper/importer/internal/entities/content"
	"github.com/tomekeeper/importer/internal/errors"
)

// AuthContext carries the opaque credential supplied by the auth
// collaborator for one pipeline run. The importer never inspects or caches
// it beyond attaching it to outgoing requests.
type AuthContext struct {
	Token string
}

// FetchInput identifies one document fetch.
type FetchInput struct {
	ContentID string
	Kind      content.Kind
	Channel   content.Channel
	Auth      AuthContext
}

// RawDocument is the opaque payload returned by a fetcher: a decoded JSON
// object for the API channel or a parsed markup tree for the HTML channel,
// tagged with its channel and fetch timestamp. It is owned exclusively by
// the extractor that consumes it and never mutated.
type RawDocument struct {
	ContentID string
	Kind      content.Kind
	Channel   content.Channel
	FetchedAt time.Time

	// Body is the raw payload as received; it round-trips through the
	// document cache.
	Body []byte

	// JSON is set for the API channel.
	JSON map[string]any
	// HTML is set for the HTML channel.
	HTML *goquery.Document
}

// ParseRawDocument decodes a raw payload into a RawDocument for the given
// channel. Undecodable payloads yield a DATA_LOSS error so the pipeline can
// treat them as a malformed-channel failure and fall back.
func ParseRawDocument(kind content.Kind, contentID string, channel content.Channel, fetchedAt time.Time, body []byte) (*RawDocument, error) {
	doc := &RawDocument{
		ContentID: contentID,
		Kind:      kind,
		Channel:   channel,
		FetchedAt: fetchedAt,
		Body:      body,
	}

	switch channel {
	case content.ChannelAPI:
		decoded := make(map[string]any)
		if err := json.Unmarshal(body, &decoded); err != nil {
			return nil, errors.DataLossf("malformed JSON payload for %s %s: %v", kind, contentID, err).
				WithMeta("channel", channel.String())
		}
		doc.JSON = decoded

	case content.ChannelHTML:
		parsed, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			return nil, errors.DataLossf("malformed HTML payload for %s %s: %v", kind, contentID, err).
				WithMeta("channel", channel.String())
		}
		doc.HTML = parsed

	default:
		return nil, errors.InvalidArgumentf("unknown channel %q", channel)
	}

	return doc, nil
}
