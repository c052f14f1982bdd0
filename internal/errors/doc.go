// Package errors provides the structured error handling used across the importer.
//
// It provides:
//   - Structured errors with codes, messages, and metadata
//   - Fetch-failure classification from provider HTTP status codes
//   - Error context preservation through wrapping
//   - Validation error helpers with field-level detail
//   - Type-safe error checking
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("spell not found")
//	err := errors.InvalidArgumentf("invalid spell level: %d", level)
//
// Adding metadata:
//
//	err := errors.Unavailable("provider returned 503").
//	    WithMeta("content_id", contentID).
//	    WithMeta("channel", channel)
//
// Wrapping errors:
//
//	if err := cache.Get(ctx, key); err != nil {
//	    return errors.Wrap(err, "failed to read cached document")
//	}
//
// Checking error types:
//
//	if errors.IsUnavailable(err) {
//	    // fall back to the other channel
//	}
package errors
