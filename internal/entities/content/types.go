// Package content defines the canonical data model shared by every stage of
// the import pipeline: channels, provenance, partial per-channel fields, and
// the merged canonical records handed to downstream consumers.
package content

// Kind identifies a content type handled by the importer.
type Kind string

// Content kinds
const (
	KindClass Kind = "class"
	KindSpell Kind = "spell"
)

// String returns the string representation of the kind
func (k Kind) String() string {
	return string(k)
}

// Channel identifies one of the two independent data sources for the same
// logical entity.
type Channel string

// Source channels
const (
	// ChannelAPI is the provider's structured JSON API
	ChannelAPI Channel = "api"
	// ChannelHTML is the provider's scraped HTML site
	ChannelHTML Channel = "html"
)

// String returns the string representation of the channel
func (c Channel) String() string {
	return string(c)
}

// Provenance records which channel (or default) supplied a field's value.
type Provenance string

// Provenance tags
const (
	ProvenanceAPI     Provenance = "api"
	ProvenanceHTML    Provenance = "html"
	ProvenanceDefault Provenance = "default"
)

// Confidence records how a field's value was derived. Heuristic values come
// from pattern matching over free text; exact values from direct structural
// lookups. The merge engine prefers exact-confidence data when both
// channels supply a field.
type Confidence string

// Confidence levels
const (
	ConfidenceExact     Confidence = "exact"
	ConfidenceHeuristic Confidence = "heuristic"
)

// DiagnosticKind classifies a field-level warning attached to a record.
type DiagnosticKind string

// Diagnostic kinds
const (
	// DiagnosticExtractionGap means a required or known field came back
	// absent from both channels and was filled with its declared default.
	DiagnosticExtractionGap DiagnosticKind = "extraction_gap"
	// DiagnosticHeuristicParse means the selected value was derived by
	// pattern matching rather than exact lookup.
	DiagnosticHeuristicParse DiagnosticKind = "heuristic_parse"
	// DiagnosticUnclassified means no automation heuristic matched and the
	// spell received the Utility fallback activity.
	DiagnosticUnclassified DiagnosticKind = "unclassified_automation"
	// DiagnosticChannelFallback means the primary channel was incomplete or
	// failed and the secondary channel was consulted.
	DiagnosticChannelFallback DiagnosticKind = "channel_fallback"
)

// Diagnostic is a field-level warning surfaced alongside a record. The
// pipeline never drops diagnostics; telemetry and manual review consume
// them downstream.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Field   string         `json:"field,omitempty"`
	Message string         `json:"message"`
}

// Abilities is the fixed six-ability vocabulary. Free-text ability tokens
// are validated against it; unrecognized tokens are dropped, never invented.
var Abilities = []string{
	"strength",
	"dexterity",
	"constitution",
	"intelligence",
	"wisdom",
	"charisma",
}

// IsAbility reports whether the given canonical token is one of the six
// abilities.
func IsAbility(token string) bool {
	for _, a := range Abilities {
		if token == a {
			return true
		}
	}
	return false
}
