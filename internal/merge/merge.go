// Package merge reconciles the two per-channel partial extractions into one
// canonical record. Precedence is uniform across fields: a non-empty API
// value wins, then a non-empty HTML value, then the kind's declared default,
// so the output never depends on which channel was extracted first. Every
// selected value's provenance lands in the record, and heuristic-derived
// selections are flagged for downstream review.
package merge

import (
	"github.com/tomekeeper/importer/internal/entities/content"
)

// resolve applies the channel precedence rule to one field and records its
// provenance and diagnostics on the core.
func resolve[T any](core *content.RecordCore, key string, api, html content.FieldValue[T], def T, empty func(T) bool) T {
	pick := func(fv content.FieldValue[T]) T {
		core.SourceProvenance[key] = fv.Provenance
		if fv.Confidence == content.ConfidenceHeuristic {
			core.AddDiagnostic(content.DiagnosticHeuristicParse, key, "value derived by pattern matching")
		}
		return fv.Value
	}

	if api.Present && !empty(api.Value) {
		return pick(api)
	}
	if html.Present && !empty(html.Value) {
		return pick(html)
	}

	core.SourceProvenance[key] = content.ProvenanceDefault
	if !api.Present && !html.Present {
		core.AddDiagnostic(content.DiagnosticExtractionGap, key, "absent from both channels")
	}
	return def
}

func resolveString(core *content.RecordCore, key string, api, html content.FieldValue[string]) string {
	return resolve(core, key, api, html, "", func(s string) bool { return s == "" })
}

func resolveList(core *content.RecordCore, key string, api, html content.FieldValue[[]string]) []string {
	out := resolve(core, key, api, html, []string{}, func(l []string) bool { return len(l) == 0 })
	if out == nil {
		out = []string{}
	}
	return out
}

// Booleans and integers have no empty state beyond absence; a present
// false or zero is a real value.
func resolveBool(core *content.RecordCore, key string, api, html content.FieldValue[bool]) bool {
	return resolve(core, key, api, html, false, func(bool) bool { return false })
}

func resolveInt(core *content.RecordCore, key string, api, html content.FieldValue[int]) int {
	return resolve(core, key, api, html, 0, func(int) bool { return false })
}

// resolveQuiet is resolve without the extraction-gap diagnostic, for
// optional automation signals where absence is the normal case (most
// spells have no attack roll, no ritual tag, no fixed DC) and a gap
// warning per field per spell would drown real gaps.
func resolveQuiet[T any](core *content.RecordCore, key string, api, html content.FieldValue[T], def T, empty func(T) bool) T {
	pick := func(fv content.FieldValue[T]) T {
		core.SourceProvenance[key] = fv.Provenance
		if fv.Confidence == content.ConfidenceHeuristic {
			core.AddDiagnostic(content.DiagnosticHeuristicParse, key, "value derived by pattern matching")
		}
		return fv.Value
	}

	if api.Present && !empty(api.Value) {
		return pick(api)
	}
	if html.Present && !empty(html.Value) {
		return pick(html)
	}
	core.SourceProvenance[key] = content.ProvenanceDefault
	return def
}

func resolveSignalBool(core *content.RecordCore, key string, api, html content.FieldValue[bool]) bool {
	return resolveQuiet(core, key, api, html, false, func(bool) bool { return false })
}

func resolveSignalInt(core *content.RecordCore, key string, api, html content.FieldValue[int]) int {
	return resolveQuiet(core, key, api, html, 0, func(int) bool { return false })
}

func resolveSignalString(core *content.RecordCore, key string, api, html content.FieldValue[string]) string {
	return resolveQuiet(core, key, api, html, "", func(s string) bool { return s == "" })
}

// Level tables are optional signals too; most spells do not scale.
func resolveSignalTable(core *content.RecordCore, key string, api, html content.FieldValue[map[int]string]) map[int]string {
	out := resolveQuiet(core, key, api, html, map[int]string{}, func(m map[int]string) bool { return len(m) == 0 })
	if out == nil {
		out = map[int]string{}
	}
	return out
}

func newCore(contentID string, kind content.Kind) content.RecordCore {
	return content.RecordCore{
		ID:               contentID,
		Kind:             kind,
		Tags:             []string{},
		SourceProvenance: make(map[string]content.Provenance),
		Diagnostics:      []content.Diagnostic{},
	}
}
