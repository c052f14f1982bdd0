package extract

import (
	"fmt"
	"strconv"
	"strings"
)

// Light type coercion over decoded JSON values. The API channel is only
// partially stable: the same field arrives as a string, an array of
// strings, an array of {name} objects, or a number depending on provider
// version, so every lookup tolerates all shapes it has been seen in.

// asString coerces a scalar JSON value to a string.
func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(s), true
	default:
		return "", false
	}
}

// asText coerces string-or-string-array values into one text block.
// Descriptions arrive both ways.
func asText(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	if list, ok := v.([]any); ok {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := asString(item); ok {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		return strings.Join(parts, "\n"), true
	}
	return "", false
}

// asStringList coerces array-or-string values into a string slice. Array
// elements may be plain strings or {name}/{key} reference objects.
func asStringList(v any) ([]string, bool) {
	switch list := v.(type) {
	case string:
		if strings.TrimSpace(list) == "" {
			return nil, false
		}
		parts := strings.Split(list, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, true
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := asName(item); ok {
				out = append(out, s)
			}
		}
		return out, len(out) > 0
	default:
		return nil, false
	}
}

// asName extracts a display name from a string or a reference object.
func asName(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	if m, ok := v.(map[string]any); ok {
		for _, key := range []string{"name", "label", "key"} {
			if s, ok := asString(m[key]); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// asInt coerces a JSON number-or-string to an int.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// asBool coerces a JSON bool-or-string to a bool.
func asBool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, false
		}
		return parsed, true
	default:
		return false, false
	}
}

// asLevelTable coerces a {"2": "1d8", ...} slot-level table.
func asLevelTable(v any) (map[int]string, bool) {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil, false
	}

	table := make(map[int]string, len(m))
	for rawLevel, rawFormula := range m {
		level, err := strconv.Atoi(strings.TrimSpace(rawLevel))
		if err != nil {
			continue
		}
		if formula, ok := asString(rawFormula); ok && formula != "" {
			table[level] = formula
		}
	}
	if len(table) == 0 {
		return nil, false
	}
	return table, true
}

// normalizeHitDice renders hit dice uniformly as "1dN" whether the source
// sent 6, "6", "d6", or "1d6".
func normalizeHitDice(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		return fmt.Sprintf("1d%d", n)
	}
	if strings.HasPrefix(trimmed, "d") {
		return "1" + trimmed
	}
	return trimmed
}
