package textparse

import (
	"regexp"
	"strings"
)

var branchMarker = regexp.MustCompile(`\([a-zA-Z]\)`)

// equipmentCategories maps category phrasing inside equipment bundles to
// the provider's category keys, so downstream pickers can expand them.
var equipmentCategories = map[string]string{
	"a martial weapon":    "martial-weapons",
	"any martial weapon":  "martial-weapons",
	"two martial weapons": "martial-weapons",
	"a simple weapon":     "simple-weapons",
	"any simple weapon":   "simple-weapons",
	"two simple weapons":  "simple-weapons",
}

// EquipmentAlternatives parses "choose one of the following" starting
// equipment text of the shape "(a) ...; or (b) ..." into ordered item
// bundles. Branch items are split on commas that are not inside
// parentheses, so "a quiver (20 arrows)" stays one item. Input without
// branch markers yields a single bundle, not a false choice.
func EquipmentAlternatives(text string) [][]string {
	text = stripChoicePreamble(text)

	markers := branchMarker.FindAllStringIndex(text, -1)
	if len(markers) < 2 {
		bundle := splitBundle(text)
		if len(bundle) == 0 {
			return [][]string{}
		}
		return [][]string{bundle}
	}

	bundles := make([][]string, 0, len(markers))
	for i, marker := range markers {
		start := marker[1]
		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}

		branch := strings.TrimSpace(text[start:end])
		branch = trimBranchJoiner(branch)
		if bundle := splitBundle(branch); len(bundle) > 0 {
			bundles = append(bundles, bundle)
		}
	}

	return bundles
}

// EquipmentCategory reports the provider category key referenced by a
// bundle item like "a martial weapon", if any.
func EquipmentCategory(item string) (string, bool) {
	key, ok := equipmentCategories[strings.ToLower(strings.TrimSpace(item))]
	return key, ok
}

// stripChoicePreamble drops a leading "Choose ...:" run so the preamble is
// not mistaken for a bundle item.
func stripChoicePreamble(text string) string {
	idx := strings.Index(text, ":")
	if idx < 0 {
		return text
	}
	if strings.Contains(strings.ToLower(text[:idx]), "choose") {
		return text[idx+1:]
	}
	return text
}

// trimBranchJoiner removes the "; or" / "or" connective left at a branch edge.
func trimBranchJoiner(branch string) string {
	branch = strings.TrimSpace(branch)
	branch = strings.TrimSuffix(branch, ";")
	branch = strings.TrimSpace(branch)
	lower := strings.ToLower(branch)
	if strings.HasSuffix(lower, " or") {
		branch = branch[:len(branch)-3]
	} else if lower == "or" {
		branch = ""
	}
	return strings.TrimSpace(branch)
}

// SplitList splits text on commas that are not inside parentheses, so
// "a quiver (20 arrows), a dagger" yields two items. Items come back
// trimmed; empty items are dropped.
func SplitList(text string) []string {
	var (
		items []string
		depth int
		start int
	)

	flush := func(end int) {
		if item := strings.TrimSpace(text[start:end]); item != "" {
			items = append(items, item)
		}
	}

	for i, r := range text {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(text))

	return items
}

// splitBundle splits a branch into items on top-level commas, stripping
// list connectives left over from the prose.
func splitBundle(branch string) []string {
	var items []string
	for _, item := range SplitList(branch) {
		item = strings.TrimSuffix(item, ";")
		item = strings.TrimSpace(strings.TrimPrefix(item, "and "))
		if item != "" && !strings.EqualFold(item, "or") {
			items = append(items, item)
		}
	}
	return items
}
