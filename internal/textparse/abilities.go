// Package textparse turns recurring provider free-text shapes into typed
// structures. Every parser is stateless and deterministic for identical
// input, and reports heuristic confidence whenever pattern matching (as
// opposed to exact structural lookup) produced the result.
package textparse

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/tomekeeper/importer/internal/entities/content"
)

// abilityAliases maps every accepted spelling to the canonical ability token.
var abilityAliases = map[string]string{
	"str":          "strength",
	"strength":     "strength",
	"dex":          "dexterity",
	"dexterity":    "dexterity",
	"con":          "constitution",
	"constitution": "constitution",
	"int":          "intelligence",
	"intelligence": "intelligence",
	"wis":          "wisdom",
	"wisdom":       "wisdom",
	"cha":          "charisma",
	"charisma":     "charisma",
}

var listSeparators = regexp.MustCompile(`\s*(?:,|\band\b|\bor\b)\s*`)

// AbilityListResult is the outcome of parsing an ability list.
type AbilityListResult struct {
	Abilities  []string
	Dropped    []string
	Confidence content.Confidence
}

// AbilityList splits free text like "Strength and Dexterity" or
// "Wisdom, Intelligence or Charisma" into canonical ability tokens.
// Unrecognized tokens are dropped with a warning, never silently invented.
func AbilityList(text string) AbilityListResult {
	result := AbilityListResult{
		Abilities:  []string{},
		Dropped:    []string{},
		Confidence: content.ConfidenceHeuristic,
	}

	for _, token := range listSeparators.Split(text, -1) {
		token = strings.TrimSpace(strings.Trim(token, ".;:"))
		if token == "" {
			continue
		}

		canonical, ok := abilityAliases[strings.ToLower(token)]
		if !ok {
			slog.Warn("dropping unrecognized ability token", "token", token)
			result.Dropped = append(result.Dropped, token)
			continue
		}
		result.Abilities = append(result.Abilities, canonical)
	}

	return result
}

// Ability canonicalizes a single ability token. Returns false for anything
// outside the six-ability vocabulary.
func Ability(token string) (string, bool) {
	canonical, ok := abilityAliases[strings.ToLower(strings.TrimSpace(token))]
	return canonical, ok
}
