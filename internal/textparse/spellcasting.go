package textparse

import (
	"regexp"
)

var spellcastingAbilityPattern = regexp.MustCompile(
	`(?i)\b(strength|dexterity|constitution|intelligence|wisdom|charisma)\s+is your spellcasting ability`)

// SpellcastingAbility matches sentences of the form "<Ability> is your
// spellcasting ability" and returns the canonical ability token. Absent
// phrasing returns false; the caller must leave the field empty rather
// than defaulting from class stereotypes, so real data gaps stay visible.
func SpellcastingAbility(text string) (string, bool) {
	m := spellcastingAbilityPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	canonical, ok := Ability(m[1])
	if !ok {
		return "", false
	}
	return canonical, true
}
