package extract

import (
	"github.com/tomekeeper/importer/internal/entities/content"
)

// Required-field sets per content kind. An extraction missing any of these
// is "incomplete" and triggers the second channel's fetch and extract.

// ClassMissing returns the required class fields absent from an extraction.
func ClassMissing(fields *content.ClassFields) []string {
	if fields == nil {
		return []string{KeyName, KeyHitDice, KeySavingThrows}
	}

	missing := []string{}
	if !fields.Name.Present {
		missing = append(missing, KeyName)
	}
	if !fields.HitDice.Present {
		missing = append(missing, KeyHitDice)
	}
	if !fields.SavingThrows.Present {
		missing = append(missing, KeySavingThrows)
	}
	return missing
}

// SpellMissing returns the required spell fields absent from an extraction.
func SpellMissing(fields *content.SpellFields) []string {
	if fields == nil {
		return []string{KeyName, KeyLevel, KeyDescription}
	}

	missing := []string{}
	if !fields.Name.Present {
		missing = append(missing, KeyName)
	}
	if !fields.Level.Present {
		missing = append(missing, KeyLevel)
	}
	if !fields.Description.Present {
		missing = append(missing, KeyDescription)
	}
	return missing
}
