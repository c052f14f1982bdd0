// Package extract holds the per-(kind, channel) field extractors. Each
// extractor is pure and total: malformed input yields absent fields, never
// an error. Both channels spell the same concept differently, so every raw
// key or row label is resolved through the alias table before it is bound
// to a canonical field.
package extract

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Canonical field names. Provenance maps and diagnostics use these
// regardless of the source channel's spelling.
const (
	KeyName                = "name"
	KeyDescription         = "description"
	KeyHitDice             = "hit_dice"
	KeyPrimaryAbility      = "primary_ability"
	KeySavingThrows        = "saving_throws"
	KeySkillChoices        = "skill_choices"
	KeyArmorProficiencies  = "armor_proficiencies"
	KeyWeaponProficiencies = "weapon_proficiencies"
	KeyToolProficiencies   = "tool_proficiencies"
	KeyEquipment           = "equipment"
	KeySpellcasting        = "spellcasting"
	KeyTags                = "tags"

	KeyLevel         = "level"
	KeySchool        = "school"
	KeyCastingTime   = "casting_time"
	KeyRange         = "range"
	KeyDuration      = "duration"
	KeyComponents    = "components"
	KeyRitual        = "ritual"
	KeyConcentration = "concentration"
	KeyClasses       = "classes"
	KeyAttack        = "attack"
	KeySave          = "save"
	KeySaveAbility   = "save_ability"
	KeyFixedDC       = "fixed_dc"
	KeyOnSave        = "on_save"
	KeyDamage        = "damage"
	KeyDamageType    = "damage_type"
	KeyHeal          = "heal"
	KeyHigherLevel   = "higher_level"
	KeyScalingDelta  = "scaling_delta"
	KeyActivities    = "activities"
)

// keyAliases maps every known channel spelling (JSON keys, HTML row labels,
// heading text) to its canonical field name. Lookup is case-insensitive
// after trimming.
var keyAliases = map[string]string{
	"name":  KeyName,
	"title": KeyName,

	"description": KeyDescription,
	"desc":        KeyDescription,

	"hit_dice":      KeyHitDice,
	"hitdice":       KeyHitDice,
	"hit_die":       KeyHitDice,
	"hit die":       KeyHitDice,
	"hit point die": KeyHitDice,

	"primary_ability": KeyPrimaryAbility,
	"primary ability": KeyPrimaryAbility,

	"saving_throws":              KeySavingThrows,
	"saving throws":              KeySavingThrows,
	"saving throw proficiencies": KeySavingThrows,

	"skill_choices":       KeySkillChoices,
	"skills":              KeySkillChoices,
	"skill proficiencies": KeySkillChoices,

	"armor":                KeyArmorProficiencies,
	"armor_proficiencies":  KeyArmorProficiencies,
	"armor training":       KeyArmorProficiencies,
	"weapons":              KeyWeaponProficiencies,
	"weapon_proficiencies": KeyWeaponProficiencies,
	"weapon proficiencies": KeyWeaponProficiencies,
	"tools":                KeyToolProficiencies,
	"tool_proficiencies":   KeyToolProficiencies,
	"tool proficiencies":   KeyToolProficiencies,

	"equipment":          KeyEquipment,
	"starting_equipment": KeyEquipment,
	"starting equipment": KeyEquipment,

	"spellcasting":         KeySpellcasting,
	"spellcasting_ability": KeySpellcasting,
	"spellcasting ability": KeySpellcasting,

	"tags": KeyTags,

	"level":         KeyLevel,
	"spell_level":   KeyLevel,
	"school":        KeySchool,
	"spell_school":  KeySchool,
	"casting_time":  KeyCastingTime,
	"casting time":  KeyCastingTime,
	"range":         KeyRange,
	"duration":      KeyDuration,
	"components":    KeyComponents,
	"ritual":        KeyRitual,
	"concentration": KeyConcentration,
	"classes":       KeyClasses,

	"higher_level":                   KeyHigherLevel,
	"at_higher_levels":               KeyHigherLevel,
	"at higher levels":               KeyHigherLevel,
	"using a higher-level spell slot": KeyHigherLevel,
}

// CanonicalKey resolves a raw channel spelling to its canonical field
// name. Unknown spellings resolve to their lowercased trimmed form, so new
// provider fields degrade gracefully instead of colliding.
func CanonicalKey(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := keyAliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// excerptHash fingerprints a document payload for log lines. Logging the
// full payload would blow up log size; the hash is enough to correlate
// warnings with a cached document.
func excerptHash(body []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(body)
	return fmt.Sprintf("%016x", h.Sum64())
}
