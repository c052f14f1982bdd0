package merge

import (
	"regexp"
	"strings"

	"github.com/tomekeeper/importer/internal/entities/content"
	"github.com/tomekeeper/importer/internal/extract"
	"github.com/tomekeeper/importer/internal/textparse"
)

var skillPoolPreamble = regexp.MustCompile(`(?i)^\s*choose\s+(?:any\s+)?\S+\s*(?:skills?)?\s*(?:from)?\s*:?\s*`)

// Class merges the two per-channel class extractions into one canonical
// record. Derived sub-records (advancements, starting equipment) are
// computed from the already-merged trait text, never per channel, so both
// channels contributing text cannot double-count entries.
func Class(contentID string, api, html *content.ClassFields) *content.ClassRecord {
	if api == nil {
		api = &content.ClassFields{}
	}
	if html == nil {
		html = &content.ClassFields{}
	}

	record := &content.ClassRecord{RecordCore: newCore(contentID, content.KindClass)}
	core := &record.RecordCore

	record.Name = resolveString(core, extract.KeyName, api.Name, html.Name)
	record.Description = resolveString(core, extract.KeyDescription, api.Description, html.Description)
	record.HitDice = resolveString(core, extract.KeyHitDice, api.HitDice, html.HitDice)
	record.PrimaryAbility = resolveString(core, extract.KeyPrimaryAbility, api.PrimaryAbility, html.PrimaryAbility)
	record.SavingThrows = normalizeAbilities(core, resolveList(core, extract.KeySavingThrows, api.SavingThrows, html.SavingThrows))
	record.ArmorProficiencies = resolveList(core, extract.KeyArmorProficiencies, api.ArmorProficiencies, html.ArmorProficiencies)
	record.WeaponProficiencies = resolveList(core, extract.KeyWeaponProficiencies, api.WeaponProficiencies, html.WeaponProficiencies)
	record.ToolProficiencies = resolveList(core, extract.KeyToolProficiencies, api.ToolProficiencies, html.ToolProficiencies)
	record.Tags = resolveList(core, extract.KeyTags, api.Tags, html.Tags)

	skillText := resolveString(core, extract.KeySkillChoices, api.SkillChoiceText, html.SkillChoiceText)
	equipmentText := resolveString(core, extract.KeyEquipment, api.EquipmentText, html.EquipmentText)
	spellcastingText := resolveQuiet(core, extract.KeySpellcasting, api.SpellcastingText, html.SpellcastingText,
		"", func(s string) bool { return s == "" })

	record.Advancements = deriveAdvancements(core, skillText, record)
	record.StartingEquipment, record.EquipmentCategories = deriveEquipment(core, equipmentText)
	record.SpellcastingAbility = deriveSpellcasting(core, spellcastingText)

	return record
}

// normalizeAbilities canonicalizes saving-throw tokens from either
// channel's spelling, dropping anything outside the ability vocabulary.
func normalizeAbilities(core *content.RecordCore, raw []string) []string {
	out := []string{}
	for _, token := range raw {
		canonical, ok := textparse.Ability(token)
		if !ok {
			core.AddDiagnostic(content.DiagnosticHeuristicParse, extract.KeySavingThrows,
				"dropped unrecognized ability token "+token)
			continue
		}
		out = append(out, canonical)
	}
	return out
}

// deriveAdvancements turns merged proficiency text and lists into
// structured advancement entries: one choice entry from the skill text,
// plus grant entries for fixed proficiency lists.
func deriveAdvancements(core *content.RecordCore, skillText string, record *content.ClassRecord) []content.AdvancementEntry {
	entries := []content.AdvancementEntry{}

	if skillText != "" {
		count, isChoice := textparse.ChooseCount(skillText)
		pool := parseSkillPool(skillText)

		if len(pool) > 0 {
			core.AddDiagnostic(content.DiagnosticHeuristicParse, extract.KeySkillChoices,
				"skill pool derived from free text")

			if isChoice && count > 0 {
				if count > len(pool) {
					count = len(pool)
				}
				entries = append(entries, content.AdvancementEntry{
					Kind:  content.AdvancementChoice,
					Level: 1,
					Pool:  pool,
					Count: count,
				})
			} else {
				entries = append(entries, content.AdvancementEntry{
					Kind:  content.AdvancementGrant,
					Level: 1,
					Pool:  pool,
				})
			}
		}
	}

	for _, grant := range []struct {
		key  string
		pool []string
	}{
		{extract.KeyArmorProficiencies, record.ArmorProficiencies},
		{extract.KeyWeaponProficiencies, record.WeaponProficiencies},
		{extract.KeyToolProficiencies, record.ToolProficiencies},
	} {
		if len(grant.pool) == 0 {
			continue
		}
		entries = append(entries, content.AdvancementEntry{
			Kind:  content.AdvancementGrant,
			Level: 1,
			Pool:  grant.pool,
		})
	}

	return entries
}

// parseSkillPool extracts the option list from "Choose 2 from Acrobatics,
// Stealth, and Survival" style text.
func parseSkillPool(text string) []string {
	text = skillPoolPreamble.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, " and ", ", ")
	text = strings.ReplaceAll(text, " or ", ", ")

	pool := []string{}
	for _, item := range textparse.SplitList(text) {
		item = strings.TrimSpace(strings.Trim(item, "."))
		if item != "" {
			pool = append(pool, item)
		}
	}
	return pool
}

// deriveEquipment parses the merged starting-equipment text into the
// choice set and collects any category references inside bundles.
func deriveEquipment(core *content.RecordCore, equipmentText string) (content.EquipmentChoiceSet, []string) {
	categories := []string{}
	if equipmentText == "" {
		return content.EquipmentChoiceSet{}, categories
	}

	core.AddDiagnostic(content.DiagnosticHeuristicParse, extract.KeyEquipment,
		"equipment bundles derived from free text")

	set := content.EquipmentChoiceSet(textparse.EquipmentAlternatives(equipmentText))
	seen := map[string]bool{}
	for _, bundle := range set {
		for _, item := range bundle {
			if category, ok := textparse.EquipmentCategory(item); ok && !seen[category] {
				seen[category] = true
				categories = append(categories, category)
			}
		}
	}
	return set, categories
}

// deriveSpellcasting reads the spellcasting ability from merged text.
// A class with spellcasting text that does not state its ability keeps an
// empty ability and a gap diagnostic; stereotype tables never fill it.
func deriveSpellcasting(core *content.RecordCore, spellcastingText string) string {
	if spellcastingText == "" {
		return ""
	}

	ability, ok := textparse.SpellcastingAbility(spellcastingText)
	if !ok {
		core.AddDiagnostic(content.DiagnosticExtractionGap, extract.KeySpellcasting,
			"spellcasting text present but ability sentence not found")
		return ""
	}

	core.AddDiagnostic(content.DiagnosticHeuristicParse, extract.KeySpellcasting,
		"spellcasting ability derived from free text")
	return ability
}
