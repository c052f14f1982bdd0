package merge

import (
	"strings"

	"github.com/tomekeeper/importer/internal/entities/content"
	"github.com/tomekeeper/importer/internal/extract"
	"github.com/tomekeeper/importer/internal/textparse"
)

// Spell merges the two per-channel spell extractions into one canonical
// record. Activities start empty; the automation engine synthesizes them
// from the merged signals afterwards.
func Spell(contentID string, api, html *content.SpellFields) *content.SpellRecord {
	if api == nil {
		api = &content.SpellFields{}
	}
	if html == nil {
		html = &content.SpellFields{}
	}

	record := &content.SpellRecord{
		RecordCore: newCore(contentID, content.KindSpell),
		Activities: []content.Activity{},
	}
	core := &record.RecordCore

	record.Name = resolveString(core, extract.KeyName, api.Name, html.Name)
	record.Description = resolveString(core, extract.KeyDescription, api.Description, html.Description)
	record.Level = resolveInt(core, extract.KeyLevel, api.Level, html.Level)
	record.School = resolveString(core, extract.KeySchool, api.School, html.School)
	record.CastingTime = resolveString(core, extract.KeyCastingTime, api.CastingTime, html.CastingTime)
	record.Range = resolveString(core, extract.KeyRange, api.Range, html.Range)
	record.Duration = resolveString(core, extract.KeyDuration, api.Duration, html.Duration)
	record.Components = resolveList(core, extract.KeyComponents, api.Components, html.Components)
	record.Classes = resolveList(core, extract.KeyClasses, api.Classes, html.Classes)
	record.Tags = resolveList(core, extract.KeyTags, api.Tags, html.Tags)

	record.Ritual = resolveSignalBool(core, extract.KeyRitual, api.Ritual, html.Ritual)
	record.Concentration = resolveSignalBool(core, extract.KeyConcentration, api.Concentration, html.Concentration)
	record.RequiresAttackRoll = resolveSignalBool(core, extract.KeyAttack, api.RequiresAttackRoll, html.RequiresAttackRoll)
	record.RequiresSave = resolveSignalBool(core, extract.KeySave, api.RequiresSave, html.RequiresSave)
	record.SaveAbility = normalizeSaveAbility(core, resolveSignalString(core, extract.KeySaveAbility, api.SaveAbility, html.SaveAbility))
	record.FixedDC = resolveSignalInt(core, extract.KeyFixedDC, api.FixedDC, html.FixedDC)
	record.DamageFormula = resolveSignalString(core, extract.KeyDamage, api.DamageFormula, html.DamageFormula)
	record.DamageType = resolveSignalString(core, extract.KeyDamageType, api.DamageType, html.DamageType)
	record.OnSave = normalizeOnSave(core, resolveSignalString(core, extract.KeyOnSave, api.OnSave, html.OnSave), record.DamageFormula)
	record.HealFormula = resolveSignalString(core, extract.KeyHeal, api.HealFormula, html.HealFormula)
	record.HigherLevel = resolveSignalTable(core, extract.KeyHigherLevel, api.HigherLevel, html.HigherLevel)
	record.ScalingDelta = resolveSignalString(core, extract.KeyScalingDelta, api.ScalingDelta, html.ScalingDelta)

	// A save with no stated ability cannot be automated as a save.
	if record.RequiresSave && record.SaveAbility == "" {
		core.AddDiagnostic(content.DiagnosticExtractionGap, extract.KeySaveAbility,
			"save detected but ability not identified")
		record.RequiresSave = false
	}

	return record
}

// normalizeSaveAbility canonicalizes "DEX"/"Dexterity"/"dexterity saving
// throw" spellings to the ability vocabulary.
func normalizeSaveAbility(core *content.RecordCore, raw string) string {
	if raw == "" {
		return ""
	}
	token := strings.TrimSpace(strings.TrimSuffix(strings.ToLower(raw), " saving throw"))
	ability, ok := textparse.Ability(token)
	if !ok {
		core.AddDiagnostic(content.DiagnosticHeuristicParse, extract.KeySaveAbility,
			"dropped unrecognized save ability "+raw)
		return ""
	}
	return ability
}

// normalizeOnSave canonicalizes the on-save outcome to the half/none
// vocabulary. Damaging saves that do not state an outcome deal half damage
// on a success; damage-less saves deal none. An unrecognized stated value
// is flagged and treated as unstated.
func normalizeOnSave(core *content.RecordCore, raw, damageFormula string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case content.OnSaveHalf:
		return content.OnSaveHalf
	case content.OnSaveNone:
		return content.OnSaveNone
	case "":
	default:
		core.AddDiagnostic(content.DiagnosticHeuristicParse, extract.KeyOnSave,
			"dropped unrecognized on-save outcome "+raw)
	}
	if damageFormula != "" {
		return content.OnSaveHalf
	}
	return content.OnSaveNone
}
