package extract

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/tomekeeper/importer/internal/clients/provider"
	"github.com/tomekeeper/importer/internal/entities/content"
)

// apiLookup finds the value for a canonical key in the payload's top level,
// resolving raw spellings through the alias table. Grouped proficiency
// payloads get one extra level of descent. Keys are visited in sorted order
// so extraction stays deterministic even when two raw spellings alias to
// the same canonical key.
func apiLookup(payload map[string]any, canonical string) (any, bool) {
	raws := make([]string, 0, len(payload))
	for raw := range payload {
		raws = append(raws, raw)
	}
	sort.Strings(raws)

	for _, raw := range raws {
		if CanonicalKey(raw) == canonical {
			return payload[raw], true
		}
	}

	if nested, ok := payload["proficiencies"].(map[string]any); ok {
		return apiLookup(nested, canonical)
	}
	return nil, false
}

// apiDoc wraps one API payload with the logging context shared by all its
// field lookups.
type apiDoc struct {
	payload map[string]any
	kind    content.Kind
	hash    string
}

func newAPIDoc(doc *provider.RawDocument) apiDoc {
	d := apiDoc{kind: doc.Kind, hash: excerptHash(doc.Body)}
	if doc.JSON != nil {
		d.payload = doc.JSON
	} else {
		d.payload = map[string]any{}
	}
	return d
}

func (d apiDoc) warnAbsent(field string) {
	slog.Warn("api field absent", "kind", d.kind, "field", field, "doc", d.hash)
}

func (d apiDoc) text(field string) content.FieldValue[string] {
	if v, ok := apiLookup(d.payload, field); ok {
		if s, ok := asText(v); ok && strings.TrimSpace(s) != "" {
			return content.Exact(s, content.ProvenanceAPI)
		}
	}
	d.warnAbsent(field)
	return content.Absent[string]()
}

func (d apiDoc) list(field string) content.FieldValue[[]string] {
	if v, ok := apiLookup(d.payload, field); ok {
		if list, ok := asStringList(v); ok {
			return content.Exact(list, content.ProvenanceAPI)
		}
	}
	d.warnAbsent(field)
	return content.Absent[[]string]()
}

func (d apiDoc) integer(field string) content.FieldValue[int] {
	if v, ok := apiLookup(d.payload, field); ok {
		if n, ok := asInt(v); ok {
			return content.Exact(n, content.ProvenanceAPI)
		}
	}
	d.warnAbsent(field)
	return content.Absent[int]()
}

func (d apiDoc) boolean(field string) content.FieldValue[bool] {
	if v, ok := apiLookup(d.payload, field); ok {
		if b, ok := asBool(v); ok {
			return content.Exact(b, content.ProvenanceAPI)
		}
	}
	// Absent boolean flags are common and meaningful (no attack roll, no
	// ritual tag); they are not worth a warning per document.
	return content.Absent[bool]()
}

// ClassFromAPI extracts class fields from an API channel document.
func ClassFromAPI(doc *provider.RawDocument) *content.ClassFields {
	if doc == nil {
		return &content.ClassFields{}
	}
	d := newAPIDoc(doc)

	fields := &content.ClassFields{
		Name:                d.text(KeyName),
		Description:         d.text(KeyDescription),
		PrimaryAbility:      d.text(KeyPrimaryAbility),
		SavingThrows:        d.list(KeySavingThrows),
		SkillChoiceText:     d.text(KeySkillChoices),
		ArmorProficiencies:  d.list(KeyArmorProficiencies),
		WeaponProficiencies: d.list(KeyWeaponProficiencies),
		ToolProficiencies:   d.list(KeyToolProficiencies),
		EquipmentText:       d.text(KeyEquipment),
		SpellcastingText:    d.text(KeySpellcasting),
		Tags:                d.list(KeyTags),
	}

	// Hit dice arrive as 6, "6", "d6", or "1d6" depending on provider
	// version.
	if v, ok := apiLookup(d.payload, KeyHitDice); ok {
		if s, ok := asString(v); ok && strings.TrimSpace(s) != "" {
			fields.HitDice = content.Exact(normalizeHitDice(s), content.ProvenanceAPI)
		}
	}
	if !fields.HitDice.Present {
		d.warnAbsent(KeyHitDice)
	}

	return fields
}

// SpellFromAPI extracts spell fields from an API channel document.
func SpellFromAPI(doc *provider.RawDocument) *content.SpellFields {
	if doc == nil {
		return &content.SpellFields{}
	}
	d := newAPIDoc(doc)

	fields := &content.SpellFields{
		Name:          d.text(KeyName),
		Level:         d.integer(KeyLevel),
		School:        d.text(KeySchool),
		CastingTime:   d.text(KeyCastingTime),
		Range:         d.text(KeyRange),
		Duration:      d.text(KeyDuration),
		Components:    d.list(KeyComponents),
		Ritual:        d.boolean(KeyRitual),
		Concentration: d.boolean(KeyConcentration),
		Description:   d.text(KeyDescription),
		Classes:       d.list(KeyClasses),
		Tags:          d.list(KeyTags),
	}

	// Automation signals live in nested structures on this channel.
	if v, ok := apiLookup(d.payload, "attack_type"); ok {
		if s, ok := asString(v); ok && strings.TrimSpace(s) != "" {
			fields.RequiresAttackRoll = content.Exact(true, content.ProvenanceAPI)
		}
	}

	if dc, ok := d.payload["dc"].(map[string]any); ok {
		fields.RequiresSave = content.Exact(true, content.ProvenanceAPI)
		if ability, ok := asName(dc["dc_type"]); ok {
			fields.SaveAbility = content.Exact(ability, content.ProvenanceAPI)
		}
		if success, ok := asString(dc["dc_success"]); ok && success != "" {
			fields.OnSave = content.Exact(strings.ToLower(success), content.ProvenanceAPI)
		}
		if value, ok := asInt(dc["dc_value"]); ok && value > 0 {
			fields.FixedDC = content.Exact(value, content.ProvenanceAPI)
		}
	}

	if damage, ok := d.payload["damage"].(map[string]any); ok {
		if damageType, ok := asName(damage["damage_type"]); ok {
			fields.DamageType = content.Exact(damageType, content.ProvenanceAPI)
		}
		if table, ok := asLevelTable(damage["damage_at_slot_level"]); ok {
			fields.HigherLevel = content.Exact(table, content.ProvenanceAPI)
			if base, ok := baseFormula(table, fields.Level); ok {
				fields.DamageFormula = content.Exact(base, content.ProvenanceAPI)
			}
		} else if formula, ok := asString(damage["damage_dice"]); ok && formula != "" {
			fields.DamageFormula = content.Exact(formula, content.ProvenanceAPI)
		}
	}

	if table, ok := asLevelTable(d.payload["heal_at_slot_level"]); ok {
		fields.HigherLevel = content.Exact(table, content.ProvenanceAPI)
		if base, ok := baseFormula(table, fields.Level); ok {
			fields.HealFormula = content.Exact(base, content.ProvenanceAPI)
		}
	}

	return fields
}

// baseFormula picks the effect formula at the spell's own level: the
// lowest slot level at or above it present in the table.
func baseFormula(table map[int]string, level content.FieldValue[int]) (string, bool) {
	if len(table) == 0 {
		return "", false
	}

	levels := make([]int, 0, len(table))
	for l := range table {
		levels = append(levels, l)
	}
	sort.Ints(levels)

	if level.Present {
		for _, l := range levels {
			if l >= level.Value {
				return table[l], true
			}
		}
	}
	return table[levels[0]], true
}
