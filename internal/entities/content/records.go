package content

// AdvancementKind distinguishes outright grants from player choices.
type AdvancementKind string

// Advancement kinds
const (
	AdvancementGrant  AdvancementKind = "grant"
	AdvancementChoice AdvancementKind = "choice"
)

// AdvancementEntry is the structured form of a proficiency, skill, or tool
// grant or choice, derived from free text. For choices the invariant
// 0 <= Count <= len(Pool) holds.
type AdvancementEntry struct {
	Kind  AdvancementKind `json:"kind"`
	Level int             `json:"level"`
	Pool  []string        `json:"pool"`
	Count int             `json:"count,omitempty"`
}

// EquipmentChoiceSet is an ordered list of alternative item bundles,
// representing "choose one of the following sets" starting-equipment text.
// Single-bundle sets are outright grants, not choices.
type EquipmentChoiceSet [][]string

// RecordCore carries the fields shared by every canonical record kind.
// Invariant: after merge, every slice and map is non-nil; absence is an
// explicit empty value, never a missing key.
type RecordCore struct {
	ID          string   `json:"id"`
	Kind        Kind     `json:"kind"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`

	// SourceProvenance maps each canonical field name to the channel (or
	// default) that supplied its value.
	SourceProvenance map[string]Provenance `json:"sourceProvenance"`
	Diagnostics      []Diagnostic          `json:"diagnostics"`
}

// AddDiagnostic appends a diagnostic to the record
func (c *RecordCore) AddDiagnostic(kind DiagnosticKind, field, message string) {
	c.Diagnostics = append(c.Diagnostics, Diagnostic{Kind: kind, Field: field, Message: message})
}

// ClassRecord is the merged, normalized representation of one class.
type ClassRecord struct {
	RecordCore

	HitDice             string             `json:"hitDice"`
	PrimaryAbility      string             `json:"primaryAbility"`
	SavingThrows        []string           `json:"savingThrows"`
	ArmorProficiencies  []string           `json:"armorProficiencies"`
	WeaponProficiencies []string           `json:"weaponProficiencies"`
	ToolProficiencies   []string           `json:"toolProficiencies"`
	SpellcastingAbility string             `json:"spellcastingAbility"`
	Advancements        []AdvancementEntry `json:"advancements"`
	StartingEquipment   EquipmentChoiceSet `json:"startingEquipment"`
	// EquipmentCategories lists category references ("martial-weapons")
	// found inside starting-equipment bundles, so downstream pickers can
	// expand them.
	EquipmentCategories []string `json:"equipmentCategories"`
}

// SpellRecord is the merged, normalized representation of one spell.
// Activities are derived, never authoritative: they are regenerated on
// every import.
type SpellRecord struct {
	RecordCore

	Level         int        `json:"level"`
	School        string     `json:"school"`
	CastingTime   string     `json:"castingTime"`
	Range         string     `json:"range"`
	Duration      string     `json:"duration"`
	Components    []string   `json:"components"`
	Ritual        bool       `json:"ritual"`
	Concentration bool       `json:"concentration"`
	Classes       []string   `json:"classes"`
	Activities    []Activity `json:"activities"`

	// Automation signals carried through merge for the synthesis engine.
	RequiresAttackRoll bool           `json:"requiresAttackRoll"`
	RequiresSave       bool           `json:"requiresSave"`
	SaveAbility        string         `json:"saveAbility"`
	FixedDC            int            `json:"fixedDC"`
	OnSave             string         `json:"onSave"`
	DamageFormula      string         `json:"damageFormula"`
	DamageType         string         `json:"damageType"`
	HealFormula        string         `json:"healFormula"`
	HigherLevel        map[int]string `json:"higherLevel"`
	ScalingDelta       string         `json:"scalingDelta"`
}
