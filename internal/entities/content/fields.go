package content

// FieldValue carries one extracted datum together with its provenance and
// confidence, so the merge engine can apply precedence without trusting the
// shape of intermediate data. Present=false marks an absent field; its
// Value is the zero value and must not be read.
type FieldValue[T any] struct {
	Value      T          `json:"value"`
	Provenance Provenance `json:"provenance"`
	Confidence Confidence `json:"confidence"`
	Present    bool       `json:"present"`
}

// Exact builds a present field value derived from a direct structural lookup.
func Exact[T any](value T, provenance Provenance) FieldValue[T] {
	return FieldValue[T]{
		Value:      value,
		Provenance: provenance,
		Confidence: ConfidenceExact,
		Present:    true,
	}
}

// Heuristic builds a present field value derived from pattern matching.
func Heuristic[T any](value T, provenance Provenance) FieldValue[T] {
	return FieldValue[T]{
		Value:      value,
		Provenance: provenance,
		Confidence: ConfidenceHeuristic,
		Present:    true,
	}
}

// Absent builds an absent field value.
func Absent[T any]() FieldValue[T] {
	return FieldValue[T]{}
}

// ClassFields is the per-channel partial extraction of a class. One
// instance exists per (contentID, channel) pair between extraction and
// merge; every field carries its own provenance tag.
type ClassFields struct {
	Name                FieldValue[string]
	Description         FieldValue[string]
	HitDice             FieldValue[string]
	PrimaryAbility      FieldValue[string]
	SavingThrows        FieldValue[[]string]
	SkillChoiceText     FieldValue[string]
	ArmorProficiencies  FieldValue[[]string]
	WeaponProficiencies FieldValue[[]string]
	ToolProficiencies   FieldValue[[]string]
	EquipmentText       FieldValue[string]
	SpellcastingText    FieldValue[string]
	Tags                FieldValue[[]string]
}

// SpellFields is the per-channel partial extraction of a spell.
type SpellFields struct {
	Name          FieldValue[string]
	Level         FieldValue[int]
	School        FieldValue[string]
	CastingTime   FieldValue[string]
	Range         FieldValue[string]
	Duration      FieldValue[string]
	Components    FieldValue[[]string]
	Ritual        FieldValue[bool]
	Concentration FieldValue[bool]
	Description   FieldValue[string]
	Classes       FieldValue[[]string]
	Tags          FieldValue[[]string]

	// Automation signals
	RequiresAttackRoll FieldValue[bool]
	RequiresSave       FieldValue[bool]
	SaveAbility        FieldValue[string]
	FixedDC            FieldValue[int]
	OnSave             FieldValue[string]
	DamageFormula      FieldValue[string]
	DamageType         FieldValue[string]
	HealFormula        FieldValue[string]
	// HigherLevel maps slot level to the absolute effect formula at that
	// level, as published by the source. Scaling derivation computes the
	// per-level delta from it.
	HigherLevel FieldValue[map[int]string]
	// ScalingDelta is the per-slot-level increment when the source states
	// it directly ("the damage increases by 1d6 for each slot level").
	ScalingDelta FieldValue[string]
}
