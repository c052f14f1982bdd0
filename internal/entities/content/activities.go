package content

// ActivityKind identifies the behavior class of a synthesized activity.
type ActivityKind string

// Activity kinds
const (
	ActivityAttack  ActivityKind = "attack"
	ActivitySave    ActivityKind = "save"
	ActivityHeal    ActivityKind = "heal"
	ActivityUtility ActivityKind = "utility"
)

// ScalingMode describes how an activity's effect grows with slot level.
type ScalingMode string

// Scaling modes
const (
	ScalingNone     ScalingMode = "none"
	ScalingPerLevel ScalingMode = "perLevel"
)

// ScalingRule is the incremental-effect formula applied per slot level
// above the spell's baseline. The automation model scales by delta, not by
// absolute per-level lookup.
type ScalingRule struct {
	Mode    ScalingMode `json:"mode"`
	Formula string      `json:"formula,omitempty"`
}

// DC calculation modes for save activities
const (
	// DCCalculationSpellcasting resolves the DC at cast time from the
	// caster's spellcasting ability.
	DCCalculationSpellcasting = "spellcasting"
	// DCCalculationFixed uses an explicit DC supplied by the source.
	DCCalculationFixed = "fixed"
)

// On-save damage behavior
const (
	OnSaveHalf = "half"
	OnSaveNone = "none"
)

// DamageSpec pairs a dice formula with a damage type.
type DamageSpec struct {
	Formula string `json:"formula"`
	Type    string `json:"type,omitempty"`
}

// Activity is a synthesized automation descriptor for one behavior of a
// spell. A spell may carry several (for example an attack that also forces
// a save) but never zero: the Utility fallback guarantees at least one.
type Activity interface {
	ActivityKind() ActivityKind
}

// AttackActivity resolves a to-hit roll against a target.
type AttackActivity struct {
	Kind    ActivityKind `json:"kind"`
	Damage  DamageSpec   `json:"damage"`
	Scaling ScalingRule  `json:"scaling"`
}

// ActivityKind implements Activity
func (a *AttackActivity) ActivityKind() ActivityKind { return ActivityAttack }

// SaveDC describes how a save activity's difficulty class is resolved.
type SaveDC struct {
	Calculation string `json:"calculation"`
	Value       int    `json:"value,omitempty"`
}

// SaveActivity forces a target saving throw.
type SaveActivity struct {
	Kind    ActivityKind `json:"kind"`
	Ability string       `json:"ability"`
	DC      SaveDC       `json:"dc"`
	OnSave  string       `json:"onSave"`
	Damage  DamageSpec   `json:"damage"`
	Scaling ScalingRule  `json:"scaling"`
}

// ActivityKind implements Activity
func (a *SaveActivity) ActivityKind() ActivityKind { return ActivitySave }

// HealActivity restores hit points.
type HealActivity struct {
	Kind    ActivityKind `json:"kind"`
	Formula string       `json:"formula"`
	Scaling ScalingRule  `json:"scaling"`
}

// ActivityKind implements Activity
func (a *HealActivity) ActivityKind() ActivityKind { return ActivityHeal }

// UtilityActivity is the no-op fallback carrying the spell's free-text
// description, emitted when no other classification matches.
type UtilityActivity struct {
	Kind        ActivityKind `json:"kind"`
	Description string       `json:"description"`
	Scaling     ScalingRule  `json:"scaling"`
}

// ActivityKind implements Activity
func (a *UtilityActivity) ActivityKind() ActivityKind { return ActivityUtility }
