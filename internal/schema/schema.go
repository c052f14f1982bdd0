// Package schema validates merged records against the canonical content
// contract before they leave the import pipeline. Validation never mutates
// a record; it reports every violation at once with a field path.
package schema

import (
	"fmt"
	"regexp"

	"github.com/tomekeeper/importer/internal/entities/content"
	"github.com/tomekeeper/importer/internal/errors"
	"github.com/tomekeeper/importer/internal/extract"
)

var hitDicePattern = regexp.MustCompile(`^1d\d+$`)

var provenances = []string{
	string(content.ProvenanceAPI),
	string(content.ProvenanceHTML),
	string(content.ProvenanceDefault),
}

// ValidateClass checks a class record against the content contract.
// Required fields are name, hit dice, and saving throws; advancement
// choices must keep Count within the pool.
func ValidateClass(rec *content.ClassRecord) error {
	vb := errors.NewValidationBuilder()

	validateCore(&rec.RecordCore, content.KindClass, vb)
	errors.ValidateRequired(extract.KeyHitDice, rec.HitDice, vb)
	if rec.HitDice != "" && !hitDicePattern.MatchString(rec.HitDice) {
		vb.InvalidField(extract.KeyHitDice, fmt.Sprintf("must look like 1d8, got %q", rec.HitDice))
	}
	if len(rec.SavingThrows) == 0 {
		vb.RequiredField(extract.KeySavingThrows)
	}
	for i, ability := range rec.SavingThrows {
		errors.ValidateOneOf(fmt.Sprintf("%s[%d]", extract.KeySavingThrows, i), ability, content.Abilities, vb)
	}

	for i, entry := range rec.Advancements {
		path := fmt.Sprintf("advancements[%d]", i)
		errors.ValidateOneOf(path+".kind", string(entry.Kind),
			[]string{string(content.AdvancementGrant), string(content.AdvancementChoice)}, vb)
		if entry.Kind == content.AdvancementChoice {
			errors.ValidateRange(path+".count", entry.Count, 1, len(entry.Pool), vb)
		}
		if entry.Level < 1 {
			vb.Fieldf(path+".level", "must be at least 1, got %d", entry.Level)
		}
	}

	for i, bundle := range rec.StartingEquipment {
		if len(bundle) == 0 {
			vb.Fieldf(fmt.Sprintf("%s[%d]", extract.KeyEquipment, i), "bundle must not be empty")
		}
	}

	if rec.SpellcastingAbility != "" {
		errors.ValidateOneOf(extract.KeySpellcasting, rec.SpellcastingAbility, content.Abilities, vb)
	}

	return vb.Build()
}

// ValidateSpell checks a spell record against the content contract.
// Required fields are name, level, and description, and the activity
// list must never be empty.
func ValidateSpell(rec *content.SpellRecord) error {
	vb := errors.NewValidationBuilder()

	validateCore(&rec.RecordCore, content.KindSpell, vb)
	errors.ValidateRequired(extract.KeyDescription, rec.Description, vb)
	errors.ValidateRange(extract.KeyLevel, rec.Level, 0, 9, vb)

	if len(rec.Activities) == 0 {
		vb.Field(extract.KeyActivities, "must contain at least one activity")
	}
	for i, activity := range rec.Activities {
		validateActivity(i, activity, vb)
	}

	if rec.OnSave != "" {
		errors.ValidateOneOf(extract.KeyOnSave, rec.OnSave,
			[]string{content.OnSaveHalf, content.OnSaveNone}, vb)
	}
	if rec.SaveAbility != "" {
		errors.ValidateOneOf(extract.KeySaveAbility, rec.SaveAbility, content.Abilities, vb)
	}

	return vb.Build()
}

func validateCore(core *content.RecordCore, kind content.Kind, vb *errors.ValidationBuilder) {
	errors.ValidateRequired("id", core.ID, vb)
	errors.ValidateRequired(extract.KeyName, core.Name, vb)
	if core.Kind != kind {
		vb.Fieldf("kind", "must be %q, got %q", kind, core.Kind)
	}
	if core.Tags == nil {
		vb.Field(extract.KeyTags, "must be non-nil")
	}
	if core.SourceProvenance == nil {
		vb.Field("sourceProvenance", "must be non-nil")
	}
	for field, provenance := range core.SourceProvenance {
		errors.ValidateOneOf("sourceProvenance."+field, string(provenance), provenances, vb)
	}
}

func validateActivity(index int, activity content.Activity, vb *errors.ValidationBuilder) {
	path := fmt.Sprintf("%s[%d]", extract.KeyActivities, index)

	switch a := activity.(type) {
	case *content.AttackActivity:
		validateScaling(path, a.Scaling, vb)
	case *content.SaveActivity:
		errors.ValidateOneOf(path+".ability", a.Ability, content.Abilities, vb)
		errors.ValidateOneOf(path+".dc.calculation", a.DC.Calculation,
			[]string{content.DCCalculationSpellcasting, content.DCCalculationFixed}, vb)
		if a.DC.Calculation == content.DCCalculationFixed && a.DC.Value < 1 {
			vb.Fieldf(path+".dc.value", "fixed DC must be positive, got %d", a.DC.Value)
		}
		errors.ValidateOneOf(path+".onSave", a.OnSave,
			[]string{content.OnSaveHalf, content.OnSaveNone}, vb)
		validateScaling(path, a.Scaling, vb)
	case *content.HealActivity:
		errors.ValidateRequired(path+".formula", a.Formula, vb)
		validateScaling(path, a.Scaling, vb)
	case *content.UtilityActivity:
		validateScaling(path, a.Scaling, vb)
	default:
		vb.Fieldf(path+".kind", "unknown activity type %T", activity)
	}
}

func validateScaling(path string, scaling content.ScalingRule, vb *errors.ValidationBuilder) {
	errors.ValidateOneOf(path+".scaling.mode", string(scaling.Mode),
		[]string{string(content.ScalingNone), string(content.ScalingPerLevel)}, vb)
	if scaling.Mode == content.ScalingPerLevel && scaling.Formula == "" {
		vb.RequiredField(path + ".scaling.formula")
	}
	if scaling.Mode == content.ScalingNone && scaling.Formula != "" {
		vb.Fieldf(path+".scaling.formula", "must be empty when mode is none, got %q", scaling.Formula)
	}
}
