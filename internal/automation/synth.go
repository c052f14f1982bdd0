// Package automation synthesizes executable activity descriptors from the
// signal fields of a merged spell record. Synthesis is deterministic and
// idempotent: activities are rebuilt from scratch on every call, never
// appended to previous output.
package automation

import (
	"github.com/tomekeeper/importer/internal/entities/content"
	"github.com/tomekeeper/importer/internal/extract"
)

// Synthesize classifies a spell's merged signals into activities. The
// classifiers are independent: a spell that both attacks and forces a save
// gets both activities. Spells matching no classifier get the Utility
// fallback plus a diagnostic, so every spell leaves with at least one
// activity.
func Synthesize(rec *content.SpellRecord) []content.Activity {
	scaling := scalingRule(rec)
	activities := []content.Activity{}

	if rec.RequiresAttackRoll {
		activities = append(activities, &content.AttackActivity{
			Kind: content.ActivityAttack,
			Damage: content.DamageSpec{
				Formula: rec.DamageFormula,
				Type:    rec.DamageType,
			},
			Scaling: scaling,
		})
	}

	if rec.RequiresSave && rec.SaveAbility != "" {
		dc := content.SaveDC{Calculation: content.DCCalculationSpellcasting}
		if rec.FixedDC > 0 {
			dc = content.SaveDC{Calculation: content.DCCalculationFixed, Value: rec.FixedDC}
		}
		activities = append(activities, &content.SaveActivity{
			Kind:    content.ActivitySave,
			Ability: rec.SaveAbility,
			DC:      dc,
			OnSave:  rec.OnSave,
			Damage: content.DamageSpec{
				Formula: rec.DamageFormula,
				Type:    rec.DamageType,
			},
			Scaling: scaling,
		})
	}

	if rec.HealFormula != "" {
		activities = append(activities, &content.HealActivity{
			Kind:    content.ActivityHeal,
			Formula: rec.HealFormula,
			Scaling: scaling,
		})
	}

	if len(activities) == 0 {
		rec.AddDiagnostic(content.DiagnosticUnclassified, extract.KeyActivities,
			"no attack, save, or heal signal matched")
		activities = append(activities, &content.UtilityActivity{
			Kind:        content.ActivityUtility,
			Description: rec.Description,
			Scaling:     scaling,
		})
	}

	return activities
}
