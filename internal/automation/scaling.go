package automation

import (
	"log/slog"
	"regexp"
	"sort"
	"strconv"

	"github.com/tomekeeper/importer/internal/entities/content"
	"github.com/tomekeeper/importer/internal/extract"
)

var dicePattern = regexp.MustCompile(`^(\d+)d(\d+)(\s*\+\s*\d+)?$`)

// scalingRule derives the per-slot-level scaling delta for a spell.
//
// The stated delta wins when the source publishes one directly. Otherwise
// the rule is derived from the higher-level table by differencing the dice
// count between consecutive slot levels: 8d6 at level 3 and 9d6 at level 4
// yields a 1d6 delta. A table whose steps are inconsistent or whose
// formulas are not plain dice expressions yields no scaling plus a
// diagnostic, never a guessed rule.
func scalingRule(rec *content.SpellRecord) content.ScalingRule {
	if rec.ScalingDelta != "" {
		return content.ScalingRule{Mode: content.ScalingPerLevel, Formula: rec.ScalingDelta}
	}
	if len(rec.HigherLevel) < 2 {
		if len(rec.HigherLevel) == 1 {
			rec.AddDiagnostic(content.DiagnosticHeuristicParse, extract.KeyHigherLevel,
				"single-entry level table cannot yield a scaling delta")
		}
		return content.ScalingRule{Mode: content.ScalingNone}
	}

	levels := make([]int, 0, len(rec.HigherLevel))
	for level := range rec.HigherLevel {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	delta := ""
	for i := 1; i < len(levels); i++ {
		step, ok := diceDelta(rec.HigherLevel[levels[i-1]], rec.HigherLevel[levels[i]], levels[i]-levels[i-1])
		if !ok || (delta != "" && step != delta) {
			rec.AddDiagnostic(content.DiagnosticHeuristicParse, extract.KeyHigherLevel,
				"level table steps do not form a uniform per-level delta")
			slog.Warn("scaling underivable",
				slog.String("spell_id", rec.ID),
				slog.Int("levels", len(levels)))
			return content.ScalingRule{Mode: content.ScalingNone}
		}
		delta = step
	}
	return content.ScalingRule{Mode: content.ScalingPerLevel, Formula: delta}
}

// diceDelta computes the per-level dice increment between two formulas
// that are gap slot levels apart. Both formulas must use the same die size
// and share any flat bonus.
func diceDelta(lower, higher string, gap int) (string, bool) {
	lo := dicePattern.FindStringSubmatch(lower)
	hi := dicePattern.FindStringSubmatch(higher)
	if lo == nil || hi == nil || gap <= 0 {
		return "", false
	}
	if lo[2] != hi[2] || lo[3] != hi[3] {
		return "", false
	}
	loCount, _ := strconv.Atoi(lo[1])
	hiCount, _ := strconv.Atoi(hi[1])
	diff := hiCount - loCount
	if diff <= 0 || diff%gap != 0 {
		return "", false
	}
	return strconv.Itoa(diff/gap) + "d" + lo[2], true
}
