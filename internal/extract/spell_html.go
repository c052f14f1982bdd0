package extract

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tomekeeper/importer/internal/clients/provider"
	"github.com/tomekeeper/importer/internal/entities/content"
	"github.com/tomekeeper/importer/internal/textparse"
)

var (
	higherLevelHeading = regexp.MustCompile(`(?i)higher[- ]level|at higher levels`)
	spellLevelPattern  = regexp.MustCompile(`\d+`)

	// Automation signals are mined out of the description prose; every
	// match is heuristic by definition.
	savePattern    = regexp.MustCompile(`(?i)\b(strength|dexterity|constitution|intelligence|wisdom|charisma)\s+saving throw`)
	attackPattern  = regexp.MustCompile(`(?i)\b(?:melee|ranged)\s+spell attack`)
	damagePattern  = regexp.MustCompile(`(?i)\btakes?\s+(\d+d\d+(?:\s*\+\s*\d+)?)\s+(\w+)?\s*damage`)
	healPattern    = regexp.MustCompile(`(?i)\bregains?\s+(\d+d\d+(?:\s*\+\s*\d+)?)\s+hit points`)
	halfPattern    = regexp.MustCompile(`(?i)\bhalf as much damage`)
	fixedDCPattern = regexp.MustCompile(`(?i)\bDC\s+(\d+)\b`)
	deltaPattern   = regexp.MustCompile(`(?i)\bincreases?\s+by\s+(\d+d\d+(?:\s*\+\s*\d+)?)`)
)

// SpellFromHTML extracts spell fields from a scraped spell page. The stat
// block is located through a labeled definition list, falling back to
// bold-label paragraph runs when the provider reflows the page.
func SpellFromHTML(doc *provider.RawDocument) *content.SpellFields {
	fields := &content.SpellFields{}
	if doc == nil || doc.HTML == nil {
		return fields
	}
	hash := excerptHash(doc.Body)

	if name := pageTitle(doc.HTML); name != "" {
		fields.Name = content.Exact(name, content.ProvenanceHTML)
	} else {
		slog.Warn("html field absent", "kind", doc.Kind, "field", KeyName, "doc", hash)
	}

	stats := statBlock(doc.HTML)
	if len(stats) == 0 {
		slog.Warn("spell stat block not found", "kind", doc.Kind, "doc", hash)
	}
	bindStatBlock(fields, stats)

	desc := spellDescription(doc.HTML)
	if desc == "" {
		slog.Warn("html field absent", "kind", doc.Kind, "field", KeyDescription, "doc", hash)
	} else {
		fields.Description = content.Exact(desc, content.ProvenanceHTML)
		bindDescriptionSignals(fields, desc)
	}

	if deltaText := higherLevelText(doc.HTML); deltaText != "" {
		if m := deltaPattern.FindStringSubmatch(deltaText); m != nil {
			fields.ScalingDelta = content.Heuristic(strings.ReplaceAll(m[1], " ", ""), content.ProvenanceHTML)
		}
	}

	return fields
}

// bindStatBlock assigns stat block rows to canonical fields.
func bindStatBlock(fields *content.SpellFields, stats map[string]string) {
	for canonical, value := range stats {
		switch canonical {
		case KeyLevel:
			if level, ok := parseSpellLevel(value); ok {
				fields.Level = content.Heuristic(level, content.ProvenanceHTML)
			}
		case KeySchool:
			fields.School = content.Exact(value, content.ProvenanceHTML)
		case KeyCastingTime:
			value, ritual := stripTag(value, "ritual")
			fields.CastingTime = content.Exact(value, content.ProvenanceHTML)
			if ritual {
				fields.Ritual = content.Heuristic(true, content.ProvenanceHTML)
			}
		case KeyRange:
			fields.Range = content.Exact(value, content.ProvenanceHTML)
		case KeyDuration:
			value, concentration := stripPrefix(value, "concentration")
			fields.Duration = content.Exact(value, content.ProvenanceHTML)
			if concentration {
				fields.Concentration = content.Heuristic(true, content.ProvenanceHTML)
			}
		case KeyComponents:
			fields.Components = content.Exact(textparse.SplitList(value), content.ProvenanceHTML)
		case KeyClasses:
			fields.Classes = content.Exact(textparse.SplitList(value), content.ProvenanceHTML)
		case KeyTags:
			fields.Tags = content.Exact(textparse.SplitList(value), content.ProvenanceHTML)
		}
	}
}

// bindDescriptionSignals mines automation signals from the description
// prose. Everything here is heuristic.
func bindDescriptionSignals(fields *content.SpellFields, desc string) {
	if m := savePattern.FindStringSubmatch(desc); m != nil {
		fields.RequiresSave = content.Heuristic(true, content.ProvenanceHTML)
		if ability, ok := textparse.Ability(m[1]); ok {
			fields.SaveAbility = content.Heuristic(ability, content.ProvenanceHTML)
		}
		if halfPattern.MatchString(desc) {
			fields.OnSave = content.Heuristic(content.OnSaveHalf, content.ProvenanceHTML)
		}
	}

	if attackPattern.MatchString(desc) {
		fields.RequiresAttackRoll = content.Heuristic(true, content.ProvenanceHTML)
	}

	if m := damagePattern.FindStringSubmatch(desc); m != nil {
		fields.DamageFormula = content.Heuristic(strings.ReplaceAll(m[1], " ", ""), content.ProvenanceHTML)
		if m[2] != "" {
			fields.DamageType = content.Heuristic(strings.ToLower(m[2]), content.ProvenanceHTML)
		}
	}

	if m := healPattern.FindStringSubmatch(desc); m != nil {
		fields.HealFormula = content.Heuristic(strings.ReplaceAll(m[1], " ", ""), content.ProvenanceHTML)
	}

	if m := fixedDCPattern.FindStringSubmatch(desc); m != nil {
		if dc, err := strconv.Atoi(m[1]); err == nil {
			fields.FixedDC = content.Heuristic(dc, content.ProvenanceHTML)
		}
	}
}

// statBlock reads label/value pairs from the spell page. Primary anchor:
// the stat block's definition list. Secondary: any definition list.
// Tertiary: paragraphs opening with a bold "Label:" run.
func statBlock(doc *goquery.Document) map[string]string {
	stats := make(map[string]string)

	dts := doc.Find("div.spell-statblock dl dt")
	if dts.Length() == 0 {
		dts = doc.Find("dl dt")
	}
	dts.Each(func(_ int, dt *goquery.Selection) {
		label := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(dt.Text()), ":"))
		value := strings.TrimSpace(dt.Next().Filter("dd").Text())
		if label != "" && value != "" {
			stats[CanonicalKey(label)] = value
		}
	})
	if len(stats) > 0 {
		return stats
	}

	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		label := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(p.Find("strong, b").First().Text()), ":"))
		if label == "" {
			return
		}
		value := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(p.Text()), label))
		value = strings.TrimSpace(strings.TrimPrefix(value, ":"))
		if value != "" {
			stats[CanonicalKey(label)] = value
		}
	})
	return stats
}

// spellDescription reads the description block, falling back to the
// paragraph run between the stat block and the next heading.
func spellDescription(doc *goquery.Document) string {
	if desc := joinParagraphs(doc.Find("div.spell-description p")); desc != "" {
		return desc
	}
	dl := doc.Find("dl").First()
	if desc := joinParagraphs(dl.NextUntil("h2, h3").Filter("p")); desc != "" {
		return desc
	}
	return joinParagraphs(dl.Parent().NextUntil("h2, h3").Filter("p"))
}

// higherLevelText reads the paragraph following the higher-level heading.
func higherLevelText(doc *goquery.Document) string {
	var text string
	doc.Find("h2, h3, h4").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		if !higherLevelHeading.MatchString(heading.Text()) {
			return true
		}
		text = strings.TrimSpace(heading.NextFiltered("p").Text())
		return false
	})
	return text
}

// parseSpellLevel reads "3rd", "Level 3", or "Cantrip" into a numeric level.
func parseSpellLevel(value string) (int, bool) {
	if strings.Contains(strings.ToLower(value), "cantrip") {
		return 0, true
	}
	m := spellLevelPattern.FindString(value)
	if m == "" {
		return 0, false
	}
	level, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return level, true
}

// stripTag removes a trailing "or Ritual" style tag, reporting its presence.
func stripTag(value, tag string) (string, bool) {
	lower := strings.ToLower(value)
	if !strings.Contains(lower, tag) {
		return value, false
	}
	idx := strings.Index(lower, tag)
	trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value[:idx]), "or"))
	trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, ","))
	if trimmed == "" {
		trimmed = value
	}
	return trimmed, true
}

// stripPrefix removes a leading "Concentration, " style prefix, reporting
// its presence.
func stripPrefix(value, prefix string) (string, bool) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, prefix) {
		return value, false
	}
	trimmed := strings.TrimSpace(strings.TrimPrefix(value[len(prefix):], ","))
	trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "up to"))
	if trimmed == "" {
		trimmed = value
	}
	return trimmed, true
}
