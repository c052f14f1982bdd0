package extract

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tomekeeper/importer/internal/clients/provider"
	"github.com/tomekeeper/importer/internal/entities/content"
	"github.com/tomekeeper/importer/internal/textparse"
)

var coreTraitsPattern = regexp.MustCompile(`(?i)core\s+.*traits`)

// ClassFromHTML extracts class fields from a scraped class page. The core
// traits block is located either by a captioned table or by a heading
// followed by a table; individual rows bind to canonical fields through
// the alias table.
func ClassFromHTML(doc *provider.RawDocument) *content.ClassFields {
	fields := &content.ClassFields{}
	if doc == nil || doc.HTML == nil {
		return fields
	}
	hash := excerptHash(doc.Body)

	if name := pageTitle(doc.HTML); name != "" {
		fields.Name = content.Exact(name, content.ProvenanceHTML)
	} else {
		slog.Warn("html field absent", "kind", doc.Kind, "field", KeyName, "doc", hash)
	}

	if desc := classDescription(doc.HTML); desc != "" {
		fields.Description = content.Exact(desc, content.ProvenanceHTML)
	} else {
		slog.Warn("html field absent", "kind", doc.Kind, "field", KeyDescription, "doc", hash)
	}

	rows := traitRows(doc.HTML)
	if len(rows) == 0 {
		slog.Warn("core traits block not found", "kind", doc.Kind, "doc", hash)
		return fields
	}

	for canonical, value := range rows {
		bindTraitRow(fields, canonical, value)
	}

	for _, required := range []struct {
		key     string
		present bool
	}{
		{KeyHitDice, fields.HitDice.Present},
		{KeySavingThrows, fields.SavingThrows.Present},
		{KeySkillChoices, fields.SkillChoiceText.Present},
	} {
		if !required.present {
			slog.Warn("html field absent", "kind", doc.Kind, "field", required.key, "doc", hash)
		}
	}

	return fields
}

// bindTraitRow assigns one traits-table row to its canonical field.
func bindTraitRow(fields *content.ClassFields, canonical, value string) {
	switch canonical {
	case KeyHitDice:
		// "D6 per Wizard level" carries the die in its first token.
		fields.HitDice = content.Heuristic(normalizeHitDice(firstToken(value)), content.ProvenanceHTML)
	case KeyPrimaryAbility:
		fields.PrimaryAbility = content.Exact(value, content.ProvenanceHTML)
	case KeySavingThrows:
		parsed := textparse.AbilityList(value)
		if len(parsed.Abilities) > 0 {
			fields.SavingThrows = content.Heuristic(parsed.Abilities, content.ProvenanceHTML)
		}
	case KeySkillChoices:
		fields.SkillChoiceText = content.Exact(value, content.ProvenanceHTML)
	case KeyArmorProficiencies:
		fields.ArmorProficiencies = content.Exact(listOrNone(value), content.ProvenanceHTML)
	case KeyWeaponProficiencies:
		fields.WeaponProficiencies = content.Exact(listOrNone(value), content.ProvenanceHTML)
	case KeyToolProficiencies:
		fields.ToolProficiencies = content.Exact(listOrNone(value), content.ProvenanceHTML)
	case KeyEquipment:
		fields.EquipmentText = content.Exact(value, content.ProvenanceHTML)
	case KeySpellcasting:
		fields.SpellcastingText = content.Exact(value, content.ProvenanceHTML)
	case KeyTags:
		fields.Tags = content.Exact(textparse.SplitList(value), content.ProvenanceHTML)
	}
}

// traitRows locates the core traits block and returns its rows keyed by
// canonical field name. Primary anchor: a table whose caption matches the
// traits pattern. Secondary: a heading matching the pattern followed by a
// table.
func traitRows(doc *goquery.Document) map[string]string {
	table := doc.Find("table").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return coreTraitsPattern.MatchString(s.Find("caption").Text())
	}).First()

	if table.Length() == 0 {
		doc.Find("h2, h3").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
			if !coreTraitsPattern.MatchString(heading.Text()) {
				return true
			}
			table = heading.NextAllFiltered("table").First()
			return false
		})
	}

	if table.Length() == 0 {
		return nil
	}

	rows := make(map[string]string)
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		label := strings.TrimSpace(tr.Find("th").First().Text())
		value := strings.TrimSpace(tr.Find("td").First().Text())
		if label == "" || value == "" {
			return
		}
		rows[CanonicalKey(label)] = value
	})
	return rows
}

// pageTitle reads the page's entity name: the titled h1 if present, else
// the first h1.
func pageTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("h1.page-title").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// classDescription reads the description block, falling back to the
// paragraph run after a "Description" heading.
func classDescription(doc *goquery.Document) string {
	if desc := joinParagraphs(doc.Find("div.class-description p")); desc != "" {
		return desc
	}
	if desc := strings.TrimSpace(doc.Find("p.class-description").First().Text()); desc != "" {
		return desc
	}

	var desc string
	doc.Find("h2, h3").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		if !strings.EqualFold(strings.TrimSpace(heading.Text()), "description") {
			return true
		}
		desc = joinParagraphs(heading.NextUntil("h2, h3").Filter("p"))
		return false
	})
	return desc
}

func joinParagraphs(sel *goquery.Selection) string {
	var parts []string
	sel.Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n")
}

func firstToken(value string) string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// listOrNone splits a comma list, treating "None" as an explicit empty list.
func listOrNone(value string) []string {
	if strings.EqualFold(strings.TrimSpace(value), "none") {
		return []string{}
	}
	return textparse.SplitList(value)
}
