package extract_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tomekeeper/importer/internal/clients/provider"
	"github.com/tomekeeper/importer/internal/entities/content"
	"github.com/tomekeeper/importer/internal/extract"
)

const rangerPage = `<html><body>
<h1 class="page-title">Ranger</h1>
<div class="class-description">
<p>A warden of the wilds.</p>
<p>Rangers hunt down threats on the edges of civilization.</p>
</div>
<h2>Core Ranger Traits</h2>
<table>
<tr><th>Primary Ability</th><td>Dexterity and Wisdom</td></tr>
<tr><th>Hit Point Die</th><td>D10 per Ranger level</td></tr>
<tr><th>Saving Throw Proficiencies</th><td>Strength and Dexterity</td></tr>
<tr><th>Skill Proficiencies</th><td>Choose 3 from Animal Handling, Athletics, Insight, Nature, Perception, Stealth, and Survival</td></tr>
<tr><th>Armor Training</th><td>Light armor, Medium armor, Shields</td></tr>
<tr><th>Weapon Proficiencies</th><td>Simple weapons, Martial weapons</td></tr>
<tr><th>Tool Proficiencies</th><td>None</td></tr>
<tr><th>Starting Equipment</th><td>Choose A or B: (A) studded leather armor, a shortsword, a quiver (20 arrows); or (B) leather armor, two daggers</td></tr>
</table>
</body></html>`

const captionedClassPage = `<html><body>
<h1>Wizard</h1>
<h2>Description</h2>
<p>A scholar of the arcane.</p>
<table>
<caption>Core Wizard Traits</caption>
<tr><th>Hit Point Die</th><td>D6 per Wizard level</td></tr>
<tr><th>Saving Throw Proficiencies</th><td>Intelligence and Wisdom</td></tr>
</table>
</body></html>`

const fireballPage = `<html><body>
<h1 class="page-title">Fireball</h1>
<div class="spell-statblock"><dl>
<dt>Level:</dt><dd>3rd</dd>
<dt>School:</dt><dd>Evocation</dd>
<dt>Casting Time:</dt><dd>1 action</dd>
<dt>Range:</dt><dd>150 feet</dd>
<dt>Components:</dt><dd>V, S, M (a tiny ball of bat guano)</dd>
<dt>Duration:</dt><dd>Instantaneous</dd>
<dt>Classes:</dt><dd>Sorcerer, Wizard</dd>
</dl></div>
<div class="spell-description">
<p>A bright streak flashes from your pointing finger to a point you choose within range. Each creature in a 20-foot-radius sphere must make a Dexterity saving throw. A target takes 8d6 fire damage on a failed save, or half as much damage on a successful one.</p>
</div>
<h2>Using a Higher-Level Spell Slot</h2>
<p>The damage increases by 1d6 for each spell slot level above 3.</p>
</body></html>`

const detectMagicPage = `<html><body>
<h1>Detect Magic</h1>
<dl>
<dt>Level:</dt><dd>1st</dd>
<dt>Casting Time:</dt><dd>1 action or Ritual</dd>
<dt>Duration:</dt><dd>Concentration, up to 10 minutes</dd>
</dl>
<p>For the duration, you sense the presence of magic within 30 feet of yourself.</p>
</body></html>`

type HTMLExtractTestSuite struct {
	suite.Suite
}

func TestHTMLExtractSuite(t *testing.T) {
	suite.Run(t, new(HTMLExtractTestSuite))
}

func (s *HTMLExtractTestSuite) htmlDocument(kind content.Kind, contentID, body string) *provider.RawDocument {
	doc, err := provider.ParseRawDocument(kind, contentID, content.ChannelHTML,
		time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC), []byte(body))
	s.Require().NoError(err)
	return doc
}

func (s *HTMLExtractTestSuite) TestClassFromHTML() {
	doc := s.htmlDocument(content.KindClass, "ranger", rangerPage)

	fields := extract.ClassFromHTML(doc)

	s.Require().True(fields.Name.Present)
	s.Assert().Equal("Ranger", fields.Name.Value)
	s.Assert().Equal(content.ProvenanceHTML, fields.Name.Provenance)

	s.Require().True(fields.Description.Present)
	s.Assert().Contains(fields.Description.Value, "warden of the wilds")
	s.Assert().Contains(fields.Description.Value, "edges of civilization")

	s.Require().True(fields.HitDice.Present)
	s.Assert().Equal("1d10", fields.HitDice.Value)
	s.Assert().Equal(content.ConfidenceHeuristic, fields.HitDice.Confidence)

	s.Require().True(fields.SavingThrows.Present)
	s.Assert().Equal([]string{"strength", "dexterity"}, fields.SavingThrows.Value)
	s.Assert().Equal(content.ConfidenceHeuristic, fields.SavingThrows.Confidence)

	s.Require().True(fields.SkillChoiceText.Present)
	s.Assert().Contains(fields.SkillChoiceText.Value, "Choose 3")

	s.Require().True(fields.ArmorProficiencies.Present)
	s.Assert().Equal([]string{"Light armor", "Medium armor", "Shields"}, fields.ArmorProficiencies.Value)

	// "None" is an explicit empty list, not an absent field.
	s.Require().True(fields.ToolProficiencies.Present)
	s.Assert().Empty(fields.ToolProficiencies.Value)

	s.Require().True(fields.EquipmentText.Present)
	s.Assert().Contains(fields.EquipmentText.Value, "(A) studded leather armor")
}

func (s *HTMLExtractTestSuite) TestClassFromHTMLCaptionedTable() {
	doc := s.htmlDocument(content.KindClass, "wizard", captionedClassPage)

	fields := extract.ClassFromHTML(doc)

	s.Require().True(fields.Name.Present)
	s.Assert().Equal("Wizard", fields.Name.Value)
	s.Require().True(fields.Description.Present)
	s.Assert().Equal("A scholar of the arcane.", fields.Description.Value)
	s.Require().True(fields.HitDice.Present)
	s.Assert().Equal("1d6", fields.HitDice.Value)
	s.Require().True(fields.SavingThrows.Present)
	s.Assert().Equal([]string{"intelligence", "wisdom"}, fields.SavingThrows.Value)
}

func (s *HTMLExtractTestSuite) TestClassFromHTMLMissingTraits() {
	doc := s.htmlDocument(content.KindClass, "empty", `<html><body><h1>Mystery</h1></body></html>`)

	fields := extract.ClassFromHTML(doc)

	s.Require().True(fields.Name.Present)
	s.Assert().False(fields.HitDice.Present)
	s.Assert().False(fields.SavingThrows.Present)
}

func (s *HTMLExtractTestSuite) TestSpellFromHTML() {
	doc := s.htmlDocument(content.KindSpell, "fireball", fireballPage)

	fields := extract.SpellFromHTML(doc)

	s.Require().True(fields.Name.Present)
	s.Assert().Equal("Fireball", fields.Name.Value)

	s.Require().True(fields.Level.Present)
	s.Assert().Equal(3, fields.Level.Value)
	s.Assert().Equal(content.ConfidenceHeuristic, fields.Level.Confidence)

	s.Require().True(fields.School.Present)
	s.Assert().Equal("Evocation", fields.School.Value)
	s.Require().True(fields.Components.Present)
	s.Assert().Equal([]string{"V", "S", "M (a tiny ball of bat guano)"}, fields.Components.Value)
	s.Require().True(fields.Classes.Present)
	s.Assert().Equal([]string{"Sorcerer", "Wizard"}, fields.Classes.Value)

	s.Require().True(fields.Description.Present)
	s.Assert().Contains(fields.Description.Value, "bright streak")

	s.Require().True(fields.RequiresSave.Present)
	s.Assert().True(fields.RequiresSave.Value)
	s.Require().True(fields.SaveAbility.Present)
	s.Assert().Equal("dexterity", fields.SaveAbility.Value)
	s.Require().True(fields.OnSave.Present)
	s.Assert().Equal("half", fields.OnSave.Value)

	s.Require().True(fields.DamageFormula.Present)
	s.Assert().Equal("8d6", fields.DamageFormula.Value)
	s.Require().True(fields.DamageType.Present)
	s.Assert().Equal("fire", fields.DamageType.Value)

	s.Require().True(fields.ScalingDelta.Present)
	s.Assert().Equal("1d6", fields.ScalingDelta.Value)

	s.Assert().False(fields.RequiresAttackRoll.Present)
	s.Assert().False(fields.Ritual.Present)
}

func (s *HTMLExtractTestSuite) TestSpellFromHTMLRitualAndConcentration() {
	doc := s.htmlDocument(content.KindSpell, "detect-magic", detectMagicPage)

	fields := extract.SpellFromHTML(doc)

	s.Require().True(fields.Level.Present)
	s.Assert().Equal(1, fields.Level.Value)

	s.Require().True(fields.Ritual.Present)
	s.Assert().True(fields.Ritual.Value)
	s.Require().True(fields.CastingTime.Present)
	s.Assert().Equal("1 action", fields.CastingTime.Value)

	s.Require().True(fields.Concentration.Present)
	s.Assert().True(fields.Concentration.Value)
	s.Require().True(fields.Duration.Present)
	s.Assert().Equal("10 minutes", fields.Duration.Value)
}

func (s *HTMLExtractTestSuite) TestNilDocument() {
	s.Assert().False(extract.ClassFromHTML(nil).Name.Present)
	s.Assert().False(extract.SpellFromHTML(nil).Name.Present)
}
