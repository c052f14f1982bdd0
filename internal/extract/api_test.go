package extract_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tomekeeper/importer/internal/clients/provider"
	"github.com/tomekeeper/importer/internal/entities/content"
	"github.com/tomekeeper/importer/internal/extract"
)

type APIExtractTestSuite struct {
	suite.Suite
	fetchedAt time.Time
}

func TestAPIExtractSuite(t *testing.T) {
	suite.Run(t, new(APIExtractTestSuite))
}

func (s *APIExtractTestSuite) SetupTest() {
	s.fetchedAt = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
}

func (s *APIExtractTestSuite) apiDocument(kind content.Kind, contentID, body string) *provider.RawDocument {
	doc, err := provider.ParseRawDocument(kind, contentID, content.ChannelAPI, s.fetchedAt, []byte(body))
	s.Require().NoError(err)
	return doc
}

func (s *APIExtractTestSuite) TestClassFromAPI() {
	doc := s.apiDocument(content.KindClass, "ranger", `{
		"name": "Ranger",
		"desc": "A warden of the wilds.",
		"hit_die": 10,
		"saving_throws": [{"name": "STR"}, {"name": "DEX"}],
		"proficiencies": {
			"armor": ["Light armor", "Medium armor", "Shields"],
			"weapons": ["Simple weapons", "Martial weapons"]
		},
		"skills": "Choose 3 from Animal Handling, Athletics, Insight, Nature, Perception, Stealth, and Survival",
		"starting_equipment": "(a) scale mail; or (b) leather armor"
	}`)

	fields := extract.ClassFromAPI(doc)

	s.Require().True(fields.Name.Present)
	s.Assert().Equal("Ranger", fields.Name.Value)
	s.Assert().Equal(content.ProvenanceAPI, fields.Name.Provenance)
	s.Assert().Equal(content.ConfidenceExact, fields.Name.Confidence)

	s.Require().True(fields.HitDice.Present)
	s.Assert().Equal("1d10", fields.HitDice.Value)

	s.Require().True(fields.SavingThrows.Present)
	s.Assert().Equal([]string{"STR", "DEX"}, fields.SavingThrows.Value)

	s.Require().True(fields.ArmorProficiencies.Present)
	s.Assert().Equal([]string{"Light armor", "Medium armor", "Shields"}, fields.ArmorProficiencies.Value)

	s.Require().True(fields.WeaponProficiencies.Present)
	s.Require().True(fields.SkillChoiceText.Present)
	s.Require().True(fields.EquipmentText.Present)
	s.Assert().False(fields.ToolProficiencies.Present)
	s.Assert().False(fields.SpellcastingText.Present)
}

func (s *APIExtractTestSuite) TestClassFromAPIAliasedKeys() {
	doc := s.apiDocument(content.KindClass, "wizard", `{
		"title": "Wizard",
		"hit_dice": "d6",
		"saving throw proficiencies": ["Intelligence", "Wisdom"]
	}`)

	fields := extract.ClassFromAPI(doc)

	s.Require().True(fields.Name.Present)
	s.Assert().Equal("Wizard", fields.Name.Value)
	s.Require().True(fields.HitDice.Present)
	s.Assert().Equal("1d6", fields.HitDice.Value)
	s.Require().True(fields.SavingThrows.Present)
	s.Assert().Equal([]string{"Intelligence", "Wisdom"}, fields.SavingThrows.Value)
}

func (s *APIExtractTestSuite) TestClassFromAPIMalformedValues() {
	doc := s.apiDocument(content.KindClass, "broken", `{
		"name": "",
		"hit_die": {"unexpected": true},
		"saving_throws": "  "
	}`)

	fields := extract.ClassFromAPI(doc)

	s.Assert().False(fields.Name.Present)
	s.Assert().False(fields.HitDice.Present)
	s.Assert().False(fields.SavingThrows.Present)
}

func (s *APIExtractTestSuite) TestSpellFromAPISaveSpell() {
	doc := s.apiDocument(content.KindSpell, "fireball", `{
		"name": "Fireball",
		"level": 3,
		"school": "Evocation",
		"casting_time": "1 action",
		"range": "150 feet",
		"duration": "Instantaneous",
		"components": ["V", "S", "M"],
		"desc": ["A bright streak flashes to a point you choose.", "Each creature in the area must make a Dexterity saving throw."],
		"classes": [{"name": "Sorcerer"}, {"name": "Wizard"}],
		"dc": {"dc_type": {"name": "DEX"}, "dc_success": "half"},
		"damage": {
			"damage_type": {"name": "Fire"},
			"damage_at_slot_level": {"3": "8d6", "4": "9d6", "5": "10d6"}
		}
	}`)

	fields := extract.SpellFromAPI(doc)

	s.Require().True(fields.Name.Present)
	s.Assert().Equal("Fireball", fields.Name.Value)
	s.Require().True(fields.Level.Present)
	s.Assert().Equal(3, fields.Level.Value)
	s.Require().True(fields.Description.Present)
	s.Assert().Contains(fields.Description.Value, "Dexterity saving throw")
	s.Assert().Equal([]string{"Sorcerer", "Wizard"}, fields.Classes.Value)

	s.Require().True(fields.RequiresSave.Present)
	s.Assert().True(fields.RequiresSave.Value)
	s.Require().True(fields.SaveAbility.Present)
	s.Assert().Equal("DEX", fields.SaveAbility.Value)
	s.Require().True(fields.OnSave.Present)
	s.Assert().Equal("half", fields.OnSave.Value)
	s.Assert().False(fields.FixedDC.Present)

	s.Require().True(fields.DamageFormula.Present)
	s.Assert().Equal("8d6", fields.DamageFormula.Value)
	s.Require().True(fields.DamageType.Present)
	s.Assert().Equal("Fire", fields.DamageType.Value)

	s.Require().True(fields.HigherLevel.Present)
	s.Assert().Equal(map[int]string{3: "8d6", 4: "9d6", 5: "10d6"}, fields.HigherLevel.Value)

	s.Assert().False(fields.RequiresAttackRoll.Present)
	s.Assert().False(fields.HealFormula.Present)
}

func (s *APIExtractTestSuite) TestSpellFromAPIAttackSpell() {
	doc := s.apiDocument(content.KindSpell, "fire-bolt", `{
		"name": "Fire Bolt",
		"level": 0,
		"desc": "You hurl a mote of fire.",
		"attack_type": "ranged",
		"damage": {"damage_type": {"name": "Fire"}, "damage_dice": "1d10"}
	}`)

	fields := extract.SpellFromAPI(doc)

	s.Require().True(fields.RequiresAttackRoll.Present)
	s.Assert().True(fields.RequiresAttackRoll.Value)
	s.Require().True(fields.DamageFormula.Present)
	s.Assert().Equal("1d10", fields.DamageFormula.Value)
	s.Assert().False(fields.RequiresSave.Present)
	s.Assert().False(fields.HigherLevel.Present)
}

func (s *APIExtractTestSuite) TestSpellFromAPIHealSpell() {
	doc := s.apiDocument(content.KindSpell, "cure-wounds", `{
		"name": "Cure Wounds",
		"level": 1,
		"desc": "A creature you touch regains hit points.",
		"heal_at_slot_level": {"1": "1d8", "2": "2d8", "3": "3d8"}
	}`)

	fields := extract.SpellFromAPI(doc)

	s.Require().True(fields.HealFormula.Present)
	s.Assert().Equal("1d8", fields.HealFormula.Value)
	s.Require().True(fields.HigherLevel.Present)
	s.Assert().Len(fields.HigherLevel.Value, 3)
}

func (s *APIExtractTestSuite) TestSpellFromAPIRitualFlag() {
	doc := s.apiDocument(content.KindSpell, "detect-magic", `{
		"name": "Detect Magic",
		"level": 1,
		"desc": "You sense magic within 30 feet of you.",
		"ritual": true,
		"concentration": true
	}`)

	fields := extract.SpellFromAPI(doc)

	s.Require().True(fields.Ritual.Present)
	s.Assert().True(fields.Ritual.Value)
	s.Require().True(fields.Concentration.Present)
	s.Assert().True(fields.Concentration.Value)
}

func (s *APIExtractTestSuite) TestNilDocument() {
	s.Assert().NotNil(extract.ClassFromAPI(nil))
	s.Assert().NotNil(extract.SpellFromAPI(nil))
	s.Assert().False(extract.ClassFromAPI(nil).Name.Present)
}
