package merge_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tomekeeper/importer/internal/entities/content"
	"github.com/tomekeeper/importer/internal/merge"
)

type ClassMergeTestSuite struct {
	suite.Suite
}

func TestClassMergeSuite(t *testing.T) {
	suite.Run(t, new(ClassMergeTestSuite))
}

func (s *ClassMergeTestSuite) apiClassFields() *content.ClassFields {
	return &content.ClassFields{
		Name:            content.Exact("Ranger", content.ProvenanceAPI),
		HitDice:         content.Exact("1d10", content.ProvenanceAPI),
		SavingThrows:    content.Exact([]string{"STR", "DEX"}, content.ProvenanceAPI),
		SkillChoiceText: content.Exact("Choose 3 from Animal Handling, Athletics, and Survival", content.ProvenanceAPI),
		ArmorProficiencies: content.Exact(
			[]string{"Light armor", "Medium armor", "Shields"}, content.ProvenanceAPI),
		EquipmentText: content.Exact(
			"(A) studded leather armor, a martial weapon; or (B) leather armor, two daggers", content.ProvenanceAPI),
	}
}

func (s *ClassMergeTestSuite) htmlClassFields() *content.ClassFields {
	return &content.ClassFields{
		Name:         content.Exact("Ranger (web)", content.ProvenanceHTML),
		Description:  content.Exact("A warden of the wilds.", content.ProvenanceHTML),
		HitDice:      content.Heuristic("1d10", content.ProvenanceHTML),
		SavingThrows: content.Heuristic([]string{"strength", "dexterity"}, content.ProvenanceHTML),
	}
}

func (s *ClassMergeTestSuite) TestAPIWinsOverHTML() {
	record := merge.Class("ranger", s.apiClassFields(), s.htmlClassFields())

	s.Assert().Equal("Ranger", record.Name)
	s.Assert().Equal(content.ProvenanceAPI, record.SourceProvenance["name"])
	s.Assert().Equal("1d10", record.HitDice)
	s.Assert().Equal(content.ProvenanceAPI, record.SourceProvenance["hit_dice"])
}

func (s *ClassMergeTestSuite) TestHTMLFillsAPIGaps() {
	record := merge.Class("ranger", s.apiClassFields(), s.htmlClassFields())

	s.Assert().Equal("A warden of the wilds.", record.Description)
	s.Assert().Equal(content.ProvenanceHTML, record.SourceProvenance["description"])
}

func (s *ClassMergeTestSuite) TestSavingThrowsCanonicalized() {
	record := merge.Class("ranger", s.apiClassFields(), nil)

	s.Assert().Equal([]string{"strength", "dexterity"}, record.SavingThrows)
}

func (s *ClassMergeTestSuite) TestUnknownAbilityDroppedWithDiagnostic() {
	api := s.apiClassFields()
	api.SavingThrows = content.Exact([]string{"DEX", "Luck"}, content.ProvenanceAPI)

	record := merge.Class("ranger", api, nil)

	s.Assert().Equal([]string{"dexterity"}, record.SavingThrows)
	s.Assert().True(hasDiagnostic(record.Diagnostics, content.DiagnosticHeuristicParse, "saving_throws"))
}

func (s *ClassMergeTestSuite) TestSkillChoiceAdvancement() {
	record := merge.Class("ranger", s.apiClassFields(), nil)

	s.Require().NotEmpty(record.Advancements)
	choice := record.Advancements[0]
	s.Assert().Equal(content.AdvancementChoice, choice.Kind)
	s.Assert().Equal(1, choice.Level)
	s.Assert().Equal(3, choice.Count)
	s.Assert().Equal([]string{"Animal Handling", "Athletics", "Survival"}, choice.Pool)
}

func (s *ClassMergeTestSuite) TestChoiceCountClampedToPool() {
	api := s.apiClassFields()
	api.SkillChoiceText = content.Exact("Choose 5 from Athletics and Stealth", content.ProvenanceAPI)

	record := merge.Class("ranger", api, nil)

	s.Require().NotEmpty(record.Advancements)
	choice := record.Advancements[0]
	s.Assert().Equal(content.AdvancementChoice, choice.Kind)
	s.Assert().Equal(2, choice.Count)
	s.Assert().Len(choice.Pool, 2)
}

func (s *ClassMergeTestSuite) TestProficiencyGrantAdvancements() {
	record := merge.Class("ranger", s.apiClassFields(), nil)

	var grants []content.AdvancementEntry
	for _, entry := range record.Advancements {
		if entry.Kind == content.AdvancementGrant {
			grants = append(grants, entry)
		}
	}
	s.Require().Len(grants, 1)
	s.Assert().Equal([]string{"Light armor", "Medium armor", "Shields"}, grants[0].Pool)
	s.Assert().Equal(1, grants[0].Level)
}

func (s *ClassMergeTestSuite) TestStartingEquipmentBundles() {
	record := merge.Class("ranger", s.apiClassFields(), nil)

	s.Assert().Equal(content.EquipmentChoiceSet{
		{"studded leather armor", "a martial weapon"},
		{"leather armor", "two daggers"},
	}, record.StartingEquipment)
	s.Assert().Equal([]string{"martial-weapons"}, record.EquipmentCategories)
}

func (s *ClassMergeTestSuite) TestSpellcastingAbilityFromText() {
	api := s.apiClassFields()
	api.SpellcastingText = content.Exact(
		"Wisdom is your spellcasting ability for your ranger spells.", content.ProvenanceAPI)

	record := merge.Class("ranger", api, nil)

	s.Assert().Equal("wisdom", record.SpellcastingAbility)
}

func (s *ClassMergeTestSuite) TestSpellcastingTextWithoutAbilitySentence() {
	api := s.apiClassFields()
	api.SpellcastingText = content.Exact("You know two cantrips of your choice.", content.ProvenanceAPI)

	record := merge.Class("ranger", api, nil)

	s.Assert().Empty(record.SpellcastingAbility)
	s.Assert().True(hasDiagnostic(record.Diagnostics, content.DiagnosticExtractionGap, "spellcasting"))
}

func (s *ClassMergeTestSuite) TestAbsentFieldGapDiagnostic() {
	record := merge.Class("ranger", s.apiClassFields(), nil)

	s.Assert().True(hasDiagnostic(record.Diagnostics, content.DiagnosticExtractionGap, "tags"))
	s.Assert().Equal(content.ProvenanceDefault, record.SourceProvenance["tags"])
	s.Assert().NotNil(record.Tags)
}

func (s *ClassMergeTestSuite) TestDeterministic() {
	first := merge.Class("ranger", s.apiClassFields(), s.htmlClassFields())
	second := merge.Class("ranger", s.apiClassFields(), s.htmlClassFields())

	s.Assert().Equal(first, second)
}

func (s *ClassMergeTestSuite) TestNilChannels() {
	record := merge.Class("ranger", nil, nil)

	s.Assert().Equal("ranger", record.ID)
	s.Assert().Equal(content.KindClass, record.Kind)
	s.Assert().Empty(record.Name)
	s.Assert().NotNil(record.Advancements)
	s.Assert().NotNil(record.StartingEquipment)
}

func hasDiagnostic(diags []content.Diagnostic, kind content.DiagnosticKind, field string) bool {
	for _, d := range diags {
		if d.Kind == kind && d.Field == field {
			return true
		}
	}
	return false
}
