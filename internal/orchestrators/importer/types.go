package importer

import (
	"github.com/tomekeeper/importer/internal/clients/provider"
	"github.com/tomekeeper/importer/internal/entities/content"
)

// ImportClassInput identifies one class to import.
type ImportClassInput struct {
	ContentID string
	Auth      provider.AuthContext
}

// ImportClassOutput carries the merged, validated class record.
type ImportClassOutput struct {
	Record *content.ClassRecord
}

// ImportSpellInput identifies one spell to import.
type ImportSpellInput struct {
	ContentID string
	Auth      provider.AuthContext
}

// ImportSpellOutput carries the merged, validated spell record with its
// synthesized activities.
type ImportSpellOutput struct {
	Record *content.SpellRecord
}

// ImportSpellListInput identifies a batch of spells to import concurrently.
type ImportSpellListInput struct {
	ContentIDs []string
	Auth       provider.AuthContext
}

// SpellImportResult pairs one batch entry's record with its error. Exactly
// one of Record and Err is set.
type SpellImportResult struct {
	ContentID string
	Record    *content.SpellRecord
	Err       error
}

// ImportSpellListOutput carries the per-entry batch results in input order.
type ImportSpellListOutput struct {
	Results []SpellImportResult
}
