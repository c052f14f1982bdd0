// Package importer implements the import pipeline orchestrator: fetch both
// channels as needed, extract per-channel fields, merge, synthesize spell
// activities, and validate against the content schema.
package importer

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tomekeeper/importer/internal/automation"
	"github.com/tomekeeper/importer/internal/clients/provider"
	"github.com/tomekeeper/importer/internal/entities/content"
	"github.com/tomekeeper/importer/internal/errors"
	"github.com/tomekeeper/importer/internal/extract"
	"github.com/tomekeeper/importer/internal/merge"
	"github.com/tomekeeper/importer/internal/pkg/idgen"
	"github.com/tomekeeper/importer/internal/schema"
)

//go:generate mockgen -destination=mock/mock_service.go -package=importermock github.com/tomekeeper/importer/internal/orchestrators/importer Service

// Service defines the import pipeline operations.
type Service interface {
	ImportClass(ctx context.Context, input *ImportClassInput) (*ImportClassOutput, error)
	ImportSpell(ctx context.Context, input *ImportSpellInput) (*ImportSpellOutput, error)
	ImportSpellList(ctx context.Context, input *ImportSpellListInput) (*ImportSpellListOutput, error)
}

// Config holds the dependencies for the import orchestrator
type Config struct {
	Provider    provider.Client
	IDGenerator idgen.Generator

	// BatchConcurrency caps concurrent fetches in ImportSpellList.
	// Defaults to 4.
	BatchConcurrency int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Provider == nil {
		vb.RequiredField("Provider")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.BatchConcurrency < 0 {
		vb.InvalidField("BatchConcurrency", "must not be negative")
	}
	if c.BatchConcurrency == 0 {
		c.BatchConcurrency = 4
	}

	return vb.Build()
}

type orchestrator struct {
	provider         provider.Client
	idGen            idgen.Generator
	batchConcurrency int
}

// NewOrchestrator creates a new import orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		provider:         cfg.Provider,
		idGen:            cfg.IDGenerator,
		batchConcurrency: cfg.BatchConcurrency,
	}, nil
}

// channelFetch runs one channel's fetch. Fetch failure is survivable as
// long as the other channel delivers, so it returns the error instead of
// aborting.
func (o *orchestrator) channelFetch(ctx context.Context, contentID string, kind content.Kind, channel content.Channel, auth provider.AuthContext) (*provider.RawDocument, error) {
	doc, err := o.provider.Fetch(ctx, &provider.FetchInput{
		ContentID: contentID,
		Kind:      kind,
		Channel:   channel,
		Auth:      auth,
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ImportClass runs the full pipeline for one class. The API channel is
// primary; the HTML channel is fetched only when the API fetch fails or
// its extraction leaves required fields absent.
func (o *orchestrator) ImportClass(ctx context.Context, input *ImportClassInput) (*ImportClassOutput, error) {
	if input == nil || input.ContentID == "" {
		return nil, errors.InvalidArgument("content ID is required")
	}

	runID := o.idGen.Generate()
	log := slog.With(
		slog.String("run_id", runID),
		slog.String("kind", content.KindClass.String()),
		slog.String("content_id", input.ContentID),
	)

	var apiFields *content.ClassFields
	var fallback []content.Diagnostic

	apiDoc, apiErr := o.channelFetch(ctx, input.ContentID, content.KindClass, content.ChannelAPI, input.Auth)
	if apiErr != nil {
		if !errors.IsFetchFailure(apiErr) {
			return nil, errors.Wrapf(apiErr, "class %s import aborted", input.ContentID)
		}
		log.Warn("api channel fetch failed", slog.String("error", apiErr.Error()))
		fallback = append(fallback, content.Diagnostic{
			Kind:    content.DiagnosticChannelFallback,
			Message: "api channel fetch failed: " + apiErr.Error(),
		})
	} else {
		apiFields = extract.ClassFromAPI(apiDoc)
	}

	var htmlFields *content.ClassFields
	missing := extract.ClassMissing(apiFields)
	if apiFields == nil || len(missing) > 0 {
		if apiFields != nil {
			log.Info("api extraction incomplete, consulting html channel",
				slog.Any("missing", missing))
			fallback = append(fallback, content.Diagnostic{
				Kind:    content.DiagnosticChannelFallback,
				Message: "api extraction incomplete, html channel consulted",
			})
		}

		htmlDoc, htmlErr := o.channelFetch(ctx, input.ContentID, content.KindClass, content.ChannelHTML, input.Auth)
		switch {
		case htmlErr != nil && apiErr != nil:
			// Both channels down: nothing to merge.
			return nil, errors.Wrapf(htmlErr, "both channels failed for class %s (api: %v)", input.ContentID, apiErr)
		case htmlErr != nil:
			log.Warn("html channel fetch failed", slog.String("error", htmlErr.Error()))
			fallback = append(fallback, content.Diagnostic{
				Kind:    content.DiagnosticChannelFallback,
				Message: "html channel fetch failed: " + htmlErr.Error(),
			})
		default:
			htmlFields = extract.ClassFromHTML(htmlDoc)
		}
	}

	record := merge.Class(input.ContentID, apiFields, htmlFields)
	record.Diagnostics = append(record.Diagnostics, fallback...)

	if err := schema.ValidateClass(record); err != nil {
		log.Error("class failed validation", slog.Any("violations", errors.GetMeta(err)))
		return nil, errors.Wrapf(err, "class %s failed validation", input.ContentID)
	}

	log.Info("class imported",
		slog.Int("diagnostics", len(record.Diagnostics)),
		slog.Int("advancements", len(record.Advancements)))

	return &ImportClassOutput{Record: record}, nil
}

// ImportSpell runs the full pipeline for one spell, including activity
// synthesis.
func (o *orchestrator) ImportSpell(ctx context.Context, input *ImportSpellInput) (*ImportSpellOutput, error) {
	if input == nil || input.ContentID == "" {
		return nil, errors.InvalidArgument("content ID is required")
	}

	runID := o.idGen.Generate()
	log := slog.With(
		slog.String("run_id", runID),
		slog.String("kind", content.KindSpell.String()),
		slog.String("content_id", input.ContentID),
	)

	var apiFields *content.SpellFields
	var fallback []content.Diagnostic

	apiDoc, apiErr := o.channelFetch(ctx, input.ContentID, content.KindSpell, content.ChannelAPI, input.Auth)
	if apiErr != nil {
		if !errors.IsFetchFailure(apiErr) {
			return nil, errors.Wrapf(apiErr, "spell %s import aborted", input.ContentID)
		}
		log.Warn("api channel fetch failed", slog.String("error", apiErr.Error()))
		fallback = append(fallback, content.Diagnostic{
			Kind:    content.DiagnosticChannelFallback,
			Message: "api channel fetch failed: " + apiErr.Error(),
		})
	} else {
		apiFields = extract.SpellFromAPI(apiDoc)
	}

	var htmlFields *content.SpellFields
	missing := extract.SpellMissing(apiFields)
	if apiFields == nil || len(missing) > 0 {
		if apiFields != nil {
			log.Info("api extraction incomplete, consulting html channel",
				slog.Any("missing", missing))
			fallback = append(fallback, content.Diagnostic{
				Kind:    content.DiagnosticChannelFallback,
				Message: "api extraction incomplete, html channel consulted",
			})
		}

		htmlDoc, htmlErr := o.channelFetch(ctx, input.ContentID, content.KindSpell, content.ChannelHTML, input.Auth)
		switch {
		case htmlErr != nil && apiErr != nil:
			return nil, errors.Wrapf(htmlErr, "both channels failed for spell %s (api: %v)", input.ContentID, apiErr)
		case htmlErr != nil:
			log.Warn("html channel fetch failed", slog.String("error", htmlErr.Error()))
			fallback = append(fallback, content.Diagnostic{
				Kind:    content.DiagnosticChannelFallback,
				Message: "html channel fetch failed: " + htmlErr.Error(),
			})
		default:
			htmlFields = extract.SpellFromHTML(htmlDoc)
		}
	}

	record := merge.Spell(input.ContentID, apiFields, htmlFields)
	record.Diagnostics = append(record.Diagnostics, fallback...)
	record.Activities = automation.Synthesize(record)

	if err := schema.ValidateSpell(record); err != nil {
		log.Error("spell failed validation", slog.Any("violations", errors.GetMeta(err)))
		return nil, errors.Wrapf(err, "spell %s failed validation", input.ContentID)
	}

	log.Info("spell imported",
		slog.Int("diagnostics", len(record.Diagnostics)),
		slog.Int("activities", len(record.Activities)))

	return &ImportSpellOutput{Record: record}, nil
}

// ImportSpellList imports a batch of spells concurrently. Each entry
// succeeds or fails independently; results come back in input order.
func (o *orchestrator) ImportSpellList(ctx context.Context, input *ImportSpellListInput) (*ImportSpellListOutput, error) {
	if input == nil || len(input.ContentIDs) == 0 {
		return nil, errors.InvalidArgument("at least one content ID is required")
	}

	results := make([]SpellImportResult, len(input.ContentIDs))
	sem := make(chan struct{}, o.batchConcurrency)
	var wg sync.WaitGroup

	for i, contentID := range input.ContentIDs {
		wg.Add(1)
		go func(i int, contentID string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			output, err := o.ImportSpell(ctx, &ImportSpellInput{
				ContentID: contentID,
				Auth:      input.Auth,
			})
			if err != nil {
				results[i] = SpellImportResult{ContentID: contentID, Err: err}
				return
			}
			results[i] = SpellImportResult{ContentID: contentID, Record: output.Record}
		}(i, contentID)
	}
	wg.Wait()

	return &ImportSpellListOutput{Results: results}, nil
}
