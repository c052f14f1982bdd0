package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomekeeper/importer/internal/clients/provider"
	"github.com/tomekeeper/importer/internal/config"
	"github.com/tomekeeper/importer/internal/entities/content"
	"github.com/tomekeeper/importer/internal/orchestrators/importer"
	"github.com/tomekeeper/importer/internal/pkg/idgen"
	"github.com/tomekeeper/importer/internal/redis"
	"github.com/tomekeeper/importer/internal/repositories/document"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import content from the provider",
}

var importClassCmd = &cobra.Command{
	Use:   "class <content-id>",
	Short: "Import one class",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportClass,
}

var importSpellCmd = &cobra.Command{
	Use:   "spell <content-id>",
	Short: "Import one spell",
	Args:  cobra.ExactArgs(1),
	RunE:  runImportSpell,
}

var importSpellsCmd = &cobra.Command{
	Use:   "spells <content-id>...",
	Short: "Import a batch of spells concurrently",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runImportSpells,
}

var batchConcurrency int

func init() {
	importSpellsCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0,
		"max concurrent fetches (overrides IMPORTER_BATCH_CONCURRENCY)")

	importCmd.AddCommand(importClassCmd)
	importCmd.AddCommand(importSpellCmd)
	importCmd.AddCommand(importSpellsCmd)
}

// buildService wires the provider client (cached when Redis is
// configured) into the import orchestrator.
func buildService(cfg *config.Config) (importer.Service, error) {
	client, err := provider.New(&provider.Config{
		APIBaseURL:  cfg.APIBaseURL,
		SiteBaseURL: cfg.SiteBaseURL,
		HTTPTimeout: cfg.HTTPTimeout,
		UserAgent:   cfg.UserAgent,
	})
	if err != nil {
		return nil, err
	}

	if cfg.RedisAddress != "" {
		redisClient, err := redis.NewClient(cfg.RedisAddress, nil)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		cache, err := document.NewRedis(&document.RedisConfig{Client: redisClient})
		if err != nil {
			return nil, err
		}
		client, err = provider.NewCached(&provider.CachedConfig{
			Base:       client,
			Cache:      cache,
			DefaultTTL: cfg.CacheTTL,
		})
		if err != nil {
			return nil, err
		}
	}

	return importer.NewOrchestrator(&importer.Config{
		Provider:         client,
		IDGenerator:      idgen.NewUUID("run"),
		BatchConcurrency: cfg.BatchConcurrency,
	})
}

func commandContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	return ctx, cancel
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func runImportClass(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	service, err := buildService(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	output, err := service.ImportClass(ctx, &importer.ImportClassInput{
		ContentID: args[0],
		Auth:      provider.AuthContext{Token: cfg.AuthToken},
	})
	if err != nil {
		return err
	}
	return printJSON(output.Record)
}

func runImportSpell(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	service, err := buildService(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	output, err := service.ImportSpell(ctx, &importer.ImportSpellInput{
		ContentID: args[0],
		Auth:      provider.AuthContext{Token: cfg.AuthToken},
	})
	if err != nil {
		return err
	}
	return printJSON(output.Record)
}

func runImportSpells(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if batchConcurrency > 0 {
		cfg.BatchConcurrency = batchConcurrency
	}
	service, err := buildService(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	output, err := service.ImportSpellList(ctx, &importer.ImportSpellListInput{
		ContentIDs: args,
		Auth:       provider.AuthContext{Token: cfg.AuthToken},
	})
	if err != nil {
		return err
	}

	records := []*content.SpellRecord{}
	failed := 0
	for _, result := range output.Results {
		if result.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "import failed for %s: %v\n", result.ContentID, result.Err)
			continue
		}
		records = append(records, result.Record)
	}
	if err := printJSON(records); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d spells failed to import", failed, len(output.Results))
	}
	return nil
}
