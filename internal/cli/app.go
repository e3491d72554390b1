package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/unidoc/unipdf/v3/common/license"

	"github.com/cloo-solutions/docvault/internal/config"
	"github.com/cloo-solutions/docvault/internal/extractor"
	"github.com/cloo-solutions/docvault/internal/provider"
	"github.com/cloo-solutions/docvault/internal/service"
	"github.com/cloo-solutions/docvault/internal/store"
)

// app holds the wired service graph shared by the serve and ingest commands.
type app struct {
	cfg       *config.Config
	store     *store.FileStore
	ingestion *service.IngestionService
	query     *service.QueryService
	status    *service.StatusService
}

func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	if cfg.UnidocLicenseKey != "" {
		if err := license.SetMeteredKey(cfg.UnidocLicenseKey); err != nil {
			return nil, fmt.Errorf("failed to set unidoc license key: %w", err)
		}
	}

	var embedder service.EmbeddingClient
	var generator service.GenerationClient

	switch cfg.Provider {
	case config.ProviderGemini:
		if !cfg.HasGemini() {
			return nil, fmt.Errorf("DOCVAULT_GEMINI_API_KEY is required for the gemini provider")
		}
		gemini, err := provider.NewGemini(ctx, provider.GeminiConfig{
			APIKey:          cfg.GeminiAPIKey,
			EmbeddingModel:  cfg.EmbeddingModel,
			GenerationModel: cfg.GenerationModel,
			Timeout:         cfg.ProviderTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini provider: %w", err)
		}
		embedder, generator = gemini, gemini
	case config.ProviderOpenAI:
		if !cfg.HasOpenAI() {
			return nil, fmt.Errorf("DOCVAULT_OPENAI_API_KEY is required for the openai provider")
		}
		oai, err := provider.NewOpenAI(provider.OpenAIConfig{
			APIKey:          cfg.OpenAIAPIKey,
			EmbeddingModel:  cfg.EmbeddingModel,
			GenerationModel: cfg.GenerationModel,
			Timeout:         cfg.ProviderTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create openai provider: %w", err)
		}
		embedder, generator = oai, oai
	default:
		return nil, fmt.Errorf("unknown provider %q (expected %q or %q)", cfg.Provider, config.ProviderGemini, config.ProviderOpenAI)
	}
	log.Printf("using %s provider", cfg.Provider)

	fileStore := store.NewFileStore(cfg.DataFile)
	pdf := extractor.NewPDFExtractor()

	return &app{
		cfg:       cfg,
		store:     fileStore,
		ingestion: service.NewIngestionService(fileStore, pdf, embedder, cfg.EmbedInterval),
		query:     service.NewQueryService(fileStore, embedder, service.NewSynthesizer(generator), cfg.RelevanceCutoff, cfg.SearchTopK),
		status:    service.NewStatusService(fileStore),
	}, nil
}
