package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/cloo-solutions/docvault/internal/domain"
	"github.com/cloo-solutions/docvault/internal/telemetry"
)

// EmbeddingClient defines the interface for text embedding providers
type EmbeddingClient interface {
	EmbedDocument(ctx context.Context, text string) ([]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// PassageStore defines the interface for passage persistence
type PassageStore interface {
	Load(ctx context.Context) ([]domain.Passage, error)
	Replace(ctx context.Context, passages []domain.Passage) error
	Reset(ctx context.Context) error
}

// ParagraphExtractor defines the interface for document text extraction
type ParagraphExtractor interface {
	Paragraphs(data []byte) ([]string, error)
}

// IngestResult summarizes a single document ingestion run.
type IngestResult struct {
	Added   int
	Skipped int
	Failed  int
}

// IngestionService turns raw documents into embedded passages in the store.
// Each run loads the full collection once and writes it back once, so callers
// must serialize Ingest invocations.
type IngestionService struct {
	store         PassageStore
	extractor     ParagraphExtractor
	embedder      EmbeddingClient
	embedInterval time.Duration
	now           func() time.Time
}

// NewIngestionService creates a new IngestionService instance.
func NewIngestionService(store PassageStore, extractor ParagraphExtractor, embedder EmbeddingClient, embedInterval time.Duration) *IngestionService {
	return &IngestionService{
		store:         store,
		extractor:     extractor,
		embedder:      embedder,
		embedInterval: embedInterval,
		now:           time.Now,
	}
}

// IngestFile reads a staged document from disk and ingests it.
func (s *IngestionService) IngestFile(ctx context.Context, documentName, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading staged file: %w", err)
	}
	result, err := s.Ingest(ctx, documentName, data)
	if err != nil {
		return err
	}
	log.Printf("ingested %q: %d added, %d skipped", documentName, result.Added, result.Skipped)
	return nil
}

// Ingest extracts paragraphs from the document, embeds each new one and
// persists the grown collection. Already-ingested passage titles are skipped,
// which makes re-uploading the same file a no-op. On an embedding failure the
// run stops at the failing paragraph but everything embedded so far is still
// persisted, so a re-upload resumes where the run broke off.
func (s *IngestionService) Ingest(ctx context.Context, documentName string, data []byte) (*IngestResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.ingest", telemetry.SpanAttributes{
		Document:  documentName,
		Operation: "ingest",
	})
	defer span.End()

	paragraphs, err := s.extractor.Paragraphs(data)
	if err != nil {
		return nil, err
	}

	passages, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading passage store: %w", err)
	}

	seen := make(map[string]bool, len(passages))
	for _, p := range passages {
		seen[p.Title] = true
	}

	result := &IngestResult{}
	baseID := s.now().UnixMilli()
	limiter := rate.NewLimiter(rate.Every(s.embedInterval), 1)

	var embedErr error
	for i, text := range paragraphs {
		title := domain.PassageTitle(documentName, i)
		if seen[title] {
			result.Skipped++
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			embedErr = err
			break
		}

		vector, err := s.embedder.EmbedDocument(ctx, text)
		if err != nil {
			log.Printf("embedding %q failed: %v", title, err)
			result.Failed = len(paragraphs) - i
			embedErr = err
			break
		}

		passage := domain.Passage{
			ID:     baseID + int64(i),
			Title:  title,
			Text:   text,
			Vector: vector,
		}
		if err := domain.ValidatePassage(&passage); err != nil {
			log.Printf("dropping passage %q: %v", title, err)
			result.Skipped++
			continue
		}

		passages = append(passages, passage)
		seen[title] = true
		result.Added++
	}

	// Persist even on a partial run so completed embeddings are not lost.
	if err := s.store.Replace(ctx, passages); err != nil {
		return nil, fmt.Errorf("persisting passages: %w", err)
	}

	if embedErr != nil {
		span.SetError(embedErr)
		return result, embedErr
	}
	return result, nil
}
