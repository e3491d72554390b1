package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloo-solutions/docvault/internal/domain"
	"github.com/cloo-solutions/docvault/internal/telemetry"
)

// NoEvidenceMessage is returned verbatim when no stored passage clears the
// relevance cutoff for a question.
const NoEvidenceMessage = "Não encontrei informações sobre isso nos documentos fornecidos."

// QueryOutput is the answer to a question plus the passages it was grounded on.
type QueryOutput struct {
	Answer     string
	References []Reference
}

// QueryService answers questions against the ingested passage collection.
type QueryService struct {
	store       PassageStore
	embedder    EmbeddingClient
	synthesizer *Synthesizer
	cutoff      float64
	topK        int
}

// NewQueryService creates a new QueryService instance.
func NewQueryService(store PassageStore, embedder EmbeddingClient, synthesizer *Synthesizer, cutoff float64, topK int) *QueryService {
	if cutoff <= 0 {
		cutoff = DefaultRelevanceCutoff
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &QueryService{
		store:       store,
		embedder:    embedder,
		synthesizer: synthesizer,
		cutoff:      cutoff,
		topK:        topK,
	}
}

// Ask embeds the question, retrieves the most relevant passages and
// synthesizes a cited answer. An empty store is reported before any provider
// call is made. A store with content but no passage above the cutoff yields
// the no-evidence message with an empty reference list.
func (s *QueryService) Ask(ctx context.Context, question string) (*QueryOutput, error) {
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrEmptyQuestion
	}

	ctx, span := telemetry.StartSpan(ctx, "service.ask", telemetry.SpanAttributes{
		Operation: "ask",
	})
	defer span.End()

	passages, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading passage store: %w", err)
	}
	if len(passages) == 0 {
		return nil, domain.ErrEmptyStore
	}

	queryVector, err := s.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, err
	}

	matches := RankPassages(queryVector, passages, s.cutoff, s.topK)
	if len(matches) == 0 {
		return &QueryOutput{Answer: NoEvidenceMessage, References: []Reference{}}, nil
	}

	answer, err := s.synthesizer.Answer(ctx, question, matches)
	if err != nil {
		return nil, err
	}

	return &QueryOutput{Answer: answer.Text, References: answer.References}, nil
}
