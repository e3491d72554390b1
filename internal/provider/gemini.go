// Package provider wraps the external embedding and generation services.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/cloo-solutions/docvault/internal/domain"
)

const (
	// DefaultGeminiEmbeddingModel is the Gemini model used for passage embeddings
	DefaultGeminiEmbeddingModel = "gemini-embedding-001"
	// DefaultGeminiGenerationModel is the Gemini model used for answer synthesis
	DefaultGeminiGenerationModel = "gemini-2.5-flash"

	taskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	taskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// GeminiConfig configures the Gemini provider.
type GeminiConfig struct {
	APIKey          string
	EmbeddingModel  string
	GenerationModel string
	Timeout         time.Duration
}

// Gemini is the default embedding and generation gateway, backed by the
// Google Gemini API.
type Gemini struct {
	client          *genai.Client
	embeddingModel  string
	generationModel string
	timeout         time.Duration
}

// NewGemini creates a Gemini provider.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	embeddingModel := cfg.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = DefaultGeminiEmbeddingModel
	}
	generationModel := cfg.GenerationModel
	if generationModel == "" {
		generationModel = DefaultGeminiGenerationModel
	}

	return &Gemini{
		client:          client,
		embeddingModel:  embeddingModel,
		generationModel: generationModel,
		timeout:         cfg.Timeout,
	}, nil
}

// EmbedDocument embeds passage text with retrieval-document intent.
func (g *Gemini) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return g.embed(ctx, text, taskRetrievalDocument)
}

// EmbedQuery embeds question text with retrieval-query intent.
func (g *Gemini) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return g.embed(ctx, text, taskRetrievalQuery)
}

func (g *Gemini) embed(ctx context.Context, text, taskType string) ([]float32, error) {
	if text == "" {
		return nil, errors.New("text cannot be empty")
	}

	ctx, cancel := g.callContext(ctx)
	defer cancel()

	resp, err := g.client.Models.EmbedContent(ctx, g.embeddingModel, genai.Text(text), &genai.EmbedContentConfig{
		TaskType: taskType,
	})
	if err != nil {
		return nil, classifyGeminiError("embedding", err)
	}

	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("gemini embedding returned no data")
	}

	return resp.Embeddings[0].Values, nil
}

// Generate produces an answer under the given system instruction.
func (g *Gemini) Generate(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := g.callContext(ctx)
	defer cancel()

	genCfg := &genai.GenerateContentConfig{}
	if system != "" {
		if contents := genai.Text(system); len(contents) > 0 {
			genCfg.SystemInstruction = contents[0]
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.generationModel, genai.Text(prompt), genCfg)
	if err != nil {
		return "", classifyGeminiError("generation", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini generation returned no content")
	}

	return text, nil
}

func (g *Gemini) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.timeout)
}

// classifyGeminiError maps quota exhaustion to the domain quota sentinel so
// callers can surface a retry condition distinctly.
func classifyGeminiError(op string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return domain.NewDomainErrorWithCause(domain.ErrCodeProviderQuota, "gemini "+op+" rate limited", err)
	}
	return fmt.Errorf("gemini %s failed: %w", op, err)
}
