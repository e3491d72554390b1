package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/cloo-solutions/docvault/internal/domain"
)

const (
	// DefaultOpenAIEmbeddingModel is the OpenAI model used for embeddings
	DefaultOpenAIEmbeddingModel = openai.SmallEmbedding3
	// DefaultOpenAIGenerationModel is the OpenAI model used for answer synthesis
	DefaultOpenAIGenerationModel = openai.GPT4oMini
)

// openAIAPI is the subset of the OpenAI client used by this provider.
type openAIAPI interface {
	CreateEmbeddings(ctx context.Context, conv openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIConfig configures the OpenAI provider.
type OpenAIConfig struct {
	APIKey          string
	EmbeddingModel  string
	GenerationModel string
	Timeout         time.Duration
}

// OpenAI is the alternate embedding and generation gateway. The OpenAI
// embedding API carries no task intent, so documents and queries share
// one embedding path.
type OpenAI struct {
	api             openAIAPI
	embeddingModel  openai.EmbeddingModel
	generationModel string
	timeout         time.Duration
}

// NewOpenAI creates an OpenAI provider.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}

	embeddingModel := openai.EmbeddingModel(cfg.EmbeddingModel)
	if embeddingModel == "" {
		embeddingModel = DefaultOpenAIEmbeddingModel
	}
	generationModel := cfg.GenerationModel
	if generationModel == "" {
		generationModel = DefaultOpenAIGenerationModel
	}

	return &OpenAI{
		api:             openai.NewClient(cfg.APIKey),
		embeddingModel:  embeddingModel,
		generationModel: generationModel,
		timeout:         cfg.Timeout,
	}, nil
}

// EmbedDocument embeds passage text.
func (o *OpenAI) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return o.embed(ctx, text)
}

// EmbedQuery embeds question text.
func (o *OpenAI) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return o.embed(ctx, text)
}

func (o *OpenAI) embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, errors.New("text cannot be empty")
	}

	ctx, cancel := o.callContext(ctx)
	defer cancel()

	resp, err := o.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: o.embeddingModel,
	})
	if err != nil {
		return nil, classifyOpenAIError("embedding", err)
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("openai embedding returned no data")
	}

	return resp.Data[0].Embedding, nil
}

// Generate produces an answer under the given system instruction.
func (o *OpenAI) Generate(ctx context.Context, system, prompt string) (string, error) {
	ctx, cancel := o.callContext(ctx)
	defer cancel()

	resp, err := o.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.generationModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", classifyOpenAIError("generation", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai generation returned no content")
	}

	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAI) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, o.timeout)
}

// classifyOpenAIError maps quota exhaustion to the domain quota sentinel.
func classifyOpenAIError(op string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return domain.NewDomainErrorWithCause(domain.ErrCodeProviderQuota, "openai "+op+" rate limited", err)
	}
	return fmt.Errorf("openai %s failed: %w", op, err)
}
