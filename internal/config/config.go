package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	// DataFile is the flat vector-store file holding every ingested passage.
	DataFile  string `envconfig:"DATA_FILE" default:"vault.json"`
	UploadDir string `envconfig:"UPLOAD_DIR"`

	Provider        string `envconfig:"PROVIDER" default:"gemini"`
	GeminiAPIKey    string `envconfig:"GEMINI_API_KEY"`
	OpenAIAPIKey    string `envconfig:"OPENAI_API_KEY"`
	EmbeddingModel  string `envconfig:"EMBEDDING_MODEL"`
	GenerationModel string `envconfig:"GENERATION_MODEL"`

	// RelevanceCutoff and SearchTopK are the two retrieval knobs: passages
	// below the cutoff are never used as evidence, and at most SearchTopK
	// passages reach the generation prompt.
	RelevanceCutoff float64 `envconfig:"RELEVANCE_CUTOFF" default:"0.65"`
	SearchTopK      int     `envconfig:"SEARCH_TOP_K" default:"4"`

	// EmbedInterval paces successive embedding calls during ingestion to
	// stay under the provider's request quota.
	EmbedInterval   time.Duration `envconfig:"EMBED_INTERVAL" default:"3s"`
	ProviderTimeout time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"60s"`

	UnidocLicenseKey string `envconfig:"UNIDOC_LICENSE_KEY"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("DOCVAULT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) HasGemini() bool {
	return c.GeminiAPIKey != ""
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}
