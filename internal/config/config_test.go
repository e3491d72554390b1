package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithEnvVars(t *testing.T) {
	os.Setenv("DOCVAULT_PORT", "9090")
	os.Setenv("DOCVAULT_DEBUG", "true")
	os.Setenv("DOCVAULT_DATA_FILE", "/tmp/store.json")
	os.Setenv("DOCVAULT_PROVIDER", "openai")
	os.Setenv("DOCVAULT_OPENAI_API_KEY", "sk-test")
	os.Setenv("DOCVAULT_RELEVANCE_CUTOFF", "0.8")
	os.Setenv("DOCVAULT_SEARCH_TOP_K", "2")
	os.Setenv("DOCVAULT_EMBED_INTERVAL", "500ms")
	defer func() {
		os.Unsetenv("DOCVAULT_PORT")
		os.Unsetenv("DOCVAULT_DEBUG")
		os.Unsetenv("DOCVAULT_DATA_FILE")
		os.Unsetenv("DOCVAULT_PROVIDER")
		os.Unsetenv("DOCVAULT_OPENAI_API_KEY")
		os.Unsetenv("DOCVAULT_RELEVANCE_CUTOFF")
		os.Unsetenv("DOCVAULT_SEARCH_TOP_K")
		os.Unsetenv("DOCVAULT_EMBED_INTERVAL")
	}()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "/tmp/store.json", cfg.DataFile)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, 0.8, cfg.RelevanceCutoff)
	assert.Equal(t, 2, cfg.SearchTopK)
	assert.Equal(t, 500*time.Millisecond, cfg.EmbedInterval)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "vault.json", cfg.DataFile)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, 0.65, cfg.RelevanceCutoff)
	assert.Equal(t, 4, cfg.SearchTopK)
	assert.Equal(t, 3*time.Second, cfg.EmbedInterval)
	assert.Equal(t, 60*time.Second, cfg.ProviderTimeout)
}

func TestHasGemini(t *testing.T) {
	cfg := &Config{GeminiAPIKey: "key"}
	assert.True(t, cfg.HasGemini())

	cfg.GeminiAPIKey = ""
	assert.False(t, cfg.HasGemini())
}

func TestHasOpenAI(t *testing.T) {
	cfg := &Config{OpenAIAPIKey: "sk-test"}
	assert.True(t, cfg.HasOpenAI())

	cfg.OpenAIAPIKey = ""
	assert.False(t, cfg.HasOpenAI())
}
