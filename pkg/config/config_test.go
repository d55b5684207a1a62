package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TRANSCRIBE_BACKEND", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LLM_API_KEY", "gsk-test")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Pipeline.Window)
	assert.Equal(t, "gap", cfg.Pipeline.GroupingMode)
	assert.Equal(t, 4, cfg.Pipeline.TopK)
	assert.Equal(t, 15*time.Minute, cfg.Pipeline.StageTimeout)
	assert.False(t, cfg.Pipeline.KeepAudio)
	assert.Equal(t, float32(0.5), cfg.LLM.Temperature)
	assert.Equal(t, 512, cfg.LLM.MaxTokens)
	assert.Equal(t, "base", cfg.Transcription.WhisperModel)
	// embeddings fall back to the OpenAI key
	assert.Equal(t, "sk-test", cfg.Embedding.APIKey)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoad_PipelineOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PIPELINE_WINDOW", "45s")
	t.Setenv("PIPELINE_GROUPING_MODE", "legacy")
	t.Setenv("PIPELINE_TOP_K", "8")
	t.Setenv("PIPELINE_KEEP_AUDIO", "true")
	t.Setenv("LLM_TEMPERATURE", "0.1")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, cfg.Pipeline.Window)
	assert.Equal(t, "legacy", cfg.Pipeline.GroupingMode)
	assert.Equal(t, 8, cfg.Pipeline.TopK)
	assert.True(t, cfg.Pipeline.KeepAudio)
	assert.InDelta(t, 0.1, cfg.LLM.Temperature, 1e-6)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
}

func TestLoad_InvalidPipelineValue(t *testing.T) {
	setRequired(t)
	t.Setenv("PIPELINE_TOP_K", "many")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Transcription: TranscriptionConfig{Backend: BackendLocal},
			Embedding:     EmbeddingConfig{APIKey: "e"},
			LLM:           LLMConfig{APIKey: "l"},
			Pipeline:      PipelineConfig{TopK: 4},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"local backend needs no key", func(c *Config) {}, false},
		{"unknown backend", func(c *Config) { c.Transcription.Backend = "dragon" }, true},
		{"assemblyai without key", func(c *Config) { c.Transcription.Backend = BackendAssemblyAI }, true},
		{"assemblyai with key", func(c *Config) {
			c.Transcription.Backend = BackendAssemblyAI
			c.Transcription.AssemblyAIKey = "k"
		}, false},
		{"openai without key", func(c *Config) { c.Transcription.Backend = BackendOpenAI }, true},
		{"missing llm key", func(c *Config) { c.LLM.APIKey = "" }, true},
		{"missing embedding key", func(c *Config) { c.Embedding.APIKey = "" }, true},
		{"zero top k", func(c *Config) { c.Pipeline.TopK = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
