package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "recursive", cfg.Chunker.Type)
	assert.Equal(t, 450, cfg.Chunker.ChunkSize)
	assert.Equal(t, 50, cfg.Chunker.ChunkOverlap)
	assert.Equal(t, 8, cfg.Retrieval.TopK)
	assert.Equal(t, 1024, cfg.Generator.MaxContextTokens)
	assert.Equal(t, 128, cfg.Generator.MaxNewTokens)
	assert.True(t, cfg.Answer.FactExtractor)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
data_dir: corpus
retrieval:
  top_k: 3
answer:
  fact_extractor: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "corpus", cfg.DataDir)
	assert.Equal(t, 3, cfg.Retrieval.TopK)
	assert.False(t, cfg.Answer.FactExtractor)
	assert.Equal(t, "tfidf", cfg.Embedder.Type)
	assert.Equal(t, 450, cfg.Chunker.ChunkSize)
}

func TestLoad_FillsOpenAIDefaults(t *testing.T) {
	path := writeConfig(t, `
embedder:
  type: openai
generator:
  type: openai
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Embedder.OpenAI)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Embedder.OpenAI.BaseURL)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Embedder.OpenAI.APIKeyEnv)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.OpenAI.Model)
	assert.Equal(t, 32, cfg.Embedder.OpenAI.BatchSize)

	require.NotNil(t, cfg.Generator.OpenAI)
	assert.Equal(t, "gpt-4o-mini", cfg.Generator.OpenAI.Model)
	assert.Equal(t, 60, cfg.Generator.OpenAI.TimeoutSecs)
}

func TestLoad_FillsOllamaDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "generator:\n  type: ollama\n"))
	require.NoError(t, err)

	require.NotNil(t, cfg.Generator.Ollama)
	assert.Equal(t, "http://localhost:11434", cfg.Generator.Ollama.BaseURL)
	assert.Equal(t, 300, cfg.Generator.Ollama.TimeoutSecs)
}

func TestLoad_RejectsUnknownTypes(t *testing.T) {
	cases := map[string]string{
		"chunker":   "chunker:\n  type: paragraph\n",
		"embedder":  "embedder:\n  type: word2vec\n",
		"generator": "generator:\n  type: gpt2\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unknown "+name)
		})
	}
}

func TestLoad_RejectsOverlapNotSmallerThanSize(t *testing.T) {
	_, err := Load(writeConfig(t, "chunker:\n  chunk_size: 40\n  chunk_overlap: 40\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chunk_overlap")
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "retrieval: [unterminated"))
	require.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.DataDir = "elsewhere"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "elsewhere", loaded.DataDir)
	assert.Equal(t, cfg.Chunker, loaded.Chunker)
}
