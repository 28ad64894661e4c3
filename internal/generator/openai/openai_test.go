package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SendsDeterministicRequest(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "cmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "m",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": "  Novak Djokovic \n"},
			}},
		})
	}))
	defer srv.Close()

	t.Setenv("RAG_TEST_KEY", "k")
	c, err := NewClient(Config{BaseURL: srv.URL + "/v1", APIKeyEnv: "RAG_TEST_KEY", Model: "m"})
	require.NoError(t, err)

	answer, err := c.Generate(context.Background(), "Question: who?", 128)
	require.NoError(t, err)
	assert.Equal(t, "Novak Djokovic", answer)

	assert.Equal(t, "m", got["model"])
	assert.EqualValues(t, 0, got["temperature"])
	assert.EqualValues(t, 128, got["max_tokens"])
	msgs, ok := got["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	assert.Equal(t, "user", msgs[0].(map[string]any)["role"])
}

func TestGenerate_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	t.Setenv("RAG_TEST_KEY", "k")
	c, err := NewClient(Config{BaseURL: srv.URL, APIKeyEnv: "RAG_TEST_KEY"})
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "p", 10)
	require.Error(t, err)
}

func TestNewClient_MissingKey(t *testing.T) {
	t.Setenv("RAG_TEST_EMPTY", "")
	_, err := NewClient(Config{APIKeyEnv: "RAG_TEST_EMPTY"})
	require.Error(t, err)
}

func TestCountTokens_UsesModelEncoding(t *testing.T) {
	t.Setenv("RAG_TEST_KEY", "k")

	c, err := NewClient(Config{APIKeyEnv: "RAG_TEST_KEY", Model: "gpt-4"})
	require.NoError(t, err)
	// Reference counts from the cl100k_base encoding.
	assert.Equal(t, 6, c.CountTokens("tiktoken is great!"))
	assert.Equal(t, 2, c.CountTokens("hello world"))
	assert.Zero(t, c.CountTokens(""))

	def, err := NewClient(Config{APIKeyEnv: "RAG_TEST_KEY"})
	require.NoError(t, err)
	assert.Equal(t, "openai:gpt-4o-mini", def.Name())
	assert.Equal(t, 2, def.CountTokens("hello world"))
}

func TestCountTokens_UnknownModelFallsBack(t *testing.T) {
	t.Setenv("RAG_TEST_KEY", "k")
	c, err := NewClient(Config{APIKeyEnv: "RAG_TEST_KEY", Model: "flan-t5-base"})
	require.NoError(t, err)
	assert.Equal(t, 6, c.CountTokens("tiktoken is great!"))
}
