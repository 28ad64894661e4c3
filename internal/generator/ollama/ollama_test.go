package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	var got generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"response": "  Rafael Nadal\n", "done": true})
	}))
	defer server.Close()

	c := NewClient(server.URL+"/", "test-model", time.Second)
	resp, err := c.Generate(context.Background(), "Who won on clay?", 128)
	require.NoError(t, err)
	assert.Equal(t, "Rafael Nadal", resp)

	assert.Equal(t, "test-model", got.Model)
	assert.False(t, got.Stream)
	assert.Equal(t, 0.0, got.Options.Temperature)
	assert.Equal(t, 128, got.Options.NumPredict)
}

func TestGenerate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "m", 0).Generate(context.Background(), "x", 1)
	require.Error(t, err)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("", "", 0)
	assert.Equal(t, "http://localhost:11434", c.baseURL)
	assert.Equal(t, "flan-t5", c.model)
	assert.Equal(t, 300*time.Second, c.client.Timeout)
	assert.Equal(t, "ollama:flan-t5", c.Name())
}
