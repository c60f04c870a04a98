package ollama

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type extraction struct {
	Entities []struct {
		Name string `json:"name"`
		Type string `json:"type"`
	} `json:"entities"`
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

func TestGenerateCompletionWithFormat(t *testing.T) {
	var request map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &request))

		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = io.WriteString(w, `{"model":"llama3","created_at":"2024-01-01T00:00:00Z","message":{"role":"assistant","content":"{\"entities\":[{\"name\":\"NovaCloud\",\"type\":\"Platform\"}]}"},"done":true,"total_duration":2000000000,"prompt_eval_count":30,"eval_count":10}`+"\n")
	}))
	defer server.Close()

	client, err := NewGraphOllamaClient(NewGraphOllamaClientParams{
		ExtractionModel:       "llama3",
		BaseURL:               server.URL,
		ApiKey:                "secret",
		MaxConcurrentRequests: 2,
		TokenCounter:          wordCount,
	})
	require.NoError(t, err)

	var out extraction
	err = client.GenerateCompletionWithFormat(t.Context(), "extract_graph", "Extract a graph.", "NovaCloud is a platform.", &out)
	require.NoError(t, err)

	require.Len(t, out.Entities, 1)
	assert.Equal(t, "Platform", out.Entities[0].Type)
	assert.Equal(t, "llama3", request["model"])
	assert.Equal(t, false, request["stream"])
	assert.Contains(t, request, "format")

	metrics := client.GetMetrics()
	assert.Equal(t, 40, metrics.TotalTokens)
	assert.Equal(t, int64(2000), metrics.DurationMs)
	assert.InDelta(t, 20.0, metrics.TokenPerSecond, 0.001)
}

func TestGenerateCompletionWithFormatRejectsNonPointer(t *testing.T) {
	client, err := NewGraphOllamaClient(NewGraphOllamaClientParams{ExtractionModel: "llama3", TokenCounter: wordCount})
	require.NoError(t, err)

	assert.Error(t, client.GenerateCompletionWithFormat(t.Context(), "n", "d", "p", extraction{}))
	assert.Error(t, client.GenerateCompletionWithFormat(t.Context(), "n", "d", "p", nil))
}
