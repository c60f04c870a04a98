package openai

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

func TestGenerateCompletionWithFormat(t *testing.T) {
	var request map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &request))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 0,
			"model": "test-model",
			"choices": [{
				"index": 0,
				"finish_reason": "stop",
				"message": {"role": "assistant", "content": "{\"entities\":[{\"name\":\"TechNova\",\"type\":\"Company\"}]}"}
			}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 8, "total_tokens": 20}
		}`)
	}))
	defer server.Close()

	client := NewGraphOpenAIClient(NewGraphOpenAIClientParams{
		ExtractionModel: "test-model",
		ChatURL:         server.URL,
		ChatKey:         "test-key",
	})

	var out extraction
	err := client.GenerateCompletionWithFormat(t.Context(), "extract_graph", "Extract a graph.", "TechNova was founded in 2015.", &out)
	require.NoError(t, err)

	require.Len(t, out.Entities, 1)
	assert.Equal(t, "TechNova", out.Entities[0].Name)
	assert.Equal(t, "test-model", request["model"])

	format, ok := request["response_format"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "json_schema", format["type"])

	metrics := client.GetMetrics()
	assert.Equal(t, 12, metrics.InputTokens)
	assert.Equal(t, 20, metrics.TotalTokens)

	client.ResetMetrics()
	assert.Zero(t, client.GetMetrics().TotalTokens)
}

func TestGenerateCompletionWithFormatEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"x","object":"chat.completion","created":0,"model":"m","choices":[],"usage":{}}`)
	}))
	defer server.Close()

	client := NewGraphOpenAIClient(NewGraphOpenAIClientParams{
		ExtractionModel: "m",
		ChatURL:         server.URL,
		ChatKey:         "k",
	})

	var out extraction
	err := client.GenerateCompletionWithFormat(t.Context(), "extract_graph", "", "text", &out)
	assert.ErrorContains(t, err, "no choices")
}
