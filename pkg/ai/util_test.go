package ai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEntity struct {
	Name string `json:"name" jsonschema_description:"Entity name"`
	Type string `json:"type"`
}

type testResponse struct {
	Entities []testEntity `json:"entities"`
}

func TestUnmarshalFlexible_ObjectVariants(t *testing.T) {
	want := testEntity{Name: "TechNova", Type: "Company"}

	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "valid json object",
			input: `{"name":"TechNova","type":"Company"}`,
		},
		{
			name:  "unquoted keys and single quotes",
			input: `{name: 'TechNova', type: 'Company'}`,
		},
		{
			name:  "trailing comma",
			input: `{"name":"TechNova","type":"Company",}`,
		},
		{
			name:  "missing end bracket",
			input: `{"name":"TechNova","type":"Company"`,
		},
		{
			name:  "stringified invalid json object",
			input: `"{name: 'TechNova', type: 'Company'}"`,
		},
		{
			name:  "duplicate leading brace",
			input: "{\n{\n  \"name\": \"TechNova\", \"type\": \"Company\"\n}\n",
		},
		{
			name:  "markdown code fence",
			input: "```json\n{\"name\": \"TechNova\", \"type\": \"Company\"}\n```",
		},
		{
			name:  "bare code fence",
			input: "```\n{\"name\": \"TechNova\", \"type\": \"Company\"}\n```",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got testEntity
			require.NoError(t, UnmarshalFlexible(tc.input, &got))
			assert.Equal(t, want, got)
		})
	}
}

func TestUnmarshalFlexible_Nested(t *testing.T) {
	input := `{entities: [{name:'NovaCloud', type:'Platform'},{name:'DataFlow Systems', type:'Partner',}]}`

	var got testResponse
	require.NoError(t, UnmarshalFlexible(input, &got))
	assert.Equal(t, []testEntity{
		{Name: "NovaCloud", Type: "Platform"},
		{Name: "DataFlow Systems", Type: "Partner"},
	}, got.Entities)
}

func TestUnmarshalFlexible_Unrecoverable(t *testing.T) {
	var got testEntity
	assert.Error(t, UnmarshalFlexible("hello", &got))
}

func TestGenerateSchema(t *testing.T) {
	raw, err := json.Marshal(GenerateSchema(&testResponse{}))
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])
	assert.Contains(t, schema["properties"], "entities")
	assert.NotContains(t, string(raw), "$ref")
	assert.Contains(t, string(raw), "Entity name")
}

func TestApplyOptions(t *testing.T) {
	got := ApplyOptions(
		GenerateOptions{Model: "default", Temperature: 0.1},
		WithModel("llama3"),
		WithSystemPrompts("a", "b"),
		WithTemperature(0.5),
		WithThinking("low"),
	)

	assert.Equal(t, GenerateOptions{
		Model:         "llama3",
		SystemPrompts: []string{"a", "b"},
		Temperature:   0.5,
		Thinking:      "low",
	}, got)
}

func TestModelMetricsAdd(t *testing.T) {
	var m ModelMetrics
	m.Add(ModelMetrics{InputTokens: 10, OutputTokens: 5, TotalTokens: 15, DurationMs: 1000})
	m.Add(ModelMetrics{InputTokens: 1, OutputTokens: 1, TotalTokens: 2, DurationMs: 1000})

	assert.Equal(t, 11, m.InputTokens)
	assert.Equal(t, 6, m.OutputTokens)
	assert.Equal(t, 17, m.TotalTokens)
	assert.Equal(t, int64(2000), m.DurationMs)
	assert.InDelta(t, 8.5, m.TokenPerSecond, 0.001)
}
