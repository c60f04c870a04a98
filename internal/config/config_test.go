package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/OFFIS-RIT/provgraph/pkg/chunk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"DEBUG", "ONTOLOGY_PATH", "EXTRACTOR", "PARALLEL_EXTRACTIONS", "MAX_RETRIES",
		"CHUNK_MAX_TOKENS", "TOKEN_ENCODER", "DOCUMENT_NAME", "STRICT_INPUT",
		"PRUNE_EVENT_MEDIATED", "AI_CHAT_URL", "AI_CHAT_KEY", "AI_CHAT_EXTRACT_MODEL",
		"AI_MAX_CONCURRENT_REQUESTS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, &Config{
		Extractor:               ExtractorPattern,
		ParallelExtractions:     4,
		MaxRetries:              3,
		ChunkMaxTokens:          500,
		TokenEncoder:            chunk.DefaultEncoder,
		AIMaxConcurrentRequests: 4,
	}, cfg)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DEBUG", "true")
	t.Setenv("EXTRACTOR", "ollama")
	t.Setenv("AI_CHAT_EXTRACT_MODEL", "qwen3")
	t.Setenv("PARALLEL_EXTRACTIONS", "8")
	t.Setenv("STRICT_INPUT", "true")
	t.Setenv("PRUNE_EVENT_MEDIATED", "true")
	t.Setenv("DOCUMENT_NAME", "report.pdf")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, ExtractorOllama, cfg.Extractor)
	assert.Equal(t, 8, cfg.ParallelExtractions)
	assert.True(t, cfg.StrictInput)
	assert.True(t, cfg.PruneEventMediated)
	assert.Equal(t, "report.pdf", cfg.DocumentName)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Extractor:               ExtractorPattern,
			ParallelExtractions:     1,
			MaxRetries:              1,
			ChunkMaxTokens:          1,
			AIMaxConcurrentRequests: 1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown extractor", mutate: func(c *Config) { c.Extractor = "regex" }, wantErr: true},
		{name: "zero parallelism", mutate: func(c *Config) { c.ParallelExtractions = 0 }, wantErr: true},
		{name: "zero chunk size", mutate: func(c *Config) { c.ChunkMaxTokens = 0 }, wantErr: true},
		{name: "model extractor without model", mutate: func(c *Config) { c.Extractor = ExtractorOpenAI }, wantErr: true},
		{name: "model extractor with model", mutate: func(c *Config) {
			c.Extractor = ExtractorOpenAI
			c.AIChatExtractModel = "gpt-4.1-mini"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestOntology(t *testing.T) {
	cfg := &Config{}
	o, err := cfg.Ontology()
	require.NoError(t, err)
	assert.Contains(t, o.EntityTypes(), "Company")

	path := filepath.Join(t.TempDir(), "ontology.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
entity_types: [Organization, Event, Source]
relation_types: [has_event, described_in]
event_types: [Release]
`), 0o600))

	cfg.OntologyPath = path
	o, err = cfg.Ontology()
	require.NoError(t, err)
	assert.Equal(t, []string{"Organization", "Event", "Source"}, o.EntityTypes())

	cfg.OntologyPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cfg.Ontology()
	assert.Error(t, err)
}
