// Package config gathers the process configuration from the environment.
package config

import (
	"fmt"

	"github.com/OFFIS-RIT/provgraph/internal/util"
	"github.com/OFFIS-RIT/provgraph/pkg/chunk"
	"github.com/OFFIS-RIT/provgraph/pkg/ontology"

	"github.com/go-playground/validator"
)

const (
	ExtractorPattern = "pattern"
	ExtractorOpenAI  = "openai"
	ExtractorOllama  = "ollama"
)

// Config holds every setting read from the environment. Command line flags
// are applied on top of it by the CLI.
type Config struct {
	Debug bool

	OntologyPath string
	Extractor    string `validate:"oneof=pattern openai ollama"`

	ParallelExtractions int `validate:"min=1"`
	MaxRetries          int `validate:"min=1"`

	ChunkMaxTokens int `validate:"min=1"`
	TokenEncoder   string

	DocumentName       string
	StrictInput        bool
	PruneEventMediated bool

	AIChatURL               string
	AIChatKey               string
	AIChatExtractModel      string
	AIMaxConcurrentRequests int `validate:"min=1"`
}

// Load reads a .env file if present and builds the Config from the
// environment.
func Load() (*Config, error) {
	util.LoadEnv()
	return FromEnv()
}

// FromEnv builds the Config from the current environment without reading a
// .env file.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Debug: util.GetEnvBool("DEBUG", false),

		OntologyPath: util.GetEnv("ONTOLOGY_PATH"),
		Extractor:    util.GetEnvString("EXTRACTOR", ExtractorPattern),

		ParallelExtractions: util.GetEnvInt("PARALLEL_EXTRACTIONS", 4),
		MaxRetries:          util.GetEnvInt("MAX_RETRIES", 3),

		ChunkMaxTokens: util.GetEnvInt("CHUNK_MAX_TOKENS", 500),
		TokenEncoder:   util.GetEnvString("TOKEN_ENCODER", chunk.DefaultEncoder),

		DocumentName:       util.GetEnv("DOCUMENT_NAME"),
		StrictInput:        util.GetEnvBool("STRICT_INPUT", false),
		PruneEventMediated: util.GetEnvBool("PRUNE_EVENT_MEDIATED", false),

		AIChatURL:               util.GetEnv("AI_CHAT_URL"),
		AIChatKey:               util.GetEnv("AI_CHAT_KEY"),
		AIChatExtractModel:      util.GetEnv("AI_CHAT_EXTRACT_MODEL"),
		AIMaxConcurrentRequests: util.GetEnvInt("AI_MAX_CONCURRENT_REQUESTS", 4),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings. Model based extractors need a model name.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Extractor != ExtractorPattern && c.AIChatExtractModel == "" {
		return fmt.Errorf("invalid configuration: extractor %q needs AI_CHAT_EXTRACT_MODEL", c.Extractor)
	}
	return nil
}

// Ontology loads the ontology from OntologyPath, or returns the default one
// when no path is configured.
func (c *Config) Ontology() (*ontology.Ontology, error) {
	if c.OntologyPath == "" {
		return ontology.Default(), nil
	}
	return ontology.Load(c.OntologyPath)
}
