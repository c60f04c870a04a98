package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/OFFIS-RIT/provgraph/pkg/chunk"
	"github.com/OFFIS-RIT/provgraph/pkg/common"

	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"
)

// ReadChunks reads a list of chunks from a JSON or YAML file, chosen by
// extension (.yaml and .yml are YAML, anything else is JSON). Every chunk
// needs a chunk_id.
func ReadChunks(path string) ([]common.Chunk, error) {
	data, err := readAll(path)
	if err != nil {
		return nil, err
	}
	data = trimBOM(data)

	var chunks []common.Chunk
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&chunks); err != nil {
			return nil, fmt.Errorf("failed to decode chunks from %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &chunks); err != nil {
			return nil, fmt.Errorf("failed to decode chunks from %s: %w", path, err)
		}
	}

	v := validator.New()
	for i, c := range chunks {
		if err := v.Struct(c); err != nil {
			return nil, fmt.Errorf("chunk %d in %s: %w", i, path, err)
		}
	}
	return chunks, nil
}

// ReadExtractions reads pre-computed chunk extractions from a JSON file, as
// written by "provgraph build --extractions-out".
func ReadExtractions(path string) ([]common.ChunkExtraction, error) {
	data, err := readAll(path)
	if err != nil {
		return nil, err
	}

	var extractions []common.ChunkExtraction
	if err := json.Unmarshal(trimBOM(data), &extractions); err != nil {
		return nil, fmt.Errorf("failed to decode extractions from %s: %w", path, err)
	}
	return extractions, nil
}

// WriteExtractions writes chunk extractions as indented JSON to path, or to
// stdout when path is "-".
func WriteExtractions(path string, extractions []common.ChunkExtraction) error {
	if extractions == nil {
		extractions = []common.ChunkExtraction{}
	}
	data, err := json.MarshalIndent(extractions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode extractions: %w", err)
	}
	return writeAll(path, append(data, '\n'))
}

// ReadPages reads a plain text document. Pages are separated by form feeds
// and numbered from one.
func ReadPages(path string) ([]chunk.Page, error) {
	data, err := readAll(path)
	if err != nil {
		return nil, err
	}
	return SplitPages(string(trimBOM(data))), nil
}

// SplitPages splits text at form feeds. Blank pages keep their number but
// are left out.
func SplitPages(text string) []chunk.Page {
	var pages []chunk.Page
	for i, page := range strings.Split(text, "\f") {
		if strings.TrimSpace(page) == "" {
			continue
		}
		pages = append(pages, chunk.Page{Number: i + 1, Text: page})
	}
	return pages
}
