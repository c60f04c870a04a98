package chunk

import (
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/provgraph/internal/util"
	"github.com/OFFIS-RIT/provgraph/pkg/common"
	"github.com/OFFIS-RIT/provgraph/pkg/logger"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoder is the tiktoken encoding used when none is configured.
const DefaultEncoder = "cl100k_base"

// Page is the text of one page of a source document.
type Page struct {
	Number int
	Text   string
}

// TokenCounter returns the number of tokens in a text.
type TokenCounter func(text string) int

// NewTiktokenCounter returns a TokenCounter backed by the named tiktoken
// encoding.
func NewTiktokenCounter(encoder string) (TokenCounter, error) {
	if encoder == "" {
		encoder = DefaultEncoder
	}
	enc, err := tiktoken.GetEncoding(encoder)
	if err != nil {
		return nil, fmt.Errorf("failed to load token encoder %q: %w", encoder, err)
	}
	return func(text string) int {
		return len(enc.Encode(text, nil, nil))
	}, nil
}

// SplitParams configures Split.
//
// MaxTokens bounds the size of a chunk; a single sentence longer than the
// bound becomes a chunk of its own. Counter defaults to a tiktoken counter
// for Encoder.
type SplitParams struct {
	MaxTokens int
	Encoder   string
	Counter   TokenCounter
}

// Split cuts pages into sentence-aligned chunks of at most MaxTokens tokens.
// Chunks never span pages and are numbered chunk_001, chunk_002, ... in page
// order.
func Split(pages []Page, params SplitParams) ([]common.Chunk, error) {
	if params.MaxTokens <= 0 {
		return nil, fmt.Errorf("max tokens must be positive, got %d", params.MaxTokens)
	}
	count := params.Counter
	if count == nil {
		var err error
		count, err = NewTiktokenCounter(params.Encoder)
		if err != nil {
			return nil, err
		}
	}

	var chunks []common.Chunk
	for _, page := range pages {
		for _, text := range pack(splitSentences(util.SanitizeText(page.Text)), params.MaxTokens, count) {
			chunks = append(chunks, common.Chunk{
				ID:   ChunkID(len(chunks) + 1),
				Page: page.Number,
				Text: text,
			})
		}
	}

	logger.Debug("[Chunk] Split pages", "pages", len(pages), "chunks", len(chunks))
	return chunks, nil
}

// ChunkID returns the id of the n-th chunk, counting from one.
func ChunkID(n int) string {
	return fmt.Sprintf("chunk_%03d", n)
}

// pack greedily joins consecutive sentences while the joined text stays
// within maxTokens.
func pack(sentences []string, maxTokens int, count TokenCounter) []string {
	var out []string
	var current []string

	for _, sentence := range sentences {
		if len(current) == 0 {
			current = append(current, sentence)
			continue
		}
		candidate := strings.Join(append(current, sentence), " ")
		if count(candidate) <= maxTokens {
			current = append(current, sentence)
			continue
		}
		out = append(out, strings.TrimSpace(strings.Join(current, " ")))
		current = []string{sentence}
	}
	if len(current) > 0 {
		out = append(out, strings.TrimSpace(strings.Join(current, " ")))
	}
	return out
}
