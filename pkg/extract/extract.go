package extract

import (
	"context"
	"fmt"

	"github.com/OFFIS-RIT/provgraph/pkg/common"
	"github.com/OFFIS-RIT/provgraph/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Extractor turns the text of one chunk into unnormalized candidates.
// Implementations must be safe for concurrent use.
type Extractor interface {
	Extract(ctx context.Context, chunk common.Chunk) (common.Extraction, error)
}

// ExtractAll runs ex over every chunk with at most parallel extractions in
// flight. The result holds one record per chunk in input order, regardless
// of the order in which extractions finish. The first failing extraction
// cancels the rest and its error is returned.
func ExtractAll(
	ctx context.Context,
	ex Extractor,
	chunks []common.Chunk,
	parallel int,
) ([]common.ChunkExtraction, error) {
	if parallel < 1 {
		parallel = 1
	}

	results := make([]common.ChunkExtraction, len(chunks))

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(parallel)

	for i, c := range chunks {
		eg.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			extraction, err := ex.Extract(gCtx, c)
			if err != nil {
				return fmt.Errorf("failed to extract chunk %q: %w", c.ID, err)
			}
			results[i] = common.ChunkExtraction{
				ChunkID:    c.ID,
				Page:       c.Page,
				Extraction: extraction,
			}
			logger.Debug("[Extract] Chunk done",
				"chunk_id", c.ID,
				"entities", len(extraction.Entities),
				"relations", len(extraction.Relations),
				"events", len(extraction.Events),
			)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	logger.Info("[Extract] Extraction finished", "chunks", len(chunks))
	return results, nil
}
