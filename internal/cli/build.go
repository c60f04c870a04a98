package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/OFFIS-RIT/provgraph/internal/config"
	"github.com/OFFIS-RIT/provgraph/pkg/ai/ollama"
	"github.com/OFFIS-RIT/provgraph/pkg/ai/openai"
	"github.com/OFFIS-RIT/provgraph/pkg/chunk"
	"github.com/OFFIS-RIT/provgraph/pkg/common"
	"github.com/OFFIS-RIT/provgraph/pkg/export"
	"github.com/OFFIS-RIT/provgraph/pkg/extract"
	"github.com/OFFIS-RIT/provgraph/pkg/graph"
	"github.com/OFFIS-RIT/provgraph/pkg/logger"
	"github.com/OFFIS-RIT/provgraph/pkg/ontology"
	"github.com/OFFIS-RIT/provgraph/pkg/render/mermaid"

	"github.com/spf13/cobra"
)

type buildOptions struct {
	input       string
	text        string
	extractions string

	out            string
	mermaidOut     string
	extractionsOut string

	extractor string
	document  string
	parallel  int
	maxTokens int
	strict    bool
	prune     bool
}

func newBuildCmd(a *app) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a graph from chunks, text or extractions",
		Long: `Build a graph and write it as JSON.

Input is one of:
  --input        chunk list (JSON, or YAML for .yaml/.yml) with chunk_id, page and text
  --text         plain text document, pages separated by form feeds
  --extractions  extractions saved earlier with --extractions-out

Examples:
  provgraph build --input chunks.yaml --out graph.json --mermaid graph.mmd
  provgraph build --text report.txt --extractor openai --extractions-out ext.json
  provgraph build --extractions ext.json --prune-event-mediated`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.apply(cmd, a.cfg)
			return runBuild(cmd.Context(), a, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.input, "input", "", "chunk file (.json, .yaml, .yml)")
	f.StringVar(&opts.text, "text", "", "plain text document to chunk")
	f.StringVar(&opts.extractions, "extractions", "", "pre-computed extractions (JSON)")
	f.StringVarP(&opts.out, "out", "o", "graph.json", `graph output file, "-" for stdout`)
	f.StringVar(&opts.mermaidOut, "mermaid", "", "also write a Mermaid diagram to this file")
	f.StringVar(&opts.extractionsOut, "extractions-out", "", "also write the raw extractions to this file")
	f.StringVar(&opts.extractor, "extractor", "", "pattern, openai or ollama (EXTRACTOR)")
	f.StringVar(&opts.document, "document", "", "document name recorded on source nodes (DOCUMENT_NAME)")
	f.IntVar(&opts.parallel, "parallel", 0, "concurrent extractions (PARALLEL_EXTRACTIONS)")
	f.IntVar(&opts.maxTokens, "max-tokens", 0, "chunk size for --text (CHUNK_MAX_TOKENS)")
	f.BoolVar(&opts.strict, "strict", false, "fail on malformed candidates (STRICT_INPUT)")
	f.BoolVar(&opts.prune, "prune-event-mediated", false, "drop direct edges an event already expresses (PRUNE_EVENT_MEDIATED)")

	cmd.MarkFlagsMutuallyExclusive("input", "text", "extractions")
	cmd.MarkFlagsOneRequired("input", "text", "extractions")

	return cmd
}

// apply writes the flags that were set on the command line over cfg.
func (o *buildOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("extractor") {
		cfg.Extractor = o.extractor
	}
	if f.Changed("document") {
		cfg.DocumentName = o.document
	}
	if f.Changed("parallel") {
		cfg.ParallelExtractions = o.parallel
	}
	if f.Changed("max-tokens") {
		cfg.ChunkMaxTokens = o.maxTokens
	}
	if f.Changed("strict") {
		cfg.StrictInput = o.strict
	}
	if f.Changed("prune-event-mediated") {
		cfg.PruneEventMediated = o.prune
	}
}

func runBuild(ctx context.Context, a *app, opts *buildOptions) error {
	cfg := a.cfg
	if err := cfg.Validate(); err != nil {
		return err
	}
	o, err := a.ontology()
	if err != nil {
		return err
	}

	extractions, err := loadExtractions(ctx, cfg, o, opts)
	if err != nil {
		return err
	}
	if opts.extractionsOut != "" {
		if err := export.WriteExtractions(opts.extractionsOut, extractions); err != nil {
			return fmt.Errorf("failed to write extractions: %w", err)
		}
	}

	client, err := graph.NewGraphClient(graph.NewGraphClientParams{
		Ontology:           o,
		Document:           cfg.DocumentName,
		StrictInput:        cfg.StrictInput,
		PruneEventMediated: cfg.PruneEventMediated,
	})
	if err != nil {
		return err
	}
	g, err := client.BuildGraph(extractions)
	if err != nil {
		return err
	}

	if err := export.WriteFile(opts.out, g); err != nil {
		return fmt.Errorf("failed to write graph: %w", err)
	}
	if opts.mermaidOut != "" {
		if err := os.WriteFile(opts.mermaidOut, []byte(mermaid.Render(g)), 0o644); err != nil {
			return fmt.Errorf("failed to write mermaid diagram: %w", err)
		}
	}

	fingerprint, err := export.Fingerprint(g)
	if err != nil {
		return err
	}
	logger.Info("[CLI] Graph written", "out", opts.out, "nodes", len(g.Nodes), "edges", len(g.Edges), "fingerprint", fingerprint)
	return nil
}

func loadExtractions(
	ctx context.Context,
	cfg *config.Config,
	o *ontology.Ontology,
	opts *buildOptions,
) ([]common.ChunkExtraction, error) {
	if opts.extractions != "" {
		return export.ReadExtractions(opts.extractions)
	}

	var chunks []common.Chunk
	if opts.input != "" {
		var err error
		chunks, err = export.ReadChunks(opts.input)
		if err != nil {
			return nil, err
		}
	} else {
		pages, err := export.ReadPages(opts.text)
		if err != nil {
			return nil, err
		}
		chunks, err = chunk.Split(pages, chunk.SplitParams{
			MaxTokens: cfg.ChunkMaxTokens,
			Encoder:   cfg.TokenEncoder,
		})
		if err != nil {
			return nil, err
		}
	}

	ex, err := newExtractor(cfg, o)
	if err != nil {
		return nil, err
	}
	return extract.ExtractAll(ctx, ex, chunks, cfg.ParallelExtractions)
}

func newExtractor(cfg *config.Config, o *ontology.Ontology) (extract.Extractor, error) {
	switch cfg.Extractor {
	case config.ExtractorOpenAI:
		client := openai.NewGraphOpenAIClient(openai.NewGraphOpenAIClientParams{
			ExtractionModel: cfg.AIChatExtractModel,
			ChatURL:         cfg.AIChatURL,
			ChatKey:         cfg.AIChatKey,
		})
		return extract.NewModelExtractor(extract.NewModelExtractorParams{
			Client:     client,
			Ontology:   o,
			MaxRetries: cfg.MaxRetries,
		})
	case config.ExtractorOllama:
		client, err := ollama.NewGraphOllamaClient(ollama.NewGraphOllamaClientParams{
			ExtractionModel:       cfg.AIChatExtractModel,
			BaseURL:               cfg.AIChatURL,
			ApiKey:                cfg.AIChatKey,
			MaxConcurrentRequests: int64(cfg.AIMaxConcurrentRequests),
		})
		if err != nil {
			return nil, fmt.Errorf("could not create Ollama client: %w", err)
		}
		return extract.NewModelExtractor(extract.NewModelExtractorParams{
			Client:     client,
			Ontology:   o,
			MaxRetries: cfg.MaxRetries,
		})
	default:
		return extract.NewPatternExtractor(), nil
	}
}
