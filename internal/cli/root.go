// Package cli implements the provgraph command line.
package cli

import (
	"github.com/OFFIS-RIT/provgraph/internal/config"
	"github.com/OFFIS-RIT/provgraph/pkg/logger"
	"github.com/OFFIS-RIT/provgraph/pkg/logger/console"
	"github.com/OFFIS-RIT/provgraph/pkg/ontology"

	"github.com/spf13/cobra"
)

// app carries the configuration shared by all commands. It is filled in
// before any command runs.
type app struct {
	cfg *config.Config

	debug        bool
	ontologyPath string
}

// NewRootCmd returns the provgraph command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "provgraph",
		Short: "Build provenance-tracked knowledge graphs from document chunks",
		Long: `provgraph turns per-chunk entity, relation and event extractions into one
canonical knowledge graph. Every node and edge records the chunks it was
derived from.

Configuration is read from the environment (and a .env file); flags override
it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging (DEBUG)")
	root.PersistentFlags().StringVar(&a.ontologyPath, "ontology", "", "ontology YAML file (ONTOLOGY_PATH)")

	root.AddCommand(
		newBuildCmd(a),
		newRenderCmd(a),
		newQueryCmd(a),
		newValidateCmd(a),
		newOntologyCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = a.debug
	}
	if cmd.Flags().Changed("ontology") {
		cfg.OntologyPath = a.ontologyPath
	}
	a.cfg = cfg

	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  cfg.Debug,
		Writer: cmd.ErrOrStderr(),
	}))
	return nil
}

func (a *app) ontology() (*ontology.Ontology, error) {
	return a.cfg.Ontology()
}
