package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/OFFIS-RIT/provgraph/pkg/export"
	"github.com/OFFIS-RIT/provgraph/pkg/graph"
	"github.com/OFFIS-RIT/provgraph/pkg/logger"
	"github.com/OFFIS-RIT/provgraph/pkg/query"
	"github.com/OFFIS-RIT/provgraph/pkg/render/mermaid"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRenderCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Render a graph as a Mermaid diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := export.ReadFile(args[0])
			if err != nil {
				return err
			}
			diagram := mermaid.Render(g)
			if out == "" || out == "-" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), diagram)
				return err
			}
			return os.WriteFile(out, []byte(diagram), 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newQueryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <graph.json> <text>...",
		Short: "List the chunks relevant to a keyword query",
		Long: `List the ids of the chunks supporting every node whose label or attributes
contain the query, and both endpoints of every edge whose relation does.
Matching ignores case. Remaining arguments are joined into one query.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := export.ReadFile(args[0])
			if err != nil {
				return err
			}

			trace := query.NewQueryTrace()
			ids := query.RetrieveChunksTraced(strings.Join(args[1:], " "), g, trace)
			snap := trace.Snapshot()
			logger.Debug("[Query] Matched", "nodes", snap.MatchedNodeIDs, "edges", snap.MatchedEdges)

			for _, id := range ids {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), id); err != nil {
					return err
				}
			}
			return nil
		},
	}
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <graph.json>",
		Short: "Check a graph's integrity and print its fingerprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := export.ReadFile(args[0])
			if err != nil {
				return err
			}
			o, err := a.ontology()
			if err != nil {
				return err
			}
			if err := graph.Validate(g, o); err != nil {
				return err
			}
			fingerprint, err := export.Fingerprint(g)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok %s\n", fingerprint)
			return err
		},
	}
	return cmd
}

func newOntologyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ontology",
		Short: "Print the effective ontology as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := a.ontology()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(o.Definition()); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
