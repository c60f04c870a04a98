package graph

import (
	"errors"
	"fmt"

	"github.com/OFFIS-RIT/provgraph/pkg/common"
	"github.com/OFFIS-RIT/provgraph/pkg/ontology"
)

// Validate checks the structural invariants of a graph against an ontology
// and returns every violation found, joined, each wrapping ErrIntegrity.
// It is run on every built graph and can be used on graphs read back from
// disk.
func Validate(graph *common.Graph, o *ontology.Ontology) error {
	if graph == nil {
		return fmt.Errorf("%w: nil graph", ErrIntegrity)
	}
	if o == nil {
		o = ontology.Default()
	}

	var errs []error
	violation := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrIntegrity}, args...)...))
	}

	type typedLabel struct{ typ, label string }
	ids := make(map[string]struct{}, len(graph.Nodes))
	labels := make(map[typedLabel]struct{}, len(graph.Nodes))

	for i, n := range graph.Nodes {
		if _, ok := ids[n.ID]; ok {
			violation("duplicate node id %q", n.ID)
		}
		ids[n.ID] = struct{}{}

		key := typedLabel{n.Type, n.Label}
		if _, ok := labels[key]; ok {
			violation("duplicate node %s %q", n.Type, n.Label)
		}
		labels[key] = struct{}{}

		if !o.IsEntityType(n.Type) {
			violation("node %q has unknown type %q", n.ID, n.Type)
		}
		if want := MakeID(n.Type, n.Label); n.ID != want {
			violation("node %q should have id %q", n.ID, want)
		}
		if len(n.Sources) == 0 {
			violation("node %q has no sources", n.ID)
		}
		if i > 0 && compareNodes(o, graph.Nodes[i-1], n) >= 0 {
			violation("node %q is out of order", n.ID)
		}
	}

	triples := make(map[edgeKey]struct{}, len(graph.Edges))
	for i, e := range graph.Edges {
		key := edgeKey{from: e.FromID, relation: e.Relation, to: e.ToID}
		if _, ok := triples[key]; ok {
			violation("duplicate edge %s -%s-> %s", e.FromID, e.Relation, e.ToID)
		}
		triples[key] = struct{}{}

		if !o.IsRelationType(e.Relation) {
			violation("edge %s -%s-> %s has unknown relation", e.FromID, e.Relation, e.ToID)
		}
		if _, ok := ids[e.FromID]; !ok {
			violation("edge source %q does not exist", e.FromID)
		}
		if _, ok := ids[e.ToID]; !ok {
			violation("edge target %q does not exist", e.ToID)
		}
		if len(e.Sources) == 0 {
			violation("edge %s -%s-> %s has no sources", e.FromID, e.Relation, e.ToID)
		}
		if i > 0 && compareEdges(graph.Edges[i-1], e) >= 0 {
			violation("edge %s -%s-> %s is out of order", e.FromID, e.Relation, e.ToID)
		}
	}

	return errors.Join(errs...)
}
