package graph

import (
	"github.com/OFFIS-RIT/provgraph/pkg/common"
	"github.com/OFFIS-RIT/provgraph/pkg/ontology"

	"github.com/go-playground/validator"
)

// GraphClient normalizes extractor output into a canonical graph. It holds
// only immutable configuration, so one client may serve any number of
// builds, including concurrent ones.
//
// A GraphClient should be created using NewGraphClient.
type GraphClient struct {
	ontology           *ontology.Ontology
	document           string
	strictInput        bool
	pruneEventMediated bool
	validate           *validator.Validate
}

// NewGraphClientParams defines the configuration parameters for creating
// a new GraphClient.
//
// Ontology is the vocabulary to accept; nil selects ontology.Default().
// Document, when set, is recorded on every Source node.
// StrictInput turns structurally malformed candidates (blank entity name or
// type) into ErrMalformedCandidate instead of dropping them.
// PruneEventMediated removes direct launched/acquired relation edges that
// are already expressed through an event.
type NewGraphClientParams struct {
	Ontology           *ontology.Ontology
	Document           string
	StrictInput        bool
	PruneEventMediated bool
}

// NewGraphClient creates and returns a new GraphClient configured with
// the provided parameters.
//
// Example:
//
//	client, err := graph.NewGraphClient(graph.NewGraphClientParams{
//		Document: "TechNova_Annual_Report_2024.pdf",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	g, err := client.BuildGraph(extractions)
func NewGraphClient(params NewGraphClientParams) (*GraphClient, error) {
	o := params.Ontology
	if o == nil {
		o = ontology.Default()
	}

	g := &GraphClient{
		ontology:           o,
		document:           params.Document,
		strictInput:        params.StrictInput,
		pruneEventMediated: params.PruneEventMediated,
		validate:           common.NewValidator(),
	}

	return g, nil
}

// Ontology returns the vocabulary the client builds against.
func (g *GraphClient) Ontology() *ontology.Ontology {
	return g.ontology
}
