package graph

import (
	"cmp"
	"slices"
	"strings"

	"github.com/OFFIS-RIT/provgraph/pkg/common"
	"github.com/OFFIS-RIT/provgraph/pkg/logger"
	"github.com/OFFIS-RIT/provgraph/pkg/ontology"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// BuildGraph normalizes the extractions of an ordered chunk sequence into one
// canonical graph.
//
// Chunk order only affects last-write-wins attribute resolution and the order
// of each node's and edge's sources. Everything else, including the order of
// nodes and edges, is independent of it. Candidates the ontology does not
// accept are omitted; omissions are reported at debug level and never fail
// the build.
func (g *GraphClient) BuildGraph(chunks []common.ChunkExtraction) (*common.Graph, error) {
	buildID, _ := gonanoid.New()
	logger.Debug("[Graph] Building", "build_id", buildID, "chunks", len(chunks))

	graph, report, err := g.build(chunks)
	if err != nil {
		logger.Debug("[Graph] Build failed", "build_id", buildID, "err", err)
		return nil, err
	}

	if err := Validate(graph, g.ontology); err != nil {
		return nil, err
	}

	logger.Debug("[Graph] Omissions", append([]any{"build_id", buildID, "omitted", report.omitted()}, report.keyvals()...)...)
	logger.Info("[Graph] Built", "build_id", buildID, "nodes", len(graph.Nodes), "edges", len(graph.Edges))

	return graph, nil
}

func (g *GraphClient) build(chunks []common.ChunkExtraction) (*common.Graph, *buildReport, error) {
	report := &buildReport{}

	accepted, err := g.acceptChunks(chunks, report)
	if err != nil {
		return nil, report, err
	}
	report.chunks = len(accepted)

	entities, err := g.mergeEntities(accepted, report)
	if err != nil {
		return nil, report, err
	}

	b := newGraphBuilder(g.ontology, g.document, g.strictInput, report)
	for _, chunk := range accepted {
		b.recordChunk(chunk.Ref())
	}
	if err := b.addEntities(entities); err != nil {
		return nil, report, err
	}

	for _, chunk := range accepted {
		b.addRelations(chunk)
		if err := b.addEvents(chunk); err != nil {
			return nil, report, err
		}
	}

	if g.pruneEventMediated {
		b.pruneEventMediated()
	}

	if err := b.addProvenance(); err != nil {
		return nil, report, err
	}

	return b.assemble(), report, nil
}

func (b *graphBuilder) assemble() *common.Graph {
	graph := &common.Graph{
		Nodes: make([]common.Node, 0, len(b.nodes)),
		Edges: make([]common.Edge, 0, len(b.edges)),
	}

	for _, n := range b.nodes {
		graph.Nodes = append(graph.Nodes, common.Node{
			ID:         n.id,
			Type:       n.typ,
			Label:      n.label,
			Attributes: n.attributes,
			Sources:    n.sources.list(),
		})
	}
	for _, e := range b.edges {
		graph.Edges = append(graph.Edges, common.Edge{
			FromID:   e.key.from,
			ToID:     e.key.to,
			Relation: e.key.relation,
			Sources:  e.sources.list(),
		})
	}

	SortGraph(graph, b.ontology)
	return graph
}

// SortGraph puts nodes and edges into canonical order: nodes by type group,
// label and id; edges by from id, relation and to id.
func SortGraph(graph *common.Graph, o *ontology.Ontology) {
	slices.SortFunc(graph.Nodes, func(a, b common.Node) int {
		return compareNodes(o, a, b)
	})
	slices.SortFunc(graph.Edges, compareEdges)
}

func compareNodes(o *ontology.Ontology, a, b common.Node) int {
	return cmp.Or(
		cmp.Compare(o.GroupIndex(a.Type), o.GroupIndex(b.Type)),
		strings.Compare(a.Label, b.Label),
		strings.Compare(a.ID, b.ID),
	)
}

func compareEdges(a, b common.Edge) int {
	return cmp.Or(
		strings.Compare(a.FromID, b.FromID),
		strings.Compare(a.Relation, b.Relation),
		strings.Compare(a.ToID, b.ToID),
	)
}
