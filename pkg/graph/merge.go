package graph

import (
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/provgraph/pkg/common"
	"github.com/OFFIS-RIT/provgraph/pkg/logger"
	"github.com/OFFIS-RIT/provgraph/pkg/ontology"
)

// mention is one entity occurrence together with the chunks supporting it.
// Extractor candidates carry a single reference; nodes fed back through the
// merger carry all of theirs. Mentions group by label unless key is set.
type mention struct {
	key        string
	label      string
	typ        string
	attributes map[string]any
	sources    []common.SourceRef
}

type labelGroup struct {
	label      string
	typ        string
	attributes map[string]any
	sources    sourceList
}

// entityMerger collapses mentions sharing an exact label into one canonical
// node. Mentions must be added in chunk order: attribute conflicts resolve
// last-write-wins and sources keep first-seen order.
type entityMerger struct {
	ontology *ontology.Ontology
	groups   map[string]*labelGroup
	order    []string
}

func newEntityMerger(o *ontology.Ontology) *entityMerger {
	return &entityMerger{
		ontology: o,
		groups:   make(map[string]*labelGroup),
	}
}

func (m *entityMerger) add(e mention) {
	key := e.key
	if key == "" {
		key = e.label
	}
	group, ok := m.groups[key]
	if !ok {
		group = &labelGroup{
			label:      e.label,
			typ:        e.typ,
			attributes: make(map[string]any, len(e.attributes)),
		}
		m.groups[key] = group
		m.order = append(m.order, key)
	} else if m.ontology.Outranks(e.typ, group.typ) {
		group.typ = e.typ
	}

	mergeAttributes(group.attributes, e.attributes)
	group.sources.add(e.sources...)
}

// nodes returns one node per group in first-seen order.
func (m *entityMerger) nodes() []common.Node {
	out := make([]common.Node, 0, len(m.order))
	for _, key := range m.order {
		group := m.groups[key]
		out = append(out, common.Node{
			ID:         MakeID(group.typ, group.label),
			Type:       group.typ,
			Label:      group.label,
			Attributes: group.attributes,
			Sources:    group.sources.list(),
		})
	}
	return out
}

// MergeEntities deduplicates the candidate entities of all chunks into
// canonical nodes, in the order their labels were first seen.
//
// Candidates with a type outside the ontology are dropped. Candidates with a
// blank name or type are dropped too, or rejected with ErrMalformedCandidate
// when the client runs with StrictInput. The input is never modified.
func (g *GraphClient) MergeEntities(chunks []common.ChunkExtraction) ([]common.Node, error) {
	accepted, err := g.acceptChunks(chunks, &buildReport{})
	if err != nil {
		return nil, err
	}
	return g.mergeEntities(accepted, &buildReport{})
}

// RemergeNodes runs already canonical nodes through the entity merger again.
// For the nodes of a built graph this is a fixed point: the result equals the
// input. Event and Source nodes are created by the build itself rather than
// the merger, so they only merge with nodes of their own type.
func (g *GraphClient) RemergeNodes(nodes []common.Node) []common.Node {
	m := newEntityMerger(g.ontology)
	for _, n := range nodes {
		if strings.TrimSpace(n.Label) == "" || !g.ontology.IsEntityType(n.Type) {
			continue
		}
		var key string
		if n.Type == ontology.TypeEvent || n.Type == ontology.TypeSource {
			key = n.Type + "\x00" + n.Label
		}
		m.add(mention{
			key:        key,
			label:      n.Label,
			typ:        n.Type,
			attributes: n.Attributes,
			sources:    n.Sources,
		})
	}
	return m.nodes()
}

func (g *GraphClient) mergeEntities(chunks []common.ChunkExtraction, report *buildReport) ([]common.Node, error) {
	m := newEntityMerger(g.ontology)

	for _, chunk := range chunks {
		ref := chunk.Ref()
		for i, candidate := range chunk.Entities {
			if err := g.validate.Struct(candidate); err != nil {
				if g.strictInput {
					return nil, fmt.Errorf("%w: chunk %q entity %d: %v", ErrMalformedCandidate, chunk.ChunkID, i, err)
				}
				report.malformedEntities++
				continue
			}
			if !g.ontology.IsEntityType(candidate.Type) {
				report.unknownEntityTypes++
				continue
			}
			m.add(mention{
				label:      candidate.Name,
				typ:        candidate.Type,
				attributes: candidate.Attributes,
				sources:    []common.SourceRef{ref},
			})
		}
	}

	nodes := m.nodes()
	logger.Debug("[Merge] Entities merged", "labels", len(nodes))
	return nodes, nil
}

// acceptChunks drops (or, in strict mode, rejects) chunk records without a
// chunk id: they could only produce Source nodes with an empty label.
func (g *GraphClient) acceptChunks(chunks []common.ChunkExtraction, report *buildReport) ([]common.ChunkExtraction, error) {
	accepted := make([]common.ChunkExtraction, 0, len(chunks))
	for i, chunk := range chunks {
		if err := g.validate.Var(chunk.ChunkID, "notblank"); err != nil {
			if g.strictInput {
				return nil, fmt.Errorf("%w: chunk %d has no chunk id", ErrMalformedCandidate, i)
			}
			report.malformedChunks++
			continue
		}
		accepted = append(accepted, chunk)
	}
	return accepted, nil
}
