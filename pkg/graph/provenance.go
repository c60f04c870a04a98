package graph

import (
	"slices"

	"github.com/OFFIS-RIT/provgraph/pkg/ontology"
)

// addProvenance links every non-Source node to the Source node of each chunk
// in its sources. Source nodes are labeled by chunk id and carry the first
// page that chunk was seen with, also when an extractor already proposed a
// Source entity with that label.
func (b *graphBuilder) addProvenance() error {
	ids := make([]string, 0, len(b.nodes))
	for id, n := range b.nodes {
		if n.typ != ontology.TypeSource {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	for _, id := range ids {
		node := b.nodes[id]
		for _, ref := range node.sources.list() {
			source, err := b.sourceNode(ref.ChunkID)
			if err != nil {
				return err
			}
			if source == nil {
				continue
			}
			b.addEdge(node.id, ontology.RelationDescribedIn, source.id, ref)
		}
	}
	return nil
}

func (b *graphBuilder) sourceNode(chunkID string) (*nodeEntry, error) {
	source, err := b.upsertNode(ontology.TypeSource, chunkID)
	if source == nil || err != nil {
		return nil, err
	}

	if page, ok := b.chunkPages[chunkID]; ok {
		source.attributes["page"] = page
	}
	if b.document != "" {
		source.attributes["document"] = b.document
	}
	if refs, ok := b.chunkRefs[chunkID]; ok {
		source.sources.add(refs.list()...)
	}
	return source, nil
}
