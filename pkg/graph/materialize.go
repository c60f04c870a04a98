package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/OFFIS-RIT/provgraph/pkg/common"
	"github.com/OFFIS-RIT/provgraph/pkg/logger"
	"github.com/OFFIS-RIT/provgraph/pkg/ontology"
)

type nodeEntry struct {
	id         string
	typ        string
	label      string
	attributes map[string]any
	sources    sourceList
}

type edgeKey struct {
	from     string
	relation string
	to       string
}

type edgeEntry struct {
	key     edgeKey
	sources sourceList
}

// graphBuilder accumulates nodes and edges for one build. It is never shared
// between builds or goroutines.
type graphBuilder struct {
	ontology *ontology.Ontology
	document string
	strict   bool
	report   *buildReport

	nodes         map[string]*nodeEntry
	entityByLabel map[string]string
	edges         map[edgeKey]*edgeEntry

	chunkPages map[string]int
	chunkRefs  map[string]*sourceList
}

func newGraphBuilder(o *ontology.Ontology, document string, strict bool, report *buildReport) *graphBuilder {
	return &graphBuilder{
		ontology:      o,
		document:      document,
		strict:        strict,
		report:        report,
		nodes:         make(map[string]*nodeEntry),
		entityByLabel: make(map[string]string),
		edges:         make(map[edgeKey]*edgeEntry),
		chunkPages:    make(map[string]int),
		chunkRefs:     make(map[string]*sourceList),
	}
}

// upsertNode returns the node for (typ, label), creating it if needed. Two
// different (type, label) pairs mapping to one id is a slug collision: the
// node already holding the id is kept and upsertNode returns nil, or
// ErrIDCollision in strict mode.
func (b *graphBuilder) upsertNode(typ, label string) (*nodeEntry, error) {
	id := MakeID(typ, label)
	if existing, ok := b.nodes[id]; ok {
		if existing.typ != typ || existing.label != label {
			if b.strict {
				return nil, fmt.Errorf("%w: %q (%s) and %q (%s) both map to %q",
					ErrIDCollision, existing.label, existing.typ, label, typ, id)
			}
			b.report.idCollisions++
			logger.Debug("[Graph] Node id collision", "id", id, "kept", existing.label, "dropped", label)
			return nil, nil
		}
		return existing, nil
	}
	entry := &nodeEntry{
		id:         id,
		typ:        typ,
		label:      label,
		attributes: make(map[string]any),
	}
	b.nodes[id] = entry
	return entry, nil
}

func (b *graphBuilder) addEdge(from, relation, to string, refs ...common.SourceRef) {
	key := edgeKey{from: from, relation: relation, to: to}
	entry, ok := b.edges[key]
	if !ok {
		entry = &edgeEntry{key: key}
		b.edges[key] = entry
	}
	entry.sources.add(refs...)
}

// recordChunk remembers the first page seen for a chunk id and every
// (chunk, page) reference in input order; Source nodes are built from it.
func (b *graphBuilder) recordChunk(ref common.SourceRef) {
	if _, ok := b.chunkPages[ref.ChunkID]; !ok {
		b.chunkPages[ref.ChunkID] = ref.Page
		b.chunkRefs[ref.ChunkID] = &sourceList{}
	}
	b.chunkRefs[ref.ChunkID].add(ref)
}

// addEntities registers the canonical nodes produced by the entity merger.
// Only these nodes can be relation endpoints or event owners and targets.
// Nodes are registered in label order so a slug collision always keeps the
// same label whatever the chunk order.
func (b *graphBuilder) addEntities(nodes []common.Node) error {
	sorted := slices.Clone(nodes)
	slices.SortFunc(sorted, func(x, y common.Node) int {
		return strings.Compare(x.Label, y.Label)
	})

	for _, n := range sorted {
		entry, err := b.upsertNode(n.Type, n.Label)
		if err != nil {
			return err
		}
		if entry == nil {
			continue
		}
		mergeAttributes(entry.attributes, n.Attributes)
		entry.sources.add(n.Sources...)
		b.entityByLabel[n.Label] = entry.id
	}
	return nil
}

func (b *graphBuilder) addRelations(chunk common.ChunkExtraction) {
	ref := chunk.Ref()
	for _, rel := range chunk.Relations {
		if !b.ontology.IsRelationType(rel.Relation) {
			b.report.unknownRelationTypes++
			continue
		}
		fromID, okFrom := b.entityByLabel[rel.From]
		toID, okTo := b.entityByLabel[rel.To]
		if !okFrom || !okTo {
			b.report.unresolvedRelations++
			continue
		}
		if fromID == toID {
			b.report.selfLoops++
			continue
		}
		b.addEdge(fromID, rel.Relation, toID, ref)
	}
}

func (b *graphBuilder) addEvents(chunk common.ChunkExtraction) error {
	ref := chunk.Ref()
	for _, ev := range chunk.Events {
		if strings.TrimSpace(ev.Name) == "" {
			b.report.malformedEvents++
			continue
		}
		if !b.ontology.IsEventType(ev.Type) {
			b.report.unknownEventTypes++
			continue
		}

		event, err := b.upsertNode(ontology.TypeEvent, ev.Name)
		if err != nil {
			return err
		}
		if event == nil {
			continue
		}
		if ev.Year != nil {
			event.attributes["year"] = *ev.Year
		}
		event.attributes["tags"] = unionStrings(stringList(event.attributes["tags"]), ev.Tags)
		event.sources.add(ref)

		if ev.Company != "" {
			ownerID, ok := b.entityByLabel[ev.Company]
			if ok && b.ontology.IsEventOwner(b.nodes[ownerID].typ) {
				b.addEdge(ownerID, ontology.RelationHasEvent, event.id, ref)
			} else {
				b.report.unresolvedOwners++
			}
		}

		verb, hasVerb := b.ontology.EventVerb(ev.Type)
		if ev.RelatedTo != "" && hasVerb {
			targetID, ok := b.entityByLabel[ev.RelatedTo]
			if ok && targetID != event.id {
				b.addEdge(event.id, verb, targetID, ref)
			} else {
				b.report.unresolvedTargets++
			}
		}
	}
	return nil
}

// pruneEventMediated drops direct X --verb--> Y edges when the same fact is
// already modeled as X --has_event--> E --verb--> Y.
func (b *graphBuilder) pruneEventMediated() {
	owners := make(map[string][]string)
	for key := range b.edges {
		if key.relation == ontology.RelationHasEvent {
			owners[key.to] = append(owners[key.to], key.from)
		}
	}

	redundant := make(map[edgeKey]struct{})
	for key := range b.edges {
		event, ok := b.nodes[key.from]
		if !ok || event.typ != ontology.TypeEvent || !b.isEventVerb(key.relation) {
			continue
		}
		for _, owner := range owners[key.from] {
			redundant[edgeKey{from: owner, relation: key.relation, to: key.to}] = struct{}{}
		}
	}

	for key := range redundant {
		if _, ok := b.edges[key]; ok {
			delete(b.edges, key)
			b.report.prunedEdges++
		}
	}
}

func (b *graphBuilder) isEventVerb(relation string) bool {
	for _, ev := range b.ontology.EventTypes() {
		if verb, ok := b.ontology.EventVerb(ev); ok && verb == relation {
			return true
		}
	}
	return false
}
