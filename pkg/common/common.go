package common

// Graph is the normalized knowledge graph produced by a build. It is created
// once from an ordered sequence of chunk extractions and must be treated as
// read-only afterwards; renderers and retrieval only ever read it.
//
// Nodes are ordered by type group and label, edges by from_id, relation and
// to_id, so two builds over the same input serialize identically.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node represents a canonical entity, event or source in the graph. An entity
// may be mentioned by many chunks; all mentions collapse into one Node whose
// Sources list every supporting chunk in first-seen order.
type Node struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Label      string         `json:"label"`
	Attributes map[string]any `json:"attributes"`
	Sources    []SourceRef    `json:"sources"`
}

// Edge represents a directed, typed connection between two nodes.
// Repeated occurrences of the same (from, to, relation) triple merge their
// sources instead of producing parallel edges.
type Edge struct {
	FromID   string      `json:"from_id"`
	ToID     string      `json:"to_id"`
	Relation string      `json:"relation"`
	Sources  []SourceRef `json:"sources"`
}

// SourceRef identifies the chunk a node or edge was derived from.
type SourceRef struct {
	ChunkID string `json:"chunk_id"`
	Page    int    `json:"page"`
}

// Chunk represents a contiguous passage of source text. Chunks are the
// atomic unit of provenance: every SourceRef points at one.
type Chunk struct {
	ID   string `json:"chunk_id" yaml:"chunk_id" validate:"required"`
	Page int    `json:"page" yaml:"page"`
	Text string `json:"text" yaml:"text"`
}

// Ref returns the provenance reference for the chunk.
func (c Chunk) Ref() SourceRef {
	return SourceRef{ChunkID: c.ID, Page: c.Page}
}

// CandidateEntity is an unnormalized entity mention produced by an extractor.
type CandidateEntity struct {
	Name       string         `json:"name" jsonschema_description:"Exact name of the entity as written in the text" validate:"notblank"`
	Type       string         `json:"type" jsonschema_description:"One of the provided entity types" validate:"notblank"`
	Attributes map[string]any `json:"attributes,omitempty" jsonschema_description:"Optional scalar or list attributes of the entity"`
}

// CandidateRelation is an unnormalized relation between two entity names.
type CandidateRelation struct {
	From     string `json:"from" jsonschema_description:"Name of the source entity, as listed in entities"`
	To       string `json:"to" jsonschema_description:"Name of the target entity, as listed in entities"`
	Relation string `json:"relation" jsonschema_description:"One of the provided relation types"`
}

// CandidateEvent is an unnormalized event mention. Company and RelatedTo
// refer to entity names from the same or other chunks.
type CandidateEvent struct {
	Name      string   `json:"name" jsonschema_description:"Short unique name of the event, e.g. 'Launch in 2020'"`
	Type      string   `json:"type" jsonschema_description:"One of the provided event types"`
	Year      *int     `json:"year,omitempty" jsonschema_description:"Year the event happened, if stated"`
	Company   string   `json:"company,omitempty" jsonschema_description:"Name of the company the event belongs to"`
	RelatedTo string   `json:"related_to,omitempty" jsonschema_description:"Name of the entity launched or acquired"`
	Tags      []string `json:"tags" jsonschema_description:"Free-form tags describing the event"`
}

// Extraction is the raw output of an extractor for a single chunk.
type Extraction struct {
	Entities  []CandidateEntity   `json:"entities" jsonschema_description:"Entities mentioned in the text"`
	Relations []CandidateRelation `json:"relations" jsonschema_description:"Relations between the entities"`
	Events    []CandidateEvent    `json:"events" jsonschema_description:"Dated business events mentioned in the text"`
}

// ChunkExtraction pairs an Extraction with the chunk it came from. This is
// the input record of a graph build.
type ChunkExtraction struct {
	ChunkID string `json:"chunk_id" validate:"notblank"`
	Page    int    `json:"page"`
	Extraction
}

// Ref returns the provenance reference for the extraction's chunk.
func (c ChunkExtraction) Ref() SourceRef {
	return SourceRef{ChunkID: c.ChunkID, Page: c.Page}
}
