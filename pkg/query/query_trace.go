package query

import (
	"slices"
	"sync"
)

type TraceEventKind string

const (
	TraceEventMatchedNodeIDs TraceEventKind = "matched_node_ids"
	TraceEventMatchedEdges   TraceEventKind = "matched_edges"
	TraceEventUsedChunkIDs   TraceEventKind = "used_chunk_ids"
)

// TraceEvent is an extensible event envelope for retrieval tracing.
type TraceEvent struct {
	Kind TraceEventKind

	NodeIDs  []string
	Edges    []string
	ChunkIDs []string
}

// Tracer is a sink for retrieval tracing events.
//
// Implementers can forward events to logs or custom post-processing.
type Tracer interface {
	Record(event TraceEvent)
}

// MultiTracer fan-outs trace events to multiple tracers.
type MultiTracer []Tracer

func (m MultiTracer) Record(event TraceEvent) {
	for _, t := range m {
		if t == nil {
			continue
		}
		t.Record(event)
	}
}

func RecordMatchedNodeIDs(t Tracer, ids ...string) {
	if t == nil || len(ids) == 0 {
		return
	}
	t.Record(TraceEvent{Kind: TraceEventMatchedNodeIDs, NodeIDs: ids})
}

func RecordMatchedEdges(t Tracer, edges ...string) {
	if t == nil || len(edges) == 0 {
		return
	}
	t.Record(TraceEvent{Kind: TraceEventMatchedEdges, Edges: edges})
}

func RecordUsedChunkIDs(t Tracer, ids ...string) {
	if t == nil || len(ids) == 0 {
		return
	}
	t.Record(TraceEvent{Kind: TraceEventUsedChunkIDs, ChunkIDs: ids})
}

// QueryTrace collects what a retrieval matched and which chunks it returned.
//
// QueryTrace is safe for concurrent use.
type QueryTrace struct {
	mu sync.Mutex

	nodeIDs  map[string]struct{}
	edges    map[string]struct{}
	chunkIDs map[string]struct{}
}

type QueryTraceSnapshot struct {
	MatchedNodeIDs []string
	MatchedEdges   []string
	UsedChunkIDs   []string
}

func NewQueryTrace() *QueryTrace {
	return &QueryTrace{
		nodeIDs:  make(map[string]struct{}),
		edges:    make(map[string]struct{}),
		chunkIDs: make(map[string]struct{}),
	}
}

func (t *QueryTrace) Record(event TraceEvent) {
	if t == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	switch event.Kind {
	case TraceEventMatchedNodeIDs:
		addAll(t.nodeIDs, event.NodeIDs)
	case TraceEventMatchedEdges:
		addAll(t.edges, event.Edges)
	case TraceEventUsedChunkIDs:
		addAll(t.chunkIDs, event.ChunkIDs)
	}
}

func addAll(set map[string]struct{}, values []string) {
	for _, v := range values {
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
}

func (t *QueryTrace) Snapshot() QueryTraceSnapshot {
	if t == nil {
		return QueryTraceSnapshot{}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return QueryTraceSnapshot{
		MatchedNodeIDs: sortedKeys(t.nodeIDs),
		MatchedEdges:   sortedKeys(t.edges),
		UsedChunkIDs:   sortedKeys(t.chunkIDs),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
