// Package query answers keyword questions against a built graph by returning
// the chunks that support the matching nodes and edges.
package query

import (
	"fmt"
	"slices"
	"strings"

	"github.com/OFFIS-RIT/provgraph/pkg/common"

	"golang.org/x/text/cases"
)

// RetrieveChunks returns the sorted, unique ids of the chunks relevant to
// query.
//
// A node matches when the query occurs in its label or in the text form of
// one of its attribute values, ignoring case; its sources are returned. An
// edge matches when the query occurs in its relation; the sources of both
// endpoints are returned. Matching is a single hop: neighbours of matching
// nodes are not followed. A blank query matches nothing.
func RetrieveChunks(query string, graph *common.Graph) []string {
	return RetrieveChunksTraced(query, graph, nil)
}

// RetrieveChunksTraced is RetrieveChunks with every matched node, edge and
// chunk reported to t.
func RetrieveChunksTraced(query string, graph *common.Graph, t Tracer) []string {
	if graph == nil || strings.TrimSpace(query) == "" {
		return []string{}
	}

	fold := cases.Fold()
	needle := fold.String(query)
	contains := func(s string) bool {
		return strings.Contains(fold.String(s), needle)
	}

	chunks := make(map[string]struct{})
	addSources := func(n common.Node) {
		for _, ref := range n.Sources {
			chunks[ref.ChunkID] = struct{}{}
		}
	}

	byID := make(map[string]common.Node, len(graph.Nodes))
	var matchedNodes []string
	for _, n := range graph.Nodes {
		byID[n.ID] = n
		if contains(n.Label) || slices.ContainsFunc(attributeTexts(n.Attributes), contains) {
			addSources(n)
			matchedNodes = append(matchedNodes, n.ID)
		}
	}
	RecordMatchedNodeIDs(t, matchedNodes...)

	var matchedEdges []string
	for _, e := range graph.Edges {
		if !contains(e.Relation) {
			continue
		}
		for _, id := range []string{e.FromID, e.ToID} {
			if n, ok := byID[id]; ok {
				addSources(n)
			}
		}
		matchedEdges = append(matchedEdges, EdgeKey(e))
	}
	RecordMatchedEdges(t, matchedEdges...)

	out := make([]string, 0, len(chunks))
	for id := range chunks {
		out = append(out, id)
	}
	slices.Sort(out)

	RecordUsedChunkIDs(t, out...)
	return out
}

// EdgeKey renders an edge as "from -relation-> to" for traces and logs.
func EdgeKey(e common.Edge) string {
	return e.FromID + " -" + e.Relation + "-> " + e.ToID
}

func attributeTexts(attributes map[string]any) []string {
	out := make([]string, 0, len(attributes))
	for _, v := range attributes {
		switch t := v.(type) {
		case nil:
		case string:
			out = append(out, t)
		case []string:
			out = append(out, t...)
		case []any:
			for _, e := range t {
				out = append(out, fmt.Sprint(e))
			}
		default:
			out = append(out, fmt.Sprint(t))
		}
	}
	return out
}
