package common

// NodeByID returns the node with the given id.
func (g *Graph) NodeByID(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// EdgesFrom returns all edges leaving the node with the given id, in graph order.
func (g *Graph) EdgesFrom(id string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.FromID == id {
			out = append(out, e)
		}
	}
	return out
}

// HasEdge reports whether the graph contains the given triple.
func (g *Graph) HasEdge(fromID, relation, toID string) bool {
	_, ok := g.Edge(fromID, relation, toID)
	return ok
}

// Edge returns the edge for the given triple.
func (g *Graph) Edge(fromID, relation, toID string) (Edge, bool) {
	for _, e := range g.Edges {
		if e.FromID == fromID && e.Relation == relation && e.ToID == toID {
			return e, true
		}
	}
	return Edge{}, false
}
