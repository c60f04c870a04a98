package graph

// buildReport counts the candidates a build dropped under the omission
// policy. It is only ever logged; omissions are not errors.
type buildReport struct {
	chunks               int
	malformedChunks      int
	malformedEntities    int
	unknownEntityTypes   int
	unknownRelationTypes int
	unresolvedRelations  int
	selfLoops            int
	malformedEvents      int
	unknownEventTypes    int
	unresolvedOwners     int
	unresolvedTargets    int
	idCollisions         int
	prunedEdges          int
}

func (r *buildReport) omitted() int {
	return r.malformedChunks + r.malformedEntities + r.unknownEntityTypes +
		r.unknownRelationTypes + r.unresolvedRelations + r.selfLoops +
		r.malformedEvents + r.unknownEventTypes + r.idCollisions
}

func (r *buildReport) keyvals() []any {
	return []any{
		"chunks", r.chunks,
		"malformed_chunks", r.malformedChunks,
		"malformed_entities", r.malformedEntities,
		"unknown_entity_types", r.unknownEntityTypes,
		"unknown_relation_types", r.unknownRelationTypes,
		"unresolved_relations", r.unresolvedRelations,
		"self_loops", r.selfLoops,
		"malformed_events", r.malformedEvents,
		"unknown_event_types", r.unknownEventTypes,
		"unresolved_event_owners", r.unresolvedOwners,
		"unresolved_event_targets", r.unresolvedTargets,
		"id_collisions", r.idCollisions,
		"pruned_edges", r.prunedEdges,
	}
}
