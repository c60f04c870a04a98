// Package ontology holds the closed vocabularies a graph build accepts and
// the precedence order used to settle conflicting entity types.
//
// An Ontology is immutable once created. The engine receives it as a value,
// so tests and alternate deployments can swap vocabularies without touching
// package state.
package ontology

import (
	"errors"
	"fmt"
	"slices"
)

// Structural types and relations the engine materializes itself. Every
// ontology must contain them.
const (
	TypeEvent  = "Event"
	TypeSource = "Source"

	RelationHasEvent    = "has_event"
	RelationDescribedIn = "described_in"
)

// ErrInvalidDefinition is returned when a Definition is inconsistent.
var ErrInvalidDefinition = errors.New("invalid ontology definition")

// Definition is the declarative form of an ontology, as written in YAML.
//
// EntityTypes also fixes the type-group order used when sorting nodes.
// Precedence lists ranked entity types from highest to lowest; types not in
// it rank below every ranked type. EventVerbs maps an event type to the
// relation linking an event to the entity it concerns; event types without a
// verb (e.g. Milestone) get no outgoing semantic edge.
type Definition struct {
	EntityTypes   []string          `yaml:"entity_types"`
	RelationTypes []string          `yaml:"relation_types"`
	EventTypes    []string          `yaml:"event_types"`
	Precedence    []string          `yaml:"precedence"`
	EventVerbs    map[string]string `yaml:"event_verbs"`
	EventOwners   []string          `yaml:"event_owners"`
}

// Ontology is the validated, immutable registry built from a Definition.
type Ontology struct {
	entityTypes   []string
	relationTypes []string
	eventTypes    []string
	precedence    []string
	eventVerbs    map[string]string
	eventOwners   []string

	groupIndex  map[string]int
	rank        map[string]int
	relationSet map[string]struct{}
	eventSet    map[string]struct{}
	ownerSet    map[string]struct{}
}

// DefaultDefinition returns the business ontology the extractors target.
func DefaultDefinition() Definition {
	return Definition{
		EntityTypes: []string{
			"Company", "Platform", "Service", "Partner", "Capability", TypeEvent, TypeSource,
		},
		RelationTypes: []string{
			"operates", "offers", "enabled_by", "supported_by", "includes",
			"integrated_with", "executed_via", "acquired", "launched",
			RelationHasEvent, RelationDescribedIn, "partnered_with",
		},
		EventTypes: []string{"Launch", "Acquisition", "Milestone"},
		Precedence: []string{"Platform", "Service", "Partner", "Company"},
		EventVerbs: map[string]string{
			"Launch":      "launched",
			"Acquisition": "acquired",
		},
		EventOwners: []string{"Company", "Partner"},
	}
}

// Default returns the ontology built from DefaultDefinition.
func Default() *Ontology {
	o, err := New(DefaultDefinition())
	if err != nil {
		panic(fmt.Sprintf("default ontology is invalid: %v", err))
	}
	return o
}

// New validates def and builds an Ontology from it. The definition's slices
// and maps are copied, later changes to def do not affect the result.
func New(def Definition) (*Ontology, error) {
	if err := checkDefinition(def); err != nil {
		return nil, err
	}

	o := &Ontology{
		entityTypes:   slices.Clone(def.EntityTypes),
		relationTypes: slices.Clone(def.RelationTypes),
		eventTypes:    slices.Clone(def.EventTypes),
		precedence:    slices.Clone(def.Precedence),
		eventVerbs:    make(map[string]string, len(def.EventVerbs)),
		eventOwners:   slices.Clone(def.EventOwners),
		groupIndex:    make(map[string]int, len(def.EntityTypes)),
		rank:          make(map[string]int, len(def.Precedence)),
		relationSet:   toSet(def.RelationTypes),
		eventSet:      toSet(def.EventTypes),
		ownerSet:      toSet(def.EventOwners),
	}
	for k, v := range def.EventVerbs {
		o.eventVerbs[k] = v
	}
	for i, t := range def.EntityTypes {
		o.groupIndex[t] = i
	}
	for i, t := range def.Precedence {
		o.rank[t] = len(def.Precedence) - i
	}

	return o, nil
}

func checkDefinition(def Definition) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidDefinition}, args...)...))
	}

	lists := []struct {
		name   string
		values []string
	}{
		{"entity_types", def.EntityTypes},
		{"relation_types", def.RelationTypes},
		{"event_types", def.EventTypes},
		{"precedence", def.Precedence},
		{"event_owners", def.EventOwners},
	}
	for _, l := range lists {
		if l.name != "precedence" && l.name != "event_owners" && len(l.values) == 0 {
			fail("%s must not be empty", l.name)
		}
		seen := make(map[string]struct{}, len(l.values))
		for _, v := range l.values {
			if v == "" {
				fail("%s contains an empty value", l.name)
				continue
			}
			if _, dup := seen[v]; dup {
				fail("%s lists %q twice", l.name, v)
			}
			seen[v] = struct{}{}
		}
	}

	entities := toSet(def.EntityTypes)
	relations := toSet(def.RelationTypes)
	events := toSet(def.EventTypes)

	for _, t := range []string{TypeEvent, TypeSource} {
		if _, ok := entities[t]; !ok {
			fail("entity_types must contain %q", t)
		}
	}
	for _, r := range []string{RelationHasEvent, RelationDescribedIn} {
		if _, ok := relations[r]; !ok {
			fail("relation_types must contain %q", r)
		}
	}
	for _, t := range def.Precedence {
		if _, ok := entities[t]; !ok {
			fail("precedence type %q is not an entity type", t)
		}
	}
	for _, t := range def.EventOwners {
		if _, ok := entities[t]; !ok {
			fail("event owner %q is not an entity type", t)
		}
	}
	for ev, verb := range def.EventVerbs {
		if _, ok := events[ev]; !ok {
			fail("event verb key %q is not an event type", ev)
		}
		if _, ok := relations[verb]; !ok {
			fail("event verb %q is not a relation type", verb)
		}
	}

	return errors.Join(errs...)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// EntityTypes returns the valid entity types in type-group order.
func (o *Ontology) EntityTypes() []string { return slices.Clone(o.entityTypes) }

// RelationTypes returns the valid relation types.
func (o *Ontology) RelationTypes() []string { return slices.Clone(o.relationTypes) }

// EventTypes returns the valid event types.
func (o *Ontology) EventTypes() []string { return slices.Clone(o.eventTypes) }

// Precedence returns the ranked entity types, highest first.
func (o *Ontology) Precedence() []string { return slices.Clone(o.precedence) }

func (o *Ontology) IsEntityType(t string) bool {
	_, ok := o.groupIndex[t]
	return ok
}

func (o *Ontology) IsRelationType(r string) bool {
	_, ok := o.relationSet[r]
	return ok
}

func (o *Ontology) IsEventType(t string) bool {
	_, ok := o.eventSet[t]
	return ok
}

// IsEventOwner reports whether a node of type t may own events via has_event.
func (o *Ontology) IsEventOwner(t string) bool {
	_, ok := o.ownerSet[t]
	return ok
}

// EventVerb returns the relation from an event of the given type to the
// entity it concerns. ok is false for event types without such an edge.
func (o *Ontology) EventVerb(eventType string) (verb string, ok bool) {
	verb, ok = o.eventVerbs[eventType]
	return verb, ok
}

// GroupIndex returns the sort position of an entity type. Unknown types sort
// after all known ones.
func (o *Ontology) GroupIndex(t string) int {
	if i, ok := o.groupIndex[t]; ok {
		return i
	}
	return len(o.entityTypes)
}

// Rank returns the precedence rank of t; 0 for unranked types.
func (o *Ontology) Rank(t string) int {
	return o.rank[t]
}

// Outranks reports whether type a wins over type b when both classify the
// same label. Ranked types beat unranked ones; between equally ranked types
// the one listed earlier in the entity types wins, so the outcome never
// depends on the order candidates arrive in.
func (o *Ontology) Outranks(a, b string) bool {
	ra, rb := o.Rank(a), o.Rank(b)
	if ra != rb {
		return ra > rb
	}
	return o.GroupIndex(a) < o.GroupIndex(b)
}

// Resolve returns the winning type among types, or "" when types is empty.
func (o *Ontology) Resolve(types ...string) string {
	best := ""
	for _, t := range types {
		if best == "" || o.Outranks(t, best) {
			best = t
		}
	}
	return best
}
