package ontology

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML ontology definition and validates it. Unknown keys
// are rejected so that typos do not silently fall back to empty sets.
func Parse(data []byte) (*Ontology, error) {
	var def Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to decode ontology: %w", err)
	}
	return New(def)
}

// Load reads and parses the ontology definition at path.
func Load(path string) (*Ontology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ontology file: %w", err)
	}
	o, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("ontology %s: %w", path, err)
	}
	return o, nil
}

// Definition returns the declarative form of o, suitable for YAML encoding.
func (o *Ontology) Definition() Definition {
	verbs := make(map[string]string, len(o.eventVerbs))
	for k, v := range o.eventVerbs {
		verbs[k] = v
	}
	return Definition{
		EntityTypes:   o.EntityTypes(),
		RelationTypes: o.RelationTypes(),
		EventTypes:    o.EventTypes(),
		Precedence:    o.Precedence(),
		EventVerbs:    verbs,
		EventOwners:   append([]string(nil), o.eventOwners...),
	}
}
