package ontology

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultMembership(t *testing.T) {
	o := Default()

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"company is entity", o.IsEntityType("Company"), true},
		{"source is entity", o.IsEntityType("Source"), true},
		{"user is not entity", o.IsEntityType("User"), false},
		{"lowercase company is not entity", o.IsEntityType("company"), false},
		{"offers is relation", o.IsRelationType("offers"), true},
		{"described_in is relation", o.IsRelationType("described_in"), true},
		{"related_to is not relation", o.IsRelationType("related_to"), false},
		{"launch is event", o.IsEventType("Launch"), true},
		{"incorporation is not event", o.IsEventType("Incorporation"), false},
		{"partner owns events", o.IsEventOwner("Partner"), true},
		{"service does not own events", o.IsEventOwner("Service"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestOutranks(t *testing.T) {
	o := Default()

	tests := []struct {
		a, b string
		want bool
	}{
		{"Platform", "Service", true},
		{"Service", "Partner", true},
		{"Partner", "Company", true},
		{"Company", "Partner", false},
		{"Company", "Capability", true},
		{"Capability", "Company", false},
		{"Capability", "Event", true},
		{"Event", "Capability", false},
		{"Company", "Company", false},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, o.Outranks(tt.a, tt.b))
		})
	}
}

func TestResolveIgnoresOrder(t *testing.T) {
	o := Default()

	assert.Equal(t, "Partner", o.Resolve("Company", "Partner"))
	assert.Equal(t, "Partner", o.Resolve("Partner", "Company"))
	assert.Equal(t, "Platform", o.Resolve("Company", "Platform", "Service"))
	assert.Equal(t, "Company", o.Resolve("Source", "Company", "Capability"))
	assert.Equal(t, "", o.Resolve())
}

func TestEventVerb(t *testing.T) {
	o := Default()

	verb, ok := o.EventVerb("Launch")
	require.True(t, ok)
	assert.Equal(t, "launched", verb)

	verb, ok = o.EventVerb("Acquisition")
	require.True(t, ok)
	assert.Equal(t, "acquired", verb)

	_, ok = o.EventVerb("Milestone")
	assert.False(t, ok)
}

func TestGroupIndex(t *testing.T) {
	o := Default()

	assert.Less(t, o.GroupIndex("Company"), o.GroupIndex("Platform"))
	assert.Less(t, o.GroupIndex("Partner"), o.GroupIndex("Capability"))
	assert.Less(t, o.GroupIndex("Event"), o.GroupIndex("Source"))
	assert.Equal(t, len(o.EntityTypes()), o.GroupIndex("Unknown"))
}

func TestNewRejectsInvalidDefinitions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Definition)
	}{
		{"empty entity types", func(d *Definition) { d.EntityTypes = nil }},
		{"missing source type", func(d *Definition) { d.EntityTypes = []string{"Company", "Event"} }},
		{"missing described_in", func(d *Definition) { d.RelationTypes = []string{"has_event", "launched", "acquired"} }},
		{"duplicate relation", func(d *Definition) { d.RelationTypes = append(d.RelationTypes, "offers") }},
		{"precedence outside entities", func(d *Definition) { d.Precedence = []string{"Product"} }},
		{"verb for unknown event", func(d *Definition) { d.EventVerbs = map[string]string{"IPO": "launched"} }},
		{"verb not a relation", func(d *Definition) { d.EventVerbs = map[string]string{"Launch": "released"} }},
		{"owner outside entities", func(d *Definition) { d.EventOwners = []string{"Person"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := DefaultDefinition()
			tt.mutate(&def)
			_, err := New(def)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDefinition))
		})
	}
}

func TestNewCopiesDefinition(t *testing.T) {
	def := DefaultDefinition()
	o, err := New(def)
	require.NoError(t, err)

	def.EntityTypes[0] = "Mutated"
	def.EventVerbs["Launch"] = "offers"

	assert.True(t, o.IsEntityType("Company"))
	verb, _ := o.EventVerb("Launch")
	assert.Equal(t, "launched", verb)
}

func TestParseAlternateOntology(t *testing.T) {
	data := []byte(`
entity_types: [Organization, Product, Event, Source]
relation_types: [makes, released, has_event, described_in]
event_types: [Release]
precedence: [Product, Organization]
event_verbs:
  Release: released
event_owners: [Organization]
`)
	o, err := Parse(data)
	require.NoError(t, err)

	assert.True(t, o.IsEntityType("Product"))
	assert.False(t, o.IsEntityType("Company"))
	assert.Equal(t, "Product", o.Resolve("Organization", "Product"))
	verb, ok := o.EventVerb("Release")
	require.True(t, ok)
	assert.Equal(t, "released", verb)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("entity_typez: [Company]\n"))
	require.Error(t, err)
}

func TestLoadRoundTripsDefinition(t *testing.T) {
	data, err := yaml.Marshal(Default().Definition())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ontology.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	o, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultDefinition(), o.Definition())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
