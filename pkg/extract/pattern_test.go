package extract

import (
	"testing"

	"github.com/OFFIS-RIT/provgraph/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	foundingText = `TechNova Inc. was founded in 2015 and is headquartered in San Francisco.
        The company operates a cloud platform called NovaCloud that offers scalable storage solutions.
        TechNova has partnered with DataFlow Systems.`
	launchText = `In 2020, TechNova launched its AI-powered analytics service,
        which is integrated with the NovaCloud platform.`
	acquisitionText = `TechNova acquired QuantumAI in 2023, a startup specializing in quantum computing.
        This acquisition enabled new capabilities in machine learning.`
)

func sampleChunks() []common.Chunk {
	return []common.Chunk{
		{ID: "chunk_001", Page: 10, Text: foundingText},
		{ID: "chunk_002", Page: 25, Text: launchText},
		{ID: "chunk_003", Page: 42, Text: acquisitionText},
	}
}

func year(y int) *int {
	return &y
}

func entity(name, typ string) common.CandidateEntity {
	return common.CandidateEntity{Name: name, Type: typ, Attributes: map[string]any{}}
}

func TestPatternExtractor(t *testing.T) {
	tests := []struct {
		name string
		text string
		want common.Extraction
	}{
		{
			name: "founding paragraph",
			text: foundingText,
			want: common.Extraction{
				Entities: []common.CandidateEntity{
					entity("DataFlow Systems", "Partner"),
					entity("NovaCloud", "Platform"),
					entity("TechNova", "Company"),
				},
				Relations: []common.CandidateRelation{
					{From: "TechNova", To: "NovaCloud", Relation: "operates"},
					{From: "TechNova", To: "DataFlow Systems", Relation: "partnered_with"},
				},
				Events: []common.CandidateEvent{
					{
						Name:    "Incorporation of TechNova",
						Type:    "Incorporation",
						Year:    year(2015),
						Company: "TechNova",
						Tags:    []string{"Milestone"},
					},
				},
			},
		},
		{
			name: "service launch",
			text: launchText,
			want: common.Extraction{
				Entities: []common.CandidateEntity{
					entity("AI-powered analytics service", "Service"),
					entity("TechNova", "Company"),
					entity("NovaCloud", "Company"),
				},
				Relations: []common.CandidateRelation{
					{From: "TechNova", To: "AI-powered analytics service", Relation: "offers"},
					{From: "TechNova", To: "AI-powered analytics service", Relation: "launched"},
					{From: "AI-powered analytics service", To: "NovaCloud", Relation: "integrated_with"},
				},
				Events: []common.CandidateEvent{
					{
						Name:      "Launch in 2020",
						Type:      "Launch",
						Year:      year(2020),
						Company:   "TechNova",
						RelatedTo: "AI-powered analytics service",
						Tags:      []string{"Launch"},
					},
				},
			},
		},
		{
			name: "acquisition",
			text: acquisitionText,
			want: common.Extraction{
				Entities: []common.CandidateEntity{
					entity("Machine Learning", "Capability"),
					entity("TechNova", "Company"),
					entity("QuantumAI", "Company"),
				},
				Relations: []common.CandidateRelation{
					{From: "TechNova", To: "QuantumAI in", Relation: "acquired"},
				},
				Events: []common.CandidateEvent{
					{
						Name:      "Acquisition of QuantumAI in 2023",
						Type:      "Acquisition",
						Year:      year(2023),
						Company:   "TechNova",
						RelatedTo: "QuantumAI",
						Tags:      []string{"Acquisition"},
					},
				},
			},
		},
		{
			name: "nothing to find",
			text: "there is nothing capitalized here.",
			want: common.Extraction{},
		},
	}

	ex := NewPatternExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ex.Extract(t.Context(), common.Chunk{ID: "chunk_001", Page: 1, Text: tt.text})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanEntityName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"VectorSys to strengthen its offer", "VectorSys"},
		{"  DataFlow Systems  ", "DataFlow Systems"},
		{"Acme for growth", "Acme"},
		{"Tomato", "Tomato"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanEntityName(tt.in))
		})
	}
}

func TestCleanCompanyName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"TechNova Inc.", "TechNova"},
		{"TechNova Inc", "TechNova"},
		{"AgroSupply Co", "AgroSupply"},
		{"Nimbus Corporation", "Nimbus"},
		{"Nimbus corp.", "Nimbus"},
		{"Widgets LLC", "Widgets"},
		{"Income Partners", "Income Partners"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanCompanyName(tt.in))
		})
	}
}

func TestIsLikelyCompany(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"TechNova", true},
		{"DataFlow Systems", true},
		{"San Francisco", false},
		{"The", false},
		{"This acquisition", false},
		{"Acme", false},
		{"lowercase", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, isLikelyCompany(tt.in))
		})
	}
}
