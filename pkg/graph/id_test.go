package graph

import (
	"testing"
)

func TestMakeID(t *testing.T) {
	tests := []struct {
		name     string
		nodeType string
		label    string
		want     string
	}{
		{
			name:     "simple label",
			nodeType: "Company",
			label:    "Acme",
			want:     "company_acme",
		},
		{
			name:     "spaces become separators",
			nodeType: "Event",
			label:    "Launch in 2020",
			want:     "event_launch_in_2020",
		},
		{
			name:     "punctuation runs collapse",
			nodeType: "Service",
			label:    "AI-powered  analytics -- service",
			want:     "service_ai_powered_analytics_service",
		},
		{
			name:     "leading and trailing separators trimmed",
			nodeType: "Company",
			label:    "  (TechNova Inc.)  ",
			want:     "company_technova_inc",
		},
		{
			name:     "type is lower-cased",
			nodeType: "Platform",
			label:    "NovaCloud",
			want:     "platform_novacloud",
		},
		{
			name:     "non ascii letters are separators",
			nodeType: "Partner",
			label:    "Müller & Söhne",
			want:     "partner_m_ller_s_hne",
		},
		{
			name:     "chunk id as source label",
			nodeType: "Source",
			label:    "chunk_001",
			want:     "source_chunk_001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MakeID(tt.nodeType, tt.label)
			if got != tt.want {
				t.Errorf("MakeID(%q, %q) = %q, want %q", tt.nodeType, tt.label, got, tt.want)
			}
		})
	}
}

func TestMakeIDIsStable(t *testing.T) {
	first := MakeID("Company", "DataFlow Systems")
	for range 10 {
		if got := MakeID("Company", "DataFlow Systems"); got != first {
			t.Fatalf("MakeID() not stable: %q != %q", got, first)
		}
	}
}
