package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatorRegistersNotBlank(t *testing.T) {
	validate := NewValidator()

	tests := []struct {
		name    string
		entity  CandidateEntity
		wantErr bool
	}{
		{"valid", CandidateEntity{Name: "Acme", Type: "Company"}, false},
		{"blank name", CandidateEntity{Name: "  \t", Type: "Company"}, true},
		{"empty type", CandidateEntity{Name: "Acme"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.entity)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "notblank")
				return
			}
			assert.NoError(t, err)
		})
	}

	assert.Error(t, validate.Var("   ", "notblank"))
	assert.NoError(t, validate.Var("chunk_001", "notblank"))
}
