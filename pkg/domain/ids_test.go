package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "siteadmin/pkg/domain-errors"
)

func TestParseTenantID(t *testing.T) {
	valid := uuid.NewString()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid uuid", valid, false},
		{"empty", "", true},
		{"malformed", "not-a-uuid", true},
		{"nil uuid", uuid.Nil.String(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseTenantID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, valid, id.String())
			assert.False(t, id.IsZero())
		})
	}
}

func TestParseAliasAndFieldIDs(t *testing.T) {
	valid := uuid.NewString()

	aliasID, err := ParseAliasID(valid)
	require.NoError(t, err)
	assert.Equal(t, valid, aliasID.String())

	fieldID, err := ParseFieldID(valid)
	require.NoError(t, err)
	assert.Equal(t, valid, fieldID.String())

	_, err = ParseAliasID("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	_, err = ParseFieldID(uuid.Nil.String())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestNewIDsAreDistinct(t *testing.T) {
	assert.NotEqual(t, NewAliasID(), NewAliasID())
	assert.NotEqual(t, NewFieldID(), NewFieldID())
	assert.False(t, NewAliasID().IsZero())
}
