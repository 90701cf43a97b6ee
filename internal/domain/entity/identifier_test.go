package entity

import (
	"testing"

	domainerrors "github.com/HYKY/hyky-services/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		raw   string
		kind  IdentifierKind
		value string
	}{
		{"admin", IdentifierUsername, "admin"},
		{"  admin  ", IdentifierUsername, "admin"},
		{"admin@hyky.games", IdentifierEmail, "admin@hyky.games"},
		{"admin@", IdentifierUsername, "admin@"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			id, err := ParseIdentifier(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, id.Kind)
			assert.Equal(t, tt.value, id.Value)
		})
	}
}

func TestParseIdentifier_Empty(t *testing.T) {
	_, err := ParseIdentifier("   ")
	assert.ErrorIs(t, err, domainerrors.ErrMissingCredentials)
}
