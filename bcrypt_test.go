package identity_test

import (
	"testing"

	identity "github.com/goliatone/go-identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "Valid password",
			password: "securePassword123!",
			wantErr:  false,
		},
		{
			name:     "Empty password",
			password: "",
			wantErr:  true, // bcrypt can hash empty strings!
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := identity.HashPassword(tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, hash)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)
		})
	}
}

func TestComparePasswordAndHash(t *testing.T) {
	hash, err := identity.HashPassword("securePassword123!")
	require.NoError(t, err)

	t.Run("matching password", func(t *testing.T) {
		assert.NoError(t, identity.ComparePasswordAndHash("securePassword123!", hash))
	})

	t.Run("wrong password", func(t *testing.T) {
		err := identity.ComparePasswordAndHash("wrongPassword456?", hash)
		assert.ErrorIs(t, err, identity.ErrMismatchedHashAndPassword)
	})
}
