package identity_test

import (
	"context"
	"testing"

	identity "github.com/goliatone/go-identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDefaultRoles(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, identity.EnsureDefaultRoles(ctx, store, nil))

	for _, role := range identity.DefaultRoles {
		exists, err := store.RoleExists(ctx, role)
		require.NoError(t, err)
		assert.True(t, exists, "expected role %q", role)
	}

	// Running the seeder again must be a no-op.
	require.NoError(t, identity.EnsureDefaultRoles(ctx, store, nil))
}

func TestEnsureDefaultAdmin(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, identity.EnsureDefaultRoles(ctx, store, nil))

	seed := identity.AdminSeed{
		Email:    "admin@example.com",
		Name:     "Admin",
		Password: "Admin1234!pwd",
	}

	require.NoError(t, identity.EnsureDefaultAdmin(ctx, store, seed, nil))

	admin, err := store.FindByEmail(ctx, seed.Email)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, seed.Email, admin.Username, "username defaults to the email")

	roles, err := store.GetRoles(ctx, admin)
	require.NoError(t, err)
	assert.Contains(t, roles, identity.RoleAdmin)

	// Idempotent: a second run leaves the existing account alone.
	require.NoError(t, identity.EnsureDefaultAdmin(ctx, store, seed, nil))

	again, err := store.FindByEmail(ctx, seed.Email)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)
}
