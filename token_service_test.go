package identity_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	identity "github.com/goliatone/go-identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() identity.Config {
	return identity.Config{
		SigningKey:      "0123456789abcdef0123456789abcdef",
		Issuer:          "test-issuer",
		Audience:        "test-audience",
		DurationMinutes: 30,
	}
}

func testUser() *identity.User {
	return &identity.User{
		ID:       uuid.New(),
		Name:     "Jane Doe",
		Username: "jane",
		Email:    "jane@example.com",
	}
}

func TestTokenService_Issue(t *testing.T) {
	t.Run("rejects signing key below HS256 minimum", func(t *testing.T) {
		cfg := testConfig()
		cfg.SigningKey = "too-short"
		service := identity.NewTokenService(cfg, nil)

		token, expiresAt, err := service.Issue(identity.NewUserClaims(testUser(), nil))

		assert.ErrorIs(t, err, identity.ErrInvalidSigningKey)
		assert.Empty(t, token)
		assert.True(t, expiresAt.IsZero())
	})

	t.Run("rejects nil claims", func(t *testing.T) {
		service := identity.NewTokenService(testConfig(), nil)

		_, _, err := service.Issue(nil)

		assert.Error(t, err)
	})

	t.Run("expiry is issuance time plus configured lifetime", func(t *testing.T) {
		cfg := testConfig()
		service := identity.NewTokenService(cfg, nil)

		before := time.Now().UTC()
		_, expiresAt, err := service.Issue(identity.NewUserClaims(testUser(), nil))
		require.NoError(t, err)

		expected := before.Add(time.Duration(cfg.DurationMinutes) * time.Minute)
		assert.WithinDuration(t, expected, expiresAt, 5*time.Second)
	})

	t.Run("a standard verifier accepts the token", func(t *testing.T) {
		cfg := testConfig()
		service := identity.NewTokenService(cfg, nil)
		user := testUser()

		signed, _, err := service.Issue(identity.NewUserClaims(user, []string{"User", "Admin"}))
		require.NoError(t, err)

		// Out-of-band verification with the stock parser, no TokenService.
		parsed, err := jwt.ParseWithClaims(signed, &identity.Claims{}, func(t *jwt.Token) (any, error) {
			return []byte(cfg.SigningKey), nil
		}, jwt.WithIssuer(cfg.Issuer), jwt.WithAudience(cfg.Audience))
		require.NoError(t, err)
		require.True(t, parsed.Valid)

		claims, ok := parsed.Claims.(*identity.Claims)
		require.True(t, ok)
		assert.Equal(t, user.ID.String(), claims.RegisteredClaims.Subject)
		assert.Equal(t, "Jane Doe", claims.Name)
		assert.Equal(t, "jane", claims.PreferredUsername)
		assert.Equal(t, "jane@example.com", claims.Email)
		assert.Equal(t, []string{"User", "Admin"}, claims.Roles)
		assert.NotEmpty(t, claims.TokenID())
	})
}

func TestTokenService_Validate(t *testing.T) {
	t.Run("round trips the exact claim values", func(t *testing.T) {
		service := identity.NewTokenService(testConfig(), nil)
		user := testUser()
		issued := identity.NewUserClaims(user, []string{"b-role", "a-role"})

		signed, _, err := service.Issue(issued)
		require.NoError(t, err)

		claims, err := service.Validate(signed)
		require.NoError(t, err)

		assert.Equal(t, issued.RegisteredClaims.Subject, claims.RegisteredClaims.Subject)
		assert.Equal(t, issued.Name, claims.Name)
		assert.Equal(t, issued.PreferredUsername, claims.PreferredUsername)
		assert.Equal(t, issued.Email, claims.Email)
		assert.Equal(t, issued.Roles, claims.Roles)
		assert.Equal(t, issued.TokenID(), claims.TokenID())
	})

	t.Run("rejects a token signed with a different key", func(t *testing.T) {
		service := identity.NewTokenService(testConfig(), nil)

		otherCfg := testConfig()
		otherCfg.SigningKey = "ffffffffffffffffffffffffffffffff"
		other := identity.NewTokenService(otherCfg, nil)

		signed, _, err := other.Issue(identity.NewUserClaims(testUser(), nil))
		require.NoError(t, err)

		_, err = service.Validate(signed)
		assert.Error(t, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		cfg := testConfig()
		cfg.DurationMinutes = -1
		service := identity.NewTokenService(cfg, nil)

		signed, _, err := service.Issue(identity.NewUserClaims(testUser(), nil))
		require.NoError(t, err)

		_, err = service.Validate(signed)
		assert.ErrorIs(t, err, identity.ErrTokenExpired)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		service := identity.NewTokenService(testConfig(), nil)

		_, err := service.Validate("not.a.token")
		assert.Error(t, err)
	})
}
