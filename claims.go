package identity

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the identity claim set baked into issued tokens.
type Claims struct {
	jwt.RegisteredClaims
	Name              string   `json:"name,omitempty"`
	PreferredUsername string   `json:"preferred_username,omitempty"`
	Email             string   `json:"email"`
	Roles             []string `json:"roles,omitempty"`
}

// NewUserClaims maps a verified user record and its roles into a claim set:
// subject, name, preferred_username, email (empty string when unset), a
// fresh token id, then one role entry per role in the order the store
// returned them. The mapping is pure apart from the generated token id,
// which is what distinguishes two tokens minted for the same user.
func NewUserClaims(user *User, roles []string) *Claims {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: user.ID.String(),
		},
		Name:              user.Name,
		PreferredUsername: user.Username,
		Email:             user.Email,
		Roles:             roles,
	}

	ensureTokenID(&claims.RegisteredClaims)

	return claims
}

// ensureTokenID fills the jti claim with a random UUID when absent.
func ensureTokenID(claims *jwt.RegisteredClaims) {
	if claims.ID == "" {
		claims.ID = uuid.NewString()
	}
}

// HasRole reports whether the claim set carries the given role.
func (c *Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// TokenID returns the jti claim.
func (c *Claims) TokenID() string {
	return c.RegisteredClaims.ID
}
