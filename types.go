package identity

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// UserStore owns credential persistence, secret hashing and verification,
// uniqueness enforcement, and role membership. The authenticator never
// touches stored secrets directly; it hands the store plaintext and lets
// the store decide how to hash and compare.
type UserStore interface {
	// FindByEmail returns (nil, nil) when no record matches the email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// CreateUser persists a new record, hashing the plaintext secret.
	// Store-level policy rejections (duplicate username, secret policy)
	// come back as conflict errors carrying human-readable reasons.
	CreateUser(ctx context.Context, user *User, plaintext string) error

	// VerifySecret reports whether the plaintext matches the record's
	// stored secret. A mismatch is (false, nil), not an error.
	VerifySecret(ctx context.Context, user *User, plaintext string) (bool, error)

	// GetRoles returns the record's role names in the store's own order.
	GetRoles(ctx context.Context, user *User) ([]string, error)

	AssignRole(ctx context.Context, user *User, role string) error
	RoleExists(ctx context.Context, role string) (bool, error)
	CreateRole(ctx context.Context, role string) error
}

// RegisterInput is the transient registration payload. It is validated and
// handed to the store; the plaintext password is never persisted as-is.
type RegisterInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginInput is the transient login payload.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResult reports the outcome of a registration attempt. Expected
// business failures (duplicate email, store policy rejection) surface here
// as Succeeded=false with reasons, never as an error return.
type RegisterResult struct {
	Succeeded bool     `json:"succeeded"`
	Errors    []string `json:"errors"`
}

// LoginResult carries a signed bearer token. RefreshToken is always empty;
// refresh flows are out of scope for this module.
type LoginResult struct {
	AccessToken  string    `json:"access_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	RefreshToken string    `json:"refresh_token"`
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] IDENTITY "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] IDENTITY "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] IDENTITY "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] IDENTITY "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
