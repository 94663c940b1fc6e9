package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the credential record. The authenticator only reads and creates
// it; all mutation goes through the owning store.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	EmailVerified bool       `bun:"is_email_verified" json:"is_email_verified,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Role is a name-only entity; creation is idempotent.
type Role struct {
	bun.BaseModel `bun:"table:roles,alias:rol"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull,unique" json:"name,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// UserRole links users to roles. AssignedAt preserves assignment order so
// GetRoles can yield a stable sequence.
type UserRole struct {
	bun.BaseModel `bun:"table:user_roles,alias:usrrol"`
	UserID        uuid.UUID  `bun:"user_id,pk,type:uuid" json:"user_id,omitempty"`
	RoleID        uuid.UUID  `bun:"role_id,pk,type:uuid" json:"role_id,omitempty"`
	AssignedAt    *time.Time `bun:"assigned_at,nullzero,default:current_timestamp" json:"assigned_at,omitempty"`
	User          *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Role          *Role      `bun:"rel:belongs-to,join:role_id=id" json:"role,omitempty"`
}

// Default role names seeded at deploy time.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)
