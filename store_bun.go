package identity

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunUserStore is a bun-backed UserStore. It owns password hashing and the
// uniqueness boundary: duplicate usernames are enforced here, at the
// database constraint, so concurrent registrations cannot race past the
// orchestrator's email check.
type BunUserStore struct {
	db               *bun.DB
	deterministicIDs bool
	logger           Logger
}

var _ UserStore = (*BunUserStore)(nil)

type BunUserStoreOption func(*BunUserStore)

// WithDeterministicIDs derives user IDs from the account email instead of
// generating random UUIDs. Useful for fixtures and idempotent seeding.
func WithDeterministicIDs() BunUserStoreOption {
	return func(s *BunUserStore) {
		s.deterministicIDs = true
	}
}

func WithStoreLogger(logger Logger) BunUserStoreOption {
	return func(s *BunUserStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewBunUserStore creates a UserStore on top of an initialized bun.DB.
func NewBunUserStore(db *bun.DB, opts ...BunUserStoreOption) *BunUserStore {
	store := &BunUserStore{
		db:     db,
		logger: defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}

	return store
}

// ResetModel creates the backing tables. Intended for tests and the example
// wiring; production schemas are managed elsewhere.
func (s *BunUserStore) ResetModel(ctx context.Context) error {
	models := []any{(*User)(nil), (*Role)(nil), (*UserRole)(nil)}
	for _, model := range models {
		if _, err := s.db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create table")
		}
	}
	return nil
}

func (s *BunUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	user := &User{}
	err := s.db.NewSelect().
		Model(user).
		Where("usr.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query user by email")
	}

	return user, nil
}

func (s *BunUserStore) CreateUser(ctx context.Context, user *User, plaintext string) error {
	hash, err := HashPassword(plaintext)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}
	user.PasswordHash = hash

	if user.ID == uuid.Nil {
		user.ID = s.newUserID(user.Email)
	}

	if _, err := s.db.NewInsert().Model(user).Exec(ctx); err != nil {
		if rejection := uniqueRejection(err, user); rejection != nil {
			s.logger.Warn("User creation rejected: %v", rejection)
			return rejection
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to insert user")
	}

	return nil
}

func (s *BunUserStore) VerifySecret(ctx context.Context, user *User, plaintext string) (bool, error) {
	if user == nil || user.PasswordHash == "" {
		return false, nil
	}

	if err := ComparePasswordAndHash(plaintext, user.PasswordHash); err != nil {
		if goerrors.Is(err, ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to compare password hash")
	}

	return true, nil
}

// GetRoles returns role names in assignment order.
func (s *BunUserStore) GetRoles(ctx context.Context, user *User) ([]string, error) {
	var roles []string
	err := s.db.NewSelect().
		ColumnExpr("rol.name").
		TableExpr("roles AS rol").
		Join("JOIN user_roles AS ur ON ur.role_id = rol.id").
		Where("ur.user_id = ?", user.ID).
		OrderExpr("ur.assigned_at ASC, rol.name ASC").
		Scan(ctx, &roles)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch user roles")
	}

	return roles, nil
}

// AssignRole links the user to the named role, creating the role if it does
// not exist yet. Re-assigning an already held role is a no-op.
func (s *BunUserStore) AssignRole(ctx context.Context, user *User, role string) error {
	roleRecord, err := s.getOrCreateRole(ctx, role)
	if err != nil {
		return err
	}

	// Stamp assignment time in Go; sqlite's current_timestamp only has
	// second resolution, which is too coarse to keep role order stable.
	now := time.Now().UTC()
	link := &UserRole{
		UserID:     user.ID,
		RoleID:     roleRecord.ID,
		AssignedAt: &now,
	}

	_, err = s.db.NewInsert().
		Model(link).
		On("CONFLICT (user_id, role_id) DO NOTHING").
		Exec(ctx)

	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to assign role")
	}

	return nil
}

func (s *BunUserStore) RoleExists(ctx context.Context, role string) (bool, error) {
	exists, err := s.db.NewSelect().
		Model((*Role)(nil)).
		Where("rol.name = ?", role).
		Exists(ctx)

	if err != nil {
		return false, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check role existence")
	}

	return exists, nil
}

// CreateRole is idempotent: creating an existing role does nothing.
func (s *BunUserStore) CreateRole(ctx context.Context, role string) error {
	record := &Role{
		ID:   uuid.New(),
		Name: role,
	}

	_, err := s.db.NewInsert().
		Model(record).
		On("CONFLICT (name) DO NOTHING").
		Exec(ctx)

	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create role")
	}

	return nil
}

func (s *BunUserStore) getOrCreateRole(ctx context.Context, role string) (*Role, error) {
	if err := s.CreateRole(ctx, role); err != nil {
		return nil, err
	}

	record := &Role{}
	err := s.db.NewSelect().
		Model(record).
		Where("rol.name = ?", role).
		Limit(1).
		Scan(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load role")
	}

	return record, nil
}

func (s *BunUserStore) newUserID(email string) uuid.UUID {
	if s.deterministicIDs {
		if id, err := hashid.NewUUID(email); err == nil {
			return id
		}
	}
	return uuid.New()
}

// uniqueRejection maps unique-constraint violations to store-policy
// rejections so the orchestrator can surface them as business failures.
func uniqueRejection(err error, user *User) error {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "unique") && !strings.Contains(msg, "duplicate") {
		return nil
	}

	if strings.Contains(msg, "username") {
		return NewRejection(fmt.Sprintf("Username '%s' is already taken.", user.Username))
	}

	if strings.Contains(msg, "email") {
		return NewRejection(MsgEmailAlreadyRegistered)
	}

	return NewRejection(err.Error())
}
