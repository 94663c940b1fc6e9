package identity

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// DefaultRoles are the role names seeded at deploy time.
var DefaultRoles = []string{RoleAdmin, RoleUser}

// AdminSeed describes the default administrator account.
type AdminSeed struct {
	Email    string
	Name     string
	Username string
	Password string
}

// EnsureDefaultRoles creates the default roles if they do not exist. It is
// a deployment-time helper built on the UserStore interface only; the core
// pipeline never calls it.
func EnsureDefaultRoles(ctx context.Context, store UserStore, logger Logger) error {
	if logger == nil {
		logger = defLogger{}
	}

	for _, role := range DefaultRoles {
		exists, err := store.RoleExists(ctx, role)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check default role")
		}

		if exists {
			continue
		}

		if err := store.CreateRole(ctx, role); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create default role")
		}

		logger.Info("Role %q created", role)
	}

	return nil
}

// EnsureDefaultAdmin creates the default admin account with the Admin role
// if no account exists for the seed email.
func EnsureDefaultAdmin(ctx context.Context, store UserStore, seed AdminSeed, logger Logger) error {
	if logger == nil {
		logger = defLogger{}
	}

	existing, err := store.FindByEmail(ctx, seed.Email)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check for default admin")
	}

	if existing != nil {
		logger.Info("Default admin already exists")
		return nil
	}

	username := seed.Username
	if username == "" {
		username = seed.Email
	}

	admin := &User{
		Name:          seed.Name,
		Username:      username,
		Email:         seed.Email,
		EmailVerified: true,
	}

	if err := store.CreateUser(ctx, admin, seed.Password); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create default admin")
	}

	if err := store.AssignRole(ctx, admin, RoleAdmin); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to grant admin role")
	}

	logger.Info("Default admin created")

	return nil
}
