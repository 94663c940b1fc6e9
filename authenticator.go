package identity

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// Authenticator coordinates validation, the user store, claim assembly, and
// token issuance for the two public operations: Register and Login.
//
// Expected business outcomes never surface as errors: a duplicate email or a
// store policy rejection come back as RegisterResult{Succeeded:false}, and
// bad credentials come back as a nil LoginResult. Only malformed input
// (*ValidationError) and collaborator or configuration faults use the error
// return.
type Authenticator struct {
	store  UserStore
	tokens *TokenService
	logger Logger
}

// NewAuthenticator returns a new Authenticator backed by the given store
// and signing configuration.
func NewAuthenticator(store UserStore, cfg Config) *Authenticator {
	logger := defLogger{}
	return &Authenticator{
		store:  store,
		tokens: NewTokenService(cfg, logger),
		logger: logger,
	}
}

// WithLogger sets the logger used by the authenticator and its token service.
func (a *Authenticator) WithLogger(logger Logger) *Authenticator {
	if logger == nil {
		return a
	}
	a.logger = logger
	a.tokens.logger = logger
	return a
}

// TokenService exposes the issuer so callers can validate tokens they get back.
func (a *Authenticator) TokenService() *TokenService {
	return a.tokens
}

// Register creates a new account. The result reports business failures
// (duplicate email, store policy rejection) with Succeeded=false; the error
// return is reserved for malformed input and store faults.
func (a *Authenticator) Register(ctx context.Context, input RegisterInput) (RegisterResult, error) {
	a.logger.Info("Registration attempt for %s", input.Email)

	if err := ctx.Err(); err != nil {
		return RegisterResult{}, goerrors.Wrap(err, goerrors.CategoryOperation, "context cancelled during registration")
	}

	if violations := input.Validate(); len(violations) > 0 {
		a.logger.Warn("Registration validation failed for %s: %v", input.Email, violations)
		return RegisterResult{}, &ValidationError{Messages: violations}
	}

	existing, err := a.store.FindByEmail(ctx, input.Email)
	if err != nil {
		return RegisterResult{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check for existing account")
	}

	if existing != nil {
		a.logger.Warn("Registration failed: email %s already exists", input.Email)
		return RegisterResult{Errors: []string{MsgEmailAlreadyRegistered}}, nil
	}

	now := time.Now().UTC()
	user := &User{
		Name:          input.Name,
		Username:      input.Username,
		Email:         input.Email,
		EmailVerified: true,
		CreatedAt:     &now,
	}

	if err := a.store.CreateUser(ctx, user, input.Password); err != nil {
		if IsRejection(err) {
			reasons := rejectionReasons(err)
			a.logger.Error("Account creation rejected for %s: %v", input.Email, reasons)
			return RegisterResult{Errors: reasons}, nil
		}
		return RegisterResult{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create account")
	}

	if err := a.store.AssignRole(ctx, user, RoleUser); err != nil {
		return RegisterResult{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to assign default role")
	}

	a.logger.Info("Registration successful for %s", input.Email)

	return RegisterResult{Succeeded: true, Errors: []string{}}, nil
}

// Login authenticates a credential pair and issues a signed bearer token.
// It returns (nil, nil) for both unknown emails and wrong passwords so the
// two paths are indistinguishable to callers.
func (a *Authenticator) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	a.logger.Info("Login attempt for %s", input.Email)

	if err := ctx.Err(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "context cancelled during login")
	}

	if violations := input.Validate(); len(violations) > 0 {
		a.logger.Warn("Login validation failed for %s: %v", input.Email, violations)
		return nil, &ValidationError{Messages: violations}
	}

	user, err := a.store.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up account")
	}

	if user == nil {
		a.logger.Warn("Login failed: user %s not found", input.Email)
		return nil, nil
	}

	ok, err := a.store.VerifySecret(ctx, user, input.Password)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to verify credentials")
	}

	if !ok {
		a.logger.Warn("Login failed: invalid credentials for %s", input.Email)
		return nil, nil
	}

	roles, err := a.store.GetRoles(ctx, user)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch roles")
	}

	claims := NewUserClaims(user, roles)

	token, expiresAt, err := a.tokens.Issue(claims)
	if err != nil {
		return nil, err
	}

	a.logger.Info("Login successful for %s", input.Email)

	return &LoginResult{
		AccessToken:  token,
		ExpiresAt:    expiresAt,
		RefreshToken: "",
	}, nil
}
