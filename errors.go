package identity

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	textCodeInvalidSigningKey = "INVALID_SIGNING_KEY"
	textCodeTokenExpired      = "TOKEN_EXPIRED"
	textCodeTokenMalformed    = "TOKEN_MALFORMED"
)

// MsgEmailAlreadyRegistered is the reason reported when registration hits
// an email that already has an account.
const MsgEmailAlreadyRegistered = "Email already registered."

// ErrInvalidSigningKey is returned when the configured secret does not meet
// the HS256 minimum key size. It indicates a misconfigured deployment and
// is surfaced as a hard fault.
var ErrInvalidSigningKey = goerrors.New(
	"signing key must be at least 32 bytes for HS256",
	goerrors.CategoryInternal,
).WithTextCode(textCodeInvalidSigningKey)

// ErrTokenExpired is returned when validating a token past its expiry.
var ErrTokenExpired = goerrors.New(
	"authentication token expired",
	goerrors.CategoryAuth,
).WithTextCode(textCodeTokenExpired)

// ErrTokenMalformed is returned when a token cannot be parsed or its
// signature does not verify.
var ErrTokenMalformed = goerrors.New(
	"invalid authentication token",
	goerrors.CategoryAuth,
).WithTextCode(textCodeTokenMalformed)

// ValidationError carries the ordered violation messages produced by the
// registration or login rule sets. It is the only error the authenticator
// returns for malformed input; expected business failures never use it.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if goerrors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// NewRejection builds a store-policy rejection (duplicate username and the
// like). Rejections surface to callers as RegisterResult errors, not as
// faults.
func NewRejection(reasons ...string) error {
	return goerrors.New(
		strings.Join(reasons, "; "),
		goerrors.CategoryConflict,
	)
}

// IsRejection reports whether err is a store-policy rejection.
func IsRejection(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.Category == goerrors.CategoryConflict
}

// rejectionReasons splits a rejection back into its human-readable parts.
func rejectionReasons(err error) []string {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return []string{err.Error()}
	}
	return strings.Split(richErr.Message, "; ")
}
