package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// minSigningKeyBytes is the HS256 minimum key size (256 bits).
const minSigningKeyBytes = 32

// TokenService signs and validates HS256 bearer tokens.
type TokenService struct {
	signingKey      []byte
	durationMinutes int
	issuer          string
	audience        jwt.ClaimStrings
	logger          Logger
}

// NewTokenService creates a TokenService from the signing configuration.
func NewTokenService(cfg Config, logger Logger) *TokenService {
	if logger == nil {
		logger = defLogger{}
	}

	var aud jwt.ClaimStrings
	if cfg.Audience != "" {
		aud = jwt.ClaimStrings{cfg.Audience}
	}

	return &TokenService{
		signingKey:      []byte(cfg.SigningKey),
		durationMinutes: cfg.DurationMinutes,
		issuer:          cfg.Issuer,
		audience:        aud,
		logger:          logger,
	}
}

// Issue stamps the registered claims (issuer, audience, issued-at, expiry =
// now UTC + configured lifetime) onto the claim set and signs it. It fails
// with ErrInvalidSigningKey when the configured secret is shorter than the
// HS256 minimum, producing no token.
func (ts *TokenService) Issue(claims *Claims) (string, time.Time, error) {
	if claims == nil {
		return "", time.Time{}, goerrors.New("claims must not be nil", goerrors.CategoryInternal)
	}

	if len(ts.signingKey) < minSigningKeyBytes {
		ts.logger.Error("Token issuance refused: signing key below HS256 minimum")
		return "", time.Time{}, ErrInvalidSigningKey
	}

	now := time.Now().UTC()
	expiresAt := now.Add(time.Duration(ts.durationMinutes) * time.Minute)

	claims.RegisteredClaims.Issuer = ts.issuer
	claims.RegisteredClaims.Audience = ts.audience
	claims.RegisteredClaims.IssuedAt = jwt.NewNumericDate(now)
	claims.RegisteredClaims.ExpiresAt = jwt.NewNumericDate(expiresAt)

	ensureTokenID(&claims.RegisteredClaims)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", time.Time{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign JWT")
	}

	ts.logger.Debug("Issued token for subject %s", claims.RegisteredClaims.Subject)

	return signed, expiresAt, nil
}

// Validate parses and verifies a token string, returning its claim set.
// Any standard JWT verifier can do the same out of band; this is the
// in-repo counterpart used by tests and downstream middleware.
func (ts *TokenService) Validate(tokenString string) (*Claims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 2)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}
	if len(ts.audience) > 0 {
		parserOptions = append(parserOptions, jwt.WithAudience(ts.audience...))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("Token validation encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		if goerrors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, goerrors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).WithTextCode(ErrTokenMalformed.TextCode)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	ts.logger.Error("Token validation could not decode claims")
	return nil, ErrTokenMalformed
}
