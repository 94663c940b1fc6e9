package identity

import (
	"github.com/caarlos0/env/v11"
	goerrors "github.com/goliatone/go-errors"
)

// Config is the signing configuration: symmetric secret, token metadata,
// and lifetime. It is resolved once at process start and treated as
// immutable afterwards.
type Config struct {
	SigningKey      string `env:"AUTH_SIGNING_KEY"`
	Issuer          string `env:"AUTH_ISSUER" envDefault:"go-identity"`
	Audience        string `env:"AUTH_AUDIENCE" envDefault:"go-identity"`
	DurationMinutes int    `env:"AUTH_TOKEN_DURATION_MINUTES" envDefault:"60"`
}

// LoadConfig resolves the signing configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to parse signing configuration")
	}
	return cfg, nil
}

func (c Config) GetSigningKey() string { return c.SigningKey }
func (c Config) GetIssuer() string     { return c.Issuer }
func (c Config) GetAudience() string   { return c.Audience }
func (c Config) GetTokenDuration() int { return c.DurationMinutes }
