package token

import (
	"errors"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Algorithm defines supported JWT signing algorithms. The signer is
// HMAC-only: tokens are signed with a shared secret from configuration.
type Algorithm string

const (
	HS256 Algorithm = "HS256"
	HS384 Algorithm = "HS384"
	HS512 Algorithm = "HS512"
)

// DefaultTTL is the token lifetime used when the caller requests none.
const DefaultTTL = 15 * time.Minute

// Config configures the token signer.
// Loadable from YAML/env via mapstructure tags.
type Config struct {
	// Secret is the HMAC signing key (required).
	Secret string `mapstructure:"secret"`

	// Algorithm is the signing algorithm (default: HS256).
	Algorithm Algorithm `mapstructure:"algorithm"`

	// DefaultTTL is the token lifetime applied when a call passes no TTL
	// (default: 15m).
	DefaultTTL time.Duration `mapstructure:"default_ttl"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = HS256
	}
	if c.DefaultTTL == 0 {
		c.DefaultTTL = DefaultTTL
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("token: secret is required")
	}
	switch c.Algorithm {
	case HS256, HS384, HS512:
	default:
		return errors.New("token: unsupported algorithm: " + string(c.Algorithm))
	}
	return nil
}

// signingMethod returns the golang-jwt SigningMethod instance.
func (c *Config) signingMethod() gojwt.SigningMethod {
	switch c.Algorithm {
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	default:
		return gojwt.SigningMethodHS256
	}
}
