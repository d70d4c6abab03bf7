// Package token issues and parses signed JWT access tokens.
//
// Claims are plain maps: the signer copies the caller's claims, injects
// an "exp" claim at issuance + TTL, and signs the result with the
// configured secret and algorithm. Issued tokens are immutable strings
// in compact JWS form.
package token

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Signer issues and parses JWT tokens. It holds no mutable state and is
// safe for concurrent use.
type Signer struct {
	cfg Config
	now func() time.Time
}

// NewSigner creates a token signer from configuration.
func NewSigner(cfg Config) (*Signer, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Signer{cfg: cfg, now: time.Now}, nil
}

// DefaultTTL returns the configured default token lifetime.
func (s *Signer) DefaultTTL() time.Duration {
	return s.cfg.DefaultTTL
}

// IssueToken creates a signed token from the given claims. The input map
// is copied, never mutated. An "exp" claim of issuance time plus ttl is
// injected; ttl <= 0 selects the configured default.
func (s *Signer) IssueToken(claims map[string]any, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.cfg.DefaultTTL
	}

	toEncode := make(gojwt.MapClaims, len(claims)+1)
	for k, v := range claims {
		toEncode[k] = v
	}
	toEncode["exp"] = gojwt.NewNumericDate(s.now().Add(ttl))

	signed, err := gojwt.NewWithClaims(s.cfg.signingMethod(), toEncode).
		SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Parse validates a token string and returns its claims. Only the
// configured algorithm is accepted, which rejects alg-substitution.
func (s *Signer) Parse(tokenString string) (map[string]any, error) {
	claims := gojwt.MapClaims{}
	tok, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		gojwt.WithValidMethods([]string{s.cfg.signingMethod().Alg()}),
		gojwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("token: parse: %w", err)
	}
	if !tok.Valid {
		return nil, errors.New("token: invalid token")
	}
	return claims, nil
}

// keyFunc is the jwt.Keyfunc used during token parsing.
func (s *Signer) keyFunc(tok *gojwt.Token) (interface{}, error) {
	if tok.Method.Alg() != s.cfg.signingMethod().Alg() {
		return nil, fmt.Errorf("token: unexpected signing method: %s", tok.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}
