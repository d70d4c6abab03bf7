// Package password provides bcrypt password hashing and verification.
//
// Hash output is opaque: it embeds the salt and cost and is verifiable
// only through Verify. Verify never panics or returns an error; a
// malformed hash simply does not match.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost used when none is configured.
const DefaultCost = 12

// Hasher hashes and verifies passwords using bcrypt.
// It is stateless and safe for concurrent use.
type Hasher struct {
	cost int
}

// Option configures the hasher.
type Option func(*Hasher)

// WithCost sets the bcrypt cost parameter. Values outside bcrypt's
// supported range are ignored and the default is kept.
func WithCost(cost int) Option {
	return func(h *Hasher) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			h.cost = cost
		}
	}
}

// NewHasher creates a bcrypt-based password hasher.
func NewHasher(opts ...Option) *Hasher {
	h := &Hasher{cost: DefaultCost}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash returns a salted bcrypt hash of the password. It fails only on
// input bcrypt itself rejects (passwords over 72 bytes).
func (h *Hasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether the password matches the hash. Mismatches and
// malformed hashes both return false.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Cost returns the configured bcrypt cost.
func (h *Hasher) Cost() int {
	return h.cost
}
