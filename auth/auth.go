package auth

import (
	"context"
	"time"

	"github.com/vibetrip/vibetrip-api/auth/password"
	"github.com/vibetrip/vibetrip-api/auth/token"
	"github.com/vibetrip/vibetrip-api/errors"
	"github.com/vibetrip/vibetrip-api/identity"
	"github.com/vibetrip/vibetrip-api/logger"
)

// unauthorizedMessage is the single message every authentication failure
// surfaces. Bad token, provider error, and missing user are deliberately
// indistinguishable to the caller.
const unauthorizedMessage = "Could not validate credentials"

// Identity is the authenticated caller, valid for one request.
type Identity struct {
	ID string `json:"id"`
}

// IdentityResolver resolves an inbound bearer token to an identity.
// Middleware depends on this contract rather than the Service struct.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, bearerToken string) (Identity, error)
}

// IdentityResolverFunc adapts an ordinary function to IdentityResolver.
type IdentityResolverFunc func(ctx context.Context, bearerToken string) (Identity, error)

// ResolveIdentity implements IdentityResolver.
func (f IdentityResolverFunc) ResolveIdentity(ctx context.Context, bearerToken string) (Identity, error) {
	return f(ctx, bearerToken)
}

// Service bundles the password hasher, token signer, and identity
// provider behind the four authentication operations. All dependencies
// are reentrant, so the Service is safe for concurrent use.
type Service struct {
	hasher   *password.Hasher
	signer   *token.Signer
	provider identity.Provider
	log      *logger.Logger
}

// NewService creates the authentication service.
func NewService(hasher *password.Hasher, signer *token.Signer, provider identity.Provider, log *logger.Logger) *Service {
	return &Service{
		hasher:   hasher,
		signer:   signer,
		provider: provider,
		log:      log.WithComponent("auth"),
	}
}

// HashPassword returns a salted hash of the password.
func (s *Service) HashPassword(plain string) (string, error) {
	return s.hasher.Hash(plain)
}

// VerifyPassword reports whether the password matches the stored hash.
func (s *Service) VerifyPassword(plain, hash string) bool {
	return s.hasher.Verify(plain, hash)
}

// IssueToken mints a signed access token from the claims with an expiry
// of now plus ttl; ttl <= 0 selects the default validity window.
func (s *Service) IssueToken(claims map[string]any, ttl time.Duration) (string, error) {
	return s.signer.IssueToken(claims, ttl)
}

// DefaultTokenTTL returns the signer's default token lifetime.
func (s *Service) DefaultTokenTTL() time.Duration {
	return s.signer.DefaultTTL()
}

// ParseToken validates a first-party access token and returns its claims.
func (s *Service) ParseToken(tokenString string) (map[string]any, error) {
	return s.signer.Parse(tokenString)
}

// ResolveIdentity sends the bearer token to the identity provider and
// returns the provider-assigned user id. Every failure mode collapses
// into the same Unauthorized error carrying the Bearer challenge so a
// caller cannot distinguish a bad token from a provider outage. The
// underlying cause is kept on the error for logging only.
func (s *Service) ResolveIdentity(ctx context.Context, bearerToken string) (Identity, error) {
	user, err := s.provider.UserFromToken(ctx, bearerToken)
	if err != nil {
		s.log.Debug("identity lookup failed", logger.ErrorFields("resolve_identity", err))
		return Identity{}, errors.Unauthorized(unauthorizedMessage).WithCause(err)
	}
	if user == nil || user.ID == "" {
		return Identity{}, errors.Unauthorized(unauthorizedMessage)
	}
	return Identity{ID: user.ID}, nil
}
