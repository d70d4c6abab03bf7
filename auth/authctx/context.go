// Package authctx propagates the authenticated identity through
// request contexts without the middleware and handlers sharing a
// concrete dependency.
package authctx

import (
	"context"
	"errors"
)

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

var identityKey = contextKey{}

// ErrNoIdentity is returned when no identity is stored in the context.
var ErrNoIdentity = errors.New("authctx: no identity in context")

// Set stores the authenticated identity in the context.
func Set[T any](ctx context.Context, ident T) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// Get retrieves the typed identity from the context. It returns the
// identity and true if present and of the expected type.
func Get[T any](ctx context.Context) (T, bool) {
	val := ctx.Value(identityKey)
	if val == nil {
		var zero T
		return zero, false
	}
	ident, ok := val.(T)
	return ident, ok
}

// MustGet retrieves the typed identity from the context and panics if it
// is missing. Use only behind middleware that guarantees authentication.
func MustGet[T any](ctx context.Context) T {
	ident, ok := Get[T](ctx)
	if !ok {
		panic("authctx: identity not found in context or wrong type")
	}
	return ident
}

// GetOrError retrieves the typed identity or returns ErrNoIdentity.
func GetOrError[T any](ctx context.Context) (T, error) {
	ident, ok := Get[T](ctx)
	if !ok {
		var zero T
		return zero, ErrNoIdentity
	}
	return ident, nil
}
