package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vibetrip/vibetrip-api/auth"
	"github.com/vibetrip/vibetrip-api/auth/authctx"
	"github.com/vibetrip/vibetrip-api/errors"
)

// Auth returns a Gin middleware that extracts the bearer token from the
// Authorization header and resolves it to an identity. A missing or
// malformed header and a resolver failure all abort with the same 401
// envelope and WWW-Authenticate challenge. The resolved identity is
// stored in the request context for handlers.
func Auth(resolver auth.IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, errors.Unauthorized("Could not validate credentials"))
			return
		}

		ident, err := resolver.ResolveIdentity(c.Request.Context(), token)
		if err != nil {
			appErr, ok := errors.AsAppError(err)
			if !ok {
				appErr = errors.Unauthorized("Could not validate credentials").WithCause(err)
			}
			abortUnauthorized(c, appErr)
			return
		}

		c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), ident))
		c.Next()
	}
}

// abortUnauthorized writes the error's headers (the Bearer challenge)
// and its JSON envelope, then stops the chain.
func abortUnauthorized(c *gin.Context, appErr *errors.AppError) {
	for k, v := range appErr.Headers {
		c.Header(k, v)
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

// bearerToken extracts the credential from an Authorization header
// value. The scheme comparison is case-insensitive per RFC 7235.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
