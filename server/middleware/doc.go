// Package middleware provides the Gin middleware stack: panic recovery,
// request IDs, CORS, request tracing and logging, and bearer-token
// authentication.
package middleware
