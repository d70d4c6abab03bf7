// Package errors provides the unified application error type for the
// VibeTrip API. Errors carry a machine-readable code, a human-readable
// message, an HTTP status, optional response headers, and an optional
// wrapped cause for logging.
package errors
