// Package logger wraps zerolog with service and component context.
//
// A Logger is constructed once in the composition root and passed to
// components; package-level helpers delegate to a process-wide default
// for code paths that have no injected logger (e.g. panic recovery).
package logger
