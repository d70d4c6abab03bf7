// Package server runs the HTTP surface of the VibeTrip API: a Gin
// engine behind an http.Server with HTTP/2 cleartext support, graceful
// shutdown, and the standard middleware stack.
package server
