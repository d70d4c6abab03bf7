// Package auth is the authentication helper of the VibeTrip API.
//
// It exposes four operations: hash a password, verify a password against
// a stored hash, issue a signed access token, and resolve a bearer token
// to a user identity via the remote identity provider. The hasher, token
// signer, and provider client are injected dependencies constructed once
// in the composition root; the package holds no ambient state.
package auth
