// Package identity defines the contract for the external identity
// provider that owns user accounts. The provider is the system of
// record: this service never stores credentials or user records itself.
package identity

import "context"

// User is the provider's view of an account. The identifier is the
// provider-assigned user id; everything else is informational.
type User struct {
	ID       string         `json:"id"`
	Email    string         `json:"email"`
	Metadata map[string]any `json:"user_metadata"`
}

// Session is the provider-issued session returned by sign-up and
// password sign-in.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// SignUpParams carries the fields for account creation. Data is
// free-form metadata stored on the account (e.g. username, full name).
type SignUpParams struct {
	Email    string
	Password string
	Data     map[string]any
}

// Provider resolves tokens and manages accounts at the remote identity
// provider. Implementations must be safe for concurrent use.
type Provider interface {
	// UserFromToken resolves an access token to the account it belongs
	// to. One round trip; any provider-side failure is returned as an
	// opaque error.
	UserFromToken(ctx context.Context, accessToken string) (*User, error)

	// SignUp creates a new account.
	SignUp(ctx context.Context, params SignUpParams) (*Session, error)

	// SignInWithPassword authenticates an email/password pair.
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
}
