package domain

import "context"

// AuthGateway is the typed client for the remote authentication API.
// It is stateless: each call is a single network round trip. The
// gateway attaches the CSRF token to every mutating call before it is
// issued.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (LoginOutcome, error)
	VerifyCode(ctx context.Context, email, code string) error
	FetchProfile(ctx context.Context) (*User, error)
	Logout(ctx context.Context) error
}

// TokenSource resolves the anti-forgery token required on mutating
// calls, bootstrapping the CSRF cookie when it is absent.
type TokenSource interface {
	EnsureToken(ctx context.Context) (string, error)
}

// Navigator receives the redirect side effects of session transitions.
// Implementations must not block.
type Navigator interface {
	Navigate(nav Navigation)
}
