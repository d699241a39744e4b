package gateway

import (
	"context"

	"kolikctl/internal/domain"
)

// Auth endpoints, relative to the configured base URL.
const (
	pathLogin    = "/auth/login/"
	pathMFALogin = "/auth/mfa-login/"
	pathProfile  = "/auth/profile/"
	pathLogout   = "/auth/logout/"
)

// Auth implements domain.AuthGateway over the backend's cookie-session
// auth API. It is stateless: all session state lives in the cookie jar
// and in the session store.
type Auth struct {
	c *Client
}

// NewAuth wraps a backend client into the auth gateway.
func NewAuth(c *Client) *Auth {
	return &Auth{c: c}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// Login submits credentials. On success the backend either establishes
// the session directly or requests an MFA step via the returned flags.
func (a *Auth) Login(ctx context.Context, email, password string) (domain.LoginOutcome, error) {
	var out domain.LoginOutcome
	if err := a.c.Post(ctx, pathLogin, loginRequest{Email: email, Password: password}, &out); err != nil {
		return domain.LoginOutcome{}, err
	}
	return out, nil
}

// VerifyCode completes the one-time-code challenge for email.
func (a *Auth) VerifyCode(ctx context.Context, email, code string) error {
	return a.c.Post(ctx, pathMFALogin, verifyRequest{Email: email, Code: code}, nil)
}

// FetchProfile returns the user for the current session cookie. It
// fails with a 401/403 API error when no valid session exists.
func (a *Auth) FetchProfile(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := a.c.Get(ctx, pathProfile, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout invalidates the server-side session.
func (a *Auth) Logout(ctx context.Context) error {
	return a.c.Post(ctx, pathLogout, nil, nil)
}
