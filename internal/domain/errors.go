package domain

import "errors"

// Authentication errors.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
)

// CSRF errors.
var (
	ErrCSRFUnavailable = errors.New("CSRF cookie not found")
)

// Transport errors.
var (
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// Rate limiting errors.
var (
	ErrRateLimited = errors.New("too many attempts, slow down")
)
