package common

import "errors"

// Sentinel errors shared between services, repositories and the HTTP layer.
// Callers should match them with errors.Is; the HTTP layer owns the mapping
// to status codes.
var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Registration pre-check errors.
	ErrorNameExists  = errors.New("full name already exists")
	ErrorEmailExists = errors.New("email already exists")

	// Login errors.
	ErrorBadPassword = errors.New("incorrect password")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingToken = errors.New("missing token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
