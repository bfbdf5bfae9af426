package account

import "errors"

// Repository-level errors
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrHandleTaken     = errors.New("handle already exists")
)

// Service-level errors
var (
	// ErrInvalidCredentials deliberately does not distinguish an unknown
	// handle from a wrong password.
	ErrInvalidCredentials = errors.New("invalid handle or password")
)
