package auth

import "errors"

var (
	// ErrInvalidToken is returned by the codec when a token fails signature
	// verification, is malformed, or has expired.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrUnauthorized is the guard-level failure. Missing, malformed and
	// expired tokens all collapse into it: callers only need a binary
	// authorize/deny decision.
	ErrUnauthorized = errors.New("unauthorized access")

	// ErrForbidden means the caller is authenticated but does not own the
	// target resource.
	ErrForbidden = errors.New("forbidden: not the resource owner")
)
