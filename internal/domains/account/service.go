package account

import (
	"context"
)

// Service is the business logic contract for accounts.
type Service interface {
	// Register creates an account from a validated request.
	Register(ctx context.Context, req RegisterRequest) (*DTO, error)

	// Login verifies the credentials and issues a bearer token.
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// List returns the public view of every account.
	List(ctx context.Context) ([]DTO, error)
}
