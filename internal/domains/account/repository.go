package account

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for accounts. Implementations
// live under repository/; tests swap in an in-memory fake.
type Repository interface {
	// Create persists a new account.
	// Returns ErrHandleTaken when the handle is already registered.
	Create(ctx context.Context, a *Account) error

	// FindByID returns ErrAccountNotFound when the id is unknown.
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// FindByHandle is the login lookup.
	// Returns ErrAccountNotFound when the handle is unknown.
	FindByHandle(ctx context.Context, handle string) (*Account, error)

	// List returns every account with its owned posts joined in.
	List(ctx context.Context) ([]DTO, error)

	// AppendOwnedPost links a freshly created post to its owner. This is
	// the second step of the two-step create; it is not transactional with
	// the post insert.
	AppendOwnedPost(ctx context.Context, accountID, postID uuid.UUID) error

	// RemoveOwnedPost unlinks a deleted post from its owner.
	RemoveOwnedPost(ctx context.Context, accountID, postID uuid.UUID) error
}
