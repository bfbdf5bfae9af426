package post

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for posts (the BlogStore
// collaborator). Implementations live under repository/; tests swap in an
// in-memory fake.
type Repository interface {
	// Find returns every post with its owner's public fields joined in.
	Find(ctx context.Context) ([]DTO, error)

	// FindAll returns the raw post records, input to the aggregation
	// engine.
	FindAll(ctx context.Context) ([]Post, error)

	// FindByID returns ErrPostNotFound when the id is unknown.
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)

	// Insert persists a new post.
	Insert(ctx context.Context, p *Post) error

	// UpdateByID applies the non-nil fields of patch and returns the
	// updated record. Returns ErrPostNotFound when the id is unknown.
	UpdateByID(ctx context.Context, id uuid.UUID, patch UpdateRequest) (*Post, error)

	// DeleteByID returns ErrPostNotFound when the id is unknown.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
