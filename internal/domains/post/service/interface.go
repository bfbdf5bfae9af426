package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/hanameee/bloglist-backend/internal/domains/post"
	"github.com/hanameee/bloglist-backend/internal/domains/post/stats"
)

// Service is the business logic contract for posts.
type Service interface {
	// List is public and joins each post's owner public fields.
	List(ctx context.Context) ([]post.DTO, error)

	// Create persists a draft owned by the authenticated account.
	Create(ctx context.Context, actorID uuid.UUID, req post.CreateRequest) (*post.DTO, error)

	// Update patches title/url/author/likes. Deliberately requires no
	// authentication.
	Update(ctx context.Context, id uuid.UUID, req post.UpdateRequest) (*post.DTO, error)

	// Delete removes a post, permitted only to its owner.
	Delete(ctx context.Context, actorID, id uuid.UUID) error

	// Stats aggregates the whole collection.
	Stats(ctx context.Context) (stats.Summary, error)
}
