package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hanameee/bloglist-backend/internal/domains/account"
	"github.com/hanameee/bloglist-backend/internal/domains/post"
	"github.com/hanameee/bloglist-backend/internal/domains/post/stats"
	"github.com/hanameee/bloglist-backend/internal/shared/auth"
	"github.com/hanameee/bloglist-backend/pkg/logger"
)

type postService struct {
	repo     post.Repository
	accounts account.Repository
	guard    *auth.Guard
}

func NewPostService(repo post.Repository, accounts account.Repository, guard *auth.Guard) Service {
	return &postService{
		repo:     repo,
		accounts: accounts,
		guard:    guard,
	}
}

func (s *postService) List(ctx context.Context) ([]post.DTO, error) {
	return s.repo.Find(ctx)
}

// Create persists the draft with the acting account as owner, then links
// the post into that account's owned-post list. The two steps are not
// transactional: if the link fails after the insert succeeded, the post
// exists but is not yet listed under its owner.
func (s *postService) Create(ctx context.Context, actorID uuid.UUID, req post.CreateRequest) (*post.DTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	owner, err := s.accounts.FindByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("resolve owner: %w", err)
	}

	now := time.Now()
	p := &post.Post{
		ID:        uuid.New(),
		Title:     req.Title,
		URL:       req.URL,
		Author:    req.Author,
		Likes:     req.LikesOrDefault(),
		AccountID: owner.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, err
	}

	if err := s.accounts.AppendOwnedPost(ctx, owner.ID, p.ID); err != nil {
		// The post is persisted but unlinked. Surface the failure instead
		// of pretending the operation completed.
		logger.Error("post created but not linked to owner", err)
		return nil, fmt.Errorf("link post to owner: %w", err)
	}

	dto := p.ToDTO(post.Owner{ID: owner.ID, Handle: owner.Handle, Name: owner.Name})
	return &dto, nil
}

func (s *postService) Update(ctx context.Context, id uuid.UUID, req post.UpdateRequest) (*post.DTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateByID(ctx, id, req)
	if err != nil {
		return nil, err
	}

	owner, err := s.accounts.FindByID(ctx, updated.AccountID)
	if err != nil {
		return nil, fmt.Errorf("resolve owner: %w", err)
	}

	dto := updated.ToDTO(post.Owner{ID: owner.ID, Handle: owner.Handle, Name: owner.Name})
	return &dto, nil
}

// Delete fetches the target first so unknown ids answer NotFound before
// any ownership decision is made.
func (s *postService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.guard.AuthorizeOwnership(actorID, p.AccountID); err != nil {
		return err
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	if err := s.accounts.RemoveOwnedPost(ctx, p.AccountID, p.ID); err != nil {
		// The post itself is gone; a stale link only affects the account
		// listing, so log it rather than failing the delete.
		logger.Error("deleted post still linked to owner", err)
	}

	return nil
}

func (s *postService) Stats(ctx context.Context) (stats.Summary, error) {
	posts, err := s.repo.FindAll(ctx)
	if err != nil {
		return stats.Summary{}, err
	}

	return stats.Summarize(posts), nil
}
