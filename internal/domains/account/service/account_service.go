package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hanameee/bloglist-backend/internal/domains/account"
	"github.com/hanameee/bloglist-backend/internal/shared/auth"
)

// bcrypt cost, matching what the passwords in existing databases were
// hashed with.
const bcryptCost = 10

type accountService struct {
	repo     account.Repository
	codec    *auth.TokenCodec
	tokenTTL time.Duration
}

func NewAccountService(repo account.Repository, codec *auth.TokenCodec, tokenTTL time.Duration) account.Service {
	return &accountService{
		repo:     repo,
		codec:    codec,
		tokenTTL: tokenTTL,
	}
}

func (s *accountService) Register(ctx context.Context, req account.RegisterRequest) (*account.DTO, error) {
	// Handlers validate too, but the service never trusts its callers.
	if err := req.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	newAccount := &account.Account{
		ID:           uuid.New(),
		Handle:       req.Handle,
		Name:         req.Name,
		PasswordHash: string(passwordHash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Uniqueness is enforced by the store; a duplicate handle surfaces as
	// ErrHandleTaken regardless of who won the race.
	if err := s.repo.Create(ctx, newAccount); err != nil {
		return nil, err
	}

	dto := newAccount.ToDTO(nil)
	return &dto, nil
}

func (s *accountService) Login(ctx context.Context, req account.LoginRequest) (*account.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.FindByHandle(ctx, req.Handle)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			// Do not reveal whether the handle exists.
			return nil, account.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, account.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(a.ID, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &account.LoginResponse{
		Token:  token,
		Handle: a.Handle,
		Name:   a.Name,
	}, nil
}

func (s *accountService) List(ctx context.Context) ([]account.DTO, error) {
	dtos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if dtos == nil {
		dtos = []account.DTO{}
	}
	return dtos, nil
}
