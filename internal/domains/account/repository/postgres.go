package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hanameee/bloglist-backend/internal/domains/account"
)

// postgresRepository is the concrete account.Repository backed by pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) account.Repository {
	return &postgresRepository{pool: pool}
}

const uniqueViolation = "23505"

func (r *postgresRepository) Create(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (id, handle, name, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Handle,
		a.Name,
		a.PasswordHash,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return account.ErrHandleTaken
		}
		return fmt.Errorf("insert account: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	query := `
		SELECT id, handle, name, password_hash, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	a, err := r.scanAccount(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by id: %w", err)
	}

	return a, nil
}

func (r *postgresRepository) FindByHandle(ctx context.Context, handle string) (*account.Account, error) {
	query := `
		SELECT id, handle, name, password_hash, created_at, updated_at
		FROM accounts
		WHERE handle = $1
	`

	a, err := r.scanAccount(r.pool.QueryRow(ctx, query, handle))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account by handle: %w", err)
	}

	return a, nil
}

// List loads all accounts, then joins each one's owned posts through the
// account_posts link table. Posts that exist but were never linked (the
// create partial-failure window) do not appear here.
func (r *postgresRepository) List(ctx context.Context) ([]account.DTO, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, handle, name, password_hash, created_at, updated_at
		FROM accounts
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		a, err := r.scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	owned, err := r.ownedPosts(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]account.DTO, 0, len(accounts))
	for _, a := range accounts {
		dtos = append(dtos, a.ToDTO(owned[a.ID]))
	}

	return dtos, nil
}

func (r *postgresRepository) ownedPosts(ctx context.Context) (map[uuid.UUID][]account.OwnedPost, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ap.account_id, p.id, p.title, p.url, p.author
		FROM account_posts ap
		JOIN posts p ON p.id = ap.post_id
		ORDER BY p.created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list owned posts: %w", err)
	}
	defer rows.Close()

	owned := make(map[uuid.UUID][]account.OwnedPost)
	for rows.Next() {
		var accountID uuid.UUID
		var p account.OwnedPost
		if err := rows.Scan(&accountID, &p.ID, &p.Title, &p.URL, &p.Author); err != nil {
			return nil, fmt.Errorf("scan owned post: %w", err)
		}
		owned[accountID] = append(owned[accountID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list owned posts: %w", err)
	}

	return owned, nil
}

func (r *postgresRepository) AppendOwnedPost(ctx context.Context, accountID, postID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO account_posts (account_id, post_id) VALUES ($1, $2)`,
		accountID, postID,
	)
	if err != nil {
		return fmt.Errorf("append owned post: %w", err)
	}
	return nil
}

func (r *postgresRepository) RemoveOwnedPost(ctx context.Context, accountID, postID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM account_posts WHERE account_id = $1 AND post_id = $2`,
		accountID, postID,
	)
	if err != nil {
		return fmt.Errorf("remove owned post: %w", err)
	}
	return nil
}

func (r *postgresRepository) scanAccount(row pgx.Row) (*account.Account, error) {
	var a account.Account
	err := row.Scan(
		&a.ID,
		&a.Handle,
		&a.Name,
		&a.PasswordHash,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
