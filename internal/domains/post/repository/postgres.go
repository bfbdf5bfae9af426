package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hanameee/bloglist-backend/internal/domains/post"
	"github.com/hanameee/bloglist-backend/pkg/cache"
	"github.com/hanameee/bloglist-backend/pkg/logger"
)

const (
	postListCacheKey = "posts:all"
	postListCacheTTL = 5 * time.Minute
)

// postgresRepository is the concrete post.Repository backed by pgx, with a
// cache-aside layer over the full listing.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) post.Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

// Find returns the joined listing, serving from cache when it can. Cache
// failures are logged and ignored: the database stays the source of truth.
func (r *postgresRepository) Find(ctx context.Context) ([]post.DTO, error) {
	var cached []post.DTO
	if found, err := r.cache.Get(ctx, postListCacheKey, &cached); err != nil {
		logger.Error("post list cache read failed", err)
	} else if found {
		return cached, nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.title, p.url, p.author, p.likes, p.created_at,
		       a.id, a.handle, a.name
		FROM posts p
		JOIN accounts a ON a.id = p.account_id
		ORDER BY p.created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	dtos := []post.DTO{}
	for rows.Next() {
		var d post.DTO
		err := rows.Scan(
			&d.ID, &d.Title, &d.URL, &d.Author, &d.Likes, &d.CreatedAt,
			&d.Owner.ID, &d.Owner.Handle, &d.Owner.Name,
		)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		dtos = append(dtos, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	if err := r.cache.Set(ctx, postListCacheKey, dtos, postListCacheTTL); err != nil {
		logger.Error("post list cache write failed", err)
	}

	return dtos, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]post.Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, url, author, likes, account_id, created_at, updated_at
		FROM posts
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []post.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return posts, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, url, author, likes, account_id, created_at, updated_at
		FROM posts
		WHERE id = $1
	`, id)

	p, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post by id: %w", err)
	}

	return p, nil
}

func (r *postgresRepository) Insert(ctx context.Context, p *post.Post) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO posts (id, title, url, author, likes, account_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		p.ID, p.Title, p.URL, p.Author, p.Likes, p.AccountID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	r.invalidate(ctx)
	return nil
}

// UpdateByID patches only the fields present in the request. COALESCE
// keeps the stored value where the placeholder is NULL, so an absent field
// is left unchanged. The owner column is never part of the statement.
func (r *postgresRepository) UpdateByID(ctx context.Context, id uuid.UUID, patch post.UpdateRequest) (*post.Post, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE posts
		SET title      = COALESCE($2, title),
		    url        = COALESCE($3, url),
		    author     = COALESCE($4, author),
		    likes      = COALESCE($5, likes),
		    updated_at = $6
		WHERE id = $1
		RETURNING id, title, url, author, likes, account_id, created_at, updated_at
	`, id, patch.Title, patch.URL, patch.Author, patch.Likes, time.Now())

	p, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, post.ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	r.invalidate(ctx)
	return p, nil
}

func (r *postgresRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return post.ErrPostNotFound
	}

	r.invalidate(ctx)
	return nil
}

func (r *postgresRepository) invalidate(ctx context.Context) {
	if err := r.cache.Delete(ctx, postListCacheKey); err != nil {
		logger.Error("post list cache invalidation failed", err)
	}
}

func scanPost(row pgx.Row) (*post.Post, error) {
	var p post.Post
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.URL,
		&p.Author,
		&p.Likes,
		&p.AccountID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
