package post

import (
	"time"

	"github.com/google/uuid"
)

// Post is a blog record. Exactly one account owns it at all times; the
// owner reference is set at creation and never changes. Likes are never
// negative.
type Post struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Author    string    `json:"author,omitempty"`
	Likes     int       `json:"likes"`
	AccountID uuid.UUID `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Owner is the public slice of the owning account joined into post
// listings. The credential never appears here.
type Owner struct {
	ID     uuid.UUID `json:"id"`
	Handle string    `json:"handle"`
	Name   string    `json:"name"`
}

// DTO is a post with its owner's public fields joined in.
type DTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Author    string    `json:"author,omitempty"`
	Likes     int       `json:"likes"`
	Owner     Owner     `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Post) ToDTO(owner Owner) DTO {
	return DTO{
		ID:        p.ID,
		Title:     p.Title,
		URL:       p.URL,
		Author:    p.Author,
		Likes:     p.Likes,
		Owner:     owner,
		CreatedAt: p.CreatedAt,
	}
}
