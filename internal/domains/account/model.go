package account

import (
	"time"

	"github.com/google/uuid"
)

// Account is an identity that owns blog posts. The identifier is immutable
// once created; accounts are only destroyed by external administrative
// action.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Handle       string    `json:"handle"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // never serialized outward
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OwnedPost is the slice of a post joined into account listings.
type OwnedPost struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	URL    string    `json:"url"`
	Author string    `json:"author,omitempty"`
}

// DTO is the public representation of an account: its fields plus the
// posts it owns. The credential never appears here.
type DTO struct {
	ID     uuid.UUID   `json:"id"`
	Handle string      `json:"handle"`
	Name   string      `json:"name"`
	Posts  []OwnedPost `json:"posts"`
}

func (a *Account) ToDTO(posts []OwnedPost) DTO {
	if posts == nil {
		posts = []OwnedPost{}
	}
	return DTO{
		ID:     a.ID,
		Handle: a.Handle,
		Name:   a.Name,
		Posts:  posts,
	}
}
