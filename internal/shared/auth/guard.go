package auth

import (
	"strings"

	"github.com/google/uuid"
)

// Guard makes the per-request authorize/deny decisions. It is stateless:
// every request is authenticated independently, there is no session
// continuity.
type Guard struct {
	codec *TokenCodec
}

func NewGuard(codec *TokenCodec) *Guard {
	return &Guard{codec: codec}
}

// Authenticate resolves the acting account from a raw bearer token. Any
// failure — absent, malformed, bad signature, expired — answers
// ErrUnauthorized.
func (g *Guard) Authenticate(rawToken string) (uuid.UUID, error) {
	if rawToken == "" {
		return uuid.Nil, ErrUnauthorized
	}

	accountID, err := g.codec.Decode(rawToken)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}

	return accountID, nil
}

// AuthorizeOwnership succeeds iff the acting account owns the resource.
func (g *Guard) AuthorizeOwnership(accountID, resourceOwnerID uuid.UUID) error {
	if accountID != resourceOwnerID {
		return ErrForbidden
	}
	return nil
}

// FromAuthorizationHeader extracts the raw token from a
// "Bearer <token>" header value. Returns "" when the scheme is wrong, so
// Authenticate rejects it.
func FromAuthorizationHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
