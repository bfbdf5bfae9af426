package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticateResolvesAccount(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	guard := NewGuard(codec)
	accountID := uuid.New()

	token, err := codec.Issue(accountID, time.Hour)
	require.NoError(t, err)

	got, err := guard.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, got)
}

// Missing, malformed and expired tokens must all collapse into the same
// ErrUnauthorized, never ErrInvalidToken.
func TestAuthenticateCollapsesFailures(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	guard := NewGuard(codec)

	expired, err := codec.Issue(uuid.New(), -time.Minute)
	require.NoError(t, err)

	for _, raw := range []string{"", "garbage", expired} {
		_, err := guard.Authenticate(raw)
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.NotErrorIs(t, err, ErrInvalidToken)
	}
}

func TestAuthorizeOwnership(t *testing.T) {
	guard := NewGuard(NewTokenCodec("test-secret"))
	owner := uuid.New()

	assert.NoError(t, guard.AuthorizeOwnership(owner, owner))
	assert.ErrorIs(t, guard.AuthorizeOwnership(uuid.New(), owner), ErrForbidden)
}

func TestFromAuthorizationHeader(t *testing.T) {
	assert.Equal(t, "abc", FromAuthorizationHeader("Bearer abc"))
	assert.Equal(t, "", FromAuthorizationHeader(""))
	assert.Equal(t, "", FromAuthorizationHeader("Basic abc"))
	assert.Equal(t, "", FromAuthorizationHeader("Bearer"))
}
