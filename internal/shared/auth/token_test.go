package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	accountID := uuid.New()

	token, err := codec.Issue(accountID, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, decoded)
}

func TestDecodeRejectsExpiredToken(t *testing.T) {
	codec := NewTokenCodec("test-secret")

	token, err := codec.Issue(uuid.New(), -time.Minute)
	require.NoError(t, err)

	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenCodec("one-secret")
	verifier := NewTokenCodec("another-secret")

	token, err := issuer.Issue(uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = verifier.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	codec := NewTokenCodec("test-secret")

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := codec.Decode(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
