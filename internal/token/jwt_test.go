package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/inkwell-server/internal/model"
)

func newTestJWT() *JWT {
	return NewJWT("test-secret", time.Hour, 24*time.Hour)
}

func TestJWT_AccessTokenRoundTrip(t *testing.T) {
	j := newTestJWT()

	tokenString, err := j.GenerateAccessToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	userID, err := j.ParseAccessToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestJWT_RefreshTokenRoundTrip(t *testing.T) {
	j := newTestJWT()

	tokenString, jti, err := j.GenerateRefreshToken(7)
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	userID, parsedJTI, err := j.ParseRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
	assert.Equal(t, jti, parsedJTI)
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := NewJWT("test-secret", -time.Minute, 24*time.Hour)

	tokenString, err := j.GenerateAccessToken(1)
	require.NoError(t, err)

	_, err = j.ParseAccessToken(tokenString)
	assert.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestJWT_WrongSecret(t *testing.T) {
	tokenString, err := newTestJWT().GenerateAccessToken(1)
	require.NoError(t, err)

	other := NewJWT("other-secret", time.Hour, 24*time.Hour)
	_, err = other.ParseAccessToken(tokenString)
	assert.ErrorIs(t, err, model.ErrTokenSignature)
}

func TestJWT_MalformedToken(t *testing.T) {
	_, err := newTestJWT().ParseAccessToken("not.a.token")
	assert.ErrorIs(t, err, model.ErrTokenMalformed)
}

func TestJWT_TypeMismatch(t *testing.T) {
	j := newTestJWT()

	refresh, _, err := j.GenerateRefreshToken(5)
	require.NoError(t, err)
	_, err = j.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, model.ErrTokenMalformed)

	access, err := j.GenerateAccessToken(5)
	require.NoError(t, err)
	_, _, err = j.ParseRefreshToken(access)
	assert.ErrorIs(t, err, model.ErrTokenMalformed)
}
