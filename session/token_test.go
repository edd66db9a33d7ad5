package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "did:splitter:alice-0011223344556677",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenExpiresAt(t *testing.T) {
	expiry := time.Now().Add(7 * 24 * time.Hour).Truncate(time.Second)
	token := signedToken(t, expiry)

	// The client never holds the backend secret; expiry is read unverified.
	got, err := TokenExpiresAt(token)
	require.NoError(t, err)
	require.WithinDuration(t, expiry, got, time.Second)
	require.False(t, TokenExpired(token))
}

func TestTokenExpired(t *testing.T) {
	token := signedToken(t, time.Now().Add(-time.Hour))
	require.True(t, TokenExpired(token))
}

func TestTokenGarbage(t *testing.T) {
	_, err := TokenExpiresAt("not-a-jwt")
	require.Error(t, err)
	require.True(t, TokenExpired("not-a-jwt"))
}
