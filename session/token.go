package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiresAt extracts the expiry claim from a session token without
// verifying its signature. Only the backend holds the signing secret; the
// client reads exp purely so consumers can prompt for re-login before a
// request fails with 401.
func TokenExpiresAt(token string) (time.Time, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("error parsing token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("token has no expiry claim")
	}
	return claims.ExpiresAt.Time, nil
}

// TokenExpired reports whether the token's expiry claim has passed.
func TokenExpired(token string) bool {
	expiresAt, err := TokenExpiresAt(token)
	if err != nil {
		return true
	}
	return expiresAt.Before(time.Now())
}
