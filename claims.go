package storefront

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the decoded, unverified payload of a bearer token. It is
// for display only; authentication state never depends on it.
type TokenClaims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

// ParseTokenClaims decodes token without verifying its signature. Signature
// verification belongs to the server; a stale or forged token is caught by
// the first authenticated call.
func ParseTokenClaims(token string) (TokenClaims, error) {
	if token == "" {
		return TokenClaims{}, errors.New("storefront: no token to decode")
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenClaims{}, err
	}
	out := TokenClaims{}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
