// Package auth provides JWT validation for the API. Tokens are never issued
// over HTTP; they come from an external identity provider or the tokengen
// development CLI, and this service only verifies them and exposes their
// claims.
package auth

import (
	"context"
	"errors"
	"time"
)

// Authentication errors returned by the JWT service.
var (
	// ErrInvalidToken is returned when a token is malformed, carries a bad
	// signature, or fails validation for any reason other than expiry.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token's expiry has passed.
	ErrExpiredToken = errors.New("token expired")

	// ErrTokenNotYetValid is returned when a token's nbf claim is in the future.
	ErrTokenNotYetValid = errors.New("token not yet valid")
)

// Claims carries the validated content of a token. Custom holds the
// non-registered string claims, e.g. the tenant city claim checked by the
// authorizer.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string

	Custom map[string]string
}

// Claim returns the custom string claim stored under key.
func (c *Claims) Claim(key string) (string, bool) {
	if c == nil || c.Custom == nil {
		return "", false
	}
	v, ok := c.Custom[key]
	return v, ok
}

// JWTService handles token generation and validation.
type JWTService interface {
	// GenerateToken creates a signed token for the subject carrying the given
	// custom string claims. Used by the tokengen CLI and by tests.
	GenerateToken(ctx context.Context, subject string, custom map[string]string) (string, error)

	// ValidateToken verifies the token's signature and time claims and
	// returns its claims. Returns ErrExpiredToken, ErrTokenNotYetValid, or
	// ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}
