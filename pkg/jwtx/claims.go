package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("jwtx: token expired")
	ErrTokenInvalid = errors.New("jwtx: token invalid")
)

// Claims are the claims carried by an admin access token. Scopes gate the
// admin mutation endpoints (admin:read, admin:write).
type Claims struct {
	Scopes []string `json:"scope,omitempty"`

	jwt.RegisteredClaims
}

// ValidateExpiry checks the exp claim against the current time.
func (c Claims) ValidateExpiry() error {
	if c.ExpiresAt == nil || c.ExpiresAt.Before(time.Now()) {
		return ErrTokenExpired
	}
	return nil
}

// HasScope reports whether the claims carry the given scope.
func (c Claims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
