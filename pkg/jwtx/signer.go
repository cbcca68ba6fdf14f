package jwtx

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/trackware/gatekeep/pkg/idx"
)

// Signer mints HS256 admin tokens. The service and its operator tooling share
// one secret; tracking agents never hold tokens at all (the resolve path is
// public).
type Signer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// Sign issues a token for the given subject with the given scopes.
func (s *Signer) Sign(subject string, scopes []string) (string, error) {
	if len(s.Secret) == 0 {
		return "", fmt.Errorf("jwtx: signer has no secret")
	}

	now := time.Now()
	// A negative TTL is honoured so callers can mint already-expired tokens.
	ttl := s.TTL
	if ttl == 0 {
		ttl = time.Hour
	}

	claims := Claims{
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        idx.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}
