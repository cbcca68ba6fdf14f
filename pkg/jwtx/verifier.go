package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates HS256 admin tokens.
type Verifier struct {
	Secret []byte
	Issuer string
}

// Verify parses and validates a raw token string, returning its claims.
// Signature, algorithm, issuer and expiry are all checked; any failure is
// reported as ErrTokenInvalid or ErrTokenExpired.
func (v *Verifier) Verify(raw string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.Secret, nil
	}, jwt.WithIssuer(v.Issuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return Claims{}, ErrTokenInvalid
	}

	return claims, nil
}
