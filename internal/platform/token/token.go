// Package token signs and verifies the gateway's bearer tokens.
// Verification is purely local: signature and expiry against the shared
// secret, no backend calls.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const bearerPrefix = "Bearer "

var (
	// ErrMissingToken is returned when the Authorization header is absent
	// or does not carry a Bearer token.
	ErrMissingToken = errors.New("no bearer token provided")

	// ErrInvalidToken is returned for any token that fails verification:
	// bad signature, wrong secret, expired, or malformed.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the verified token payload: subject id plus the username
// embedded at issue time.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Generator issues signed bearer tokens.
type Generator struct {
	secret []byte
	ttl    time.Duration
}

// NewGenerator creates a Generator with the provided shared secret and token lifetime.
func NewGenerator(secret string, ttl time.Duration) *Generator {
	return &Generator{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed HS256 token for the given user.
func (g *Generator) Issue(userID, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
		Username: username,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verifier checks bearer tokens against the shared secret.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a Verifier for the provided shared secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Authorize extracts and verifies the token from a raw Authorization header
// value. It returns the embedded claims on success.
func (v *Verifier) Authorize(header string) (*Claims, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, ErrMissingToken
	}
	raw := strings.TrimPrefix(header, bearerPrefix)

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		// Only HMAC is acceptable; rejects alg=none and key confusion.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
