package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/projecthub/projecthub-backend/internal/auth/domain"
)

// TokenIssuer issues and verifies the signed access tokens used as
// bearer credentials. Tokens are HS256 with a fixed lifetime from
// issuance; a token is invalid strictly after its expiry instant.
type TokenIssuer struct {
	secret   []byte
	lifetime time.Duration
}

type accessClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// NewTokenIssuer creates a token issuer with the given signing secret
// and token lifetime.
func NewTokenIssuer(secret string, lifetime time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), lifetime: lifetime}
}

// Issue binds the identity claims into a signed, time-limited token.
func (t *TokenIssuer) Issue(claims domain.Claims) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.lifetime)),
		},
		Role: claims.Role,
	})
	return token.SignedString(t.secret)
}

// Verify parses and validates a token string and returns the embedded
// identity claims. Any parse, signature, or expiry failure maps to
// domain.ErrInvalidCredential.
func (t *TokenIssuer) Verify(tokenString string) (domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return domain.Claims{}, domain.ErrInvalidCredential
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return domain.Claims{}, domain.ErrInvalidCredential
	}
	if claims.Subject == "" {
		return domain.Claims{}, domain.ErrInvalidCredential
	}

	return domain.Claims{Email: claims.Subject, Role: claims.Role}, nil
}

// Lifetime returns the configured token lifetime.
func (t *TokenIssuer) Lifetime() time.Duration {
	return t.lifetime
}
