// Package jwtauth adapts the identity collaborator's bearer tokens to the
// opaque principals the core needs. The core itself never inspects tokens;
// it only sees the principal carried in the request context.
package jwtauth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	id "courze/pkg/domain"
)

// Service verifies (and, for development tooling, issues) principal tokens.
type Service struct {
	signingKey []byte
	issuer     string
}

// New constructs a token service for the given HMAC signing key.
func New(signingKey string) *Service {
	return &Service{signingKey: []byte(signingKey), issuer: "courze"}
}

// Issue creates a bearer token for a principal. Used by development tooling
// and tests; production tokens come from the identity provider that shares
// the signing key.
func (s *Service) Issue(userID id.UserID, expiresIn time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a bearer token and returns the principal it names.
func (s *Service) Verify(tokenString string) (id.UserID, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	return id.ParseUserID(claims.Subject)
}
