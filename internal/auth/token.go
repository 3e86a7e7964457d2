// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"blogql/internal/models"
)

// DefaultTokenTTL is how long an issued session token stays valid.
const DefaultTokenTTL = 24 * time.Hour

// TokenService signs identities into opaque bearer tokens and decodes
// them back. The payload is exactly the identity shape — never the
// password hash.
type TokenService interface {
	Sign(ident models.Identity) (string, error)
	Verify(raw string) (*models.Identity, error)
}

// Claims is the JWT claim set for a session token. The user id travels
// in the registered subject claim.
type Claims struct {
	Name     string `json:"name,omitempty"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService implements TokenService with HMAC-SHA256 signatures.
type JWTService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService returns a JWTService signing with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret), ttl: DefaultTokenTTL}
}

// Sign issues a token carrying {id, name, username, role}.
func (s *JWTService) Sign(ident models.Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:     ident.Name,
		Username: ident.Username,
		Role:     string(ident.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ident.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify decodes and validates a token, returning the identity it
// carries. Expired or tampered tokens return an error.
func (s *JWTService) Verify(raw string) (*models.Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("parse token subject: %w", err)
	}

	return &models.Identity{
		ID:       id,
		Name:     claims.Name,
		Username: claims.Username,
		Role:     models.Role(claims.Role),
	}, nil
}
