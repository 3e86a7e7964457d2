// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

import (
	"context"

	"blogql/internal/apperr"
	"blogql/internal/models"
	"blogql/internal/store"
)

// Service handles signup and login, issuing session tokens on success.
type Service struct {
	users  *store.UserStore
	tokens TokenService
}

// NewService creates the authentication service.
func NewService(users *store.UserStore, tokens TokenService) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates a new account with the default role and returns a
// signed session token. Duplicate usernames or emails fail with Conflict
// and persist nothing.
func (s *Service) Register(ctx context.Context, in store.CreateUserInput) (string, error) {
	u, err := s.users.Insert(ctx, in)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Sign(IdentityOf(u))
	if err != nil {
		return "", apperr.Internalf("sign token: %w", err)
	}
	return token, nil
}

// Login verifies credentials by email and returns a signed session token.
// An unknown email and a wrong password fail differently, matching the
// API's historical behavior.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", apperr.From(err)
	}
	if u == nil {
		return "", apperr.NotFound("user does not exist")
	}

	if !s.users.CheckPassword(u, password) {
		return "", apperr.Unauthenticated("invalid password")
	}

	token, err := s.tokens.Sign(IdentityOf(u))
	if err != nil {
		return "", apperr.Internalf("sign token: %w", err)
	}
	return token, nil
}

// IdentityOf derives the token payload from a user record. The password
// hash never enters the token.
func IdentityOf(u *models.User) models.Identity {
	ident := models.Identity{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
	if u.Name != nil {
		ident.Name = *u.Name
	}
	return ident
}
