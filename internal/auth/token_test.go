// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"blogql/internal/models"
)

func TestJWTServiceRoundTrip(t *testing.T) {
	s := NewJWTService("test-secret")

	ident := models.Identity{
		ID:       uuid.New(),
		Name:     "Test User",
		Username: "testuser",
		Role:     models.RoleEditor,
	}

	raw, err := s.Sign(ident)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	got, err := s.Verify(raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.ID != ident.ID {
		t.Errorf("id: got %s, want %s", got.ID, ident.ID)
	}
	if got.Username != ident.Username {
		t.Errorf("username: got %q, want %q", got.Username, ident.Username)
	}
	if got.Role != models.RoleEditor {
		t.Errorf("role: got %q, want %q", got.Role, models.RoleEditor)
	}
}

func TestJWTServiceRejectsWrongSecret(t *testing.T) {
	raw, err := NewJWTService("secret-a").Sign(models.Identity{ID: uuid.New()})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if _, err := NewJWTService("secret-b").Verify(raw); err == nil {
		t.Error("expected verification under a different secret to fail")
	}
}

func TestJWTServiceRejectsTampering(t *testing.T) {
	s := NewJWTService("test-secret")
	raw, err := s.Sign(models.Identity{ID: uuid.New()})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	tampered := raw[:len(raw)-2] + "xx"
	if _, err := s.Verify(tampered); err == nil {
		t.Error("expected a tampered token to fail")
	}

	if _, err := s.Verify("not.a.token"); err == nil {
		t.Error("expected garbage to fail")
	}
}

func TestJWTServiceRejectsExpired(t *testing.T) {
	s := NewJWTService("test-secret")
	s.ttl = -time.Minute

	raw, err := s.Sign(models.Identity{ID: uuid.New()})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if _, err := s.Verify(raw); err == nil {
		t.Error("expected an expired token to fail")
	}
}
