// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"blogql/internal/apperr"
	"blogql/internal/database"
	"blogql/internal/models"
	"blogql/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testService wires a Service against the test database, skipping when
// PostgreSQL is unreachable.
func testService(t *testing.T) (*Service, *sql.DB) {
	t.Helper()

	dsn := "postgres://" + envOr("PGUSER", "blogql") + ":" + envOr("PGPASSWORD", "changeme") +
		"@" + envOr("PGHOST", "localhost") + ":" + envOr("PGPORT", "5432") +
		"/" + envOr("PGDATABASE", "blogql") + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)
	t.Cleanup(func() { db.Close() })

	users := store.NewUserStore(db, NewArgon2Hasher())
	return NewService(users, NewJWTService("test-secret")), db
}

func TestServiceRegisterAndLogin(t *testing.T) {
	svc, db := testService(t)
	ctx := context.Background()

	email := "auth-reg@service-test.local"
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE email = $1", email) })

	token, err := svc.Register(ctx, store.CreateUserInput{
		Username: "auth-reg",
		Email:    email,
		Password: "Sup3rSecret!",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// The token identifies the new account with the default role.
	ident, err := svc.tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ident.Username != "auth-reg" || ident.Role != models.RoleUser {
		t.Errorf("token identity: got %+v", ident)
	}

	// Registering the same account again conflicts and issues nothing.
	if _, err := svc.Register(ctx, store.CreateUserInput{
		Username: "auth-reg",
		Email:    email,
		Password: "Sup3rSecret!",
	}); !apperr.IsCode(err, apperr.CodeConflict) {
		t.Fatalf("expected CONFLICT for duplicate register, got %v", err)
	}

	// Login with the right password succeeds.
	if _, err := svc.Login(ctx, email, "Sup3rSecret!"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	// A wrong password and an unknown email fail differently.
	if _, err := svc.Login(ctx, email, "WrongPassword1!"); !apperr.IsCode(err, apperr.CodeUnauthenticated) {
		t.Fatalf("expected UNAUTHENTICATED for wrong password, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@service-test.local", "Sup3rSecret!"); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND for unknown email, got %v", err)
	}
}

func TestIdentityOf(t *testing.T) {
	name := "Display Name"
	u := &models.User{Username: "gopher", Role: models.RoleEditor, Name: &name}
	ident := IdentityOf(u)
	if ident.Username != "gopher" || ident.Role != models.RoleEditor || ident.Name != name {
		t.Errorf("identity: got %+v", ident)
	}

	u.Name = nil
	if got := IdentityOf(u); got.Name != "" {
		t.Errorf("expected empty name for nameless user, got %q", got.Name)
	}
}
