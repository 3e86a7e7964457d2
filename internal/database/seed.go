// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// hasher is the subset of the password hasher Seed needs.
type hasher interface {
	Hash(password string) (string, error)
}

// Seed populates the database with initial development data. It creates
// the fallback "Uncategorized" category and a default admin user if no
// users exist yet.
func Seed(db *sql.DB, h hasher) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	_, err := db.Exec(`
		INSERT INTO categories (name, slug)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, "Uncategorized", "uncategorized")
	if err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	hash, err := h.Hash("Admin123!")
	if err != nil {
		return fmt.Errorf("seed hash password: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (username, email, password_hash, name, role)
		VALUES ($1, $2, $3, $4, $5)
	`, "admin", "admin@blogql.local", hash, "Admin", "admin")
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@blogql.local",
		"password", "Admin123!",
	)

	return nil
}
