package database

import (
	"testing"
)

// fakeHasher keeps the seed test independent of the real key derivation.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func TestSeedIdempotent(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	var before int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&before); err != nil {
		t.Fatalf("count users: %v", err)
	}

	// Seed creates data only when the users table is empty, so calling it
	// twice must be safe. We don't clear the database first because other
	// test packages may be running concurrently against the same database.
	if err := Seed(db, fakeHasher{}); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db, fakeHasher{}); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	if before > 0 {
		// Seed skipped; nothing more to assert.
		return
	}

	var catCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories WHERE slug = 'uncategorized'").Scan(&catCount); err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if catCount < 1 {
		t.Errorf("expected the uncategorized category, got %d", catCount)
	}

	var admins int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE email = 'admin@blogql.local'").Scan(&admins); err != nil {
		t.Fatalf("count admin users: %v", err)
	}
	if admins != 1 {
		t.Errorf("expected exactly 1 seeded admin, got %d", admins)
	}
}
