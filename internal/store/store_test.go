// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"blogql/internal/database"
	"blogql/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("PGHOST", "localhost")
	port := envOr("PGPORT", "5432")
	user := envOr("PGUSER", "blogql")
	pass := envOr("PGPASSWORD", "changeme")
	name := envOr("PGDATABASE", "blogql")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// plainHasher avoids the cost of real key derivation in store tests.
// The auth package covers the production hasher.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "plain:" + password, nil }
func (plainHasher) Verify(hash, password string) bool    { return hash == "plain:"+password }

// seedUser inserts a user row directly and returns it. Call cleanUsers
// for the email in t.Cleanup().
func seedUser(t *testing.T, db *sql.DB, username, email string, role models.Role) *models.User {
	t.Helper()

	u := &models.User{Username: username, Email: email, Role: role}
	err := db.QueryRow(`
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, username, email, "plain:secret", string(role)).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

// seedCategory inserts a category row and returns its id. Call
// cleanCategories for the slug in t.Cleanup().
func seedCategory(t *testing.T, db *sql.DB, name, slug string) int32 {
	t.Helper()

	var id int32
	err := db.QueryRow(`
		INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id
	`, name, slug).Scan(&id)
	if err != nil {
		t.Fatalf("seed category %s: %v", slug, err)
	}
	return id
}

// identityFor builds the request identity a store call would see for
// this user.
func identityFor(u *models.User) *models.Identity {
	return &models.Identity{ID: u.ID, Username: u.Username, Role: u.Role}
}

// seedPost creates a post through the store on behalf of its author.
// Content padding keeps it above the validation minimum.
func seedPost(t *testing.T, db *sql.DB, author *models.User, title string, categoryID int32, published bool) *models.Post {
	t.Helper()

	s := NewPostStore(db)
	p, err := s.Create(context.Background(), identityFor(author), CreatePostInput{
		Title:      title,
		Content:    testContent,
		CategoryID: categoryID,
		Published:  &published,
	})
	if err != nil {
		t.Fatalf("seed post %q: %v", title, err)
	}
	return p
}

// testContent satisfies the minimum content length.
const testContent = "This body of text exists purely to pass the minimum length " +
	"check on post content, which insists on at least one hundred characters " +
	"before a post may be stored."

// cleanUsers removes test users by email. Call in t.Cleanup().
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM users WHERE email = $1", email)
	}
}

// cleanPosts removes test posts by slug. Call in t.Cleanup().
func cleanPosts(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM posts WHERE slug = $1", slug)
	}
}

// cleanCategories removes test categories by slug. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM categories WHERE slug = $1", slug)
	}
}

// cleanTags removes test tags by slug. Call in t.Cleanup().
func cleanTags(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM post_tags WHERE tag_id IN (SELECT id FROM tags WHERE slug = $1)", slug)
		db.Exec("DELETE FROM tags WHERE slug = $1", slug)
	}
}

// cleanComments removes comments left on a post. Call in t.Cleanup()
// before the post itself is removed.
func cleanComments(t *testing.T, db *sql.DB, postID uuid.UUID) {
	t.Helper()
	db.Exec("DELETE FROM comments WHERE post_id = $1", postID)
}
