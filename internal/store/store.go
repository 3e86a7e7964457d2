// Package store provides database access for all blog entities. Each store
// struct wraps a *sql.DB and exposes typed query methods. The stores are the
// only code path to the tables, so role-based visibility and ownership are
// enforced here and nowhere else.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"blogql/internal/models"
)

const defaultLimit = 10

// pageWindow normalizes caller-supplied pagination into safe limit/offset
// values. A nil or non-positive limit falls back to the default page size.
func pageWindow(limit, offset *int32) (int32, int32) {
	l := int32(defaultLimit)
	if limit != nil && *limit > 0 {
		l = *limit
	}
	var o int32
	if offset != nil && *offset > 0 {
		o = *offset
	}
	return l, o
}

// postVisibility builds the role-dependent read filter for posts:
// anonymous callers see only published, non-deleted posts; authenticated
// users additionally see their own posts and posts in categories they
// edit; admins are unrestricted (empty condition).
func postVisibility(ident *models.Identity) Cond {
	if ident == nil {
		return PostVisible()
	}
	if ident.IsAdmin() {
		return Cond{}
	}
	return Or(
		PostVisible(),
		Eq("author_id", ident.ID),
		PostInEditedCategory(ident.ID),
	)
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (duplicate slug, username, email, like, ...).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isForeignKeyViolation reports whether err is a Postgres foreign-key
// violation (a payload referencing a category, tag or user that is gone).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// inTx runs fn inside a transaction, rolling back on error or panic.
// Multi-table mutations (post + tags, soft delete + audit) go through here
// so a failure can't leave a half-applied write.
func inTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
