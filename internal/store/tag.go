// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"blogql/internal/apperr"
	"blogql/internal/models"
	"blogql/internal/slug"
)

// TagStore manages tags and per-post tag lookups.
type TagStore struct {
	db *sql.DB
}

// NewTagStore returns a new TagStore.
func NewTagStore(db *sql.DB) *TagStore {
	return &TagStore{db: db}
}

const tagColumns = `id, name, slug`

func scanTag(scanner interface{ Scan(...any) error }) (*models.Tag, error) {
	var t models.Tag
	if err := scanner.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns all tags ordered by name. Tags are public.
func (s *TagStore) List(ctx context.Context) ([]models.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+tagColumns+` FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	return collectTags(rows)
}

// FindByID retrieves a tag by id. Returns nil if not found.
func (s *TagStore) FindByID(ctx context.Context, id int32) (*models.Tag, error) {
	return s.findOne(ctx, `id = $1`, id)
}

// FindBySlug retrieves a tag by slug. Returns nil if not found.
func (s *TagStore) FindBySlug(ctx context.Context, slugStr string) (*models.Tag, error) {
	return s.findOne(ctx, `slug = $1`, slugStr)
}

func (s *TagStore) findOne(ctx context.Context, where string, arg any) (*models.Tag, error) {
	t, err := scanTag(s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE `+where, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find tag: %w", err)
	}
	return t, nil
}

// ListByPost returns a post's tags via the post_tags join table.
func (s *TagStore) ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Tag, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM tags
		INNER JOIN post_tags ON post_tags.tag_id = tags.id
		WHERE post_tags.post_id = $1
		ORDER BY tags.name ASC
	`, qualify(tagColumns, "tags")), postID)
	if err != nil {
		return nil, fmt.Errorf("list post tags: %w", err)
	}
	defer rows.Close()

	return collectTags(rows)
}

// Create inserts a tag. Any authenticated user may create tags; an empty
// slug is derived from the name.
func (s *TagStore) Create(ctx context.Context, ident *models.Identity, name, slugStr string) (*models.Tag, error) {
	if ident == nil {
		return nil, apperr.Unauthenticated("you must be logged in to create a tag")
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation(map[string]string{"name": "Name is required"})
	}
	if slugStr == "" {
		slugStr = slug.Generate(name)
	}

	t, err := scanTag(s.db.QueryRowContext(ctx,
		`INSERT INTO tags (name, slug) VALUES ($1, $2) RETURNING `+tagColumns,
		name, slugStr))
	if isUniqueViolation(err) {
		return nil, apperr.Conflict("tag slug already taken")
	}
	if err != nil {
		return nil, apperr.Internalf("create tag: %w", err)
	}
	return t, nil
}

// Delete removes a tag permanently along with its post associations.
// Admin only.
func (s *TagStore) Delete(ctx context.Context, ident *models.Identity, id int32) (*models.Tag, error) {
	if ident == nil {
		return nil, apperr.Unauthenticated("unauthorized access to delete tag")
	}
	if !ident.IsAdmin() {
		return nil, apperr.Forbidden("unauthorized access to delete tag")
	}

	var deleted *models.Tag
	err := inTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE tag_id = $1`, id); err != nil {
			return fmt.Errorf("purge tag associations: %w", err)
		}
		t, err := scanTag(tx.QueryRowContext(ctx,
			`DELETE FROM tags WHERE id = $1 RETURNING `+tagColumns, id))
		if err == sql.ErrNoRows {
			return apperr.NotFound("tag not found")
		}
		if err != nil {
			return fmt.Errorf("delete tag: %w", err)
		}
		deleted = t
		return nil
	})
	if err != nil {
		return nil, apperr.From(err)
	}
	return deleted, nil
}

func collectTags(rows *sql.Rows) ([]models.Tag, error) {
	var tags []models.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, *t)
	}
	return tags, rows.Err()
}
