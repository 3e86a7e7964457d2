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

// PostStore handles all post-related database operations, including the
// post_tags and post_likes join tables.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, img_url, slug, content, author_id, category_id, created_at, updated_at, published, deleted`

// scanPost scans a row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.ImgURL, &p.Slug, &p.Content,
		&p.AuthorID, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt,
		&p.Published, &p.Deleted,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns posts visible to the caller, newest first. Anonymous
// callers see published posts only; authenticated users additionally see
// their own drafts and posts in categories they edit; admins see all.
func (s *PostStore) List(ctx context.Context, ident *models.Identity, limit, offset *int32) ([]models.Post, error) {
	where, args := postVisibility(ident).SQL(1)
	l, o := pageWindow(limit, offset)
	query := fmt.Sprintf(
		`SELECT %s FROM posts WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		postColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, l, o)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

// FindByID retrieves a post by id under the caller's visibility policy.
// Returns nil when the post is absent or invisible — an invisible post is
// indistinguishable from a missing one.
func (s *PostStore) FindByID(ctx context.Context, ident *models.Identity, id uuid.UUID) (*models.Post, error) {
	return s.findOne(ctx, ident, Eq("id", id))
}

// FindBySlug retrieves a post by slug under the caller's visibility policy.
func (s *PostStore) FindBySlug(ctx context.Context, ident *models.Identity, slugStr string) (*models.Post, error) {
	return s.findOne(ctx, ident, Eq("slug", slugStr))
}

func (s *PostStore) findOne(ctx context.Context, ident *models.Identity, match Cond) (*models.Post, error) {
	where, args := And(match, postVisibility(ident)).SQL(1)
	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT %s FROM posts WHERE %s`, postColumns, where), args...)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	return p, nil
}

// ListByAuthor returns the author's posts visible to the caller.
func (s *PostStore) ListByAuthor(ctx context.Context, ident *models.Identity, authorID uuid.UUID) ([]models.Post, error) {
	return s.listWhere(ctx, ident, Eq("author_id", authorID))
}

// ListByCategory returns the category's posts visible to the caller.
func (s *PostStore) ListByCategory(ctx context.Context, ident *models.Identity, categoryID int32) ([]models.Post, error) {
	return s.listWhere(ctx, ident, Eq("category_id", categoryID))
}

func (s *PostStore) listWhere(ctx context.Context, ident *models.Identity, match Cond) ([]models.Post, error) {
	where, args := And(match, postVisibility(ident)).SQL(1)
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT %s FROM posts WHERE %s ORDER BY created_at DESC`, postColumns, where), args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

// ListByTag returns the tag's posts visible to the caller.
func (s *PostStore) ListByTag(ctx context.Context, ident *models.Identity, tagID int32) ([]models.Post, error) {
	where, args := postVisibility(ident).SQL(2)
	query := fmt.Sprintf(`
		SELECT %s FROM posts
		INNER JOIN post_tags ON post_tags.post_id = posts.id
		WHERE post_tags.tag_id = $1 AND %s
		ORDER BY created_at DESC
	`, qualify(postColumns, "posts"), where)

	rows, err := s.db.QueryContext(ctx, query, append([]any{tagID}, args...)...)
	if err != nil {
		return nil, fmt.Errorf("list posts by tag: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

// Create inserts a new post plus its tag rows in one transaction. The
// author is stamped from the caller's identity and the slug is derived
// from the title.
func (s *PostStore) Create(ctx context.Context, ident *models.Identity, in CreatePostInput) (*models.Post, error) {
	if ident == nil {
		return nil, apperr.Unauthenticated("you must be logged in to create a post")
	}
	if fields := in.Validate(); len(fields) > 0 {
		return nil, apperr.Validation(fields)
	}

	published := true
	if in.Published != nil {
		published = *in.Published
	}

	var created *models.Post
	err := inTx(ctx, s.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			INSERT INTO posts (title, img_url, slug, content, author_id, category_id, published)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+postColumns,
			in.Title, in.ImgURL, slug.Generate(in.Title), in.Content,
			ident.ID, in.CategoryID, published,
		)
		p, err := scanPost(row)
		if err != nil {
			return fmt.Errorf("create post: %w", err)
		}
		if err := insertPostTags(ctx, tx, p.ID, in.Tags); err != nil {
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, translateWriteErr(err, "post slug already taken")
	}
	return created, nil
}

// Update applies a partial post update. Only admins may touch posts they
// don't own or reassign the author; a supplied title regenerates the slug;
// a non-nil tag list replaces the post's tags wholesale.
func (s *PostStore) Update(ctx context.Context, ident *models.Identity, in UpdatePostInput) (*models.Post, error) {
	if ident == nil {
		return nil, apperr.Unauthenticated("you must be logged in to update a post")
	}
	if fields := in.Validate(); len(fields) > 0 {
		return nil, apperr.Validation(fields)
	}

	owner, err := s.authorOf(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if !ident.CanModify(owner) {
		return nil, apperr.Forbidden("you are not authorized to update this post")
	}
	if in.AuthorID != nil && !ident.IsAdmin() {
		return nil, apperr.Forbidden("only admins may reassign the post author")
	}

	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if in.Title != nil {
		set("title", *in.Title)
		set("slug", slug.Generate(*in.Title))
	}
	if in.ImgURL != nil {
		set("img_url", *in.ImgURL)
	}
	if in.Content != nil {
		set("content", *in.Content)
	}
	if in.CategoryID != nil {
		set("category_id", *in.CategoryID)
	}
	if in.AuthorID != nil {
		set("author_id", *in.AuthorID)
	}
	if in.Published != nil {
		set("published", *in.Published)
	}
	if in.Deleted != nil {
		set("deleted", *in.Deleted)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, in.ID)

	query := fmt.Sprintf(`UPDATE posts SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), postColumns)

	var updated *models.Post
	err = inTx(ctx, s.db, func(tx *sql.Tx) error {
		p, err := scanPost(tx.QueryRowContext(ctx, query, args...))
		if err != nil {
			return fmt.Errorf("update post: %w", err)
		}
		if in.Tags != nil {
			if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, in.ID); err != nil {
				return fmt.Errorf("clear post tags: %w", err)
			}
			if err := insertPostTags(ctx, tx, in.ID, in.Tags); err != nil {
				return err
			}
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, translateWriteErr(err, "post slug already taken")
	}
	return updated, nil
}

// Delete soft-deletes a post and purges its tag rows in one transaction.
// The row persists so existing comments keep their parent.
func (s *PostStore) Delete(ctx context.Context, ident *models.Identity, id uuid.UUID) (*models.Post, error) {
	if ident == nil {
		return nil, apperr.Unauthenticated("you must be logged in to delete a post")
	}

	owner, err := s.authorOf(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ident.CanModify(owner) {
		return nil, apperr.Forbidden("you are not authorized to delete this post")
	}

	var deleted *models.Post
	err = inTx(ctx, s.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			UPDATE posts SET deleted = TRUE, updated_at = NOW()
			WHERE id = $1
			RETURNING `+postColumns, id)
		p, err := scanPost(row)
		if err != nil {
			return fmt.Errorf("delete post: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, id); err != nil {
			return fmt.Errorf("purge post tags: %w", err)
		}
		deleted = p
		return nil
	})
	if err != nil {
		return nil, apperr.From(err)
	}
	return deleted, nil
}

// Like records that the caller likes a post. The post must be visible to
// the caller; liking twice is a conflict.
func (s *PostStore) Like(ctx context.Context, ident *models.Identity, postID uuid.UUID) error {
	if ident == nil {
		return apperr.Unauthenticated("you must be logged in to like a post")
	}
	p, err := s.FindByID(ctx, ident, postID)
	if err != nil {
		return apperr.From(err)
	}
	if p == nil {
		return apperr.NotFound("post not found")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`, postID, ident.ID)
	if isUniqueViolation(err) {
		return apperr.Conflict("post already liked")
	}
	if err != nil {
		return apperr.Internalf("like post: %w", err)
	}
	return nil
}

// Unlike removes the caller's like. Removing an absent like is a no-op.
func (s *PostStore) Unlike(ctx context.Context, ident *models.Identity, postID uuid.UUID) error {
	if ident == nil {
		return apperr.Unauthenticated("you must be logged in to unlike a post")
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, ident.ID)
	if err != nil {
		return apperr.Internalf("unlike post: %w", err)
	}
	return nil
}

// Likers returns the users who liked a post.
func (s *PostStore) Likers(ctx context.Context, postID uuid.UUID) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM users
		INNER JOIN post_likes ON post_likes.user_id = users.id
		WHERE post_likes.post_id = $1
	`, qualify(userColumns, "users")), postID)
	if err != nil {
		return nil, fmt.Errorf("list post likers: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// authorOf loads the owner column for the ownership check. A missing row
// is NotFound here because update/delete are error paths, not lookups.
func (s *PostStore) authorOf(ctx context.Context, id uuid.UUID) (*uuid.UUID, error) {
	var owner *uuid.UUID
	err := s.db.QueryRowContext(ctx, `SELECT author_id FROM posts WHERE id = $1`, id).Scan(&owner)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("post not found")
	}
	if err != nil {
		return nil, apperr.Internalf("load post author: %w", err)
	}
	return owner, nil
}

func insertPostTags(ctx context.Context, tx *sql.Tx, postID uuid.UUID, tags []int32) error {
	for _, tagID := range tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`, postID, tagID); err != nil {
			return fmt.Errorf("insert post tag %d: %w", tagID, err)
		}
	}
	return nil
}

func collectPosts(rows *sql.Rows) ([]models.Post, error) {
	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// translateWriteErr maps driver-level constraint failures on insert/update
// paths to typed failures: unique violations become Conflict, broken
// category/tag references become NotFound, anything else is Internal.
func translateWriteErr(err error, conflictMsg string) error {
	if isUniqueViolation(err) {
		return apperr.Conflict(conflictMsg)
	}
	if isForeignKeyViolation(err) {
		return apperr.NotFound("referenced category or tag does not exist")
	}
	return apperr.From(err)
}

// qualify prefixes each column in a comma-separated list with a table
// name, for queries that join and would otherwise be ambiguous.
func qualify(columns, table string) string {
	cols := strings.Split(columns, ", ")
	for i, c := range cols {
		cols[i] = table + "." + c
	}
	return strings.Join(cols, ", ")
}
