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
)

// CommentStore handles all comment-related database operations, including
// the comment_likes join table.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

const commentColumns = `id, author_id, post_id, content, created_at, updated_at, deleted, deleted_at, deleted_by`

// scanComment scans a row into a Comment struct.
func scanComment(scanner interface{ Scan(...any) error }) (*models.Comment, error) {
	var c models.Comment
	err := scanner.Scan(
		&c.ID, &c.AuthorID, &c.PostID, &c.Content,
		&c.CreatedAt, &c.UpdatedAt, &c.Deleted, &c.DeletedAt, &c.DeletedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByPost returns a post's comments excluding soft-deleted ones,
// oldest first so threads read top to bottom.
func (s *CommentStore) ListByPost(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	return s.list(ctx, `post_id = $1 AND deleted = FALSE ORDER BY created_at ASC`, postID)
}

// ListByAuthor returns a user's comments excluding soft-deleted ones.
func (s *CommentStore) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Comment, error) {
	return s.list(ctx, `author_id = $1 AND deleted = FALSE ORDER BY created_at DESC`, authorID)
}

func (s *CommentStore) list(ctx context.Context, tail string, arg any) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE `+tail, arg)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

// FindByID retrieves a comment by id, excluding soft-deleted ones.
// Returns nil if not found.
func (s *CommentStore) FindByID(ctx context.Context, id int32) (*models.Comment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1 AND deleted = FALSE`, id)
	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return c, nil
}

// Create inserts a comment authored by the caller.
func (s *CommentStore) Create(ctx context.Context, ident *models.Identity, postID uuid.UUID, content string) (*models.Comment, error) {
	if ident == nil {
		return nil, apperr.Unauthenticated("you must be logged in to comment")
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation(map[string]string{"content": "Content is required"})
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO comments (author_id, post_id, content)
		VALUES ($1, $2, $3)
		RETURNING `+commentColumns,
		ident.ID, postID, content,
	)
	c, err := scanComment(row)
	if isForeignKeyViolation(err) {
		return nil, apperr.NotFound("post not found")
	}
	if err != nil {
		return nil, apperr.Internalf("create comment: %w", err)
	}
	return c, nil
}

// Update replaces the comment's content. Only the author or an admin may
// edit, and a soft-deleted comment can no longer be edited.
func (s *CommentStore) Update(ctx context.Context, ident *models.Identity, id int32, content string) (*models.Comment, error) {
	if ident == nil {
		return nil, apperr.Unauthenticated("you must be logged in to edit a comment")
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation(map[string]string{"content": "Content is required"})
	}

	owner, err := s.authorOf(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ident.CanModify(owner) {
		return nil, apperr.Forbidden("you are not authorized to edit this comment")
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE comments SET content = $1, updated_at = NOW()
		WHERE id = $2 AND deleted = FALSE
		RETURNING `+commentColumns,
		content, id,
	)
	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("comment not found")
	}
	if err != nil {
		return nil, apperr.Internalf("update comment: %w", err)
	}
	return c, nil
}

// Delete soft-deletes a comment, recording when and by whom for the
// audit trail. The row persists.
func (s *CommentStore) Delete(ctx context.Context, ident *models.Identity, id int32) (*models.Comment, error) {
	if ident == nil {
		return nil, apperr.Unauthenticated("you must be logged in to delete a comment")
	}

	owner, err := s.authorOf(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ident.CanModify(owner) {
		return nil, apperr.Forbidden("you are not authorized to delete this comment")
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE comments
		SET deleted = TRUE, deleted_at = NOW(), deleted_by = $1, updated_at = NOW()
		WHERE id = $2 AND deleted = FALSE
		RETURNING `+commentColumns,
		ident.ID, id,
	)
	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("comment not found")
	}
	if err != nil {
		return nil, apperr.Internalf("delete comment: %w", err)
	}
	return c, nil
}

// Like records that the caller likes a comment. Liking twice is a conflict.
func (s *CommentStore) Like(ctx context.Context, ident *models.Identity, id int32) error {
	if ident == nil {
		return apperr.Unauthenticated("you must be logged in to like a comment")
	}
	c, err := s.FindByID(ctx, id)
	if err != nil {
		return apperr.From(err)
	}
	if c == nil {
		return apperr.NotFound("comment not found")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO comment_likes (comment_id, user_id) VALUES ($1, $2)`, id, ident.ID)
	if isUniqueViolation(err) {
		return apperr.Conflict("comment already liked")
	}
	if err != nil {
		return apperr.Internalf("like comment: %w", err)
	}
	return nil
}

// Unlike removes the caller's like. Removing an absent like is a no-op.
func (s *CommentStore) Unlike(ctx context.Context, ident *models.Identity, id int32) error {
	if ident == nil {
		return apperr.Unauthenticated("you must be logged in to unlike a comment")
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM comment_likes WHERE comment_id = $1 AND user_id = $2`, id, ident.ID)
	if err != nil {
		return apperr.Internalf("unlike comment: %w", err)
	}
	return nil
}

// Likers returns the users who liked a comment.
func (s *CommentStore) Likers(ctx context.Context, id int32) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM users
		INNER JOIN comment_likes ON comment_likes.user_id = users.id
		WHERE comment_likes.comment_id = $1
	`, qualify(userColumns, "users")), id)
	if err != nil {
		return nil, fmt.Errorf("list comment likers: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

func (s *CommentStore) authorOf(ctx context.Context, id int32) (*uuid.UUID, error) {
	var owner *uuid.UUID
	err := s.db.QueryRowContext(ctx, `SELECT author_id FROM comments WHERE id = $1`, id).Scan(&owner)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("comment not found")
	}
	if err != nil {
		return nil, apperr.Internalf("load comment author: %w", err)
	}
	return owner, nil
}
