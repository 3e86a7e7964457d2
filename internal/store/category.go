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

// CategoryStore manages categories and the category_editors join table
// that grants users editor rights over a category.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by name. Categories are public.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	return collectCategories(rows)
}

// FindByID retrieves a category by id. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id int32) (*models.Category, error) {
	return s.findOne(ctx, `id = $1`, id)
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(ctx context.Context, slugStr string) (*models.Category, error) {
	return s.findOne(ctx, `slug = $1`, slugStr)
}

func (s *CategoryStore) findOne(ctx context.Context, where string, arg any) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE `+where, arg)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return c, nil
}

// Create inserts a category. Admin only. An empty slug is derived from
// the name.
func (s *CategoryStore) Create(ctx context.Context, ident *models.Identity, name, slugStr string) (*models.Category, error) {
	if ident == nil {
		return nil, apperr.Unauthenticated("unauthorized access to create category")
	}
	if !ident.IsAdmin() {
		return nil, apperr.Forbidden("unauthorized access to create category")
	}
	if strings.TrimSpace(name) == "" {
		return nil, apperr.Validation(map[string]string{"name": "Name is required"})
	}
	if slugStr == "" {
		slugStr = slug.Generate(name)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, slug) VALUES ($1, $2)
		RETURNING `+categoryColumns,
		name, slugStr,
	)
	c, err := scanCategory(row)
	if isUniqueViolation(err) {
		return nil, apperr.Conflict("category slug already taken")
	}
	if err != nil {
		return nil, apperr.Internalf("create category: %w", err)
	}
	return c, nil
}

// Update modifies a category's name and/or slug. Admin only. Changing the
// name without supplying a slug regenerates it.
func (s *CategoryStore) Update(ctx context.Context, ident *models.Identity, id int32, name, slugStr *string) (*models.Category, error) {
	if ident == nil {
		return nil, apperr.Unauthenticated("unauthorized access to update category")
	}
	if !ident.IsAdmin() {
		return nil, apperr.Forbidden("unauthorized access to update category")
	}

	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return nil, apperr.Validation(map[string]string{"name": "Name is required"})
		}
		set("name", *name)
		if slugStr == nil {
			derived := slug.Generate(*name)
			slugStr = &derived
		}
	}
	if slugStr != nil {
		set("slug", *slugStr)
	}
	if len(sets) == 0 {
		return nil, apperr.Validation(map[string]string{"name": "Nothing to update"})
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE categories SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), categoryColumns)

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("category not found")
	}
	if isUniqueViolation(err) {
		return nil, apperr.Conflict("category slug already taken")
	}
	if err != nil {
		return nil, apperr.Internalf("update category: %w", err)
	}
	return c, nil
}

// Delete removes a category permanently. Admin only. Posts in the
// category fall back to NULL (ON DELETE SET NULL) and editor grants
// cascade away.
func (s *CategoryStore) Delete(ctx context.Context, ident *models.Identity, id int32) (*models.Category, error) {
	if ident == nil {
		return nil, apperr.Unauthenticated("unauthorized access to delete category")
	}
	if !ident.IsAdmin() {
		return nil, apperr.Forbidden("unauthorized access to delete category")
	}

	row := s.db.QueryRowContext(ctx,
		`DELETE FROM categories WHERE id = $1 RETURNING `+categoryColumns, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("category not found")
	}
	if err != nil {
		return nil, apperr.Internalf("delete category: %w", err)
	}
	return c, nil
}

// AddEditor grants a user editor rights over a category. Admin only.
func (s *CategoryStore) AddEditor(ctx context.Context, ident *models.Identity, categoryID int32, userID uuid.UUID) error {
	if ident == nil {
		return apperr.Unauthenticated("unauthorized access to grant editorship")
	}
	if !ident.IsAdmin() {
		return apperr.Forbidden("unauthorized access to grant editorship")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO category_editors (editor_id, category_id) VALUES ($1, $2)`,
		userID, categoryID)
	if isUniqueViolation(err) {
		return apperr.Conflict("user is already an editor of this category")
	}
	if isForeignKeyViolation(err) {
		return apperr.NotFound("category or user not found")
	}
	if err != nil {
		return apperr.Internalf("add category editor: %w", err)
	}
	return nil
}

// RemoveEditor revokes a user's editor rights over a category. Admin only.
// Revoking an absent grant is a no-op.
func (s *CategoryStore) RemoveEditor(ctx context.Context, ident *models.Identity, categoryID int32, userID uuid.UUID) error {
	if ident == nil {
		return apperr.Unauthenticated("unauthorized access to revoke editorship")
	}
	if !ident.IsAdmin() {
		return apperr.Forbidden("unauthorized access to revoke editorship")
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM category_editors WHERE editor_id = $1 AND category_id = $2`,
		userID, categoryID)
	if err != nil {
		return apperr.Internalf("remove category editor: %w", err)
	}
	return nil
}

// Editors returns the users holding editor rights over a category.
func (s *CategoryStore) Editors(ctx context.Context, categoryID int32) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM users
		INNER JOIN category_editors ON category_editors.editor_id = users.id
		WHERE category_editors.category_id = $1
	`, qualify(userColumns, "users")), categoryID)
	if err != nil {
		return nil, fmt.Errorf("list category editors: %w", err)
	}
	defer rows.Close()

	return collectUsers(rows)
}

// EditorOn returns the categories a user holds editor rights over.
func (s *CategoryStore) EditorOn(ctx context.Context, userID uuid.UUID) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s FROM categories
		INNER JOIN category_editors ON category_editors.category_id = categories.id
		WHERE category_editors.editor_id = $1
	`, qualify(categoryColumns, "categories")), userID)
	if err != nil {
		return nil, fmt.Errorf("list edited categories: %w", err)
	}
	defer rows.Close()

	return collectCategories(rows)
}

func collectCategories(rows *sql.Rows) ([]models.Category, error) {
	var categories []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}
