// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"blogql/internal/apperr"
	"blogql/internal/models"
)

// Categories lists all categories ordered by name.
func (r *Resolver) Categories(ctx context.Context) ([]*CategoryResolver, error) {
	categories, err := r.categories.List(ctx)
	if err != nil {
		return nil, resolveErr(err)
	}
	return r.wrapCategories(categories), nil
}

// Category looks up a single category by id or slug.
func (r *Resolver) Category(ctx context.Context, args struct {
	ID   *int32
	Slug *string
}) (*CategoryResolver, error) {
	var (
		c   *models.Category
		err error
	)
	switch {
	case args.ID != nil:
		c, err = r.categories.FindByID(ctx, *args.ID)
	case args.Slug != nil:
		c, err = r.categories.FindBySlug(ctx, *args.Slug)
	default:
		return nil, apperr.Validation(map[string]string{"id": "An id or slug is required"})
	}
	if err != nil {
		return nil, resolveErr(err)
	}
	if c == nil {
		return nil, nil
	}
	return &CategoryResolver{r: r, c: *c}, nil
}

// CreateCategory creates a category. Admin only.
func (r *Resolver) CreateCategory(ctx context.Context, args struct {
	Name string
	Slug *string
}) (*CategoryResolver, error) {
	var slugStr string
	if args.Slug != nil {
		slugStr = *args.Slug
	}
	c, err := r.categories.Create(ctx, identity(ctx), args.Name, slugStr)
	if err != nil {
		return nil, resolveErr(err)
	}
	return &CategoryResolver{r: r, c: *c}, nil
}

// UpdateCategory renames a category. Admin only.
func (r *Resolver) UpdateCategory(ctx context.Context, args struct {
	ID   int32
	Name *string
	Slug *string
}) (*CategoryResolver, error) {
	c, err := r.categories.Update(ctx, identity(ctx), args.ID, args.Name, args.Slug)
	if err != nil {
		return nil, resolveErr(err)
	}
	return &CategoryResolver{r: r, c: *c}, nil
}

// DeleteCategory removes a category and returns its last state. Posts
// filed under it fall back to no category. Admin only.
func (r *Resolver) DeleteCategory(ctx context.Context, args struct{ ID int32 }) (*CategoryResolver, error) {
	c, err := r.categories.Delete(ctx, identity(ctx), args.ID)
	if err != nil {
		return nil, resolveErr(err)
	}
	return &CategoryResolver{r: r, c: *c}, nil
}

// AddCategoryEditor grants a user editor access to a category. Admin only.
func (r *Resolver) AddCategoryEditor(ctx context.Context, args struct {
	CategoryID int32
	UserID     graphql.ID
}) (*CategoryResolver, error) {
	userID, err := parseUUID(args.UserID, "user_id")
	if err != nil {
		return nil, err
	}
	if err := r.categories.AddEditor(ctx, identity(ctx), args.CategoryID, userID); err != nil {
		return nil, resolveErr(err)
	}
	return r.categoryByID(ctx, args.CategoryID)
}

// RemoveCategoryEditor revokes a user's editor access. Admin only.
func (r *Resolver) RemoveCategoryEditor(ctx context.Context, args struct {
	CategoryID int32
	UserID     graphql.ID
}) (*CategoryResolver, error) {
	userID, err := parseUUID(args.UserID, "user_id")
	if err != nil {
		return nil, err
	}
	if err := r.categories.RemoveEditor(ctx, identity(ctx), args.CategoryID, userID); err != nil {
		return nil, resolveErr(err)
	}
	return r.categoryByID(ctx, args.CategoryID)
}

func (r *Resolver) categoryByID(ctx context.Context, id int32) (*CategoryResolver, error) {
	c, err := r.categories.FindByID(ctx, id)
	if err != nil {
		return nil, resolveErr(err)
	}
	if c == nil {
		return nil, apperr.NotFound("category not found")
	}
	return &CategoryResolver{r: r, c: *c}, nil
}

func (r *Resolver) wrapCategories(categories []models.Category) []*CategoryResolver {
	resolvers := make([]*CategoryResolver, 0, len(categories))
	for _, c := range categories {
		resolvers = append(resolvers, &CategoryResolver{r: r, c: c})
	}
	return resolvers
}

// CategoryResolver resolves the fields of a single category.
type CategoryResolver struct {
	r *Resolver
	c models.Category
}

func (cr *CategoryResolver) ID() int32    { return cr.c.ID }
func (cr *CategoryResolver) Name() string { return cr.c.Name }
func (cr *CategoryResolver) Slug() string { return cr.c.Slug }
func (cr *CategoryResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: cr.c.CreatedAt}
}
func (cr *CategoryResolver) UpdatedAt() graphql.Time {
	return graphql.Time{Time: cr.c.UpdatedAt}
}

// Posts resolves the posts in this category that the caller may see.
func (cr *CategoryResolver) Posts(ctx context.Context) ([]*PostResolver, error) {
	posts, err := cr.r.posts.ListByCategory(ctx, identity(ctx), cr.c.ID)
	if err != nil {
		return nil, resolveErr(err)
	}
	return cr.r.wrapPosts(posts), nil
}

// Editors resolves the users with editor access to this category.
func (cr *CategoryResolver) Editors(ctx context.Context) ([]*UserResolver, error) {
	users, err := cr.r.categories.Editors(ctx, cr.c.ID)
	if err != nil {
		return nil, resolveErr(err)
	}
	return cr.r.wrapUsers(users), nil
}
