// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package graph

import (
	"context"

	"blogql/internal/apperr"
	"blogql/internal/models"
)

// Tags lists all tags ordered by name.
func (r *Resolver) Tags(ctx context.Context) ([]*TagResolver, error) {
	tags, err := r.tags.List(ctx)
	if err != nil {
		return nil, resolveErr(err)
	}
	return r.wrapTags(tags), nil
}

// Tag looks up a single tag by id or slug.
func (r *Resolver) Tag(ctx context.Context, args struct {
	ID   *int32
	Slug *string
}) (*TagResolver, error) {
	var (
		t   *models.Tag
		err error
	)
	switch {
	case args.ID != nil:
		t, err = r.tags.FindByID(ctx, *args.ID)
	case args.Slug != nil:
		t, err = r.tags.FindBySlug(ctx, *args.Slug)
	default:
		return nil, apperr.Validation(map[string]string{"id": "An id or slug is required"})
	}
	if err != nil {
		return nil, resolveErr(err)
	}
	if t == nil {
		return nil, nil
	}
	return &TagResolver{r: r, t: *t}, nil
}

// CreateTag creates a tag. Any authenticated user may do so.
func (r *Resolver) CreateTag(ctx context.Context, args struct {
	Name string
	Slug *string
}) (*TagResolver, error) {
	var slugStr string
	if args.Slug != nil {
		slugStr = *args.Slug
	}
	t, err := r.tags.Create(ctx, identity(ctx), args.Name, slugStr)
	if err != nil {
		return nil, resolveErr(err)
	}
	return &TagResolver{r: r, t: *t}, nil
}

// DeleteTag removes a tag and detaches it from every post. Admin only.
func (r *Resolver) DeleteTag(ctx context.Context, args struct{ ID int32 }) (*TagResolver, error) {
	t, err := r.tags.Delete(ctx, identity(ctx), args.ID)
	if err != nil {
		return nil, resolveErr(err)
	}
	return &TagResolver{r: r, t: *t}, nil
}

func (r *Resolver) wrapTags(tags []models.Tag) []*TagResolver {
	resolvers := make([]*TagResolver, 0, len(tags))
	for _, t := range tags {
		resolvers = append(resolvers, &TagResolver{r: r, t: t})
	}
	return resolvers
}

// TagResolver resolves the fields of a single tag.
type TagResolver struct {
	r *Resolver
	t models.Tag
}

func (tr *TagResolver) ID() int32    { return tr.t.ID }
func (tr *TagResolver) Name() string { return tr.t.Name }
func (tr *TagResolver) Slug() string { return tr.t.Slug }

// Posts resolves the posts carrying this tag that the caller may see.
func (tr *TagResolver) Posts(ctx context.Context) ([]*PostResolver, error) {
	posts, err := tr.r.posts.ListByTag(ctx, identity(ctx), tr.t.ID)
	if err != nil {
		return nil, resolveErr(err)
	}
	return tr.r.wrapPosts(posts), nil
}
