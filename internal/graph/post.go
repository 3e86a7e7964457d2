// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/google/uuid"

	"blogql/internal/apperr"
	"blogql/internal/models"
	"blogql/internal/store"
)

// createPostInput mirrors the CreatePostInput wire shape.
type createPostInput struct {
	Title      string
	ImgURL     *string
	Content    string
	CategoryID int32
	Tags       *[]int32
	Published  *bool
}

// updatePostInput mirrors the UpdatePostInput wire shape.
type updatePostInput struct {
	ID         graphql.ID
	Title      *string
	ImgURL     *string
	Content    *string
	CategoryID *int32
	AuthorID   *graphql.ID
	Tags       *[]int32
	Published  *bool
	Deleted    *bool
}

// Posts returns the posts visible to the caller, newest first.
func (r *Resolver) Posts(ctx context.Context, args struct{ Limit, Offset *int32 }) ([]*PostResolver, error) {
	posts, err := r.posts.List(ctx, identity(ctx), args.Limit, args.Offset)
	if err != nil {
		return nil, resolveErr(err)
	}
	return r.wrapPosts(posts), nil
}

// Post looks up a single post by id or slug. An invisible or missing
// post resolves to null either way.
func (r *Resolver) Post(ctx context.Context, args struct {
	ID   *graphql.ID
	Slug *string
}) (*PostResolver, error) {
	var (
		p   *models.Post
		err error
	)
	switch {
	case args.Slug != nil:
		p, err = r.posts.FindBySlug(ctx, identity(ctx), *args.Slug)
	case args.ID != nil:
		id, uerr := parseUUID(*args.ID, "id")
		if uerr != nil {
			return nil, uerr
		}
		p, err = r.posts.FindByID(ctx, identity(ctx), id)
	default:
		return nil, apperr.Validation(map[string]string{"id": "An id or slug is required"})
	}
	if err != nil {
		return nil, resolveErr(err)
	}
	if p == nil {
		return nil, nil
	}
	return &PostResolver{r: r, p: *p}, nil
}

// CreatePost creates a post authored by the caller.
func (r *Resolver) CreatePost(ctx context.Context, args struct{ Input createPostInput }) (*PostResolver, error) {
	in := store.CreatePostInput{
		Title:      args.Input.Title,
		ImgURL:     args.Input.ImgURL,
		Content:    args.Input.Content,
		CategoryID: args.Input.CategoryID,
		Published:  args.Input.Published,
	}
	if args.Input.Tags != nil {
		in.Tags = *args.Input.Tags
	}

	p, err := r.posts.Create(ctx, identity(ctx), in)
	if err != nil {
		return nil, resolveErr(err)
	}
	return &PostResolver{r: r, p: *p}, nil
}

// UpdatePost partially updates a post the caller owns (or any post, for
// admins).
func (r *Resolver) UpdatePost(ctx context.Context, args struct{ Input updatePostInput }) (*PostResolver, error) {
	id, err := parseUUID(args.Input.ID, "id")
	if err != nil {
		return nil, err
	}
	in := store.UpdatePostInput{
		ID:         id,
		Title:      args.Input.Title,
		ImgURL:     args.Input.ImgURL,
		Content:    args.Input.Content,
		CategoryID: args.Input.CategoryID,
		Published:  args.Input.Published,
		Deleted:    args.Input.Deleted,
	}
	if args.Input.AuthorID != nil {
		author, err := parseUUID(*args.Input.AuthorID, "author_id")
		if err != nil {
			return nil, err
		}
		in.AuthorID = &author
	}
	if args.Input.Tags != nil {
		in.Tags = *args.Input.Tags
		if in.Tags == nil {
			in.Tags = []int32{}
		}
	}

	p, err := r.posts.Update(ctx, identity(ctx), in)
	if err != nil {
		return nil, resolveErr(err)
	}
	return &PostResolver{r: r, p: *p}, nil
}

// DeletePost soft-deletes a post and returns its final state.
func (r *Resolver) DeletePost(ctx context.Context, args struct{ ID graphql.ID }) (*PostResolver, error) {
	id, err := parseUUID(args.ID, "id")
	if err != nil {
		return nil, err
	}
	p, err := r.posts.Delete(ctx, identity(ctx), id)
	if err != nil {
		return nil, resolveErr(err)
	}
	return &PostResolver{r: r, p: *p}, nil
}

// LikePost records the caller's like and returns the post.
func (r *Resolver) LikePost(ctx context.Context, args struct{ ID graphql.ID }) (*PostResolver, error) {
	return r.postLike(ctx, args.ID, r.posts.Like)
}

// UnlikePost removes the caller's like and returns the post.
func (r *Resolver) UnlikePost(ctx context.Context, args struct{ ID graphql.ID }) (*PostResolver, error) {
	return r.postLike(ctx, args.ID, r.posts.Unlike)
}

func (r *Resolver) postLike(ctx context.Context, rawID graphql.ID, op func(context.Context, *models.Identity, uuid.UUID) error) (*PostResolver, error) {
	id, err := parseUUID(rawID, "id")
	if err != nil {
		return nil, err
	}
	if err := op(ctx, identity(ctx), id); err != nil {
		return nil, resolveErr(err)
	}
	p, err := r.posts.FindByID(ctx, identity(ctx), id)
	if err != nil {
		return nil, resolveErr(err)
	}
	if p == nil {
		return nil, apperr.NotFound("post not found")
	}
	return &PostResolver{r: r, p: *p}, nil
}

func (r *Resolver) wrapPosts(posts []models.Post) []*PostResolver {
	resolvers := make([]*PostResolver, 0, len(posts))
	for _, p := range posts {
		resolvers = append(resolvers, &PostResolver{r: r, p: p})
	}
	return resolvers
}

// PostResolver resolves the fields of a single post. Relation fields
// issue their own store calls on demand.
type PostResolver struct {
	r *Resolver
	p models.Post
}

func (pr *PostResolver) ID() graphql.ID        { return graphql.ID(pr.p.ID.String()) }
func (pr *PostResolver) Title() string         { return pr.p.Title }
func (pr *PostResolver) ImgURL() *string       { return pr.p.ImgURL }
func (pr *PostResolver) Slug() string          { return pr.p.Slug }
func (pr *PostResolver) Content() string       { return pr.p.Content }
func (pr *PostResolver) Published() bool       { return pr.p.Published }
func (pr *PostResolver) Deleted() bool         { return pr.p.Deleted }
func (pr *PostResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: pr.p.CreatedAt}
}
func (pr *PostResolver) UpdatedAt() graphql.Time {
	return graphql.Time{Time: pr.p.UpdatedAt}
}

// Author resolves the post's author; null once the author is deleted.
func (pr *PostResolver) Author(ctx context.Context) (*UserResolver, error) {
	if pr.p.AuthorID == nil {
		return nil, nil
	}
	u, err := pr.r.users.FindByID(ctx, *pr.p.AuthorID)
	if err != nil {
		return nil, resolveErr(err)
	}
	if u == nil {
		return nil, nil
	}
	return &UserResolver{r: pr.r, u: *u}, nil
}

// Category resolves the post's category; null once the category is deleted.
func (pr *PostResolver) Category(ctx context.Context) (*CategoryResolver, error) {
	if pr.p.CategoryID == nil {
		return nil, nil
	}
	c, err := pr.r.categories.FindByID(ctx, *pr.p.CategoryID)
	if err != nil {
		return nil, resolveErr(err)
	}
	if c == nil {
		return nil, nil
	}
	return &CategoryResolver{r: pr.r, c: *c}, nil
}

// Tags resolves the post's tags.
func (pr *PostResolver) Tags(ctx context.Context) ([]*TagResolver, error) {
	tags, err := pr.r.tags.ListByPost(ctx, pr.p.ID)
	if err != nil {
		return nil, resolveErr(err)
	}
	return pr.r.wrapTags(tags), nil
}

// Likes resolves the users who liked the post.
func (pr *PostResolver) Likes(ctx context.Context) ([]*UserResolver, error) {
	users, err := pr.r.posts.Likers(ctx, pr.p.ID)
	if err != nil {
		return nil, resolveErr(err)
	}
	return pr.r.wrapUsers(users), nil
}

// Comments resolves the post's comments, excluding soft-deleted ones.
func (pr *PostResolver) Comments(ctx context.Context) ([]*CommentResolver, error) {
	comments, err := pr.r.comments.ListByPost(ctx, pr.p.ID)
	if err != nil {
		return nil, resolveErr(err)
	}
	return pr.r.wrapComments(comments), nil
}
