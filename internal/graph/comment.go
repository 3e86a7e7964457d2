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

// Comments lists the live comments on a post, oldest first.
func (r *Resolver) Comments(ctx context.Context, args struct{ PostID graphql.ID }) ([]*CommentResolver, error) {
	postID, err := parseUUID(args.PostID, "post_id")
	if err != nil {
		return nil, err
	}
	comments, err := r.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, resolveErr(err)
	}
	return r.wrapComments(comments), nil
}

// CreateComment adds the caller's comment to a post.
func (r *Resolver) CreateComment(ctx context.Context, args struct {
	PostID  graphql.ID
	Content string
}) (*CommentResolver, error) {
	postID, err := parseUUID(args.PostID, "post_id")
	if err != nil {
		return nil, err
	}
	c, err := r.comments.Create(ctx, identity(ctx), postID, args.Content)
	if err != nil {
		return nil, resolveErr(err)
	}
	return &CommentResolver{r: r, c: *c}, nil
}

// UpdateComment replaces the content of a comment the caller owns.
func (r *Resolver) UpdateComment(ctx context.Context, args struct {
	ID      int32
	Content string
}) (*CommentResolver, error) {
	c, err := r.comments.Update(ctx, identity(ctx), args.ID, args.Content)
	if err != nil {
		return nil, resolveErr(err)
	}
	return &CommentResolver{r: r, c: *c}, nil
}

// DeleteComment soft-deletes a comment and returns its final state.
func (r *Resolver) DeleteComment(ctx context.Context, args struct{ ID int32 }) (*CommentResolver, error) {
	c, err := r.comments.Delete(ctx, identity(ctx), args.ID)
	if err != nil {
		return nil, resolveErr(err)
	}
	return &CommentResolver{r: r, c: *c}, nil
}

// LikeComment records the caller's like and returns the comment.
func (r *Resolver) LikeComment(ctx context.Context, args struct{ ID int32 }) (*CommentResolver, error) {
	if err := r.comments.Like(ctx, identity(ctx), args.ID); err != nil {
		return nil, resolveErr(err)
	}
	return r.commentByID(ctx, args.ID)
}

// UnlikeComment removes the caller's like and returns the comment.
func (r *Resolver) UnlikeComment(ctx context.Context, args struct{ ID int32 }) (*CommentResolver, error) {
	if err := r.comments.Unlike(ctx, identity(ctx), args.ID); err != nil {
		return nil, resolveErr(err)
	}
	return r.commentByID(ctx, args.ID)
}

func (r *Resolver) commentByID(ctx context.Context, id int32) (*CommentResolver, error) {
	c, err := r.comments.FindByID(ctx, id)
	if err != nil {
		return nil, resolveErr(err)
	}
	if c == nil {
		return nil, apperr.NotFound("comment not found")
	}
	return &CommentResolver{r: r, c: *c}, nil
}

func (r *Resolver) wrapComments(comments []models.Comment) []*CommentResolver {
	resolvers := make([]*CommentResolver, 0, len(comments))
	for _, c := range comments {
		resolvers = append(resolvers, &CommentResolver{r: r, c: c})
	}
	return resolvers
}

// CommentResolver resolves the fields of a single comment.
type CommentResolver struct {
	r *Resolver
	c models.Comment
}

func (cr *CommentResolver) ID() int32       { return cr.c.ID }
func (cr *CommentResolver) Content() string { return cr.c.Content }
func (cr *CommentResolver) Deleted() bool   { return cr.c.Deleted }
func (cr *CommentResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: cr.c.CreatedAt}
}
func (cr *CommentResolver) UpdatedAt() graphql.Time {
	return graphql.Time{Time: cr.c.UpdatedAt}
}

// Author resolves the comment's author; null once the author is deleted.
func (cr *CommentResolver) Author(ctx context.Context) (*UserResolver, error) {
	if cr.c.AuthorID == nil {
		return nil, nil
	}
	u, err := cr.r.users.FindByID(ctx, *cr.c.AuthorID)
	if err != nil {
		return nil, resolveErr(err)
	}
	if u == nil {
		return nil, nil
	}
	return &UserResolver{r: cr.r, u: *u}, nil
}

// Post resolves the post the comment belongs to.
func (cr *CommentResolver) Post(ctx context.Context) (*PostResolver, error) {
	if cr.c.PostID == nil {
		return nil, nil
	}
	p, err := cr.r.posts.FindByID(ctx, identity(ctx), *cr.c.PostID)
	if err != nil {
		return nil, resolveErr(err)
	}
	if p == nil {
		return nil, nil
	}
	return &PostResolver{r: cr.r, p: *p}, nil
}

// Likes resolves the users who liked the comment.
func (cr *CommentResolver) Likes(ctx context.Context) ([]*UserResolver, error) {
	users, err := cr.r.comments.Likers(ctx, cr.c.ID)
	if err != nil {
		return nil, resolveErr(err)
	}
	return cr.r.wrapUsers(users), nil
}
