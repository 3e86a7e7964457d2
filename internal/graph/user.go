// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package graph

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"blogql/internal/apperr"
	"blogql/internal/models"
	"blogql/internal/store"
)

type registerInput struct {
	Username   string
	Email      string
	Password   string
	Name       *string
	Bio        *string
	ProfileImg *string
}

type updateUserInput struct {
	ID         graphql.ID
	Username   *string
	Email      *string
	Password   *string
	Name       *string
	Bio        *string
	ProfileImg *string
}

// Users lists users. Admins see everyone, regular users only themselves.
func (r *Resolver) Users(ctx context.Context, args struct{ Limit, Offset *int32 }) ([]*UserResolver, error) {
	users, err := r.users.List(ctx, identity(ctx), args.Limit, args.Offset)
	if err != nil {
		return nil, resolveErr(err)
	}
	return r.wrapUsers(users), nil
}

// User looks up a single user by id, username or email.
func (r *Resolver) User(ctx context.Context, args struct {
	ID       *graphql.ID
	Username *string
	Email    *string
}) (*UserResolver, error) {
	var (
		u   *models.User
		err error
	)
	switch {
	case args.ID != nil:
		id, uerr := parseUUID(*args.ID, "id")
		if uerr != nil {
			return nil, uerr
		}
		u, err = r.users.FindByID(ctx, id)
	case args.Username != nil:
		u, err = r.users.FindByUsername(ctx, *args.Username)
	case args.Email != nil:
		u, err = r.users.FindByEmail(ctx, *args.Email)
	default:
		return nil, apperr.Validation(map[string]string{"id": "An id, username or email is required"})
	}
	if err != nil {
		return nil, resolveErr(err)
	}
	if u == nil {
		return nil, nil
	}
	return &UserResolver{r: r, u: *u}, nil
}

// Me resolves the authenticated caller's own account.
func (r *Resolver) Me(ctx context.Context) (*UserResolver, error) {
	ident := identity(ctx)
	if ident == nil {
		return nil, apperr.Unauthenticated("authentication required")
	}
	u, err := r.users.FindByID(ctx, ident.ID)
	if err != nil {
		return nil, resolveErr(err)
	}
	if u == nil {
		return nil, apperr.NotFound("user not found")
	}
	return &UserResolver{r: r, u: *u}, nil
}

// Register creates an account and returns a signed token for it.
func (r *Resolver) Register(ctx context.Context, args struct{ Input registerInput }) (*AuthPayloadResolver, error) {
	token, err := r.auth.Register(ctx, store.CreateUserInput{
		Username:   args.Input.Username,
		Email:      args.Input.Email,
		Password:   args.Input.Password,
		Name:       args.Input.Name,
		Bio:        args.Input.Bio,
		ProfileImg: args.Input.ProfileImg,
	})
	if err != nil {
		return nil, resolveErr(err)
	}
	return &AuthPayloadResolver{token: token}, nil
}

// Login verifies credentials and returns a signed token.
func (r *Resolver) Login(ctx context.Context, args struct{ Email, Password string }) (*AuthPayloadResolver, error) {
	token, err := r.auth.Login(ctx, args.Email, args.Password)
	if err != nil {
		return nil, resolveErr(err)
	}
	return &AuthPayloadResolver{token: token}, nil
}

// CreateUser creates an account on behalf of someone else. Admin only.
func (r *Resolver) CreateUser(ctx context.Context, args struct{ Input registerInput }) (*UserResolver, error) {
	u, err := r.users.Create(ctx, identity(ctx), store.CreateUserInput{
		Username:   args.Input.Username,
		Email:      args.Input.Email,
		Password:   args.Input.Password,
		Name:       args.Input.Name,
		Bio:        args.Input.Bio,
		ProfileImg: args.Input.ProfileImg,
	})
	if err != nil {
		return nil, resolveErr(err)
	}
	return &UserResolver{r: r, u: *u}, nil
}

// UpdateUser partially updates an account the caller owns (or any
// account, for admins).
func (r *Resolver) UpdateUser(ctx context.Context, args struct{ Input updateUserInput }) (*UserResolver, error) {
	id, err := parseUUID(args.Input.ID, "id")
	if err != nil {
		return nil, err
	}
	u, err := r.users.Update(ctx, identity(ctx), store.UpdateUserInput{
		ID:         id,
		Username:   args.Input.Username,
		Email:      args.Input.Email,
		Password:   args.Input.Password,
		Name:       args.Input.Name,
		Bio:        args.Input.Bio,
		ProfileImg: args.Input.ProfileImg,
	})
	if err != nil {
		return nil, resolveErr(err)
	}
	return &UserResolver{r: r, u: *u}, nil
}

// DeleteUser removes an account and returns its last state.
func (r *Resolver) DeleteUser(ctx context.Context, args struct{ ID graphql.ID }) (*UserResolver, error) {
	id, err := parseUUID(args.ID, "id")
	if err != nil {
		return nil, err
	}
	u, err := r.users.Delete(ctx, identity(ctx), id)
	if err != nil {
		return nil, resolveErr(err)
	}
	return &UserResolver{r: r, u: *u}, nil
}

func (r *Resolver) wrapUsers(users []models.User) []*UserResolver {
	resolvers := make([]*UserResolver, 0, len(users))
	for _, u := range users {
		resolvers = append(resolvers, &UserResolver{r: r, u: u})
	}
	return resolvers
}

// AuthPayloadResolver carries a signed token back to the client.
type AuthPayloadResolver struct {
	token string
}

func (ar *AuthPayloadResolver) Token() string { return ar.token }

// UserResolver resolves the fields of a single user.
type UserResolver struct {
	r *Resolver
	u models.User
}

func (ur *UserResolver) ID() graphql.ID      { return graphql.ID(ur.u.ID.String()) }
func (ur *UserResolver) Username() string    { return ur.u.Username }
func (ur *UserResolver) Email() string       { return ur.u.Email }
func (ur *UserResolver) Role() string        { return string(ur.u.Role) }
func (ur *UserResolver) Name() *string       { return ur.u.Name }
func (ur *UserResolver) Bio() *string        { return ur.u.Bio }
func (ur *UserResolver) ProfileImg() *string { return ur.u.ProfileImg }
func (ur *UserResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: ur.u.CreatedAt}
}
func (ur *UserResolver) UpdatedAt() graphql.Time {
	return graphql.Time{Time: ur.u.UpdatedAt}
}

// Posts resolves the posts authored by this user that the caller may see.
func (ur *UserResolver) Posts(ctx context.Context) ([]*PostResolver, error) {
	posts, err := ur.r.posts.ListByAuthor(ctx, identity(ctx), ur.u.ID)
	if err != nil {
		return nil, resolveErr(err)
	}
	return ur.r.wrapPosts(posts), nil
}

// Comments resolves the comments written by this user.
func (ur *UserResolver) Comments(ctx context.Context) ([]*CommentResolver, error) {
	comments, err := ur.r.comments.ListByAuthor(ctx, ur.u.ID)
	if err != nil {
		return nil, resolveErr(err)
	}
	return ur.r.wrapComments(comments), nil
}

// EditorOn resolves the categories this user may edit posts in.
func (ur *UserResolver) EditorOn(ctx context.Context) ([]*CategoryResolver, error) {
	categories, err := ur.r.categories.EditorOn(ctx, ur.u.ID)
	if err != nil {
		return nil, resolveErr(err)
	}
	return ur.r.wrapCategories(categories), nil
}
