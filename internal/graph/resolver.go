// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package graph maps GraphQL operations onto the stores and the
// authentication service. The graphql-go engine resolves sibling fields
// concurrently, so nested relations (a post's author, tags, likes and
// comments) load in parallel; every resolver is a stateless read or a
// single store call and needs no coordination.
package graph

import (
	"context"
	"errors"
	"log/slog"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/google/uuid"

	"blogql/internal/apperr"
	"blogql/internal/auth"
	"blogql/internal/middleware"
	"blogql/internal/models"
	"blogql/internal/store"
)

// Resolver is the root resolver. It holds the stores and the
// authentication service; request identity travels in the context.
type Resolver struct {
	posts      *store.PostStore
	users      *store.UserStore
	comments   *store.CommentStore
	categories *store.CategoryStore
	tags       *store.TagStore
	auth       *auth.Service
}

// NewResolver wires the root resolver.
func NewResolver(
	posts *store.PostStore,
	users *store.UserStore,
	comments *store.CommentStore,
	categories *store.CategoryStore,
	tags *store.TagStore,
	authService *auth.Service,
) *Resolver {
	return &Resolver{
		posts:      posts,
		users:      users,
		comments:   comments,
		categories: categories,
		tags:       tags,
		auth:       authService,
	}
}

// MustSchema parses the SDL against the resolver. Called once at startup;
// panics on any schema/resolver mismatch.
func MustSchema(r *Resolver) *graphql.Schema {
	return graphql.MustParseSchema(Schema, r)
}

// resolveErr converts any failure into a typed apperr value so the stable
// error code reaches the client through GraphQL error extensions. Raw
// storage errors are logged server-side and surface only as Internal.
func resolveErr(err error) error {
	e := apperr.From(err)
	if e.Code == apperr.CodeInternal {
		slog.Error("resolver failure", "error", errors.Unwrap(e))
	}
	return e
}

// parseUUID converts a GraphQL ID argument into a uuid, failing with a
// field-level validation error instead of leaking parser details.
func parseUUID(id graphql.ID, field string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(string(id))
	if err != nil {
		return uuid.Nil, apperr.Validation(map[string]string{field: "Must be a valid id"})
	}
	return parsed, nil
}

// identity is a shorthand for the caller's identity in resolver bodies.
func identity(ctx context.Context) *models.Identity {
	return middleware.Identity(ctx)
}
