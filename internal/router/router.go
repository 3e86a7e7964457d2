// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chain for the
// GraphQL API server.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"blogql/internal/auth"
	"blogql/internal/middleware"
)

// New creates and returns the configured Chi router. Every request
// passes through the bearer token middleware; unauthenticated requests
// proceed as anonymous and each resolver enforces its own access rules.
func New(schema *graphql.Schema, tokens auth.TokenService) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Authenticate(tokens))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Handle("/graphql", &relay.Handler{Schema: schema})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
