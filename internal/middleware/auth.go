// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"blogql/internal/auth"
	"blogql/internal/models"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// IdentityKey is the context key for the authenticated identity.
	IdentityKey contextKey = "identity"
)

// Authenticate decodes the Authorization bearer token and stores the
// resulting identity in the request context. It does NOT enforce
// authentication — a missing or invalid token simply leaves the request
// anonymous; the stores decide what anonymous callers may do.
func Authenticate(tokens auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ident, err := tokens.Verify(raw)
			if err != nil {
				// Invalid token — treat as unauthenticated.
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

// Identity extracts the authenticated identity from the request context.
// Returns nil for anonymous requests.
func Identity(ctx context.Context) *models.Identity {
	ident, _ := ctx.Value(IdentityKey).(*models.Identity)
	return ident
}

// WithIdentity returns a context carrying the given identity. Used by
// tests and anywhere a resolver context must be built by hand.
func WithIdentity(ctx context.Context, ident *models.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, ident)
}
