// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blogql/internal/auth"
	"blogql/internal/graph"
)

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestRouterRoutes(t *testing.T) {
	schema := graph.MustSchema(graph.NewResolver(nil, nil, nil, nil, nil, nil))
	tokens := auth.NewJWTService("test-secret")
	mux := New(schema, tokens)

	// Health passes through the full middleware chain.
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("GET /health: got %d, want 200", w.Code)
	}

	// Introspection needs no store access, so nil stores are fine here.
	w = httptest.NewRecorder()
	r = httptest.NewRequest("POST", "/graphql",
		strings.NewReader(`{"query":"{ __typename }"}`))
	r.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("POST /graphql: got %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Query") {
		t.Errorf("POST /graphql body: got %q, want __typename Query", w.Body.String())
	}

	// Unknown paths 404.
	w = httptest.NewRecorder()
	r = httptest.NewRequest("GET", "/nope", nil)
	mux.ServeHTTP(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("GET /nope: got %d, want 404", w.Code)
	}
}
