// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"blogql/internal/apperr"
	"blogql/internal/models"
)

func TestTagStoreCreate(t *testing.T) {
	db := testDB(t)
	s := NewTagStore(db)
	ctx := context.Background()

	user := seedUser(t, db, "tag-create-user", "tag-create-user@store-test.local", models.RoleUser)
	t.Cleanup(func() {
		cleanTags(t, db, "go-generics")
		cleanUsers(t, db, "tag-create-user@store-test.local")
	})

	// Anonymous callers cannot create tags.
	if _, err := s.Create(ctx, nil, "Go Generics", ""); !apperr.IsCode(err, apperr.CodeUnauthenticated) {
		t.Fatalf("expected UNAUTHENTICATED, got %v", err)
	}

	// Any authenticated user may.
	tag, err := s.Create(ctx, identityFor(user), "Go Generics", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tag.Slug != "go-generics" {
		t.Errorf("slug: got %q, want %q", tag.Slug, "go-generics")
	}

	if _, err := s.Create(ctx, identityFor(user), "Go Generics", ""); !apperr.IsCode(err, apperr.CodeConflict) {
		t.Fatalf("expected CONFLICT for duplicate slug, got %v", err)
	}
}

func TestTagStoreDeleteDetaches(t *testing.T) {
	db := testDB(t)
	tags := NewTagStore(db)
	posts := NewPostStore(db)
	ctx := context.Background()

	author := seedUser(t, db, "tag-del-author", "tag-del-author@store-test.local", models.RoleUser)
	admin := seedUser(t, db, "tag-del-admin", "tag-del-admin@store-test.local", models.RoleAdmin)
	catID := seedCategory(t, db, "Tag Del Cat", "tag-del-cat")
	t.Cleanup(func() {
		cleanPosts(t, db, "post-with-doomed-tag")
		cleanTags(t, db, "doomed-tag")
		cleanCategories(t, db, "tag-del-cat")
		cleanUsers(t, db,
			"tag-del-author@store-test.local",
			"tag-del-admin@store-test.local",
		)
	})

	tag, err := tags.Create(ctx, identityFor(author), "Doomed Tag", "")
	if err != nil {
		t.Fatalf("Create tag: %v", err)
	}

	p, err := posts.Create(ctx, identityFor(author), CreatePostInput{
		Title:      "Post With Doomed Tag",
		Content:    testContent,
		CategoryID: catID,
		Tags:       []int32{tag.ID},
	})
	if err != nil {
		t.Fatalf("Create post: %v", err)
	}

	// Only admins may delete tags.
	if _, err := tags.Delete(ctx, identityFor(author), tag.ID); !apperr.IsCode(err, apperr.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN for non-admin, got %v", err)
	}

	if _, err := tags.Delete(ctx, identityFor(admin), tag.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// Deleting a missing tag is not found.
	if _, err := tags.Delete(ctx, identityFor(admin), tag.ID); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND for missing tag, got %v", err)
	}

	// The post survives without the tag.
	got, err := tags.ListByPost(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListByPost: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("tags after delete: got %d, want 0", len(got))
	}
}
