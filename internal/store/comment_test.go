// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"blogql/internal/apperr"
	"blogql/internal/models"
)

func TestCommentStoreCreate(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	ctx := context.Background()

	author := seedUser(t, db, "com-create-author", "com-create-author@store-test.local", models.RoleUser)
	commenter := seedUser(t, db, "com-create-commenter", "com-create-commenter@store-test.local", models.RoleUser)
	catID := seedCategory(t, db, "Com Create Cat", "com-create-cat")
	p := seedPost(t, db, author, "Commented Post", catID, true)
	t.Cleanup(func() {
		cleanComments(t, db, p.ID)
		cleanPosts(t, db, "commented-post")
		cleanCategories(t, db, "com-create-cat")
		cleanUsers(t, db,
			"com-create-author@store-test.local",
			"com-create-commenter@store-test.local",
		)
	})

	// Anonymous callers cannot comment.
	if _, err := s.Create(ctx, nil, p.ID, "hello"); !apperr.IsCode(err, apperr.CodeUnauthenticated) {
		t.Fatalf("expected UNAUTHENTICATED, got %v", err)
	}

	// Empty content is rejected.
	if _, err := s.Create(ctx, identityFor(commenter), p.ID, "  "); !apperr.IsCode(err, apperr.CodeValidation) {
		t.Fatalf("expected VALIDATION_FAILED for blank content, got %v", err)
	}

	c, err := s.Create(ctx, identityFor(commenter), p.ID, "First!")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.AuthorID == nil || *c.AuthorID != commenter.ID {
		t.Error("expected the caller to be stamped as author")
	}
	if c.Content != "First!" {
		t.Errorf("content: got %q", c.Content)
	}

	// Commenting on a missing post surfaces as not found.
	if _, err := s.Create(ctx, identityFor(commenter), uuid.New(), "ghost"); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND for missing post, got %v", err)
	}
}

func TestCommentStoreUpdateOwnership(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	ctx := context.Background()

	author := seedUser(t, db, "com-upd-author", "com-upd-author@store-test.local", models.RoleUser)
	other := seedUser(t, db, "com-upd-other", "com-upd-other@store-test.local", models.RoleUser)
	catID := seedCategory(t, db, "Com Upd Cat", "com-upd-cat")
	p := seedPost(t, db, author, "Comment Update Post", catID, true)
	t.Cleanup(func() {
		cleanComments(t, db, p.ID)
		cleanPosts(t, db, "comment-update-post")
		cleanCategories(t, db, "com-upd-cat")
		cleanUsers(t, db,
			"com-upd-author@store-test.local",
			"com-upd-other@store-test.local",
		)
	})

	c, err := s.Create(ctx, identityFor(author), p.ID, "original")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := s.Update(ctx, identityFor(other), c.ID, "hijacked"); !apperr.IsCode(err, apperr.CodeForbidden) {
		t.Fatalf("expected FORBIDDEN for non-owner, got %v", err)
	}

	updated, err := s.Update(ctx, identityFor(author), c.ID, "edited")
	if err != nil {
		t.Fatalf("Update by owner: %v", err)
	}
	if updated.Content != "edited" {
		t.Errorf("content: got %q, want %q", updated.Content, "edited")
	}
}

func TestCommentStoreSoftDelete(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	ctx := context.Background()

	author := seedUser(t, db, "com-del-author", "com-del-author@store-test.local", models.RoleUser)
	admin := seedUser(t, db, "com-del-admin", "com-del-admin@store-test.local", models.RoleAdmin)
	catID := seedCategory(t, db, "Com Del Cat", "com-del-cat")
	p := seedPost(t, db, author, "Comment Delete Post", catID, true)
	t.Cleanup(func() {
		cleanComments(t, db, p.ID)
		cleanPosts(t, db, "comment-delete-post")
		cleanCategories(t, db, "com-del-cat")
		cleanUsers(t, db,
			"com-del-author@store-test.local",
			"com-del-admin@store-test.local",
		)
	})

	c, err := s.Create(ctx, identityFor(author), p.ID, "to be removed")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// An admin may remove someone else's comment; the remover is recorded.
	deleted, err := s.Delete(ctx, identityFor(admin), c.ID)
	if err != nil {
		t.Fatalf("Delete by admin: %v", err)
	}
	if !deleted.Deleted {
		t.Error("expected deleted flag to be set")
	}
	if deleted.DeletedBy == nil || *deleted.DeletedBy != admin.ID {
		t.Error("expected deleted_by to record the admin")
	}
	if deleted.DeletedAt == nil {
		t.Error("expected deleted_at to be set")
	}

	// Deleted comments disappear from reads.
	got, err := s.FindByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got != nil {
		t.Error("expected deleted comment to be hidden")
	}

	comments, err := s.ListByPost(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListByPost: %v", err)
	}
	for _, cc := range comments {
		if cc.ID == c.ID {
			t.Error("expected deleted comment to be excluded from the post's comments")
		}
	}

	// Editing a deleted comment fails.
	if _, err := s.Update(ctx, identityFor(author), c.ID, "resurrect"); !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND when editing a deleted comment, got %v", err)
	}
}

func TestCommentStoreLikes(t *testing.T) {
	db := testDB(t)
	s := NewCommentStore(db)
	ctx := context.Background()

	author := seedUser(t, db, "com-like-author", "com-like-author@store-test.local", models.RoleUser)
	fan := seedUser(t, db, "com-like-fan", "com-like-fan@store-test.local", models.RoleUser)
	catID := seedCategory(t, db, "Com Like Cat", "com-like-cat")
	p := seedPost(t, db, author, "Comment Like Post", catID, true)
	t.Cleanup(func() {
		cleanComments(t, db, p.ID)
		cleanPosts(t, db, "comment-like-post")
		cleanCategories(t, db, "com-like-cat")
		cleanUsers(t, db,
			"com-like-author@store-test.local",
			"com-like-fan@store-test.local",
		)
	})

	c, err := s.Create(ctx, identityFor(author), p.ID, "like me")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Like(ctx, identityFor(fan), c.ID); err != nil {
		t.Fatalf("Like: %v", err)
	}
	if err := s.Like(ctx, identityFor(fan), c.ID); !apperr.IsCode(err, apperr.CodeConflict) {
		t.Fatalf("expected CONFLICT for double like, got %v", err)
	}

	likers, err := s.Likers(ctx, c.ID)
	if err != nil {
		t.Fatalf("Likers: %v", err)
	}
	if len(likers) != 1 || likers[0].ID != fan.ID {
		t.Fatalf("likers: got %v, want just the fan", likers)
	}

	if err := s.Unlike(ctx, identityFor(fan), c.ID); err != nil {
		t.Fatalf("Unlike: %v", err)
	}
	likers, _ = s.Likers(ctx, c.ID)
	if len(likers) != 0 {
		t.Fatalf("likers after unlike: got %d, want 0", len(likers))
	}
}
