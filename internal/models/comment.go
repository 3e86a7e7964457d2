// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment represents a reader comment on a post. Comments are soft-deleted
// with an audit trail: DeletedAt records when and DeletedBy records who.
type Comment struct {
	ID        int32      `json:"id"`
	AuthorID  *uuid.UUID `json:"author_id,omitempty"` // NULL after author deletion
	PostID    *uuid.UUID `json:"post_id,omitempty"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Deleted   bool       `json:"deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	DeletedBy *uuid.UUID `json:"deleted_by,omitempty"`
}
