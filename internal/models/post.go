// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Post represents a blog post. Posts are soft-deleted: the Deleted flag
// flips but the row persists so comments keep their referential history.
type Post struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	ImgURL     *string    `json:"img_url,omitempty"`
	Slug       string     `json:"slug"`
	Content    string     `json:"content"`
	AuthorID   *uuid.UUID `json:"author_id,omitempty"`  // NULL after author deletion
	CategoryID *int32     `json:"category_id,omitempty"` // NULL after category deletion
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Published  bool       `json:"published"`
	Deleted    bool       `json:"deleted"`
}

// IsVisible reports whether the post is readable by anonymous callers:
// published and not soft-deleted.
func (p *Post) IsVisible() bool {
	return p.Published && !p.Deleted
}
