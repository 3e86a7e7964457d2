// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"net/mail"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Validation limits for entity payloads. Titles and names are bounded by
// their column widths; post content has a minimum so stub posts can't be
// published.
const (
	minTitleLen    = 4
	maxTitleLen    = 255
	minContentLen  = 100
	minNameLen     = 3
	maxNameLen     = 255
	minPasswordLen = 8
	maxPasswordLen = 255
	maxBioLen      = 255
)

// passwordSymbols is the accepted special-character class for passwords.
const passwordSymbols = "!@#$%^&*"

// CreatePostInput is the payload for creating a post. The author is always
// stamped from the caller's identity, never from the payload.
type CreatePostInput struct {
	Title      string
	ImgURL     *string
	Content    string
	CategoryID int32
	Tags       []int32
	Published  *bool
}

// Validate checks the payload and returns every failing field.
func (in *CreatePostInput) Validate() map[string]string {
	fields := map[string]string{}
	checkTitle(fields, in.Title)
	if utf8.RuneCountInString(in.Content) < minContentLen {
		fields["content"] = "Content must be at least 100 characters long"
	}
	if in.ImgURL != nil {
		checkURL(fields, "img_url", *in.ImgURL)
	}
	if in.CategoryID <= 0 {
		fields["category_id"] = "Category id must be a positive integer"
	}
	checkTagIDs(fields, in.Tags)
	return fields
}

// UpdatePostInput is the payload for a partial post update. Nil fields are
// left untouched; a nil Tags slice leaves the tag set alone while a
// non-nil slice replaces it wholesale.
type UpdatePostInput struct {
	ID         uuid.UUID
	Title      *string
	ImgURL     *string
	Content    *string
	CategoryID *int32
	AuthorID   *uuid.UUID
	Tags       []int32
	Published  *bool
	Deleted    *bool
}

// Validate checks only the supplied fields.
func (in *UpdatePostInput) Validate() map[string]string {
	fields := map[string]string{}
	if in.ID == uuid.Nil {
		fields["id"] = "Post id is required"
	}
	if in.Title != nil {
		checkTitle(fields, *in.Title)
	}
	if in.Content != nil && utf8.RuneCountInString(*in.Content) < minContentLen {
		fields["content"] = "Content must be at least 100 characters long"
	}
	if in.ImgURL != nil {
		checkURL(fields, "img_url", *in.ImgURL)
	}
	if in.CategoryID != nil && *in.CategoryID <= 0 {
		fields["category_id"] = "Category id must be a positive integer"
	}
	checkTagIDs(fields, in.Tags)
	return fields
}

// CreateUserInput is the payload for register and for admin user creation.
type CreateUserInput struct {
	Username   string
	Email      string
	Password   string
	Name       *string
	Bio        *string
	ProfileImg *string
}

// Validate checks the payload and returns every failing field.
func (in *CreateUserInput) Validate() map[string]string {
	fields := map[string]string{}
	checkName(fields, "username", in.Username)
	if _, err := mail.ParseAddress(in.Email); err != nil {
		fields["email"] = "Email must be a valid address"
	}
	checkPassword(fields, in.Password)
	if in.Name != nil {
		checkName(fields, "name", *in.Name)
	}
	if in.Bio != nil && utf8.RuneCountInString(*in.Bio) > maxBioLen {
		fields["bio"] = "Bio must be less than 255 characters long"
	}
	if in.ProfileImg != nil {
		checkURL(fields, "profile_img", *in.ProfileImg)
	}
	return fields
}

// UpdateUserInput is the payload for a partial user update.
type UpdateUserInput struct {
	ID         uuid.UUID
	Name       *string
	Username   *string
	Email      *string
	Password   *string
	Bio        *string
	ProfileImg *string
}

// Validate checks only the supplied fields.
func (in *UpdateUserInput) Validate() map[string]string {
	fields := map[string]string{}
	if in.ID == uuid.Nil {
		fields["id"] = "User id is required"
	}
	if in.Username != nil {
		checkName(fields, "username", *in.Username)
	}
	if in.Email != nil {
		if _, err := mail.ParseAddress(*in.Email); err != nil {
			fields["email"] = "Email must be a valid address"
		}
	}
	if in.Name != nil {
		checkName(fields, "name", *in.Name)
	}
	if in.Password != nil {
		checkPassword(fields, *in.Password)
	}
	if in.Bio != nil && utf8.RuneCountInString(*in.Bio) > maxBioLen {
		fields["bio"] = "Bio must be less than 255 characters long"
	}
	if in.ProfileImg != nil {
		checkURL(fields, "profile_img", *in.ProfileImg)
	}
	return fields
}

func checkTitle(fields map[string]string, title string) {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	if n < minTitleLen {
		fields["title"] = "Title must be at least 4 characters long"
	} else if n > maxTitleLen {
		fields["title"] = "Title must be less than 255 characters long"
	}
}

func checkName(fields map[string]string, field, value string) {
	n := utf8.RuneCountInString(value)
	if n < minNameLen {
		fields[field] = "Must be at least 3 characters long"
	} else if n > maxNameLen {
		fields[field] = "Must be less than 255 characters long"
	}
}

// checkPassword enforces the character-class rules: length plus at least
// one uppercase letter, lowercase letter, digit, and symbol.
func checkPassword(fields map[string]string, password string) {
	switch {
	case utf8.RuneCountInString(password) < minPasswordLen:
		fields["password"] = "Password must be at least 8 characters long"
	case utf8.RuneCountInString(password) > maxPasswordLen:
		fields["password"] = "Password must be less than 255 characters long"
	case !strings.ContainsFunc(password, unicode.IsUpper):
		fields["password"] = "Password must contain an uppercase letter"
	case !strings.ContainsFunc(password, unicode.IsLower):
		fields["password"] = "Password must contain a lowercase letter"
	case !strings.ContainsFunc(password, unicode.IsDigit):
		fields["password"] = "Password must contain a number"
	case !strings.ContainsAny(password, passwordSymbols):
		fields["password"] = "Password must contain a special character"
	}
}

// checkURL requires an absolute http(s) URL.
func checkURL(fields map[string]string, field, raw string) {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		fields[field] = "Must be a valid absolute URL"
	}
}

func checkTagIDs(fields map[string]string, tags []int32) {
	for _, id := range tags {
		if id <= 0 {
			fields["tags"] = "Tag ids must be positive integers"
			return
		}
	}
}
