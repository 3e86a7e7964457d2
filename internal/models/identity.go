// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "github.com/google/uuid"

// Identity is the authenticated caller decoded from a bearer token.
// A nil *Identity means the request is anonymous. The shape mirrors the
// token payload: id, name, username, role — never the password hash.
type Identity struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
}

// IsAdmin reports whether the caller is an authenticated admin.
// Safe to call on a nil identity.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// CanModify is the single ownership check used by every store: a caller
// may mutate a record when they are an admin, or when the record's owner
// column matches their own id. Records with no owner (author deleted)
// are admin-only.
func (i *Identity) CanModify(owner *uuid.UUID) bool {
	if i == nil {
		return false
	}
	if i.Role == RoleAdmin {
		return true
	}
	return owner != nil && *owner == i.ID
}

// Is reports whether the identity refers to the given user id.
func (i *Identity) Is(id uuid.UUID) bool {
	return i != nil && i.ID == id
}
