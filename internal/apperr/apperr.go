// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apperr defines the typed failure taxonomy shared by the stores,
// the authentication service, and the GraphQL layer. Every per-request
// failure is one of these values; raw storage errors never reach a client.
package apperr

import (
	"errors"
	"fmt"
)

// Code is a stable machine-readable error code surfaced to API clients
// through GraphQL error extensions.
type Code string

const (
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidation      Code = "VALIDATION_FAILED"
	CodeConflict        Code = "CONFLICT"
	CodeInternal        Code = "INTERNAL"
)

// Error is a typed per-request failure. Fields carries field-level
// validation messages and is only set for CodeValidation.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	cause   error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the underlying cause (set for Internal errors) so callers
// can still errors.Is/As against driver errors in logs and tests.
func (e *Error) Unwrap() error { return e.cause }

// Extensions implements the resolver-error contract of graph-gophers:
// the returned map is attached to the GraphQL error under "extensions".
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": string(e.Code)}
	if len(e.Fields) > 0 {
		ext["fields"] = e.Fields
	}
	return ext
}

// Unauthenticated means the operation requires a logged-in caller.
func Unauthenticated(msg string) *Error {
	return &Error{Code: CodeUnauthenticated, Message: msg}
}

// Forbidden means the caller is known but lacks ownership or role.
func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg}
}

// NotFound covers both absent records and records invisible to the
// caller, so an existence probe learns nothing.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// Conflict reports a uniqueness violation (duplicate slug, username, email).
func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg}
}

// Validation reports every failing payload field at once.
func Validation(fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: "validation failed", Fields: fields}
}

// Internal wraps an unexpected storage or infrastructure error. The
// client sees only a generic message; the cause stays server-side.
func Internal(err error) *Error {
	return &Error{Code: CodeInternal, Message: "internal server error", cause: err}
}

// Internalf is Internal with a wrapped, formatted cause.
func Internalf(format string, args ...any) *Error {
	return Internal(fmt.Errorf(format, args...))
}

// IsCode reports whether err is an *Error carrying the given code.
func IsCode(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// From returns err as-is when it already is a typed failure, and wraps
// anything else as Internal. The resolver layer calls this on every store
// error before handing it to the GraphQL engine.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}
