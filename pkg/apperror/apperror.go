// Package apperror carries the error taxonomy the application layer raises
// and the HTTP boundary translates into the uniform
// {"errors": {"field": ["messages"]}} envelope.
package apperror

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Error is a field-scoped application error with an HTTP status.
type Error struct {
	Status int
	Fields map[string][]string
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

// New builds an error with a single field-scoped message.
func New(status int, field, msg string) *Error {
	return &Error{Status: status, Fields: map[string][]string{field: {msg}}}
}

// NotFound reports a missing resource keyed by its name, e.g. "article".
func NotFound(resource string) *Error {
	return New(http.StatusNotFound, resource, "not found")
}

// Forbidden reports an ownership violation on a mutation.
func Forbidden(field, msg string) *Error {
	return New(http.StatusForbidden, field, msg)
}

// Conflict reports a duplicate unique field, e.g. registration email.
func Conflict(field, msg string) *Error {
	return New(http.StatusConflict, field, msg)
}

// Unprocessable reports a semantically invalid request, e.g. self-follow.
func Unprocessable(field, msg string) *Error {
	return New(http.StatusUnprocessableEntity, field, msg)
}

// Unauthorized reports missing or invalid credentials.
func Unauthorized(field, msg string) *Error {
	return New(http.StatusUnauthorized, field, msg)
}

// Validation wraps field-scoped binding failures.
func Validation(fields map[string][]string) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Fields: fields}
}
