// Package apperrors defines the error taxonomy shared by all stores and
// services: NotFound, Conflict, Forbidden and Internal. The HTTP layer maps
// each kind to a fixed status code; nothing below the HTTP layer knows about
// status codes.
package apperrors

import (
	"errors"
	"fmt"
)

// NotFoundError reports a missing entity by id (or username for readers).
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s with this id: %s found", e.Entity, e.ID)
}

func NewNotFound(entity string, id any) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: fmt.Sprintf("%v", id)}
}

// ConflictError reports a constraint violation the caller can act on, e.g.
// a duplicate reader username or a book pointing at a missing author.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s already exists or violates a constraint", e.Field, e.Value)
}

func NewConflict(field, value string) *ConflictError {
	return &ConflictError{Field: field, Value: value}
}

// ForbiddenError reports a failed authorization decision, e.g. a wrong
// password for an existing reader.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return e.Reason
}

func NewForbidden(reason string) *ForbiddenError {
	return &ForbiddenError{Reason: reason}
}

// InternalError wraps an unexpected persistence or hashing failure. The
// wrapped cause is for logs only and must never reach a client.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("failed %s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

func NewInternal(op string, err error) *InternalError {
	return &InternalError{Op: op, Err: err}
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

func IsForbidden(err error) bool {
	var target *ForbiddenError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target *InternalError
	return errors.As(err, &target)
}
