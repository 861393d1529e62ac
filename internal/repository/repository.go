// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
package repository

import "errors"

var (
	// ErrNotFound is returned when the addressed row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrReferenced is returned when a delete is blocked by rows that still reference the target.
	ErrReferenced = errors.New("record is referenced")
	// ErrInvalidReference is returned when a write points at a row that does not exist.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// ConstraintError carries the name of the violated database constraint.
// It unwraps to ErrDuplicate, ErrReferenced or ErrInvalidReference.
type ConstraintError struct {
	Err        error
	Constraint string
}

func (e *ConstraintError) Error() string { return e.Err.Error() + ": " + e.Constraint }

func (e *ConstraintError) Unwrap() error { return e.Err }

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
