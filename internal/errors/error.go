// Package errors provides custom error types for product-related operations.
package errors

import (
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError is returned when no product matches the requested identifier.
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Product not found with filter: %s", e.ID)
}

// NewNotFoundError creates a NotFoundError for the given product ID.
func NewNotFoundError(id uuid.UUID) *NotFoundError {
	return &NotFoundError{ID: id}
}

// InsertionError is returned when the persistence layer rejects a new product.
// It wraps the underlying cause and is never retried internally.
type InsertionError struct {
	Cause error
}

func (e *InsertionError) Error() string {
	return fmt.Sprintf("Error inserting product: %v", e.Cause)
}

func (e *InsertionError) Unwrap() error {
	return e.Cause
}

// NewInsertionError wraps a persistence failure into an InsertionError.
func NewInsertionError(cause error) *InsertionError {
	return &InsertionError{Cause: cause}
}
