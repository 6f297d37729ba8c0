package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func Test_NotFoundError_Message(t *testing.T) {
	// given
	id := uuid.MustParse("fce6cc37-10b9-4a8e-a8b2-977df327001a")
	// when
	err := NewNotFoundError(id)
	// then
	assert.Equal(t, "Product not found with filter: fce6cc37-10b9-4a8e-a8b2-977df327001a", err.Error())
}

func Test_NotFoundError_MatchesThroughWrapping(t *testing.T) {
	// given
	id := uuid.New()
	wrapped := fmt.Errorf("failed to fetch product by ID %s: %w", id, NewNotFoundError(id))
	// when
	var notFoundErr *NotFoundError
	ok := errors.As(wrapped, &notFoundErr)
	// then
	assert.True(t, ok)
	assert.Equal(t, id, notFoundErr.ID)
	assert.Contains(t, wrapped.Error(), id.String())
}

func Test_InsertionError_Message(t *testing.T) {
	// given
	cause := errors.New("Database connection error")
	// when
	err := NewInsertionError(cause)
	// then
	assert.Equal(t, "Error inserting product: Database connection error", err.Error())
}

func Test_InsertionError_UnwrapsCause(t *testing.T) {
	// given
	cause := errors.New("connection reset")
	err := NewInsertionError(cause)
	// then
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("failed to create product: %w", err)
	var insertionErr *InsertionError
	assert.True(t, errors.As(wrapped, &insertionErr))
	assert.Contains(t, insertionErr.Error(), "connection reset")
}
