// Package store provides an interface for product storage operations.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a product document as persisted in the store.
// Price is a fixed-point decimal and round-trips through storage without
// precision loss. Timestamps are always UTC.
type Product struct {
	ID        uuid.UUID
	Name      string
	Quantity  int64
	Price     decimal.Decimal
	Status    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Patch carries a partial update: nil fields are left untouched.
type Patch struct {
	Name     *string
	Quantity *int64
	Price    *decimal.Decimal
	Status   *bool
}

// PriceFilter restricts a Query to products whose price falls inside the
// given closed range. Either bound may be nil to leave that side open.
type PriceFilter struct {
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// Create persists a new product with a generated ID and UTC timestamps.
	// Returns *errors.InsertionError if the persistence call fails.
	Create(ctx context.Context, name string, quantity int64, price decimal.Decimal, status bool) (*Product, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns *errors.NotFoundError if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// Query returns all products matching the optional price filter,
	// in storage order. An empty result is an empty slice, never an error.
	Query(ctx context.Context, filter PriceFilter) ([]Product, error)

	// Update applies the non-nil patch fields and refreshes updated_at in a
	// single atomic round trip, returning the post-update document.
	// Returns *errors.NotFoundError if no product exists with the given ID.
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*Product, error)

	// DeleteByID removes a product by its ID, confirming existence first.
	// Returns *errors.NotFoundError if no product exists with the given ID.
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)
}
