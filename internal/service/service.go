// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storeapi/products/internal/store"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// Create adds a new product to the system.
	// Returns InsertionError if the product cannot be persisted.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns NotFoundError if no product exists with the given ID.
	FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error)

	// Query returns all products matching the optional price filter.
	// Returns an empty slice if no products match.
	Query(ctx context.Context, filter ProductFilterDto) ([]ProductDto, error)

	// Update applies a partial update to an existing product.
	// Returns NotFoundError if no product exists with the given ID.
	Update(ctx context.Context, id uuid.UUID, product ProductUpdateDto) (*ProductDto, error)

	// DeleteByID removes a product by its ID.
	// Returns NotFoundError if no product exists with the given ID.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
	}
}

// ProductCreateDto represents the data transfer object for creating a new product.
// All four business fields are required; pointer fields keep zero values
// (quantity 0, status false) distinguishable from absent ones. Price is a
// fixed-point decimal parsed from the JSON literal, never a binary float.
type ProductCreateDto struct {
	Name     string           `json:"name"     validate:"required,max=100"`
	Quantity *int64           `json:"quantity" validate:"required,min=0"`
	Price    *decimal.Decimal `json:"price"    validate:"required"`
	Status   *bool            `json:"status"   validate:"required"`
}

// ProductUpdateDto represents a partial update: every field is optional and
// nil fields are left untouched.
type ProductUpdateDto struct {
	Name     *string          `json:"name,omitempty"     validate:"omitempty,max=100"`
	Quantity *int64           `json:"quantity,omitempty" validate:"omitempty,min=0"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Status   *bool            `json:"status,omitempty"`
}

// ProductFilterDto carries the optional price range for Query.
type ProductFilterDto struct {
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// ProductDto represents the data transfer object for a product.
// Price marshals as a quoted decimal string, preserving its exact
// representation; timestamps are always UTC.
type ProductDto struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Status    bool            `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Create creates a new product and returns it as a ProductDto.
// Returns InsertionError if the product cannot be persisted.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	p, err := s.repository.Create(ctx, product.Name, *product.Quantity, *product.Price, *product.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return toDto(p), nil
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns NotFoundError if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id uuid.UUID) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}

	return toDto(product), nil
}

// Query retrieves all products matching the optional price filter and
// returns them as ProductDTOs. An empty result is an empty slice.
func (s *Service) Query(ctx context.Context, filter ProductFilterDto) ([]ProductDto, error) {
	products, err := s.repository.Query(ctx, store.PriceFilter{
		MinPrice: filter.MinPrice,
		MaxPrice: filter.MaxPrice,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	productDTOs := make([]ProductDto, len(products))

	for i, item := range products {
		productDTOs[i] = *toDto(&item)
	}

	return productDTOs, nil
}

// Update applies a partial update to an existing product and returns the
// updated product as a ProductDto. updated_at is refreshed even when the
// update carries no field.
// Returns NotFoundError if no product exists with the given ID.
func (s *Service) Update(ctx context.Context, id uuid.UUID, product ProductUpdateDto) (*ProductDto, error) {
	updated, err := s.repository.Update(ctx, id, store.Patch{
		Name:     product.Name,
		Quantity: product.Quantity,
		Price:    product.Price,
		Status:   product.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, err)
	}

	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID.
// Returns NotFoundError if no product exists with the given ID.
func (s *Service) DeleteByID(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repository.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product with ID %s: %w", id, err)
	}
	if !deleted {
		return fmt.Errorf("failed to delete product with ID %s: no document removed", id)
	}
	return nil
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:        product.ID.String(),
		Name:      product.Name,
		Quantity:  product.Quantity,
		Price:     product.Price,
		Status:    product.Status,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}
