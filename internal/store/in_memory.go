package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	perrors "github.com/storeapi/products/internal/errors"
)

// inMemory implements ProductStore using an in-memory map.
// It mirrors the MongoDB implementation's semantics, including insertion
// order for Query and millisecond timestamp granularity, so the same test
// suites hold against both.
type inMemory struct {
	mu       sync.RWMutex
	products map[uuid.UUID]Product
	order    []uuid.UUID
}

// NewInMemoryStore creates a new instance of ProductStore
func NewInMemoryStore() ProductStore {
	return &inMemory{
		products: make(map[uuid.UUID]Product),
	}
}

// Create persists a new product with a generated ID and UTC timestamps.
func (s *inMemory) Create(_ context.Context, name string, quantity int64, price decimal.Decimal, status bool) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Truncate(time.Millisecond)
	product := Product{
		ID:        uuid.New(),
		Name:      name,
		Quantity:  quantity,
		Price:     price,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.products[product.ID] = product
	s.order = append(s.order, product.ID)

	return &product, nil
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(_ context.Context, id uuid.UUID) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, perrors.NewNotFoundError(id)
	}
	return &p, nil
}

// Query retrieves all products matching the optional price filter, in
// insertion order.
func (s *inMemory) Query(_ context.Context, filter PriceFilter) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		p := s.products[id]
		if filter.MinPrice != nil && p.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && p.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		list = append(list, p)
	}
	return list, nil
}

// Update applies the non-nil patch fields and refreshes updated_at.
// The whole read-modify-write happens under the lock, so concurrent
// updates to the same ID never lose writes.
func (s *inMemory) Update(_ context.Context, id uuid.UUID, patch Patch) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, perrors.NewNotFoundError(id)
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Quantity != nil {
		p.Quantity = *patch.Quantity
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	p.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	s.products[id] = p

	return &p, nil
}

// DeleteByID deletes a product by its ID.
func (s *inMemory) DeleteByID(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return false, perrors.NewNotFoundError(id)
	}
	delete(s.products, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}
