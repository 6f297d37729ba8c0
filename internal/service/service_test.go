package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	perrors "github.com/storeapi/products/internal/errors"
	"github.com/storeapi/products/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductStore is a mock implementation of the ProductStore interface
type mockProductStore struct {
	products []store.Product
	product  store.Product
	deleted  bool
	error    error
}

// Simulate creating a product
func (m *mockProductStore) Create(_ context.Context, _ string, _ int64, _ decimal.Decimal, _ bool) (*store.Product, error) {
	if m.error != nil {
		return nil, m.error
	}
	return &m.product, nil
}

// Simulate finding a product by ID
func (m *mockProductStore) FindByID(_ context.Context, _ uuid.UUID) (*store.Product, error) {
	if m.error != nil {
		return nil, m.error
	}
	return &m.product, nil
}

// Simulate querying products
func (m *mockProductStore) Query(_ context.Context, _ store.PriceFilter) ([]store.Product, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.products, nil
}

// Simulate updating a product
func (m *mockProductStore) Update(_ context.Context, _ uuid.UUID, _ store.Patch) (*store.Product, error) {
	if m.error != nil {
		return nil, m.error
	}
	return &m.product, nil
}

// Simulate deleting a product by ID
func (m *mockProductStore) DeleteByID(_ context.Context, _ uuid.UUID) (bool, error) {
	return m.deleted, m.error
}

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	require.NoError(t, err)
	return d
}

func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

func sampleProduct(t *testing.T, id uuid.UUID) store.Product {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Millisecond)
	return store.Product{
		ID:        id,
		Name:      "Iphone 14 Pro Max",
		Quantity:  10,
		Price:     mustDecimal(t, "8.500"),
		Status:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func Test_ProductService_Create(t *testing.T) {
	mockID := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	price := mustDecimal(t, "8.500")
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expectError error
	}{
		{
			name:        "Success - product created",
			mockStore:   &mockProductStore{product: sampleProduct(t, mockID)},
			expectError: nil,
		},
		{
			name:        "Error - insertion failed",
			mockStore:   &mockProductStore{error: perrors.NewInsertionError(errors.New("Database connection error"))},
			expectError: &perrors.InsertionError{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			dto := ProductCreateDto{
				Name:     "Iphone 14 Pro Max",
				Quantity: int64Ptr(10),
				Price:    &price,
				Status:   boolPtr(true),
			}
			// when
			created, err := service.Create(context.Background(), dto)
			// then
			if tc.expectError != nil {
				var insertionErr *perrors.InsertionError
				require.True(t, errors.As(err, &insertionErr))
				assert.Contains(t, insertionErr.Error(), "Database connection error")
				assert.Nil(t, created)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, mockID.String(), created.ID)
			assert.Equal(t, "8.500", created.Price.String())
			assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))
		})
	}
}

func Test_ProductService_FindByID(t *testing.T) {
	mockID := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expectError error
	}{
		{
			name:      "Success - product found",
			mockStore: &mockProductStore{product: sampleProduct(t, mockID)},
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockProductStore{error: perrors.NewNotFoundError(mockID)},
			expectError: &perrors.NotFoundError{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			found, err := service.FindByID(context.Background(), mockID)
			// then
			if tc.expectError != nil {
				var notFoundErr *perrors.NotFoundError
				require.True(t, errors.As(err, &notFoundErr))
				assert.Equal(t, mockID, notFoundErr.ID)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, mockID.String(), found.ID)
			assert.Equal(t, "Iphone 14 Pro Max", found.Name)
		})
	}
}

func Test_ProductService_Query(t *testing.T) {
	mockID := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	ErrStoreError := errors.New("store error")
	testCases := []struct {
		name          string
		mockStore     *mockProductStore
		expectedCount int
		expectError   error
	}{
		{
			name:          "Success - products found",
			mockStore:     &mockProductStore{products: []store.Product{sampleProduct(t, mockID)}},
			expectedCount: 1,
		},
		{
			name:          "Success - no products",
			mockStore:     &mockProductStore{products: []store.Product{}},
			expectedCount: 0,
		},
		{
			name:        "Error - store error",
			mockStore:   &mockProductStore{error: ErrStoreError},
			expectError: ErrStoreError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			found, err := service.Query(context.Background(), ProductFilterDto{})
			// then
			if tc.expectError != nil {
				assert.ErrorIs(t, err, tc.expectError)
				assert.Nil(t, found)
				return
			}
			require.NoError(t, err)
			assert.Len(t, found, tc.expectedCount)
		})
	}
}

func Test_ProductService_Update(t *testing.T) {
	mockID := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	price := mustDecimal(t, "2.00")
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expectError bool
	}{
		{
			name:      "Success - product updated",
			mockStore: &mockProductStore{product: sampleProduct(t, mockID)},
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockProductStore{error: perrors.NewNotFoundError(mockID)},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			updated, err := service.Update(context.Background(), mockID, ProductUpdateDto{Price: &price})
			// then
			if tc.expectError {
				var notFoundErr *perrors.NotFoundError
				require.True(t, errors.As(err, &notFoundErr))
				assert.Contains(t, err.Error(), mockID.String())
				assert.Nil(t, updated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, mockID.String(), updated.ID)
		})
	}
}

func Test_ProductService_DeleteByID(t *testing.T) {
	mockID := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	testCases := []struct {
		name        string
		mockStore   *mockProductStore
		expectError bool
	}{
		{
			name:      "Success - product deleted",
			mockStore: &mockProductStore{deleted: true},
		},
		{
			name:        "Error - product not found",
			mockStore:   &mockProductStore{error: perrors.NewNotFoundError(mockID)},
			expectError: true,
		},
		{
			name:        "Error - nothing removed",
			mockStore:   &mockProductStore{deleted: false},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			service := NewService(tc.mockStore)
			// when
			err := service.DeleteByID(context.Background(), mockID)
			// then
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
