package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	perrors "github.com/storeapi/products/internal/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "products"

// productDocument is the BSON shape of a product in the collection.
// The ID is stored under "id" as its canonical UUID string, never as a
// native ObjectID. Price is stored as Decimal128 so range queries compare
// exact decimals inside the store.
type productDocument struct {
	ID        string               `bson:"id"`
	Name      string               `bson:"name"`
	Quantity  int64                `bson:"quantity"`
	Price     primitive.Decimal128 `bson:"price"`
	Status    bool                 `bson:"status"`
	CreatedAt time.Time            `bson:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at"`
}

// MongoStore implements ProductStore using a MongoDB collection.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a new instance of ProductStore backed by the
// products collection of the given database.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		coll: db.Collection(collectionName),
	}
}

// Create persists a new product with a generated ID and UTC timestamps.
// Any persistence failure is wrapped into an InsertionError.
func (s *MongoStore) Create(ctx context.Context, name string, quantity int64, price decimal.Decimal, status bool) (*Product, error) {
	price128, err := toDecimal128(price)
	if err != nil {
		return nil, perrors.NewInsertionError(err)
	}
	// BSON datetimes carry millisecond precision; truncate up front so the
	// returned product equals what a later fetch returns.
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := productDocument{
		ID:        uuid.New().String(),
		Name:      name,
		Quantity:  quantity,
		Price:     price128,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, perrors.NewInsertionError(err)
	}
	return toProduct(doc)
}

// FindByID retrieves a product by its unique identifier.
// Returns NotFoundError if no product exists with the given ID.
func (s *MongoStore) FindByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	var doc productDocument
	err := s.coll.FindOne(ctx, bson.M{"id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, perrors.NewNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return toProduct(doc)
}

// Query retrieves all products matching the optional price filter.
// The range comparison runs in the store against Decimal128 values, so no
// conversion to binary float ever happens. Results come back in storage
// order; no explicit sort is imposed.
func (s *MongoStore) Query(ctx context.Context, filter PriceFilter) ([]Product, error) {
	query := bson.M{}
	price := bson.M{}
	if filter.MinPrice != nil {
		min128, err := toDecimal128(*filter.MinPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid min price: %w", err)
		}
		price["$gte"] = min128
	}
	if filter.MaxPrice != nil {
		max128, err := toDecimal128(*filter.MaxPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid max price: %w", err)
		}
		price["$lte"] = max128
	}
	if len(price) > 0 {
		query["price"] = price
	}

	cur, err := s.coll.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]Product, 0, len(docs))
	for _, doc := range docs {
		p, err := toProduct(doc)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, nil
}

// Update applies the non-nil patch fields and refreshes updated_at in a
// single FindOneAndUpdate round trip, returning the post-update document.
// Returns NotFoundError if no product exists with the given ID.
func (s *MongoStore) Update(ctx context.Context, id uuid.UUID, patch Patch) (*Product, error) {
	set := bson.M{
		"updated_at": time.Now().UTC().Truncate(time.Millisecond),
	}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Quantity != nil {
		set["quantity"] = *patch.Quantity
	}
	if patch.Price != nil {
		price128, err := toDecimal128(*patch.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid price: %w", err)
		}
		set["price"] = price128
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc productDocument
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"id": id.String()}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, perrors.NewNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return toProduct(doc)
}

// DeleteByID removes a product by its unique identifier. Existence is
// confirmed before the delete, so a zero-document delete surfaces as
// NotFoundError rather than silent success.
func (s *MongoStore) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	err := s.coll.FindOne(ctx, bson.M{"id": id.String()}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, perrors.NewNotFoundError(id)
		}
		return false, fmt.Errorf("failed to find product by ID: %w", err)
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"id": id.String()})
	if err != nil {
		return false, fmt.Errorf("failed to delete product by ID: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// toProduct converts a BSON document back to the store representation,
// restoring the exact decimal price and coercing timestamps to UTC.
func toProduct(doc productDocument) (*Product, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product ID %q: %w", doc.ID, err)
	}
	price, err := decimal.NewFromString(doc.Price.String())
	if err != nil {
		return nil, fmt.Errorf("failed to parse product price %q: %w", doc.Price, err)
	}
	return &Product{
		ID:        id,
		Name:      doc.Name,
		Quantity:  doc.Quantity,
		Price:     price,
		Status:    doc.Status,
		CreatedAt: doc.CreatedAt.UTC(),
		UpdatedAt: doc.UpdatedAt.UTC(),
	}, nil
}

// toDecimal128 converts a fixed-point decimal to its exact Decimal128 form.
func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(d.String())
}
