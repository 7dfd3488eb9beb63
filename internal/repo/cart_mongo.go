package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/storefront-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoCartRepository struct {
	collection *mongo.Collection
	products   ProductRepository
}

func NewMongoCartRepository(db *mongo.Database, products ProductRepository) *MongoCartRepository {
	return &MongoCartRepository{
		collection: db.Collection("carts"),
		products:   products,
	}
}

func (m *MongoCartRepository) Create(ctx context.Context) (models.Cart, error) {
	now := time.Now().UTC()
	cart := models.Cart{ID: uuid.NewString(), Items: []models.CartItem{}, CreatedAt: now, UpdatedAt: now}
	if _, err := m.collection.InsertOne(ctx, cart); err != nil {
		return models.Cart{}, fmt.Errorf("failed to create cart: %w", err)
	}
	return cart, nil
}

func (m *MongoCartRepository) GetByID(ctx context.Context, id string, opts FindOptions) (models.Cart, error) {
	var cart models.Cart
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Cart{}, ErrCartNotFound
		}
		return models.Cart{}, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	if opts.IncludeProductDetails {
		if err := populateItems(ctx, m.products, cart.Items); err != nil {
			return models.Cart{}, err
		}
	}
	return cart, nil
}

// ReplaceItems sets the whole items array in a single document update.
func (m *MongoCartRepository) ReplaceItems(ctx context.Context, id string, items []models.CartItem) (models.Cart, error) {
	items = models.Cart{Items: items}.CloneItems()
	update := bson.M{
		"$set": bson.M{
			"items":      items,
			"updated_at": time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var cart models.Cart
	err := m.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Cart{}, ErrCartNotFound
		}
		return models.Cart{}, fmt.Errorf("failed to update cart items: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart, nil
}

func (m *MongoCartRepository) Delete(ctx context.Context, id string) error {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}
