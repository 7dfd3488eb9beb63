package repo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/storefront-api/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoProduct adds an insertion sequence used as the store-native order;
// created_at only has millisecond precision in BSON.
type mongoProduct struct {
	models.Product `bson:",inline"`
	Seq            int64 `bson:"seq"`
}

type MongoProductRepository struct {
	collection *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{collection: db.Collection("products")}
}

func (m *MongoProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	if p.Thumbnails == nil {
		p.Thumbnails = []string{}
	}

	doc := mongoProduct{Product: p, Seq: time.Now().UnixNano()}
	if _, err := m.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Product{}, ErrDuplicatedValueUnique
		}
		return models.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}
	return p, nil
}

func (m *MongoProductRepository) GetByID(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

func (m *MongoProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]models.Product, error) {
	found := make(map[string]models.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	cursor, err := m.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	for _, p := range products {
		found[p.ID] = p
	}
	return found, nil
}

func mongoFilter(pf ProductFilter) bson.M {
	filter := bson.M{}
	if pf.TextQuery != "" {
		pattern := regexp.QuoteMeta(pf.TextQuery)
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": pattern, "$options": "i"}},
			{"description": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	if pf.Category != "" {
		filter["category"] = bson.M{"$regex": regexp.QuoteMeta(pf.Category), "$options": "i"}
	}
	if pf.Status != nil {
		filter["status"] = *pf.Status
	}
	if pf.InStock {
		filter["stock"] = bson.M{"$gt": 0}
	}
	return filter
}

func (m *MongoProductRepository) Find(ctx context.Context, pf ProductFilter) ([]models.Product, int, error) {
	filter := mongoFilter(pf)

	total, err := m.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	sortOptions := bson.D{}
	switch pf.Sort {
	case SortPriceAsc:
		sortOptions = append(sortOptions, bson.E{Key: "price", Value: 1})
	case SortPriceDesc:
		sortOptions = append(sortOptions, bson.E{Key: "price", Value: -1})
	}
	sortOptions = append(sortOptions, bson.E{Key: "seq", Value: 1})

	opts := options.Find().SetSort(sortOptions).SetSkip(int64(pf.Offset))
	if pf.Limit > 0 {
		opts.SetLimit(int64(pf.Limit))
	}

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, int(total), nil
}

func (m *MongoProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	if p.Thumbnails == nil {
		p.Thumbnails = []string{}
	}
	update := bson.M{
		"$set": bson.M{
			"title":       p.Title,
			"description": p.Description,
			"price":       p.Price,
			"stock":       p.Stock,
			"category":    p.Category,
			"status":      p.Status,
			"thumbnails":  p.Thumbnails,
			"updated_at":  time.Now().UTC(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Product
	err := m.collection.FindOneAndUpdate(ctx, bson.M{"_id": p.ID}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, fmt.Errorf("failed to update product: %w", err)
	}
	return updated, nil
}

func (m *MongoProductRepository) Delete(ctx context.Context, id string) error {
	result, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}
