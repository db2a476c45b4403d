package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"catalog/internal/models"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productsCollection = "products"

// ConnectMongoDB opens a client, verifies it with a ping and returns the
// named database.
func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

// MongoProductRepository stores products as documents in the products
// collection. IDs are ObjectID hex strings.
type MongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository creates a new instance of MongoProductRepository.
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{
		collection: db.Collection(productsCollection),
	}
}

// GetAll retrieves all products, oldest first.
func (r *MongoProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetAll").Msg("")
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetAll").Msg("")
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *MongoProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrProductNotFound)
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetByID").Msg("")
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product document.
func (r *MongoProductRepository) Create(ctx context.Context, product *models.Product) error {
	stamp(product, time.Now().UTC())

	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Create").Msg("")
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update overwrites every editable field of an existing product document.
func (r *MongoProductRepository) Update(ctx context.Context, id string, fields models.ProductFields) (*models.Product, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: fields.Name},
		{Key: "price", Value: fields.Price},
		{Key: "description", Value: fields.Description},
		{Key: "category", Value: string(fields.Category)},
		{Key: "stock", Value: fields.Stock},
		{Key: "imageUrl", Value: fields.ImageURL},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("product with ID %s not found for update: %w", id, ErrProductNotFound)
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "Update").Msg("Failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &product, nil
}

// Delete removes a product document by its ID.
func (r *MongoProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Delete").Msg("")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("product with ID %s not found for deletion: %w", id, ErrProductNotFound)
	}
	return nil
}

// CreateMany inserts the products with a single InsertMany.
func (r *MongoProductRepository) CreateMany(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, len(products))
	for i := range products {
		stamp(&products[i], now)
		docs[i] = products[i]
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert products: %w", err)
	}
	return nil
}

// DeleteAll removes every product document.
func (r *MongoProductRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.collection.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("failed to delete products: %w", err)
	}
	return nil
}

func stamp(product *models.Product, now time.Time) {
	if product.ID == "" {
		product.ID = primitive.NewObjectID().Hex()
	}
	product.CreatedAt = now
	product.UpdatedAt = now
}
