package repositories

import (
	"context"
	"errors"

	"catalog/internal/models"
)

// ErrProductNotFound is returned when no product has the requested ID.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// Create assigns ID (when empty), CreatedAt and UpdatedAt.
	Create(ctx context.Context, product *models.Product) error
	// Update overwrites every editable field and sets UpdatedAt.
	Update(ctx context.Context, id string, fields models.ProductFields) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// BulkProductRepository is implemented by stores the seeder can reset.
type BulkProductRepository interface {
	ProductRepository
	CreateMany(ctx context.Context, products []models.Product) error
	DeleteAll(ctx context.Context) error
}
