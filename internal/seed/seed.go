// Package seed resets a product store to a known sample catalog.
package seed

import (
	"context"
	"fmt"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/rs/zerolog/log"
)

// Products returns the sample catalog. Each call returns fresh records
// without IDs, so stores assign their own.
func Products() []models.Product {
	item := func(name string, price float64, description string, category models.Category, stock int, image string) models.Product {
		return models.Product{ProductFields: models.ProductFields{
			Name:        name,
			Price:       price,
			Description: description,
			Category:    category,
			Stock:       stock,
			ImageURL:    "https://via.placeholder.com/300/2E7D32/FFFFFF?text=" + image,
		}}
	}
	return []models.Product{
		item("Wireless Headphones", 99.99, "Over-ear Bluetooth headphones with active noise cancelling", models.CategoryElectronics, 25, "Headphones"),
		item("Smart Watch", 149.99, "Fitness tracking smart watch with heart rate monitor", models.CategoryElectronics, 15, "Smart+Watch"),
		item("Cotton T-Shirt", 19.99, "Classic fit t-shirt made from organic cotton", models.CategoryClothing, 100, "T-Shirt"),
		item("Chef's Knife", 49.99, "Eight inch stainless steel chef's knife", models.CategoryHomeKitchen, 30, "Knife"),
		item("Coffee Maker", 79.99, "Programmable twelve cup drip coffee maker", models.CategoryHomeKitchen, 12, "Coffee+Maker"),
		item("Mystery Novel", 14.99, "Bestselling paperback mystery novel", models.CategoryBooks, 60, "Novel"),
		item("Building Blocks Set", 34.99, "Five hundred piece creative building set", models.CategoryToys, 40, "Blocks"),
		item("Yoga Mat", 29.99, "Non-slip exercise mat with carrying strap", models.CategoryFitness, 50, "Yoga+Mat"),
		item("Running Shoes", 89.99, "Lightweight running shoes with cushioned sole", models.CategorySportswear, 35, "Shoes"),
		item("Leather Wallet", 39.99, "Slim bifold wallet in genuine leather", models.CategoryAccessories, 45, "Wallet"),
	}
}

// Import clears the store and inserts the sample catalog. It returns the
// number of products inserted.
func Import(ctx context.Context, repo repositories.BulkProductRepository) (int, error) {
	if err := repo.DeleteAll(ctx); err != nil {
		return 0, fmt.Errorf("error deleting existing products: %w", err)
	}
	log.Ctx(ctx).Info().Msg("deleted all existing products")

	products := Products()
	if err := repo.CreateMany(ctx, products); err != nil {
		return 0, fmt.Errorf("error importing products: %w", err)
	}
	log.Ctx(ctx).Info().Int("count", len(products)).Msg("sample products imported successfully")
	return len(products), nil
}

// Destroy deletes every product.
func Destroy(ctx context.Context, repo repositories.BulkProductRepository) error {
	if err := repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("error deleting products: %w", err)
	}
	log.Ctx(ctx).Info().Msg("all products deleted")
	return nil
}
