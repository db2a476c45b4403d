package storefront

import (
	"context"

	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/rs/zerolog/log"
)

// CatalogAPI is the part of the catalog client the storefront uses.
// *client.Client implements it.
type CatalogAPI interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, input services.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, input services.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) (string, error)
}

// ProductLister lists products.
type ProductLister interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
}

const msgDemoFallback = "Failed to load products. Using demo data instead."

// LoadCatalog fetches the storefront listing. When the API cannot be reached
// it returns the demo products with an error notification, so the shop stays
// browsable.
func LoadCatalog(ctx context.Context, api ProductLister) ([]models.Product, *Notification) {
	products, err := api.GetProducts(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "Storefront").Msg("Error fetching products")
		note := failure(msgDemoFallback)
		return DemoProducts(), &note
	}
	return products, nil
}

// DemoProducts is the offline listing.
func DemoProducts() []models.Product {
	demo := func(id, name string, price float64, category models.Category, stock int, color, label string) models.Product {
		return models.Product{
			ID: id,
			ProductFields: models.ProductFields{
				Name:        name,
				Price:       price,
				Description: "This is a demo product",
				Category:    category,
				Stock:       stock,
				ImageURL:    "https://via.placeholder.com/300/" + color + "/FFFFFF?text=" + label,
			},
		}
	}
	return []models.Product{
		demo("1", "Demo Product 1", 19.99, models.CategoryElectronics, 10, "2E7D32", "Product+1"),
		demo("2", "Demo Product 2", 29.99, models.CategoryClothing, 5, "4CAF50", "Product+2"),
		demo("3", "Demo Product 3", 39.99, models.CategoryHomeKitchen, 15, "1B5E20", "Product+3"),
		demo("4", "Demo Product 4", 49.99, models.CategoryAccessories, 8, "388E3C", "Product+4"),
	}
}
