package storefront

import (
	"context"

	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockCatalogAPI is a mock implementation of CatalogAPI.
type MockCatalogAPI struct {
	mock.Mock
}

func (m *MockCatalogAPI) GetProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (m *MockCatalogAPI) CreateProduct(ctx context.Context, input services.ProductInput) (*models.Product, error) {
	args := m.Called(ctx, input)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *MockCatalogAPI) UpdateProduct(ctx context.Context, id string, input services.ProductInput) (*models.Product, error) {
	args := m.Called(ctx, id, input)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *MockCatalogAPI) DeleteProduct(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
