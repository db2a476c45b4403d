package seed

import (
	"context"
	"errors"
	"testing"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductsAreValid(t *testing.T) {
	products := Products()
	require.NotEmpty(t, products)

	for _, p := range products {
		assert.Empty(t, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.Greater(t, p.Price, 0.0, p.Name)
		assert.NotEmpty(t, p.Description, p.Name)
		assert.True(t, p.Category.Valid(), p.Name)
		assert.GreaterOrEqual(t, p.Stock, 0, p.Name)
		assert.NotEmpty(t, p.ImageURL, p.Name)
	}
}

func TestImportReplacesExistingProducts(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryProductRepository()
	stale := &models.Product{ProductFields: models.ProductFields{Name: "Stale", Price: 1, Category: models.CategoryBooks}}
	require.NoError(t, repo.Create(ctx, stale))

	count, err := Import(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, len(Products()), count)

	products, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, products, count)
	for _, p := range products {
		assert.NotEqual(t, "Stale", p.Name)
		assert.NotEmpty(t, p.ID)
	}

	// Running it twice leaves the same number of products.
	_, err = Import(ctx, repo)
	require.NoError(t, err)
	products, err = repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, products, count)
}

func TestDestroy(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryProductRepository()
	_, err := Import(ctx, repo)
	require.NoError(t, err)

	require.NoError(t, Destroy(ctx, repo))

	products, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

type failingStore struct {
	repositories.BulkProductRepository
}

func (failingStore) DeleteAll(context.Context) error {
	return errors.New("connection reset")
}

func TestImportFailure(t *testing.T) {
	_, err := Import(context.Background(), failingStore{repositories.NewMemoryProductRepository()})
	assert.EqualError(t, err, "error deleting existing products: connection reset")

	err = Destroy(context.Background(), failingStore{repositories.NewMemoryProductRepository()})
	assert.EqualError(t, err, "error deleting products: connection reset")
}
