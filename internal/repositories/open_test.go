package repositories

import (
	"context"
	"testing"

	"catalog/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		repo, closeStore, err := Open(ctx, config.StoreConfig{Driver: config.StoreMemory})
		require.NoError(t, err)
		assert.IsType(t, &MemoryProductRepository{}, repo)
		assert.NoError(t, closeStore(ctx))
	})

	t.Run("sqlite", func(t *testing.T) {
		repo, closeStore, err := Open(ctx, config.StoreConfig{
			Driver: config.StoreSQLite,
			DSN:    "file:open_test?mode=memory&cache=shared",
		})
		require.NoError(t, err)
		defer closeStore(ctx)

		products, err := repo.GetAll(ctx)
		require.NoError(t, err, "the products table is migrated on open")
		assert.Empty(t, products)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, _, err := Open(ctx, config.StoreConfig{Driver: "flatfile"})
		assert.EqualError(t, err, `unknown store driver "flatfile"`)
	})
}
