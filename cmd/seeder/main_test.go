package main

import (
	"context"
	"testing"

	"catalog/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	store := config.StoreConfig{Driver: config.StoreSQLite, DSN: "file:seeder_test?mode=memory&cache=shared"}

	require.NoError(t, run(ctx, store, false))
	require.NoError(t, run(ctx, store, true))
}

func TestRunUnknownStore(t *testing.T) {
	err := run(context.Background(), config.StoreConfig{Driver: "flatfile"}, false)
	assert.Error(t, err)
}
