package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: config.EnvDevelopment,
		AppPort:     ":0",
		Store:       config.StoreConfig{Driver: config.StoreMemory},
		Events:      config.EventsConfig{Driver: config.EventsNone},
	}
}

func TestBuildAppServesProducts(t *testing.T) {
	ctx := context.Background()
	app, cleanup, err := buildApp(ctx, testConfig())
	require.NoError(t, err)
	defer cleanup(ctx)

	body := `{"name":"Desk Lamp","price":24.5,"description":"LED lamp","category":"Home & Kitchen","imageUrl":"https://example.com/lamp.jpg"}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "memory", health["store"])
}

func TestBuildAppRejectsUnreachableStore(t *testing.T) {
	cfg := testConfig()
	cfg.Store.Driver = "flatfile"

	app, cleanup, err := buildApp(context.Background(), cfg)
	assert.Error(t, err)
	assert.Nil(t, app)
	assert.Nil(t, cleanup)
}

func TestBuildAppRejectsUnknownEventsDriver(t *testing.T) {
	cfg := testConfig()
	cfg.Events.Driver = "carrier-pigeon"

	_, _, err := buildApp(context.Background(), cfg)
	assert.Error(t, err)
}
