package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithoutCollector(t *testing.T) {
	shutdown, err := Init("", "product-catalog")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitWithCollector(t *testing.T) {
	shutdown, err := Init("localhost", "product-catalog")
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	// Nothing was recorded, so shutdown has nothing to send.
	assert.NoError(t, shutdown(context.Background()))
}
