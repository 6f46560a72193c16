package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	t.Run("none is a no-op", func(t *testing.T) {
		shutdown, err := Setup(context.Background(), "none", "")
		require.NoError(t, err)
		require.NotNil(t, shutdown)
		assert.NoError(t, shutdown(context.Background()))
	})

	t.Run("empty exporter behaves like none", func(t *testing.T) {
		shutdown, err := Setup(context.Background(), "", "")
		require.NoError(t, err)
		assert.NoError(t, shutdown(context.Background()))
	})

	t.Run("stdout exporter installs a provider", func(t *testing.T) {
		shutdown, err := Setup(context.Background(), "stdout", "")
		require.NoError(t, err)
		require.NotNil(t, shutdown)
		assert.NoError(t, shutdown(context.Background()))
	})

	t.Run("unknown exporter fails", func(t *testing.T) {
		_, err := Setup(context.Background(), "jaeger", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown trace exporter")
	})
}
