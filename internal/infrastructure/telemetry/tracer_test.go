package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/greenclub/backend/internal/infrastructure/config"
)

func TestNewTracerProvider(t *testing.T) {
	t.Run("disabled telemetry returns no-op provider", func(t *testing.T) {
		tp, err := NewTracerProvider(context.Background(), config.TelemetryConfig{
			Enabled: false,
		}, zap.NewNop())

		require.NoError(t, err)
		assert.False(t, tp.IsEnabled())
	})

	t.Run("no-op provider shutdown is a no-op", func(t *testing.T) {
		tp, err := NewTracerProvider(context.Background(), config.TelemetryConfig{
			Enabled: false,
		}, zap.NewNop())
		require.NoError(t, err)

		assert.NoError(t, tp.Shutdown(context.Background()))
		assert.NoError(t, tp.ForceFlush(context.Background()))
	})

	t.Run("no-op provider still hands out tracers", func(t *testing.T) {
		tp, err := NewTracerProvider(context.Background(), config.TelemetryConfig{
			Enabled: false,
		}, zap.NewNop())
		require.NoError(t, err)

		assert.NotNil(t, tp.Tracer("test"))
	})
}
