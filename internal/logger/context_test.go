package logger_test

import (
	"context"
	"testing"

	"github.com/jonesrussell/north-cloud/prospector/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_ReturnsStoredLogger(t *testing.T) {
	t.Parallel()

	l := logger.NewNop()
	ctx := logger.WithContext(context.Background(), l)

	assert.Same(t, l, logger.FromContext(ctx))
}

func TestFromContext_FallsBackToNop(t *testing.T) {
	t.Parallel()

	got := logger.FromContext(context.Background())
	require.NotNil(t, got)
	assert.NoError(t, got.Sync())
}

func TestNew_AppliesDefaults(t *testing.T) {
	t.Parallel()

	l, err := logger.New(logger.Config{Level: "debug", OutputPaths: []string{"stderr"}})
	require.NoError(t, err)
	require.NotNil(t, l)

	l.With(logger.String("component", "test")).Debug("hello", logger.Int("n", 1))
}

func TestConfig_SetDefaults(t *testing.T) {
	t.Parallel()

	cfg := logger.Config{}
	cfg.SetDefaults()

	assert.Equal(t, logger.DefaultLevel, cfg.Level)
	assert.Equal(t, []string{"stdout"}, cfg.OutputPaths)
}
