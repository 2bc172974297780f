package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestL_FromContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := NewContext(context.Background(), zap.New(core))

	L(ctx).Info("stroke", zap.Int("segments", 3))
	require.Equal(t, 1, logs.Len())
	e := logs.All()[0]
	assert.Equal(t, "stroke", e.Message)
	assert.Equal(t, int64(3), e.ContextMap()["segments"])
}

func TestL_FallsBackToGlobal(t *testing.T) {
	assert.Same(t, zap.L(), L(context.Background()))
	assert.Same(t, zap.L(), L(nil)) //nolint:staticcheck
}

func TestNew(t *testing.T) {
	dev, err := New(true)
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))

	prod, err := New(false)
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zapcore.DebugLevel))
}
