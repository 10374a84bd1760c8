package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextFieldsAreAppended(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &logger{zapLogger: zap.New(core)}

	ctx := ContextWithFields(context.Background(), String("request_id", "req-1"))
	ctx = ContextWithFields(ctx, String("route", "/api/inventory"))

	l.Info(ctx, "served", Int("status", 200))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "served", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "/api/inventory", fields["route"])
	assert.EqualValues(t, 200, fields["status"])
}

func TestGlobalLoggerIsNoopBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Info(context.Background(), "nobody listens")
		With(String("k", "v")).Error(context.TODO(), "still fine")
	})
}

func TestInitFallsBackToInfoOnBadLevel(t *testing.T) {
	t.Cleanup(SetNopLogger)

	require.NoError(t, Init("not-a-level", true))
	assert.True(t, L().Zap().Core().Enabled(zap.InfoLevel))
	assert.False(t, L().Zap().Core().Enabled(zap.DebugLevel))
}
