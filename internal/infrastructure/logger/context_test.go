package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContext_FromContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)
	assert.Equal(t, logger, FromContext(ctx))
}

func TestFromContext_MissingReturnsNop(t *testing.T) {
	logger := FromContext(context.Background())
	assert.NotNil(t, logger)
	// A no-op logger must not panic when used.
	logger.Info("should not panic")
}

func TestWithRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	ctx, enriched := WithRequestID(context.Background(), logger, "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))

	enriched.Info("hello")
	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "req-123", entries[0].ContextMap()["request_id"])
}

func TestWithStoreDomain(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	ctx, enriched := WithStoreDomain(context.Background(), logger, "example.myshopify.com")
	assert.Equal(t, "example.myshopify.com", GetStoreDomain(ctx))

	enriched.Info("syncing")
	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "example.myshopify.com", entries[0].ContextMap()["store_domain"])
}

func TestContextAccessors_Missing(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
	assert.Empty(t, GetStoreDomain(context.Background()))
}
