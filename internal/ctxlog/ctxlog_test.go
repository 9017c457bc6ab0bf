package ctxlog

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestCollectorRecordsByLevel(t *testing.T) {
	collector := NewCollector()
	ctx := WithCollector(context.Background(), collector)

	FromContext(ctx).Warn("something odd")
	FromContext(ctx).Info("progress")

	assert.Equal(t, []string{"something odd"}, collector.Messages(slog.LevelWarn))
	assert.Equal(t, []string{"progress"}, collector.Messages(slog.LevelInfo))
	assert.Empty(t, collector.Messages(slog.LevelError))
}

func TestWithAddsAttributes(t *testing.T) {
	collector := NewCollector()
	ctx := WithCollector(context.Background(), collector)
	ctx = With(ctx, "build", "test")

	FromContext(ctx).Info("tagged")
	assert.Equal(t, []string{"tagged"}, collector.Messages(slog.LevelInfo))
}
