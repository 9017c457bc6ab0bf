// Package ctxlog carries a slog.Logger through context.Context so every
// build operation logs with the attributes of the build that spawned it.
package ctxlog

import (
	"context"
	"log/slog"
	"sync"
)

// key is an unexported type to prevent collisions with context keys from other packages.
type key struct{}

var loggerKey = key{}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the slog.Logger from a context. When no logger has
// been embedded it falls back to the process default logger, so library
// code can always log without nil checks.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// With derives a child context whose logger carries the extra attributes.
func With(ctx context.Context, args ...any) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(args...))
}

// Collector is a slog.Handler that records every record it handles, so tests
// can assert on emitted diagnostics. Safe for concurrent use.
type Collector struct {
	mu      sync.Mutex
	records []slog.Record
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// WithCollector embeds a logger backed by the collector into the context.
func WithCollector(ctx context.Context, c *Collector) context.Context {
	return WithLogger(ctx, slog.New(c))
}

func (c *Collector) Enabled(ctx context.Context, level slog.Level) bool {
	return true
}

func (c *Collector) Handle(ctx context.Context, record slog.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, record.Clone())
	return nil
}

func (c *Collector) WithAttrs(attrs []slog.Attr) slog.Handler { return c }
func (c *Collector) WithGroup(name string) slog.Handler       { return c }

// Messages returns the messages of all recorded entries at the given level.
func (c *Collector) Messages(level slog.Level) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var messages []string
	for _, record := range c.records {
		if record.Level == level {
			messages = append(messages, record.Message)
		}
	}
	return messages
}
