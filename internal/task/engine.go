// Package task is the memoizing execution substrate of the build core.
// Operations are pure functions identified by an operation id plus a string
// argument key; the engine caches their results, collapses concurrent
// identical calls into one execution, and offers a cycle-tolerant variant
// for recursive graph walks.
package task

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

const defaultCacheSize = 4096

// Engine memoizes operation results keyed by (operation id, argument key).
// All methods are safe for concurrent use. The engine never holds locks
// while an operation runs.
type Engine struct {
	cache *lru.Cache[string, any]
	group singleflight.Group

	mu       sync.Mutex
	inflight map[string]struct{}
	done     map[string]struct{}

	runSeq atomic.Uint64
}

// NewEngine creates an engine with an LRU result cache of the given size.
// A non-positive size selects the default.
func NewEngine(cacheSize int) *Engine {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[string, any](cacheSize)
	if err != nil {
		// lru.New only fails on a non-positive size, which is ruled out above.
		panic(fmt.Sprintf("task: cache init: %v", err))
	}
	return &Engine{
		cache:    cache,
		inflight: make(map[string]struct{}),
		done:     make(map[string]struct{}),
	}
}

// Key builds the canonical cache key for an operation invocation.
func Key(op string, args ...string) string {
	return op + "(" + strings.Join(args, ",") + ")"
}

// RunScope returns a fresh operation id derived from op, unique within this
// engine. Cycle-tolerant walks use it to scope their deduplication to one
// top-level invocation.
func (e *Engine) RunScope(op string) string {
	return fmt.Sprintf("%s#%d", op, e.runSeq.Add(1))
}

// Invalidate drops the cached result of one invocation, forcing the next
// call to recompute.
func (e *Engine) Invalidate(op string, args ...string) {
	e.cache.Remove(Key(op, args...))
}

// Do returns the memoized result of op applied to args, computing it with fn
// on a miss. Concurrent calls with the same key share a single execution.
// Errors are returned but never cached, so a failed operation is retried on
// the next call.
func Do[T any](ctx context.Context, e *Engine, op string, fn func(context.Context) (T, error), args ...string) (T, error) {
	key := Key(op, args...)
	if v, ok := e.cache.Get(key); ok {
		return v.(T), nil
	}
	v, err, _ := e.group.Do(key, func() (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	e.cache.Add(key, v)
	return v.(T), nil
}

// DoCycle runs fn at most once per (op, args) key: a call whose key is
// already executing, or has already completed successfully, returns nil
// immediately instead of recursing. This is the self-recursion tolerance
// used by cycle-tolerant emission; callers scope op with RunScope when the
// at-most-once guarantee should reset per top-level invocation.
func DoCycle(ctx context.Context, e *Engine, op string, fn func(context.Context) error, args ...string) error {
	key := Key(op, args...)

	e.mu.Lock()
	if _, ok := e.done[key]; ok {
		e.mu.Unlock()
		return nil
	}
	if _, ok := e.inflight[key]; ok {
		e.mu.Unlock()
		return nil
	}
	e.inflight[key] = struct{}{}
	e.mu.Unlock()

	err := fn(ctx)

	e.mu.Lock()
	delete(e.inflight, key)
	if err == nil {
		e.done[key] = struct{}{}
	}
	e.mu.Unlock()
	return err
}
