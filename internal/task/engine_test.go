package task

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoMemoizes(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(0)
	calls := 0

	fn := func(context.Context) (string, error) {
		calls++
		return "value", nil
	}

	v, err := Do(ctx, e, "op", fn, "a")
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	v, err = Do(ctx, e, "op", fn, "a")
	require.NoError(t, err)
	assert.Equal(t, "value", v)
	assert.Equal(t, 1, calls, "identical invocation must be served from cache")

	_, err = Do(ctx, e, "op", fn, "b")
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "distinct argument key must compute")
}

func TestDoDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(0)
	calls := 0

	fn := func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("transient")
		}
		return 42, nil
	}

	_, err := Do(ctx, e, "op", fn, "a")
	require.Error(t, err)

	v, err := Do(ctx, e, "op", fn, "a")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 2, calls)
}

func TestDoCollapsesConcurrentCalls(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(0)

	var mu sync.Mutex
	calls := 0
	release := make(chan struct{})
	fn := func(context.Context) (int, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		<-release
		return 7, nil
	}

	var wg sync.WaitGroup
	for n := 0; n < 8; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := Do(ctx, e, "op", fn, "x")
			assert.NoError(t, err)
			assert.Equal(t, 7, v)
		}()
	}
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, calls, 2, "concurrent identical calls must be collapsed")
}

func TestInvalidateForcesRecompute(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(0)
	calls := 0
	fn := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	v, err := Do(ctx, e, "op", fn, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	e.Invalidate("op", "a")

	v, err = Do(ctx, e, "op", fn, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestDoCycleShortCircuitsReentrantCalls(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(0)
	calls := 0

	// fn re-enters itself with the same key, as a cyclic graph walk would.
	var fn func(context.Context) error
	fn = func(ctx context.Context) error {
		calls++
		return DoCycle(ctx, e, "walk", fn, "a")
	}

	require.NoError(t, DoCycle(ctx, e, "walk", fn, "a"))
	assert.Equal(t, 1, calls)
}

func TestDoCycleRunsOncePerKey(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(0)
	calls := 0
	fn := func(context.Context) error {
		calls++
		return nil
	}

	// Diamond shape: the same node reached along two paths within one scope.
	scope := e.RunScope("walk")
	require.NoError(t, DoCycle(ctx, e, scope, fn, "d"))
	require.NoError(t, DoCycle(ctx, e, scope, fn, "d"))
	assert.Equal(t, 1, calls)

	// A fresh scope resets the guarantee.
	require.NoError(t, DoCycle(ctx, e, e.RunScope("walk"), fn, "d"))
	assert.Equal(t, 2, calls)
}

func TestDoCycleRetriesAfterError(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(0)
	calls := 0
	fn := func(context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("write failed")
		}
		return nil
	}

	require.Error(t, DoCycle(ctx, e, "walk", fn, "a"))
	require.NoError(t, DoCycle(ctx, e, "walk", fn, "a"))
	assert.Equal(t, 2, calls)
}

func TestJoinCompletions(t *testing.T) {
	total := Join(Completion{Writes: 2}, Done(), Completion{Writes: 1})
	assert.Equal(t, 3, total.Writes)
	assert.Equal(t, 0, Join().Writes)
}
