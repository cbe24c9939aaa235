package loadercache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/f1-strategy-sim-go/pkg/utils/cache"
)

func TestLoaderRunsOncePerKey(t *testing.T) {
	calls := map[string]int{}
	c := New(WithLoader(func(_ context.Context, key string) (*int, error) {
		calls[key]++
		v := len(key)
		return &v, nil
	}))

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		v, err := c.Get(ctx, "medium")
		require.NoError(t, err)
		assert.Equal(t, 6, *v)
	}
	v, err := c.Get(ctx, "hard")
	require.NoError(t, err)
	assert.Equal(t, 4, *v)

	assert.Equal(t, map[string]int{"medium": 1, "hard": 1}, calls)
}

func TestLoaderErrorNotCached(t *testing.T) {
	wantErr := errors.New("upstream gone")
	calls := 0
	c := New(WithLoader(func(_ context.Context, key string) (*int, error) {
		calls++
		return nil, wantErr
	}))

	ctx := context.Background()
	_, err := c.Get(ctx, "medium")
	assert.ErrorIs(t, err, wantErr)
	_, err = c.Get(ctx, "medium")
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 2, calls, "failed loads are retried")
}

func TestInvalidate(t *testing.T) {
	calls := 0
	c := New(WithLoader(func(_ context.Context, key string) (*int, error) {
		calls++
		return &calls, nil
	}))

	ctx := context.Background()
	_, err := c.Get(ctx, "medium")
	require.NoError(t, err)
	c.Invalidate(ctx, "medium")
	_, err = c.Get(ctx, "medium")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithoutLoader(t *testing.T) {
	c := New[string, int]()
	_, err := c.Get(context.Background(), "medium")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}
