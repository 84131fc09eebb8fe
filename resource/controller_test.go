package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_MemoryLimit(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	require.NoError(t, c.AcquireMemory(60))
	assert.Equal(t, int64(60), c.MemoryUsage())
	assert.Equal(t, int64(100), c.MemoryLimit())

	assert.ErrorIs(t, c.AcquireMemory(50), ErrMemoryLimitExceeded)
	assert.Equal(t, int64(60), c.MemoryUsage(), "a refused acquire does not change usage")

	c.ReleaseMemory(60)
	assert.Equal(t, int64(0), c.MemoryUsage())
	require.NoError(t, c.AcquireMemory(100))
}

func TestController_TrackingOnly(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.AcquireMemory(1 << 40))
	assert.Equal(t, int64(1<<40), c.MemoryUsage())
	c.ReleaseMemory(1 << 40)
	assert.Equal(t, int64(0), c.MemoryUsage())
}

func TestController_NilIsUnlimited(t *testing.T) {
	var c *Controller

	require.NoError(t, c.AcquireMemory(1))
	c.ReleaseMemory(1)
	assert.Equal(t, int64(0), c.MemoryUsage())
	require.NoError(t, c.AcquireIO(context.Background(), 1<<30))
	assert.True(t, c.TryAcquireIO(1<<30))
}

func TestController_ZeroAndNegative(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 10})

	require.NoError(t, c.AcquireMemory(0))
	require.NoError(t, c.AcquireMemory(-5))
	assert.Equal(t, int64(0), c.MemoryUsage())
}

func TestController_IOLimit(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

	// The first burst is free; a second immediate full burst is not.
	assert.True(t, c.TryAcquireIO(1<<20))
	assert.False(t, c.TryAcquireIO(1<<20))
}

func TestController_AcquireIOOverBurst(t *testing.T) {
	// A request larger than the burst is split instead of erroring.
	c := NewController(Config{IOLimitBytesPerSec: 1 << 26})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.AcquireIO(ctx, (1<<26)+(1<<10)))
}

func TestController_AcquireIOCanceled(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, c.AcquireIO(ctx, 100))
}
