package resource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveWithinLimit(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	a, err := c.Reserve(50)
	require.NoError(t, err)
	b, err := c.Reserve(40)
	require.NoError(t, err)
	assert.Equal(t, int64(90), c.MemoryUsage())

	_, err = c.Reserve(20)
	require.ErrorIs(t, err, ErrMemoryLimitExceeded)
	assert.Equal(t, int64(90), c.MemoryUsage())

	a.Release()
	a.Release()
	assert.Equal(t, int64(40), c.MemoryUsage())

	_, err = c.Reserve(60)
	require.NoError(t, err)
	assert.Equal(t, int64(100), c.MemoryUsage())
	assert.Equal(t, int64(100), c.MemoryLimit())
	assert.Equal(t, int64(40), b.Bytes())
}

func TestReserveUnlimited(t *testing.T) {
	c := NewController(Config{})

	r, err := c.Reserve(1 << 40)
	require.NoError(t, err)
	assert.Equal(t, int64(1<<40), c.MemoryUsage())
	assert.Zero(t, c.MemoryLimit())

	r.Release()
	assert.Zero(t, c.MemoryUsage())
}

func TestNilController(t *testing.T) {
	var c *Controller

	r, err := c.Reserve(10)
	require.NoError(t, err)
	r.Release()
	assert.Zero(t, r.Bytes())
	assert.Zero(t, c.MemoryUsage())
	assert.NoError(t, c.WaitBatch(context.Background()))
	assert.True(t, c.AllowBatch())

	var nilRes *Reservation
	nilRes.Release()
}

func TestBatchRate(t *testing.T) {
	c := NewController(Config{BatchesPerSecond: 1})

	assert.True(t, c.AllowBatch())
	assert.False(t, c.AllowBatch())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, c.WaitBatch(ctx))
}

func TestBatchRateUnlimited(t *testing.T) {
	c := NewController(Config{})
	for i := 0; i < 100; i++ {
		require.True(t, c.AllowBatch())
	}
	require.NoError(t, c.WaitBatch(context.Background()))
}
